package api

import (
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/vaultservice"
)

// NoteDetail is the full note response type (aliased from the domain layer).
type NoteDetail = vaultservice.NoteDetail

// NoteListItem is a lightweight item in a list response.
type NoteListItem = vaultservice.NoteListItem

// NoteListResponse wraps paginated note listings.
type NoteListResponse struct {
	Notes []NoteListItem `json:"notes"`
	Total int            `json:"total"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// BacklinksResponse wraps the backlink sources for one target.
type BacklinksResponse struct {
	Target    string   `json:"target"`
	Backlinks []string `json:"backlinks"`
}

// CompileResponse wraps a compile run.
type CompileResponse = models.CompileResult
