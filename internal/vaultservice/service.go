// Package vaultservice coordinates storage, index, and compile operations
// behind the HTTP and MCP surfaces.
package vaultservice

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/checksum"
	"github.com/starford/raido/internal/compile"
	"github.com/starford/raido/internal/index"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/parser"
	"github.com/starford/raido/internal/storage"
	"github.com/starford/raido/internal/wordcount"
)

// NoteDetail is the full representation of a note.
type NoteDetail struct {
	Path        string         `json:"path"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Checksum    string         `json:"checksum"`
	WordCount   int            `json:"word_count"`
	Frontmatter map[string]any `json:"frontmatter,omitempty"`
	Backlinks   []string       `json:"backlinks"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NoteListItem is a lightweight item in a list response.
type NoteListItem struct {
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Checksum  string    `json:"checksum"`
	WordCount int       `json:"word_count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service exposes read-only vault operations.
type Service struct {
	store     storage.Provider
	db        index.NoteIndex
	vaultRoot string
}

// NewService creates a new vault service.
func NewService(store storage.Provider, db index.NoteIndex, vaultRoot string) *Service {
	return &Service{store: store, db: db, vaultRoot: vaultRoot}
}

// GetNote reads a note from storage, parses it, and enriches it with
// backlinks and a markdown-aware word count.
func (s *Service) GetNote(_ context.Context, path string) (*NoteDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	res, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}
	bl, _ := s.db.Backlinks(trimMD(path))
	if bl == nil {
		bl = []string{}
	}
	return &NoteDetail{
		Path:        path,
		Title:       res.Title,
		Content:     string(data),
		Checksum:    checksum.Sum(data),
		WordCount:   wordcount.Count(res.Body),
		Frontmatter: res.Frontmatter,
		Backlinks:   bl,
		UpdatedAt:   time.Now(),
	}, nil
}

// ListNotes returns a page of indexed notes plus the total count.
func (s *Service) ListNotes(_ context.Context, limit, offset int, sort string) ([]NoteListItem, int, error) {
	rows, total, err := s.db.ListNotes(limit, offset, sort)
	if err != nil {
		return nil, 0, err
	}
	items := make([]NoteListItem, len(rows))
	for i, r := range rows {
		items[i] = NoteListItem{
			Path:      r.Path,
			Title:     r.Title,
			Checksum:  r.Checksum,
			WordCount: r.WordCount,
			UpdatedAt: r.UpdatedAt,
		}
	}
	return items, total, nil
}

// Search delegates to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Backlinks returns the paths of notes linking to the given wikilink target.
func (s *Service) Backlinks(_ context.Context, target string) ([]string, error) {
	return s.db.Backlinks(target)
}

// Graph returns the full wikilink graph.
func (s *Service) Graph(_ context.Context) ([]index.GraphNode, []index.GraphLink, error) {
	return s.db.Graph()
}

// Compile runs the extraction pipeline against the vault for the given
// target, in Normal or Final output mode.
func (s *Service) Compile(_ context.Context, target string, final bool) (*models.CompileResult, error) {
	mode := compile.ModeNormal
	if final {
		mode = compile.ModeFinal
	}
	c, err := compile.New(s.vaultRoot, compile.WithMode(mode))
	if err != nil {
		return nil, err
	}
	return c.Compile(target)
}

// trimMD drops a trailing .md so stored bare-name link targets match.
func trimMD(path string) string {
	const ext = ".md"
	if len(path) > len(ext) && path[len(path)-len(ext):] == ext {
		return path[:len(path)-len(ext)]
	}
	return path
}
