// Package models defines the domain types for raido.
package models

import "time"

// NoteMetadata is a lightweight representation returned by vault listings.
type NoteMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Link represents a directed wikilink edge. Target is the bare wikilink name
// as written in the source note, not a resolved path.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// CompileResult is the outcome of running a target through the extraction
// pipeline: the assembled text plus the word count over resolved link content.
type CompileResult struct {
	Output    string   `json:"output"`
	WordCount int      `json:"word_count"`
	Files     []string `json:"files"`
}
