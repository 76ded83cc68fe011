// Package apperr defines sentinel errors shared across raido layers.
package apperr

import "errors"

var (
	// ErrNotFound marks a file, note, or link target that could not be located.
	ErrNotFound = errors.New("not found")
	// ErrEmptyFolder marks a folder that contains no markdown files.
	ErrEmptyFolder = errors.New("no markdown files in folder")
)
