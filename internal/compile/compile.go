// Package compile assembles vault content by resolving wikilink list items
// found under level-2 headings.
package compile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/parser"
	"github.com/starford/raido/internal/storage"
	"github.com/starford/raido/internal/wordcount"
)

// Mode selects the output format.
type Mode int

const (
	// ModeNormal includes separators and a back-reference to each resolved
	// wikilink target.
	ModeNormal Mode = iota
	// ModeFinal emits only resolved content, newline-joined.
	ModeFinal
)

// Option configures a Compiler.
type Option func(*Compiler)

// WithMode sets the output mode. The mode is fixed for the whole run.
func WithMode(m Mode) Option {
	return func(c *Compiler) { c.mode = m }
}

// WithFolderBatching enables or disables treating a directory target as a
// batch of markdown files. Enabled by default.
func WithFolderBatching(enabled bool) Option {
	return func(c *Compiler) { c.batchFolders = enabled }
}

// WithWordCount enables or disables word counting over resolved link content.
// Enabled by default.
func WithWordCount(enabled bool) Option {
	return func(c *Compiler) { c.countWords = enabled }
}

// Compiler runs the extraction pipeline against a vault root.
type Compiler struct {
	store        *storage.FS
	mode         Mode
	batchFolders bool
	countWords   bool
}

// New creates a Compiler rooted at the given vault directory.
func New(root string, opts ...Option) (*Compiler, error) {
	store, err := storage.NewFS(root)
	if err != nil {
		return nil, err
	}
	c := &Compiler{
		store:        store,
		mode:         ModeNormal,
		batchFolders: true,
		countWords:   true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// source is one markdown file to process; external batch directories carry
// their own provider while wikilink resolution always uses the vault root.
type source struct {
	store storage.Provider
	path  string
	label string
}

// Compile resolves target to an ordered file set, extracts list items under
// level-2 headings from each file, resolves wikilink items against the vault
// root, and returns the assembled output. The word count covers only content
// that arrived through resolved wikilinks; organisational text and missing
// link placeholders are never counted.
func (c *Compiler) Compile(target string) (*models.CompileResult, error) {
	sources, err := c.resolveTarget(target)
	if err != nil {
		return nil, err
	}

	var display, counted strings.Builder
	files := make([]string, 0, len(sources))
	for _, src := range sources {
		files = append(files, src.label)
		if err := c.compileFile(src, &display, &counted); err != nil {
			return nil, err
		}
	}

	n := 0
	if c.countWords {
		n = wordcount.Count(counted.String())
	}
	return &models.CompileResult{
		Output:    display.String(),
		WordCount: n,
		Files:     files,
	}, nil
}

// resolveTarget produces the ordered file set for one invocation: a folder
// under the root, a single located file, or (as a fallback) the target
// interpreted as a standalone directory path.
func (c *Compiler) resolveTarget(target string) ([]source, error) {
	if c.batchFolders {
		joined := filepath.Join(c.store.Root(), target)
		if info, err := os.Stat(joined); err == nil && info.IsDir() {
			return c.batchDir(c.store, target, target)
		}
	}

	if rel, err := c.store.Locate(target); err == nil {
		return []source{{store: c.store, path: rel, label: rel}}, nil
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	if c.batchFolders {
		if info, err := os.Stat(target); err == nil && info.IsDir() {
			ext, err := storage.NewFS(target)
			if err != nil {
				return nil, err
			}
			return c.batchDir(ext, "", target)
		}
	}

	return nil, fmt.Errorf("file or folder %q: %w", target, apperr.ErrNotFound)
}

// batchDir lists the immediate markdown files of dir on the given provider.
func (c *Compiler) batchDir(store storage.Provider, dir, labelBase string) ([]source, error) {
	paths, err := store.ListDir(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("folder %q: %w", labelBase, apperr.ErrEmptyFolder)
	}
	out := make([]source, 0, len(paths))
	for _, p := range paths {
		label := p
		if dir == "" && labelBase != "" {
			label = filepath.Join(labelBase, p)
		}
		out = append(out, source{store: store, path: p, label: label})
	}
	return out, nil
}

// compileFile segments one markdown file and renders each list item.
func (c *Compiler) compileFile(src source, display, counted *strings.Builder) error {
	data, err := src.store.Read(src.path)
	if err != nil {
		return err
	}
	sections, err := parser.Sections(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("compile: segment %s: %w", src.path, err)
	}
	for _, sec := range sections {
		for _, item := range sec.Items {
			c.renderItem(item, display, counted)
		}
	}
	return nil
}

// renderItem classifies a single list item and appends it to the display
// buffer and, for resolved wikilink content only, the counting buffer.
func (c *Compiler) renderItem(item string, display, counted *strings.Builder) {
	item = parser.StripCheckbox(item)

	target, ok := parser.Wikilink(item)
	if !ok {
		display.WriteString(item + "\n")
		if c.mode == ModeNormal {
			display.WriteString("\n")
		}
		return
	}

	rel, err := c.store.Locate(target)
	if err != nil {
		// Missing link: placeholder goes to display only, never counted.
		display.WriteString("[Link not found: " + target + "]\n")
		return
	}

	content := c.readResolved(rel)
	if c.mode == ModeFinal {
		display.WriteString(content + "\n")
	} else {
		display.WriteString("---\n\n")
		display.WriteString("[[" + target + "]]\n\n")
		display.WriteString(content + "\n\n")
	}
	// The file was located, so even a read-failure placeholder counts as
	// resolved content.
	counted.WriteString(content + "\n")
}

// readResolved reads a located wikilink target and trims it. Read failures
// become a bracketed placeholder carrying the underlying reason.
func (c *Compiler) readResolved(rel string) string {
	data, err := c.store.Read(rel)
	if err != nil {
		return fmt.Sprintf("[Error reading file: %s]", readReason(err))
	}
	return strings.TrimSpace(string(data))
}

// readReason extracts the OS-level cause from a wrapped read error.
func readReason(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}
