package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/raido/internal/apperr"
)

func tempVault(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func write(t *testing.T, s *FS, rel, content string) {
	t.Helper()
	abs := filepath.Join(s.Root(), rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewFS_RejectsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.md")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFS(file); err == nil {
		t.Error("expected error for non-directory root")
	}
}

func TestRead(t *testing.T) {
	s := tempVault(t)
	write(t, s, "note.md", "# Hello\nWorld\n")
	got, err := s.Read("note.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "# Hello\nWorld\n" {
		t.Errorf("content = %q", got)
	}
}

func TestRead_EscapeRejected(t *testing.T) {
	s := tempVault(t)
	if _, err := s.Read("../outside.md"); err == nil {
		t.Error("expected error for path escaping the vault root")
	}
	if _, err := s.Read("/etc/passwd"); err == nil {
		t.Error("expected error for absolute path")
	}
}

func TestList_Recursive(t *testing.T) {
	s := tempVault(t)
	write(t, s, "a.md", "a")
	write(t, s, "sub/b.md", "b")
	write(t, s, "sub/skip.txt", "not markdown")

	metas, err := s.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("len(metas) = %d, want 2", len(metas))
	}
	for _, m := range metas {
		if m.Checksum == "" {
			t.Errorf("missing checksum for %s", m.Path)
		}
	}
}

func TestListDir_SortedCaseInsensitive(t *testing.T) {
	s := tempVault(t)
	write(t, s, "notes/B.md", "b")
	write(t, s, "notes/a.md", "a")
	write(t, s, "notes/C.md", "c")
	write(t, s, "notes/deep/d.md", "nested, excluded")
	write(t, s, "notes/readme.txt", "excluded")

	got, err := s.ListDir("notes")
	if err != nil {
		t.Fatalf("ListDir: %v", err)
	}
	want := []string{
		filepath.Join("notes", "a.md"),
		filepath.Join("notes", "B.md"),
		filepath.Join("notes", "C.md"),
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLocate_RootLevelPreferred(t *testing.T) {
	s := tempVault(t)
	write(t, s, "Page.md", "root")
	write(t, s, "sub/Page.md", "nested")

	got, err := s.Locate("Page")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != "Page.md" {
		t.Errorf("path = %q, want Page.md", got)
	}
}

func TestLocate_Nested(t *testing.T) {
	s := tempVault(t)
	write(t, s, "deep/down/Target.md", "x")

	got, err := s.Locate("Target")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != filepath.Join("deep", "down", "Target.md") {
		t.Errorf("path = %q", got)
	}
}

func TestLocate_ExtensionOptional(t *testing.T) {
	s := tempVault(t)
	write(t, s, "note.md", "x")

	for _, name := range []string{"note", "note.md"} {
		got, err := s.Locate(name)
		if err != nil {
			t.Fatalf("Locate(%q): %v", name, err)
		}
		if got != "note.md" {
			t.Errorf("Locate(%q) = %q", name, got)
		}
	}
}

func TestLocate_NotFound(t *testing.T) {
	s := tempVault(t)
	_, err := s.Locate("nothing")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
