// Package document loads and writes markdown files, preserving line-ending
// style and skipping writes that would not change the file.
package document

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
)

// Document is a loaded text file. Text is LF-normalized for processing; the
// original CRLF style is restored on write.
type Document struct {
	Path string
	text string
	crlf bool
	mode fs.FileMode
}

// Text returns the LF-normalized content.
func (d *Document) Text() string {
	return d.text
}

// Store reads and writes documents through an afero filesystem, so batch
// runs and tests can use in-memory filesystems.
type Store struct {
	fs afero.Fs
}

func NewStore(fsys afero.Fs) *Store {
	return &Store{fs: fsys}
}

// Load reads path into memory. CRLF line endings are detected and
// normalized away; Write restores them.
func (s *Store) Load(path string) (*Document, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	raw, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	text := string(raw)
	crlf := strings.Contains(text, "\r\n")
	if crlf {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}

	return &Document{
		Path: path,
		text: text,
		crlf: crlf,
		mode: info.Mode().Perm(),
	}, nil
}

// Write replaces the document content with text, restoring the original
// line-ending style and file mode. It reports whether anything was written:
// identical content is left alone so file timestamps stay put.
func (s *Store) Write(d *Document, text string) (bool, error) {
	if text == d.text {
		return false, nil
	}
	out := text
	if d.crlf {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}
	if err := afero.WriteFile(s.fs, d.Path, []byte(out), d.mode); err != nil {
		return false, fmt.Errorf("write %s: %w", d.Path, err)
	}
	d.text = text
	return true, nil
}
