package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/mdtoc/internal/heading"
)

// Extractor produces the ordered heading sequence of a document.
type Extractor interface {
	Extract(r io.Reader) ([]heading.Heading, error)
}

// SupportedExtensions lists file extensions this tool can read headings from.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
}

// MarkdownExtensions lists the extensions eligible for TOC injection.
// HTML files are read-only inputs; splicing targets markdown.
var MarkdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// IsMarkdown checks if a filename names a markdown document.
func IsMarkdown(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return MarkdownExtensions[ext]
}
