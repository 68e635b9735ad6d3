// Package extract turns documents on disk into plain text for the
// detection pipeline. It is a read-only adapter: no extraction path ever
// writes to or mutates a source document.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SupportedExt reports whether path has an extension the extractor can
// read. Matching is case-insensitive.
func SupportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".log", ".pdf":
		return true
	default:
		return false
	}
}

// Text extracts the plain text of one document, dispatching on extension.
// Unsupported extensions are an error here; batch walks filter them out
// before calling.
func Text(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".log":
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return string(b), nil
	case ".pdf":
		return pdfText(path)
	default:
		return "", fmt.Errorf("unsupported document type %q", filepath.Ext(path))
	}
}
