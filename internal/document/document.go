// Package document extracts plain text from PDF, DOCX and text files and
// exports text back to PDF, DOCX or markdown.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for file types docassist cannot handle.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Format identifies a document type.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
	FormatText     Format = "text"
	FormatMarkdown Format = "md"
)

// Document is the extracted content of one file.
type Document struct {
	// Name is the base file name without extension.
	Name   string `json:"name"`
	Path   string `json:"path"`
	Format Format `json:"format"`
	Text   string `json:"text"`

	// Pages is the page count for paginated formats, 0 otherwise.
	Pages int `json:"pages,omitempty"`
}

// FormatOf maps a file extension to a Format.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".txt", ".text":
		return FormatText, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Extract reads the file at path and returns its text.
func Extract(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Name:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path:   path,
		Format: format,
	}

	switch format {
	case FormatPDF:
		doc.Text, doc.Pages, err = extractPDF(path)
	case FormatDOCX:
		doc.Text, err = extractDOCX(path)
	default:
		var data []byte
		data, err = os.ReadFile(path)
		doc.Text = string(data)
	}
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filepath.Base(path), err)
	}
	return doc, nil
}
