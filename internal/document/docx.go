package document

import (
	"fmt"
	"os"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gonfva/docxlib"
)

// extractDOCX concatenates the text runs of every paragraph, one line each.
func extractDOCX(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	doc, err := docxlib.Parse(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}

	var sb strings.Builder
	for _, para := range doc.Paragraphs() {
		var line strings.Builder
		for _, child := range para.Children() {
			if child.Run != nil && child.Run.Text != nil {
				line.WriteString(child.Run.Text.Text)
			}
		}
		if line.Len() == 0 {
			continue
		}
		sb.WriteString(line.String())
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// WriteDOCX writes title as a heading and one paragraph per non-blank line.
func WriteDOCX(path, title, text string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new docx: %w", err)
	}

	if title != "" {
		if _, err := doc.AddHeading(title, 0); err != nil {
			return fmt.Errorf("docx heading: %w", err)
		}
	}
	for _, para := range paragraphs(text) {
		doc.AddParagraph(para)
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}
