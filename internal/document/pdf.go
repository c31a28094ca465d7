package document

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/ledongthuc/pdf"
)

// extractPDF returns the text layer of every page and the page count.
// Pages that fail to decode are skipped. The pdf package panics on some
// malformed files; those come back as errors.
func extractPDF(path string) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, pages = "", 0
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil || pageText == "" {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), total, nil
}

// WritePDF writes title and text to an A4 PDF at path.
func WritePDF(path, title, text string) error {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle(title, true)
	doc.AddPage()

	if title != "" {
		doc.SetFont("Helvetica", "B", 16)
		doc.Cell(0, 10, tr(title))
		doc.Ln(14)
	}

	doc.SetFont("Helvetica", "", 11)
	for _, para := range paragraphs(text) {
		doc.MultiCell(0, 6, tr(para), "", "L", false)
		doc.Ln(2)
	}

	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// paragraphs splits text on newlines and drops blank lines.
func paragraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
