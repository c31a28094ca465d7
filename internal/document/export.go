package document

import (
	"fmt"
	"os"
	"strings"
)

// Export writes title and text to path in the given format.
func Export(path string, format Format, title, text string) error {
	switch format {
	case FormatPDF:
		return WritePDF(path, title, text)
	case FormatDOCX:
		return WriteDOCX(path, title, text)
	case FormatMarkdown, FormatText:
		return writeMarkdown(path, title, text)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ParseFormat parses a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "pdf":
		return FormatPDF, nil
	case "docx":
		return FormatDOCX, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

func writeMarkdown(path, title, text string) error {
	var sb strings.Builder
	if title != "" {
		sb.WriteString("# ")
		sb.WriteString(title)
		sb.WriteString("\n\n")
	}
	sb.WriteString(strings.TrimSpace(text))
	sb.WriteString("\n")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}
