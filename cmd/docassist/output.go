package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/dusk-indust/docassist/internal/log"
)

// printer writes command results as JSON, plain markdown or styled markdown.
type printer struct {
	w     io.Writer
	json  bool
	plain bool
}

func (p *printer) printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = p.w.Write(append(out, '\n'))
	return err
}

func (p *printer) printMarkdown(md string) error {
	if !p.plain {
		styled, err := styleMarkdown(md)
		if err == nil {
			_, err = io.WriteString(p.w, styled)
			return err
		}
		log.Debugf("docassist: terminal styling unavailable: %v", err)
	}
	_, err := fmt.Fprintln(p.w, md)
	return err
}

func styleMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
