package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dusk-indust/docassist/internal/config"
	"github.com/dusk-indust/docassist/internal/document"
	"github.com/dusk-indust/docassist/internal/httpapi"
	"github.com/dusk-indust/docassist/internal/mcptools"
	"github.com/dusk-indust/docassist/internal/orchestrator"
)

func runCapabilities(ctx context.Context, svc *orchestrator.Service, out *printer) error {
	report := svc.Capabilities(ctx)
	if out.json {
		return out.printJSON(report)
	}

	fmt.Fprintf(out.w, "Capability level: %s\n\n", report.Level)
	for _, s := range report.Statuses {
		if s.Available {
			fmt.Fprintf(out.w, "  %-10s [available]  %s\n", s.Name, s.Detail)
		} else {
			fmt.Fprintf(out.w, "  %-10s [degraded]   %s\n", s.Name, s.Reason)
		}
	}
	return nil
}

func oneFile(cmd string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: docassist %s <file>", cmd)
	}
	return args[0], nil
}

func runExtract(ctx context.Context, svc *orchestrator.Service, out *printer, args []string) error {
	path, err := oneFile("extract", args)
	if err != nil {
		return err
	}
	doc, err := svc.Extract(ctx, path)
	if err != nil {
		return err
	}
	if out.json {
		return out.printJSON(doc)
	}
	return out.printMarkdown(fmt.Sprintf("# %s\n\n%s", doc.Name, doc.Text))
}

func runPreview(ctx context.Context, svc *orchestrator.Service, out *printer, args []string) error {
	path, err := oneFile("preview", args)
	if err != nil {
		return err
	}
	p, err := svc.Preview(ctx, path)
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}
	if out.json {
		return out.printJSON(p)
	}

	fmt.Fprintf(out.w, "Preview (%s) written to %s\n", p.Mode, p.Dir)
	if p.Note != "" {
		fmt.Fprintf(out.w, "  note: %s\n", p.Note)
	}
	for _, f := range p.Files {
		fmt.Fprintf(out.w, "  %s\n", f)
	}
	return nil
}

func runSummarize(ctx context.Context, svc *orchestrator.Service, out *printer, args []string) error {
	path, err := oneFile("summarize", args)
	if err != nil {
		return err
	}
	res, err := svc.Summarize(ctx, path)
	if err != nil {
		return err
	}
	if out.json {
		return out.printJSON(res)
	}
	return out.printMarkdown(fmt.Sprintf("# Summary of %s\n\n_%s_\n\n%s", res.Document, res.Summary.Mode, res.Summary.Text))
}

func runExport(ctx context.Context, svc *orchestrator.Service, out *printer, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(out.w)
	formatName := fs.String("format", "", "pdf, docx or md (default: from -o extension)")
	dest := fs.String("o", "", "output file")
	summary := fs.Bool("summary", false, "export the summary instead of the full text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	src, err := oneFile("export [-format f] [-summary] -o <out>", fs.Args())
	if err != nil {
		return err
	}
	if *dest == "" {
		return fmt.Errorf("export: -o is required")
	}

	name := *formatName
	if name == "" {
		name = strings.TrimPrefix(filepath.Ext(*dest), ".")
	}
	format, err := document.ParseFormat(name)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	res, err := svc.Export(ctx, orchestrator.ExportRequest{
		Source:      src,
		Destination: *dest,
		Format:      format,
		Summarize:   *summary,
	})
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if out.json {
		return out.printJSON(res)
	}
	fmt.Fprintf(out.w, "Wrote %s (%s, %s)\n", res.Path, res.Format, res.Mode)
	return nil
}

func runServe(ctx context.Context, svc *orchestrator.Service, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", cfg.HTTPAddr, "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mcpHandler := mcptools.NewHTTPHandler(mcptools.NewServer(svc))
	return httpapi.Run(ctx, *addr, httpapi.NewRouter(svc, mcpHandler))
}

func runMCP(ctx context.Context, svc *orchestrator.Service) error {
	return mcptools.RunStdio(ctx, mcptools.NewServer(svc))
}
