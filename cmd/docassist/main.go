package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dusk-indust/docassist/internal/config"
	"github.com/dusk-indust/docassist/internal/log"
	"github.com/dusk-indust/docassist/internal/orchestrator"
)

// CLI flags parsed from command line.
type cliFlags struct {
	ConfigDir string
	OutputDir string
	LogLevel  string
	JSON      bool
	Plain     bool
	Version   bool
}

// version is set with -ldflags at build time.
var version = "dev"

const usage = `usage: docassist [flags] <command> [args]

commands:
  capabilities           report optional capabilities detected at startup
  extract <file>         print the text of a PDF, DOCX, text or markdown file
  preview <file>         write page images, or a text preview without a rasterizer
  summarize <file>       summarize a document
  export [flags] <file>  convert a document (see: docassist export -h)
  serve [-addr a]        serve /health, /capabilities and /mcp over HTTP
  mcp                    run the MCP server on stdio
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var flags cliFlags

	fs := flag.NewFlagSet("docassist", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage+"\nflags:\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&flags.ConfigDir, "config-dir", ".", "directory holding docassist.yml and .env")
	fs.StringVar(&flags.OutputDir, "output-dir", "", "directory for previews (overrides config)")
	fs.StringVar(&flags.LogLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	fs.BoolVar(&flags.JSON, "json", false, "print results as JSON")
	fs.BoolVar(&flags.Plain, "plain", false, "print markdown without terminal styling")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Fprintln(stdout, version)
		return nil
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return fmt.Errorf("no command given")
	}

	cfg, err := config.Load(flags.ConfigDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flags.OutputDir != "" {
		cfg.OutputDir = flags.OutputDir
	}
	if flags.LogLevel != "" {
		cfg.LogLevel = flags.LogLevel
	}
	log.SetLevel(cfg.LogLevel)
	log.Debugf("docassist %s: log level %s, output %s", version, log.Level(), cfg.OutputDir)

	// Probe optional capabilities before any command can start workers.
	svc := orchestrator.New(ctx, cfg, orchestrator.DefaultCapabilities(cfg))

	out := &printer{w: stdout, json: flags.JSON, plain: flags.Plain}
	cmd, cmdArgs := rest[0], rest[1:]

	switch cmd {
	case "capabilities":
		return runCapabilities(ctx, svc, out)
	case "extract":
		return runExtract(ctx, svc, out, cmdArgs)
	case "preview":
		return runPreview(ctx, svc, out, cmdArgs)
	case "summarize":
		return runSummarize(ctx, svc, out, cmdArgs)
	case "export":
		return runExport(ctx, svc, out, cmdArgs)
	case "serve":
		return runServe(ctx, svc, cfg, cmdArgs)
	case "mcp":
		return runMCP(ctx, svc)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
