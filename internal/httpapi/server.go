// Package httpapi serves the capability report and the MCP endpoint over
// HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dusk-indust/docassist/internal/log"
	"github.com/dusk-indust/docassist/internal/orchestrator"
	"github.com/go-chi/chi/v5"
)

type healthResp struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Level   string `json:"level"`
}

// NewRouter returns the docassist HTTP routes. mcpHandler is mounted at /mcp
// when non-nil.
func NewRouter(orch orchestrator.Orchestrator, mcpHandler http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, healthResp{
			OK:      true,
			Service: "docassist",
			Level:   orch.Capabilities(req.Context()).Level.String(),
		})
	})

	r.Get("/capabilities", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, orch.Capabilities(req.Context()))
	})

	r.Get("/capabilities/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")
		st, ok := orch.Capabilities(req.Context()).Lookup(name)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown capability " + name})
			return
		}
		writeJSON(w, http.StatusOK, st)
	})

	if mcpHandler != nil {
		r.Handle("/mcp", mcpHandler)
		r.Handle("/mcp/*", mcpHandler)
	}
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("httpapi: encode response: %v", err)
	}
}

// Run serves handler on addr until ctx is cancelled, then shuts down
// gracefully. It returns early if the listener fails.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("httpapi: listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return nil
}
