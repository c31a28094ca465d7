package httpapi

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dusk-indust/docassist/internal/capability"
	"github.com/dusk-indust/docassist/internal/orchestrator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOrchestrator only answers Capabilities; the HTTP routes use nothing else.
type stubOrchestrator struct {
	orchestrator.Orchestrator
	report capability.Report
}

func (s stubOrchestrator) Capabilities(context.Context) capability.Report { return s.report }

func newTestServer(t *testing.T, mcpHandler http.Handler) *httptest.Server {
	t.Helper()
	orch := stubOrchestrator{report: capability.Report{
		Level: capability.LevelPartial,
		Statuses: []capability.Status{
			{Name: "renderer", Available: true, Detail: "mutool (/usr/bin/mutool)"},
			{Name: "assistant", Reason: "optional dependency missing"},
		},
	}}
	ts := httptest.NewServer(NewRouter(orch, mcpHandler))
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, into any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)

	var body healthResp
	status := getJSON(t, ts.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, healthResp{OK: true, Service: "docassist", Level: "partial"}, body)
}

func TestCapabilities(t *testing.T) {
	ts := newTestServer(t, nil)

	var body struct {
		Level        string              `json:"level"`
		Capabilities []capability.Status `json:"capabilities"`
	}
	status := getJSON(t, ts.URL+"/capabilities", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "partial", body.Level)
	require.Len(t, body.Capabilities, 2)
	assert.Equal(t, "renderer", body.Capabilities[0].Name)
}

func TestCapabilityByName(t *testing.T) {
	ts := newTestServer(t, nil)

	var st capability.Status
	status := getJSON(t, ts.URL+"/capabilities/renderer", &st)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, st.Available)

	var errBody map[string]string
	status = getJSON(t, ts.URL+"/capabilities/ocr", &errBody)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, errBody["error"], "ocr")
}

func TestMCPMount(t *testing.T) {
	called := false
	ts := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusAccepted)
	}))

	resp, err := http.Post(ts.URL+"/mcp", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.True(t, called)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
}

func TestMCPNotMountedWithoutHandler(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Post(ts.URL+"/mcp", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRun_ListenFailureReturns(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	done := make(chan error, 1)
	go func() { done <- Run(context.Background(), ln.Addr().String(), http.NotFoundHandler()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), ln.Addr().String())
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after the listener failed")
	}
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, addr, http.NotFoundHandler()) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
