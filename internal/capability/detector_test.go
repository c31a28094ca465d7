package capability

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func present(name string) *Flag[string] {
	return New(name, func() (string, error) { return name, nil })
}

func absent(name string) *Flag[string] {
	return New(name, func() (string, error) { return "", errors.New(name + " missing") })
}

func TestDetector_Levels(t *testing.T) {
	tests := []struct {
		name      string
		resolvers []Resolver
		want      Level
	}{
		{"none registered", nil, LevelBasic},
		{"all absent", []Resolver{absent("renderer"), absent("assistant")}, LevelBasic},
		{"mixed", []Resolver{present("renderer"), absent("assistant")}, LevelPartial},
		{"all present", []Resolver{present("renderer"), present("assistant")}, LevelFull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := NewDetector(tt.resolvers...).Detect(context.Background())
			assert.Equal(t, tt.want, report.Level)
			assert.Len(t, report.Statuses, len(tt.resolvers))
		})
	}
}

func TestDetector_OrderAndLookup(t *testing.T) {
	report := NewDetector(absent("renderer"), present("assistant")).Detect(context.Background())

	require.Len(t, report.Statuses, 2)
	assert.Equal(t, "renderer", report.Statuses[0].Name)
	assert.Equal(t, "assistant", report.Statuses[1].Name)

	st, ok := report.Lookup("assistant")
	require.True(t, ok)
	assert.True(t, st.Available)

	_, ok = report.Lookup("ocr")
	assert.False(t, ok)
}

func TestDetector_CancelledContextStillResolves(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, a := present("renderer"), absent("assistant")
	report := NewDetector(r, a).Detect(ctx)

	assert.True(t, r.Resolved())
	assert.True(t, a.Resolved())
	assert.Equal(t, LevelPartial, report.Level)
}

func TestDetector_ProbesRunConcurrently(t *testing.T) {
	slow := func(name string) *Flag[string] {
		return New(name, func() (string, error) {
			time.Sleep(200 * time.Millisecond)
			return name, nil
		})
	}

	start := time.Now()
	report := NewDetector(slow("a"), slow("b"), slow("c")).Detect(context.Background())
	elapsed := time.Since(start)

	assert.Equal(t, LevelFull, report.Level)
	assert.Less(t, elapsed, 550*time.Millisecond)
}

func TestDetector_PanickingProbeDoesNotAbort(t *testing.T) {
	boom := New("boom", func() (string, error) { panic("native library crashed") })

	var report Report
	require.NotPanics(t, func() {
		report = NewDetector(boom, present("renderer")).Detect(context.Background())
	})
	assert.Equal(t, LevelPartial, report.Level)
	st, _ := report.Lookup("boom")
	assert.False(t, st.Available)
	assert.Contains(t, st.Reason, "native library crashed")
}

func TestReport_JSON(t *testing.T) {
	report := NewDetector(present("renderer")).Detect(context.Background())

	raw, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"full","capabilities":[{"name":"renderer","available":true}]}`, string(raw))
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "basic", LevelBasic.String())
	assert.Equal(t, "partial", LevelPartial.String())
	assert.Equal(t, "full", LevelFull.String())
	assert.Equal(t, "unknown", Level(9).String())
}
