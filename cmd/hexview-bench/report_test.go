package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/hexview/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:     time.Second,
		Radius:       2,
		Tiles:        19,
		TotalUpdates: 60,
		Stages: []ecs.StageStats{
			{Name: "GridStage", ExecutionCount: 60, AvgDuration: time.Microsecond},
		},
		Storage: ecs.StorageStats{TotalEntityCount: 23},
	}
	r.MemStatsEnd.NumGC = 4
	r.MemStatsStart.NumGC = 1

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	out := buf.String()

	assert.Contains(t, out, "- **Grid Radius:** 2 (19 tiles)")
	assert.Contains(t, out, "| GridStage | 60 | 1µs | 0s | 0s |")
	assert.Contains(t, out, "- **Entities:** 23")
	assert.Contains(t, out, "delta: 3")
	assert.NotContains(t, out, "Resize Every")
	assert.NotContains(t, out, "GC Pause Durations")
}
