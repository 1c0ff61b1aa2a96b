package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	traj "github.com/atomvista/gotraj"
	"github.com/atomvista/gotraj/loader"
)

//writeXYZ drops an n-frame cubic-silicon trajectory under dir.
func writeXYZ(t *testing.T, dir string, n int) string {
	t.Helper()
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString("2\n")
		fmt.Fprintf(&b, "Lattice=\"5.43 0 0 0 5.43 0 0 0 5.43\" energy=%g\n", -100.0-float64(i))
		b.WriteString("Si 0.0 0.0 0.0\n")
		b.WriteString("Si 2.715 2.715 2.715\n")
	}
	path := filepath.Join(dir, "md.xyz")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestParseConfigDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := parseConfig("trajscan", []string{"a.xyz"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.xyz"}, cfg.files)
	assert.GreaterOrEqual(t, cfg.jobs, 1)
	assert.Equal(t, loader.DefaultSampleRate, cfg.rate)
	assert.Equal(t, loader.DefaultInitialWindow, cfg.window)
	assert.False(t, cfg.index)
	assert.False(t, cfg.wantMeta())
	assert.Nil(t, cfg.propList())
}

func TestParseConfigFlags(t *testing.T) {
	t.Parallel()
	args := []string{"-j", "2", "-index", "-rate", "5", "-props", "energy, time,", "a.xyz", "b.traj"}
	cfg, err := parseConfig("trajscan", args)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.jobs)
	assert.True(t, cfg.index)
	assert.Equal(t, 5, cfg.rate)
	assert.Equal(t, []string{"a.xyz", "b.traj"}, cfg.files)
	assert.Equal(t, []string{"energy", "time"}, cfg.propList())
	assert.True(t, cfg.wantMeta())
}

func TestParseConfigMetaImplied(t *testing.T) {
	t.Parallel()
	for _, args := range [][]string{
		{"-meta", "a.xyz"},
		{"-table", "a.xyz"},
		{"-plot", "energy", "a.xyz"},
		{"-props", "energy", "a.xyz"},
	} {
		cfg, err := parseConfig("trajscan", args)
		require.NoError(t, err)
		assert.True(t, cfg.wantMeta(), "args %v", args)
	}
}

func TestParseConfigErrors(t *testing.T) {
	t.Parallel()
	for name, args := range map[string][]string{
		"no files":     {},
		"zero jobs":    {"-j", "0", "a.xyz"},
		"unknown flag": {"-bogus", "a.xyz"},
	} {
		_, err := parseConfig("trajscan", args)
		assert.Error(t, err, name)
	}
}

func TestScanOne(t *testing.T) {
	t.Parallel()
	file := writeXYZ(t, t.TempDir(), 10)
	cfg := &config{rate: 1, window: loader.DefaultInitialWindow, meta: true}

	r := scanOne(context.Background(), zaptest.NewLogger(t), cfg, file, nil)
	require.NoError(t, r.err)
	assert.Equal(t, 10, r.total)
	assert.Equal(t, traj.FormatXYZ, r.summary.SourceFormat)
	assert.False(t, r.indexed)
	require.Len(t, r.meta, 10)
	assert.Equal(t, -100.0, r.meta[0].Properties["energy"])
}

func TestScanOneIndexed(t *testing.T) {
	t.Parallel()
	file := writeXYZ(t, t.TempDir(), 10)
	cfg := &config{rate: 1, window: 5, index: true}

	r := scanOne(context.Background(), zaptest.NewLogger(t), cfg, file, nil)
	require.NoError(t, r.err)
	assert.True(t, r.indexed)
	assert.Equal(t, 10, r.entries)
	assert.Equal(t, 10, r.total)
	assert.Nil(t, r.meta)
}

func TestScanOneMissingFile(t *testing.T) {
	t.Parallel()
	cfg := &config{rate: 1, window: 1}
	r := scanOne(context.Background(), zaptest.NewLogger(t), cfg, "no/such/file.xyz", nil)
	assert.Error(t, r.err)
}

func TestPrintSummaries(t *testing.T) {
	t.Parallel()
	results := []result{
		{
			file:    "a.xyz",
			summary: traj.Summary{SourceFormat: traj.FormatXYZ, SizeBytes: 100, ContentHash: 0xdeadbeef},
			total:   10,
			indexed: true,
			entries: 4,
		},
		{file: "b.traj", err: fmt.Errorf("boom")},
	}

	var buf bytes.Buffer
	printSummaries(&buf, results)
	out := buf.String()
	assert.Contains(t, out, "a.xyz")
	assert.Contains(t, out, "xyz")
	assert.Contains(t, out, "indexed(4)")
	assert.Contains(t, out, "00000000deadbeef")
	assert.Contains(t, out, "boom")
}

func TestPrintTable(t *testing.T) {
	t.Parallel()
	meta := []traj.FrameMeta{
		{FrameNumber: 0, Properties: map[string]float64{"energy": -100, "time": 0.5}},
		{FrameNumber: 1, Properties: map[string]float64{"energy": -101}},
	}

	var buf bytes.Buffer
	printTable(&buf, "a.xyz", meta)
	out := buf.String()
	assert.Contains(t, out, "FRAME")
	assert.Contains(t, out, "ENERGY")
	assert.Contains(t, out, "TIME")
	assert.Contains(t, out, "-101")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	//header line, property header, one row per record
	assert.Len(t, lines, 4)
}

func TestBarProgress(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	fn := barProgress(&buf)

	fn(traj.Progress{Current: 1, Total: 10, Stage: traj.StageIndex})
	fn(traj.Progress{Current: 10, Total: 10, Stage: traj.StageIndex})
	fn(traj.Progress{Current: 2, Total: 4, Stage: traj.StageFrames})
	assert.NotEmpty(t, buf.String())
}
