package traj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporterRateLimits(t *testing.T) {
	t.Parallel()
	var calls []Progress
	r := NewProgressReporter(func(p Progress) { calls = append(calls, p) }, StageIndex, 1000)
	for i := 0; i <= 1000; i++ {
		r.Tick(i)
	}
	r.Done()

	require.NotEmpty(t, calls)
	//about one call per percent, not one per tick
	assert.LessOrEqual(t, len(calls), 110)
	assert.Equal(t, 0, calls[0].Current)
	last := calls[len(calls)-1]
	assert.Equal(t, 1000, last.Current)
	assert.Equal(t, 1000, last.Total)
	assert.Equal(t, StageIndex, last.Stage)
}

func TestReporterSmallTotalsReportEveryTick(t *testing.T) {
	t.Parallel()
	n := 0
	r := NewProgressReporter(func(Progress) { n++ }, StageMetadata, 5)
	for i := 0; i < 5; i++ {
		r.Tick(i)
	}
	r.Done()
	assert.Equal(t, 6, n)
}

func TestReporterSwallowsPanics(t *testing.T) {
	t.Parallel()
	n := 0
	r := NewProgressReporter(func(Progress) {
		n++
		panic("receiver went away")
	}, StageFrames, 3)
	//a panicking receiver never interrupts the producer, and keeps
	//receiving later notifications
	r.Tick(0)
	r.Tick(1)
	r.Tick(2)
	r.Done()
	assert.Equal(t, 4, n)
}

func TestReporterNilFunc(t *testing.T) {
	t.Parallel()
	r := NewProgressReporter(nil, StageIndex, 10)
	r.Tick(0)
	r.Done()
}

func TestLoadersSurviveProgressPanics(t *testing.T) {
	t.Parallel()
	dec := &fakeDecoder{slots: cleanSlots(10)}
	boom := func(Progress) { panic("boom") }

	idx, total := BuildFrameIndex(dec, nil, 1, boom)
	assert.Len(t, idx, 10)
	assert.Equal(t, 10, total)

	metas := ExtractPlotMetadata(dec, nil, MetaOptions{}, boom)
	assert.Len(t, metas, 10)
}
