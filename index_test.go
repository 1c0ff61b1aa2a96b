package traj

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFrameIndexSampling(t *testing.T) {
	t.Parallel()
	for _, v := range []int{0, 1, 2, 5, 10, 37} {
		for _, s := range []int{1, 2, 3, 5, 10} {
			v, s := v, s
			t.Run(fmt.Sprintf("valid=%d_rate=%d", v, s), func(t *testing.T) {
				t.Parallel()
				dec := &fakeDecoder{slots: cleanSlots(v)}
				idx, total := BuildFrameIndex(dec, nil, s, nil)
				assert.Equal(t, v, total)
				require.Len(t, idx, (v+s-1)/s)
				for i, e := range idx {
					assert.Equal(t, i*s, e.FrameNumber)
				}
			})
		}
	}
}

func TestBuildFrameIndexOffsetsIncrease(t *testing.T) {
	t.Parallel()
	dec := &fakeDecoder{slots: cleanSlots(20)}
	idx, total := BuildFrameIndex(dec, nil, 1, nil)
	assert.Equal(t, 20, total)
	require.Len(t, idx, 20)
	for i := 1; i < len(idx); i++ {
		assert.Greater(t, idx[i].ByteOffset, idx[i-1].ByteOffset)
		assert.Greater(t, idx[i].FrameNumber, idx[i-1].FrameNumber)
	}
	assert.Equal(t, int64(0), idx[0].ByteOffset)
	assert.Equal(t, int64(10), idx[0].EstimatedSize)
}

func TestBuildFrameIndexSkipsCorrupt(t *testing.T) {
	t.Parallel()
	slots := cleanSlots(10)
	slots[5].corrupt = true
	dec := &fakeDecoder{slots: slots}

	idx, total := BuildFrameIndex(dec, nil, 1, nil)
	assert.Equal(t, 9, total)
	require.Len(t, idx, 9)
	want := []int{0, 1, 2, 3, 4, 6, 7, 8, 9}
	for i, e := range idx {
		assert.Equal(t, want[i], e.FrameNumber)
	}

	//sampling counts valid frames, so the entry count stays ceil(V/s)
	idx, total = BuildFrameIndex(dec, nil, 3, nil)
	assert.Equal(t, 9, total)
	require.Len(t, idx, 3)
	assert.Equal(t, []int{0, 3, 7}, []int{idx[0].FrameNumber, idx[1].FrameNumber, idx[2].FrameNumber})
}

func TestBuildFrameIndexProgress(t *testing.T) {
	t.Parallel()
	dec := &fakeDecoder{slots: cleanSlots(10)}
	raw := make([]byte, 100)
	var calls []Progress
	BuildFrameIndex(dec, raw, 1, func(p Progress) {
		calls = append(calls, p)
	})
	require.NotEmpty(t, calls)
	for _, p := range calls {
		assert.Equal(t, StageIndex, p.Stage)
		assert.Equal(t, 100, p.Total)
	}
	assert.Equal(t, 100, calls[len(calls)-1].Current)
}

func TestTotalFrames(t *testing.T) {
	t.Parallel()
	slots := cleanSlots(10)
	slots[5].corrupt = true
	assert.Equal(t, 9, TotalFrames(&fakeDecoder{slots: slots}, nil))
	assert.Equal(t, 10, TotalFrames(&fakeDecoder{slots: cleanSlots(10)}, nil))
	assert.Equal(t, 0, TotalFrames(&fakeDecoder{}, nil))
	assert.Equal(t, 0, TotalFrames(nil, nil))
}
