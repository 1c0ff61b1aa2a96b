package traj

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPlotMetadataSampling(t *testing.T) {
	t.Parallel()
	for _, rate := range []int{1, 2, 3, 5} {
		rate := rate
		t.Run(fmt.Sprintf("rate=%d", rate), func(t *testing.T) {
			t.Parallel()
			dec := &fakeDecoder{slots: cleanSlots(10)}
			metas := ExtractPlotMetadata(dec, nil, MetaOptions{SampleRate: rate}, nil)
			require.Len(t, metas, (10+rate-1)/rate)
			for i, m := range metas {
				assert.Equal(t, i*rate, m.FrameNumber)
				assert.Equal(t, m.FrameNumber, m.Step)
			}
		})
	}
}

func TestExtractPlotMetadataMatchesLoadFrame(t *testing.T) {
	t.Parallel()
	slots := cleanSlots(8)
	slots[2].corrupt = true
	dec := &fakeDecoder{slots: slots}

	metas := ExtractPlotMetadata(dec, nil, MetaOptions{}, nil)
	require.Len(t, metas, 7)
	for _, m := range metas {
		f := LoadFrame(dec, nil, m.FrameNumber)
		require.NotNil(t, f)
		assert.Equal(t, f.Step, m.Step)
		assert.Equal(t, f.Metadata.Numbers(), m.Properties)
	}
}

func TestExtractPlotMetadataFilter(t *testing.T) {
	t.Parallel()
	slots := make([]fakeSlot, 4)
	for i := range slots {
		slots[i] = fakeSlot{size: 10, props: map[string]float64{
			"energy": float64(-i),
			"volume": 100 + float64(i),
		}}
	}
	dec := &fakeDecoder{slots: slots}

	metas := ExtractPlotMetadata(dec, nil, MetaOptions{Properties: []string{"volume"}}, nil)
	require.Len(t, metas, 4)
	for i, m := range metas {
		assert.Equal(t, map[string]float64{"volume": 100 + float64(i)}, m.Properties)
	}
}

func TestExtractPlotMetadataEmptyInput(t *testing.T) {
	t.Parallel()
	assert.Empty(t, ExtractPlotMetadata(&fakeDecoder{}, nil, MetaOptions{}, nil))
	assert.Empty(t, ExtractPlotMetadata(nil, nil, MetaOptions{}, nil))
}
