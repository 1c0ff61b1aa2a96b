package traj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		want Format
	}{
		{"md.xyz", FormatXYZ},
		{"md.extxyz", FormatXYZ},
		{"/data/runs/LONG.XYZ", FormatXYZ},
		{"relax.traj", FormatULM},
		{"relax.ulm", FormatULM},
		{"npt.h5", FormatH5MD},
		{"npt.hdf5", FormatH5MD},
		{"npt.h5md", FormatH5MD},
		{"md.xyz.gz", FormatXYZ},
		{"md.traj.zst", FormatULM},
		{"md.h5.zstd", FormatH5MD},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			got, err := DetectFormat(c.name)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestDetectFormatUnsupported(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"notes.txt", "md.pdb", "noextension", "", "md.xyz.bz2"} {
		got, err := DetectFormat(name)
		require.Error(t, err, "name %q", name)
		assert.Equal(t, FormatUnknown, got)
		assert.True(t, IsUnsupportedFormat(err))

		terr, ok := err.(TrajError)
		require.True(t, ok)
		assert.True(t, terr.Critical())
		assert.Equal(t, name, terr.FileName())
	}
}

func TestUnsupportedFormatDecorate(t *testing.T) {
	t.Parallel()
	err := NewUnsupportedFormat("weird.bin")
	err.Decorate("New")
	err.Decorate("Parse")
	assert.Equal(t, []string{"New", "Parse"}, err.Decorate(""))
}

func TestFormatString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "xyz", FormatXYZ.String())
	assert.Equal(t, "ulm", FormatULM.String())
	assert.Equal(t, "h5md", FormatH5MD.String())
	assert.Equal(t, "unknown", FormatUnknown.String())
	assert.Equal(t, "unknown", Format(99).String())
}
