package traj

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/multierr"
)

//compression magics, checked before any suffix
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Decompress expands gzip or zstd compressed input, recognized by magic
// bytes, and returns anything else unchanged. Trajectory files are often
// stored compressed; decoders always work on the expanded bytes, so this
// runs once per parse, before any scanning.
func Decompress(raw []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(raw, gzipMagic):
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("traj: reading gzip header: %w", err)
		}
		out, rerr := io.ReadAll(zr)
		if err := multierr.Append(rerr, zr.Close()); err != nil {
			return nil, fmt.Errorf("traj: decompressing gzip input: %w", err)
		}
		return out, nil
	case bytes.HasPrefix(raw, zstdMagic):
		zr, err := zstd.NewReader(bytes.NewReader(raw), zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("traj: reading zstd header: %w", err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("traj: decompressing zstd input: %w", err)
		}
		return out, nil
	}
	return raw, nil
}

// IsCompressed reports whether raw starts with a recognized compression
// magic.
func IsCompressed(raw []byte) bool {
	return bytes.HasPrefix(raw, gzipMagic) || bytes.HasPrefix(raw, zstdMagic)
}
