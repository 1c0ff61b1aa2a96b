/*
 * format.go, part of gotraj
 *
 * Copyright 2026 The gotraj developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package traj

import (
	"path/filepath"
	"strings"
)

// Format tags one of the supported trajectory file formats.
type Format int

const (
	FormatUnknown Format = iota
	FormatXYZ           //multi-frame text, .xyz and .extxyz
	FormatULM           //binary ULM-style container, .traj and .ulm
	FormatH5MD          //structured format read through a delegated store, .h5 family
)

func (f Format) String() string {
	switch f {
	case FormatXYZ:
		return "xyz"
	case FormatULM:
		return "ulm"
	case FormatH5MD:
		return "h5md"
	}
	return "unknown"
}

//one compression suffix may wrap the real extension
var compressionSuffixes = []string{".gz", ".zst", ".zstd"}

// DetectFormat maps a filename to its trajectory format by extension,
// looking through a single trailing compression suffix. It is pure and
// deterministic. Unrecognized extensions yield an UnsupportedFormatError,
// the only hard error in this subsystem.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(stripCompression(filename)))
	switch ext {
	case ".xyz", ".extxyz":
		return FormatXYZ, nil
	case ".traj", ".ulm":
		return FormatULM, nil
	case ".h5", ".hdf5", ".h5md":
		return FormatH5MD, nil
	}
	return FormatUnknown, NewUnsupportedFormat(filename)
}

func stripCompression(name string) string {
	lower := strings.ToLower(name)
	for _, suf := range compressionSuffixes {
		if strings.HasSuffix(lower, suf) {
			return name[:len(name)-len(suf)]
		}
	}
	return name
}
