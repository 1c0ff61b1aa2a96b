/*
 * traj.go, part of gotraj
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
	"github.com/cespare/xxhash/v2"
)

// Site is one atomic site of a frame's structure.
type Site struct {
	//Species is the element symbol, "X" when unknown.
	Species string
	//Label names the site, defaulting to the species symbol.
	Label string
	//Abc holds fractional coordinates, all zero when the frame has no
	//lattice or the cell is singular.
	Abc [3]float64
	//Xyz holds cartesian coordinates in Å.
	Xyz [3]float64
	//Properties holds per-site scalar values, nil when the format
	//carries none.
	Properties map[string]float64
}

// Structure is the atomic configuration of one frame.
type Structure struct {
	Sites []Site
	//Lattice is nil for aperiodic frames.
	Lattice *Lattice
	//PBC flags periodicity along each lattice vector.
	PBC [3]bool
}

// Frame is one simulation timestep: a structure plus scalar metadata.
// Frames are created fresh on every decode, never mutated afterwards and
// never retained by any loader.
type Frame struct {
	Structure Structure
	//Step is the frame's slot number in the raw input. Step-like values
	//stored by the producing code stay in Metadata untouched.
	Step     int
	Metadata Metadata
}

// FrameIndex locates one frame inside the raw input without carrying any
// of its content: no structure, no metadata, no positions. Entries of a
// built index are strictly increasing in both FrameNumber and ByteOffset.
type FrameIndex struct {
	FrameNumber   int
	ByteOffset    int64
	EstimatedSize int64
}

// FrameMeta is the plot-oriented scalar summary of one frame: its step and
// numeric properties, never atomic coordinates.
type FrameMeta struct {
	FrameNumber int
	Step        int
	Properties  map[string]float64
}

// Summary is the per-source bookkeeping attached to a parsed trajectory.
type Summary struct {
	SourceFormat Format
	Filename     string
	FrameCount   int
	SizeBytes    int64
	//ContentHash is the xxhash64 of the raw input, cheap identity for
	//recognizing repeated loads of the same content.
	ContentHash uint64
}

// NewSummary fills a Summary for raw input; FrameCount is set by the
// caller once known.
func NewSummary(format Format, filename string, raw []byte) Summary {
	return Summary{
		SourceFormat: format,
		Filename:     filename,
		SizeBytes:    int64(len(raw)),
		ContentHash:  xxhash.Sum64(raw),
	}
}

// Trajectory is the aggregate result of one parse. In indexed mode Frames
// holds only a bounded initial window and the rest of the file is
// reachable through LoadFrame; in direct mode Frames holds every valid
// frame. Either way TotalFrames is the authoritative count of valid
// frames and Frames[i] is usable for any i < len(Frames). Ownership
// transfers fully to the caller; the trajectory holds no open resources.
type Trajectory struct {
	Frames      []*Frame
	TotalFrames int
	//Indexed is present exactly when IsIndexed is true.
	Indexed   []FrameIndex
	IsIndexed bool
	//PlotMeta is filled only when metadata extraction was requested.
	PlotMeta []FrameMeta
	Summary  Summary

	dec  FrameDecoder
	seek *Seeker
}

// Bind attaches the decoder LoadFrame uses, plus an optional index for
// seek-assisted loading. The loader calls it once while assembling the
// result; the trajectory stays read-only afterwards.
func (t *Trajectory) Bind(dec FrameDecoder, idx []FrameIndex) {
	t.dec = dec
	t.seek = nil
	if len(idx) > 0 {
		t.seek = NewSeeker(dec, idx)
	}
}

// LoadFrame decodes frame number frame from raw, seeking through the
// bound index when one is present and falling back to a linear scan
// otherwise. It returns nil for corrupt or out-of-range frames and for a
// trajectory with no bound decoder; it never returns an error. Nothing is
// cached: every call re-decodes from raw.
func (t *Trajectory) LoadFrame(raw []byte, frame int) *Frame {
	if t == nil || t.dec == nil {
		return nil
	}
	if t.seek != nil {
		return t.seek.LoadFrame(raw, frame)
	}
	return LoadFrame(t.dec, raw, frame)
}
