/*
 * plotmeta.go, part of gotraj
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

// MetaOptions configures plot-metadata extraction. A SampleRate below 1
// means every valid frame; a non-empty Properties list keeps only those
// keys in each record, filtered after extraction rather than by
// re-parsing.
type MetaOptions struct {
	SampleRate int
	Properties []string
}

// ExtractPlotMetadata harvests the scalar per-frame properties of every
// SampleRate-th valid frame in one forward pass, without ever decoding
// per-site data: interactive property scrubbing relies on this pass being
// asymptotically cheaper per frame than LoadFrame. Each record's numeric
// properties equal those a full LoadFrame of the same frame number would
// carry. onProgress may be nil; it is reported in bytes with stage
// "metadata".
func ExtractPlotMetadata(dec FrameDecoder, raw []byte, o MetaOptions, onProgress ProgressFunc) []FrameMeta {
	if dec == nil {
		return nil
	}
	rate := o.SampleRate
	if rate < 1 {
		rate = 1
	}
	r := NewProgressReporter(onProgress, StageMetadata, len(raw))
	var metas []FrameMeta
	valid := 0
	dec.ScanFrom(raw, 0, 0, func(frame int, off, _ int64, derr error) bool {
		r.Tick(int(off))
		if derr != nil {
			return true
		}
		if valid%rate == 0 {
			if fm, err := dec.DecodeMeta(raw, off, frame); err == nil {
				metas = append(metas, fm)
			}
		}
		valid++
		return true
	})
	r.Done()
	if len(o.Properties) > 0 {
		filterProperties(metas, o.Properties)
	}
	return metas
}

func filterProperties(metas []FrameMeta, keep []string) {
	want := make(map[string]bool, len(keep))
	for _, k := range keep {
		want[k] = true
	}
	for _, m := range metas {
		for k := range m.Properties {
			if !want[k] {
				delete(m.Properties, k)
			}
		}
	}
}
