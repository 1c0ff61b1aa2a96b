/*
 * index.go, part of gotraj
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

// BuildFrameIndex walks raw once, forward, and returns index entries for
// every sampleRate-th valid frame along with the count of valid frames,
// so the index holds exactly ceil(total/sampleRate) entries. A corrupt
// slot contributes no entry and does not count toward the total, but slot
// numbering still advances past it. Entries record the slot number, so
// seeking stays exact on files with corrupt slots. onProgress may be nil;
// it is reported in bytes with stage "index". Memory use is proportional
// to the sampled entry count, never to the input size.
func BuildFrameIndex(dec FrameDecoder, raw []byte, sampleRate int, onProgress ProgressFunc) ([]FrameIndex, int) {
	if dec == nil {
		return nil, 0
	}
	if sampleRate < 1 {
		sampleRate = 1
	}
	r := NewProgressReporter(onProgress, StageIndex, len(raw))
	var idx []FrameIndex
	valid := 0
	dec.ScanFrom(raw, 0, 0, func(frame int, off, size int64, derr error) bool {
		r.Tick(int(off))
		if derr != nil {
			return true //lost slot, keep walking
		}
		if valid%sampleRate == 0 {
			idx = append(idx, FrameIndex{FrameNumber: frame, ByteOffset: off, EstimatedSize: size})
		}
		valid++
		return true
	})
	r.Done()
	return idx, valid
}

// TotalFrames counts the valid frames in raw with the same walk the index
// builder uses. Empty or unparsable input counts zero.
func TotalFrames(dec FrameDecoder, raw []byte) int {
	if dec == nil {
		return 0
	}
	n := 0
	dec.ScanFrom(raw, 0, 0, func(_ int, _, _ int64, derr error) bool {
		if derr == nil {
			n++
		}
		return true
	})
	return n
}
