/*
 * interfaces.go, part of gotraj
 *
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
 *
 */

package traj

// FrameDecoder is the per-format decoding contract. The xyz, ulm and h5md
// packages each provide one implementation, selected once by the loader at
// construction time. Decoders are stateless with respect to frame data:
// they hold at most a filename tag, so independent goroutines may decode
// different frames from the same raw buffer concurrently.
type FrameDecoder interface {

	//Format returns the format tag this decoder handles.
	Format() Format

	//DecodeAt decodes exactly the frame starting at byte offset off,
	//stamping it with the given frame number as its step. Decoding one
	//frame never requires decoding any other frame. A non-nil error
	//means the frame is corrupt or truncated; such errors implement
	//CorruptFrameError and are meant to be swallowed by callers.
	DecodeAt(raw []byte, off int64, frame int) (*Frame, error)

	//DecodeMeta decodes only the scalar per-frame properties of the
	//frame at off, skipping per-site data wherever the format permits.
	//It must stay asymptotically cheaper than DecodeAt per frame.
	DecodeMeta(raw []byte, off int64, frame int) (FrameMeta, error)

	//ScanFrom walks the frame slots of raw in order, starting at byte
	//offset off which is known to hold slot number frame, and calls
	//visit once per slot until visit returns false or input ends. A
	//slot that cannot be decoded is reported with a non-nil error and
	//scanning resynchronizes on the next slot; the walk itself never
	//does per-site work. ScanFrom(raw, 0, 0, visit) walks a whole file.
	ScanFrom(raw []byte, off int64, frame int, visit IndexVisitor)
}

// IndexVisitor receives one frame slot per call during a scan: the slot
// number, its byte offset, its estimated encoded size, and a non-nil derr
// when the slot is corrupt. Returning false stops the scan.
type IndexVisitor func(frame int, off, size int64, derr error) bool

//Errors

// Error is the interface for errors that all packages in this module
// implement. The Decorate method adds information to the error as it is
// passed up, without changing its type or wrapping it in something else;
// called with an empty string it just returns the current decoration.
type Error interface {
	Error() string
	Decorate(string) []string
}

// TrajError is the interface for errors raised while reading trajectory
// data. Critical distinguishes errors that invalidate the whole input from
// per-frame ones.
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// CorruptFrameError has a useless method to mark the harmless per-frame
// errors, so they can be filtered in a type switch that looks for this
// interface. A corrupt frame is treated as absent: indexing skips it and
// loading it yields nil. It never aborts access to the rest of the file.
type CorruptFrameError interface {
	TrajError
	CorruptFrame() //does nothing, just separates this interface from other TrajError's
	Frame() int
}
