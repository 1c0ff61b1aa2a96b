package traj

import (
	"github.com/google/btree"
)

// LoadFrame decodes frame number frame from raw with a linear scan that
// stops at the target. It returns nil, never an error, when the frame is
// corrupt, the number is out of range, or the input is empty or
// unparsable, so a caller iterating 0..N can simply skip nils. Every call
// re-decodes from raw; nothing is cached.
func LoadFrame(dec FrameDecoder, raw []byte, frame int) *Frame {
	if dec == nil || frame < 0 {
		return nil
	}
	return loadFrom(dec, raw, 0, 0, frame)
}

//loadFrom walks slots from a known (offset, slot) pair and decodes the
//target slot when it is reached intact.
func loadFrom(dec FrameDecoder, raw []byte, off int64, slot, target int) *Frame {
	var out *Frame
	dec.ScanFrom(raw, off, slot, func(frame int, foff, _ int64, derr error) bool {
		if frame < target {
			return true
		}
		if frame == target && derr == nil {
			if f, err := dec.DecodeAt(raw, foff, frame); err == nil {
				out = f
			}
		}
		return false
	})
	return out
}

// Seeker resolves frame numbers through a B-tree over index entries:
// nearest entry at or below the target, then a short forward roll when
// the exact slot was not sampled. It is immutable after construction and
// safe for concurrent readers, and it caches no frame data. Results are
// identical to the package-level LoadFrame for every frame number.
type Seeker struct {
	dec FrameDecoder
	bt  *btree.BTreeG[FrameIndex]
}

// NewSeeker builds a Seeker from index entries, typically the output of
// BuildFrameIndex.
func NewSeeker(dec FrameDecoder, entries []FrameIndex) *Seeker {
	bt := btree.NewG(8, func(a, b FrameIndex) bool {
		return a.FrameNumber < b.FrameNumber
	})
	for _, e := range entries {
		bt.ReplaceOrInsert(e)
	}
	return &Seeker{dec: dec, bt: bt}
}

// LoadFrame behaves exactly like the package-level LoadFrame but starts
// scanning at the nearest indexed slot at or below frame. With a
// sample-rate-1 index the roll distance is zero for valid frames, giving
// near-O(1) access.
func (s *Seeker) LoadFrame(raw []byte, frame int) *Frame {
	if s == nil || s.dec == nil || frame < 0 {
		return nil
	}
	var start FrameIndex
	found := false
	s.bt.DescendLessOrEqual(FrameIndex{FrameNumber: frame}, func(e FrameIndex) bool {
		start, found = e, true
		return false
	})
	if !found {
		//target precedes every indexed slot, e.g. corrupt early slots
		return loadFrom(s.dec, raw, 0, 0, frame)
	}
	if start.FrameNumber == frame {
		f, err := s.dec.DecodeAt(raw, start.ByteOffset, frame)
		if err != nil {
			return nil
		}
		return f
	}
	return loadFrom(s.dec, raw, start.ByteOffset, start.FrameNumber, frame)
}
