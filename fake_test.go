package traj

import (
	"fmt"
	"sort"
)

//fakeSlot describes one synthetic frame slot: its encoded size, whether
//it decodes, and the scalar properties its frame carries.
type fakeSlot struct {
	size    int64
	corrupt bool
	props   map[string]float64
}

//fakeDecoder synthesizes a trajectory from fixed slots so the
//format-agnostic operations can be exercised without a real format. Slot
//offsets are the running sum of the preceding sizes.
type fakeDecoder struct {
	slots []fakeSlot
}

func cleanSlots(n int) []fakeSlot {
	slots := make([]fakeSlot, n)
	for i := range slots {
		slots[i] = fakeSlot{size: 10, props: map[string]float64{"energy": float64(-i)}}
	}
	return slots
}

func (d *fakeDecoder) offsetOf(slot int) int64 {
	var off int64
	for i := 0; i < slot; i++ {
		off += d.slots[i].size
	}
	return off
}

func (d *fakeDecoder) Format() Format { return FormatUnknown }

func (d *fakeDecoder) DecodeAt(_ []byte, off int64, frame int) (*Frame, error) {
	if frame < 0 || frame >= len(d.slots) || d.slots[frame].corrupt || off != d.offsetOf(frame) {
		return nil, &fakeCorruptError{frame: frame}
	}
	f := &Frame{
		Step: frame,
		Structure: Structure{Sites: []Site{
			{Species: "Si", Label: "Si", Xyz: [3]float64{0, 0, 0}},
			{Species: "O", Label: "O", Xyz: [3]float64{1, 1, 1}},
		}},
	}
	keys := make([]string, 0, len(d.slots[frame].props))
	for k := range d.slots[frame].props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		f.Metadata.Set(k, Num(d.slots[frame].props[k]))
	}
	return f, nil
}

func (d *fakeDecoder) DecodeMeta(_ []byte, off int64, frame int) (FrameMeta, error) {
	if frame < 0 || frame >= len(d.slots) || d.slots[frame].corrupt || off != d.offsetOf(frame) {
		return FrameMeta{}, &fakeCorruptError{frame: frame}
	}
	props := make(map[string]float64, len(d.slots[frame].props))
	for k, v := range d.slots[frame].props {
		props[k] = v
	}
	return FrameMeta{FrameNumber: frame, Step: frame, Properties: props}, nil
}

func (d *fakeDecoder) ScanFrom(_ []byte, off int64, frame int, visit IndexVisitor) {
	if frame < 0 || frame >= len(d.slots) {
		return
	}
	o := off
	for i := frame; i < len(d.slots); i++ {
		var derr error
		if d.slots[i].corrupt {
			derr = &fakeCorruptError{frame: i}
		}
		if !visit(i, o, d.slots[i].size, derr) {
			return
		}
		o += d.slots[i].size
	}
}

var _ FrameDecoder = (*fakeDecoder)(nil)

type fakeCorruptError struct {
	frame int
	deco  []string
}

func (e *fakeCorruptError) Error() string {
	return fmt.Sprintf("fake frame %d is corrupt", e.frame)
}

func (e *fakeCorruptError) Decorate(deco string) []string {
	if deco != "" {
		e.deco = append(e.deco, deco)
	}
	return e.deco
}

func (e *fakeCorruptError) Critical() bool { return false }

func (e *fakeCorruptError) FileName() string { return "" }

func (e *fakeCorruptError) Format() string { return "fake" }

func (e *fakeCorruptError) CorruptFrame() {}

func (e *fakeCorruptError) Frame() int { return e.frame }

var _ CorruptFrameError = (*fakeCorruptError)(nil)
