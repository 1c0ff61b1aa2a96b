/*Package h5md reads H5MD-style structured trajectory containers. The
heavy lifting is delegated to an HDF5 reader behind the narrow Store
interface; this package only adapts that reader to the frame decoding
contract. There is no byte-level frame geometry here: slot numbers double
as synthetic offsets, and the container library resolves them to data.

The default Store is the native one in this package, which hands the
raw bytes to the HDF5 C library. Tests, and builds that cannot link that
library, substitute OpenStore.*/
package h5md

import (
	"go.uber.org/multierr"

	traj "github.com/atomvista/gotraj"
)

// Store is what this package needs from an HDF5 reader: frame counting,
// whole-frame reads and cheap scalar reads. Implementations own whatever
// resources they open and release them on Close.
type Store interface {

	//FrameCount returns the number of frame slots in the container.
	FrameCount() (int, error)

	//ReadFrame reads one whole frame: sites, cell and scalar properties.
	ReadFrame(frame int) (*traj.Frame, error)

	//ReadScalars reads only the per-frame scalar observables, without
	//touching any per-site dataset.
	ReadScalars(frame int) (map[string]float64, error)

	Close() error
}

// OpenStore opens raw container bytes as a Store. It is a variable so the
// native reader can be substituted.
var OpenStore = openNative

// Decoder adapts a Store to the frame decoding contract. Every call opens
// the container anew and closes it before returning, so the decoder holds
// no resources between calls, at the price of repeated opens.
type Decoder struct {
	filename string
}

// New returns a Decoder for container content coming from filename.
func New(filename string) *Decoder {
	return &Decoder{filename: filename}
}

var _ traj.FrameDecoder = (*Decoder)(nil)

//Format returns the format tag, always FormatH5MD
func (d *Decoder) Format() traj.Format { return traj.FormatH5MD }

// ScanFrom walks frame slots by slot number: the container library owns
// the real byte layout, so the off argument is ignored and each slot is
// visited with its number as a synthetic offset and the mean bytes per
// slot as its estimated size. A slot whose scalars cannot be read is
// reported corrupt; an unopenable container has zero slots.
func (d *Decoder) ScanFrom(raw []byte, _ int64, frame int, visit traj.IndexVisitor) {
	if frame < 0 {
		return
	}
	st, err := OpenStore(raw)
	if err != nil {
		return
	}
	defer st.Close()
	n, err := st.FrameCount()
	if err != nil {
		return
	}
	var size int64
	if n > 0 {
		size = int64(len(raw)) / int64(n)
	}
	for i := frame; i < n; i++ {
		var derr error
		if _, err := st.ReadScalars(i); err != nil {
			derr = newCorrupt(FrameUnreadable, d.filename, i)
		}
		if !visit(i, int64(i), size, derr) {
			return
		}
	}
}

// DecodeAt reads the single frame numbered frame; off is the synthetic
// offset from ScanFrom and carries no extra information.
func (d *Decoder) DecodeAt(raw []byte, _ int64, frame int) (f *traj.Frame, err error) {
	st, err := OpenStore(raw)
	if err != nil {
		return nil, newError(CantOpen, d.filename)
	}
	defer func() { err = multierr.Append(err, st.Close()) }()
	f, rerr := st.ReadFrame(frame)
	if rerr != nil || f == nil {
		return nil, newCorrupt(FrameUnreadable, d.filename, frame)
	}
	f.Step = frame
	return f, nil
}

// DecodeMeta reads only the scalar observables of the frame numbered
// frame, never its per-site datasets.
func (d *Decoder) DecodeMeta(raw []byte, _ int64, frame int) (m traj.FrameMeta, err error) {
	st, err := OpenStore(raw)
	if err != nil {
		return traj.FrameMeta{}, newError(CantOpen, d.filename)
	}
	defer func() { err = multierr.Append(err, st.Close()) }()
	scalars, rerr := st.ReadScalars(frame)
	if rerr != nil {
		return traj.FrameMeta{}, newCorrupt(FrameUnreadable, d.filename, frame)
	}
	return traj.FrameMeta{
		FrameNumber: frame,
		Step:        frame,
		Properties:  scalars,
	}, nil
}
