/*Package loader ties the pieces of gotraj into one entry point: it
detects the format of a trajectory file, picks the matching frame
decoder, and parses raw bytes into a Trajectory, either decoding every
frame or, for large inputs and on request, building a frame index and
decoding lazily.

Construction is split from parsing so a Loader can be made, inspected
and passed around without touching any data. A Loader is a plain
immutable value; it holds no file handle, no buffer and no index.*/
package loader

import (
	traj "github.com/atomvista/gotraj"
	"github.com/atomvista/gotraj/h5md"
	"github.com/atomvista/gotraj/ulm"
	"github.com/atomvista/gotraj/xyz"
)

// Loader names one trajectory source: its filename and detected format,
// nothing else.
type Loader struct {
	Format   traj.Format
	Filename string
}

// New detects the format of filename and returns a Loader for it. The
// only possible error is an unsupported format; the file itself is not
// opened or read.
func New(filename string) (Loader, error) {
	f, err := traj.DetectFormat(filename)
	if err != nil {
		return Loader{}, errDecorate(err, "New")
	}
	return Loader{Format: f, Filename: filename}, nil
}

// NewDecoder returns a fresh frame decoder for the loader's format.
func (l Loader) NewDecoder() traj.FrameDecoder {
	switch l.Format {
	case traj.FormatXYZ:
		return xyz.New(l.Filename)
	case traj.FormatULM:
		return ulm.New(l.Filename)
	case traj.FormatH5MD:
		return h5md.New(l.Filename)
	}
	return nil
}

// TotalFrames counts the valid frames in raw.
func (l Loader) TotalFrames(raw []byte) int {
	return traj.TotalFrames(l.NewDecoder(), raw)
}

// BuildIndex walks raw once and returns the sampled frame index together
// with the valid-frame count.
func (l Loader) BuildIndex(raw []byte, sampleRate int, onProgress traj.ProgressFunc) ([]traj.FrameIndex, int) {
	return traj.BuildFrameIndex(l.NewDecoder(), raw, sampleRate, onProgress)
}

// PlotMetadata extracts the per-frame scalar properties from raw.
func (l Loader) PlotMetadata(raw []byte, o traj.MetaOptions, onProgress traj.ProgressFunc) []traj.FrameMeta {
	return traj.ExtractPlotMetadata(l.NewDecoder(), raw, o, onProgress)
}

// LoadFrame decodes one frame from raw by linear scan, nil when the frame
// cannot be had. On a zero Loader it is always nil.
func (l Loader) LoadFrame(raw []byte, frame int) *traj.Frame {
	return traj.LoadFrame(l.NewDecoder(), raw, frame)
}

//errDecorate adds the caller to a module error on its way up.
func errDecorate(err error, caller string) error {
	err2, ok := err.(traj.Error)
	if ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}
