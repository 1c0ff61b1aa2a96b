package xyz

import (
	"fmt"

	traj "github.com/atomvista/gotraj"
)

//Errors

const (
	WrongCountLine = "invalid atom count line"
	TruncatedFrame = "frame truncated by end of input"
	WrongAtomLine  = "malformed atom line"
)

//corruptError reports one undecodable frame. It fulfills
//traj.CorruptFrameError, so callers treat the slot as absent and keep
//scanning; it never invalidates the rest of the file.
type corruptError struct {
	message  string
	filename string
	frame    int
	deco     []string
}

func newCorrupt(message, filename string, frame int) *corruptError {
	return &corruptError{message: message, filename: filename, frame: frame}
}

func (e *corruptError) Error() string {
	return fmt.Sprintf("xyz file %s frame %d: %s", e.filename, e.frame, e.message)
}

//Decorate adds new information to the error
func (e *corruptError) Decorate(deco string) []string {
	if deco != "" {
		e.deco = append(e.deco, deco)
	}
	return e.deco
}

//FileName returns the file the failing frame came from
func (e *corruptError) FileName() string { return e.filename }

//Format returns the format of the file, always "xyz"
func (e *corruptError) Format() string { return "xyz" }

//Critical returns false, one corrupt frame never invalidates the input
func (e *corruptError) Critical() bool { return false }

//CorruptFrame does nothing, it marks the error as a per-frame one
func (e *corruptError) CorruptFrame() {}

//Frame returns the slot number of the corrupt frame
func (e *corruptError) Frame() int { return e.frame }

var _ traj.CorruptFrameError = (*corruptError)(nil)
