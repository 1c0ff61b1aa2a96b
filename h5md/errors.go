package h5md

import (
	"fmt"

	traj "github.com/atomvista/gotraj"
)

//Messages for the errors raised by this package.
const (
	CantOpen        = "failed to open hdf5 container"
	MissingDataset  = "missing required dataset"
	BadShape        = "dataset has unexpected shape"
	FrameUnreadable = "frame slot could not be read"
	OutOfRange      = "frame number out of range"
)

//Error covers container-level failures: the input could not be opened or
//is structurally unusable as a whole.
type Error struct {
	message  string
	filename string
	deco     []string
}

func newError(message, filename string) *Error {
	return &Error{message: message, filename: filename}
}

func (e *Error) Error() string {
	return fmt.Sprintf("h5md file %s: %s", e.filename, e.message)
}

//Decorate adds one or more strings to the error message and returns it.
func (e *Error) Decorate(deco string) []string {
	if deco != "" {
		e.deco = append(e.deco, deco)
	}
	return e.deco
}

//FileName returns the file that caused the error.
func (e *Error) FileName() string { return e.filename }

//Format returns the format of the file that caused the error.
func (e *Error) Format() string { return "h5md" }

//Critical returns true, container-level failures are not recoverable.
func (e *Error) Critical() bool { return true }

var _ traj.TrajError = (*Error)(nil)

//corruptError marks a single unreadable frame slot.
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
	return fmt.Sprintf("h5md file %s, frame %d: %s", e.filename, e.frame, e.message)
}

//Decorate adds one or more strings to the error message and returns it.
func (e *corruptError) Decorate(deco string) []string {
	if deco != "" {
		e.deco = append(e.deco, deco)
	}
	return e.deco
}

//FileName returns the file that caused the error.
func (e *corruptError) FileName() string { return e.filename }

//Format returns the format of the file that caused the error.
func (e *corruptError) Format() string { return "h5md" }

//Critical returns false. A corrupt frame never blocks the rest of the
//container.
func (e *corruptError) Critical() bool { return false }

//Frame returns the number of the slot that could not be read.
func (e *corruptError) Frame() int { return e.frame }

func (e *corruptError) CorruptFrame() {}

var _ traj.CorruptFrameError = (*corruptError)(nil)
