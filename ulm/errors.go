package ulm

import (
	"fmt"

	traj "github.com/atomvista/gotraj"
)

//Messages for the errors raised by this package.
const (
	BadOffset        = "frame offset out of range"
	TruncatedPayload = "truncated frame payload"
	MalformedPayload = "malformed frame payload"
)

//corruptError marks a single unreadable frame slot. The container around
//it stays usable.
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
	return fmt.Sprintf("ulm file %s, frame %d: %s", e.filename, e.frame, e.message)
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
func (e *corruptError) Format() string { return "ulm" }

//Critical returns false. A corrupt frame never aborts the walk over the
//remaining slots.
func (e *corruptError) Critical() bool { return false }

//Frame returns the number of the slot that could not be read.
func (e *corruptError) Frame() int { return e.frame }

func (e *corruptError) CorruptFrame() {}

var _ traj.CorruptFrameError = (*corruptError)(nil)
