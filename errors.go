/*
 * errors.go, part of gotraj
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

import (
	"errors"
	"fmt"
)

// UnsupportedFormatError reports a filename whose extension maps to no
// known trajectory format. It is raised at loader construction and is the
// only error this module propagates for trajectory content; everything
// data-quality related degrades to nil frames and reduced counts instead.
type UnsupportedFormatError struct {
	filename string
	deco     []string
}

// NewUnsupportedFormat returns an UnsupportedFormatError for filename.
func NewUnsupportedFormat(filename string) *UnsupportedFormatError {
	return &UnsupportedFormatError{filename: filename}
}

func (err *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("traj: unsupported trajectory format for file %s", err.filename)
}

//Decorate adds new information to the error
func (err *UnsupportedFormatError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file whose format was not recognized
func (err *UnsupportedFormatError) FileName() string { return err.filename }

//Format returns the empty string, as no format was recognized
func (err *UnsupportedFormatError) Format() string { return "" }

//Critical returns true. An unsupported format is never retried internally.
func (err *UnsupportedFormatError) Critical() bool { return true }

// IsUnsupportedFormat reports whether err is, or wraps, an
// UnsupportedFormatError.
func IsUnsupportedFormat(err error) bool {
	var u *UnsupportedFormatError
	return errors.As(err, &u)
}

// IsCorrupt reports whether err marks a single corrupt frame rather than a
// failure of the whole input.
func IsCorrupt(err error) bool {
	var c CorruptFrameError
	return errors.As(err, &c)
}
