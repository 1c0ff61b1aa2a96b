/*
 * lattice.go, part of gotraj
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
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Lattice is a periodic simulation cell given as three row vectors a, b, c
// in Å. Coordinates follow the row-vector convention: xyz = abc * cell.
type Lattice struct {
	v [3][3]float64
}

// NewLattice builds a lattice from its three row vectors.
func NewLattice(v [3][3]float64) *Lattice {
	return &Lattice{v: v}
}

//Vectors returns the row vectors a, b, c
func (l *Lattice) Vectors() [3][3]float64 { return l.v }

func (l *Lattice) matrix() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		l.v[0][0], l.v[0][1], l.v[0][2],
		l.v[1][0], l.v[1][1], l.v[1][2],
		l.v[2][0], l.v[2][1], l.v[2][2],
	})
}

// Volume returns the cell volume in Å^3, the absolute value of the cell
// matrix determinant. A degenerate cell has volume 0.
func (l *Lattice) Volume() float64 {
	v := mat.Det(l.matrix())
	if v < 0 {
		v = -v
	}
	return v
}

// Cartesian converts fractional coordinates to cartesian Å.
func (l *Lattice) Cartesian(abc [3]float64) [3]float64 {
	var out [3]float64
	for j := 0; j < 3; j++ {
		out[j] = abc[0]*l.v[0][j] + abc[1]*l.v[1][j] + abc[2]*l.v[2][j]
	}
	return out
}

// Fractionalizer returns a converter from cartesian to fractional
// coordinates with the cell inverse computed once, so decoders can convert
// a whole frame at the cost of one inversion. It fails on a singular cell,
// in which case callers should leave fractional coordinates zeroed rather
// than treat the frame as corrupt.
func (l *Lattice) Fractionalizer() (func(xyz [3]float64) [3]float64, error) {
	var inv mat.Dense
	if err := inv.Inverse(l.matrix()); err != nil {
		return nil, fmt.Errorf("traj: singular lattice matrix: %w", err)
	}
	f := func(xyz [3]float64) [3]float64 {
		var out [3]float64
		for j := 0; j < 3; j++ {
			out[j] = xyz[0]*inv.At(0, j) + xyz[1]*inv.At(1, j) + xyz[2]*inv.At(2, j)
		}
		return out
	}
	return f, nil
}
