/*
 * doc.go, part of gotraj
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

/*Package traj indexes and lazily decodes multi-frame atomistic-simulation
trajectories. It unifies a multi-frame text format (.xyz), a little-endian
binary container (.traj) and a delegated structured format (.h5) behind one
per-frame decoding contract, builds lightweight byte-offset indexes in a
single linear pass, and loads individual frames, or only their scalar
per-frame properties, on demand. Decoding never caches frames: every load
re-reads the raw input, which keeps memory flat for files larger than RAM.

One corrupt frame never blocks access to the rest of a file. The index
builder skips it, the total frame count shrinks by one, and loading that
frame number yields nil. The only error the package propagates to callers
is an unsupported file format.

The root package holds the data model and the format-agnostic operations.
Format decoders live in the xyz, ulm and h5md subpackages; the loader
subpackage assembles full parses and picks between eager and indexed modes.*/
package traj
