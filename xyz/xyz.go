/*Package xyz decodes multi-frame XYZ text trajectories, including the
extended-XYZ flavor. Each frame is an atom-count line, a comment line of
key=value properties, and one line per atom. The comment line may carry a
Lattice, periodic-boundary flags and a Properties column descriptor; per-atom
numeric columns beyond the coordinates become per-site properties.

A frame whose count line does not parse is treated as one lost slot: the
scanner resynchronizes on the next line that parses as a valid count, so a
single bad frame never desynchronizes the rest of the file.*/
package xyz

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	traj "github.com/atomvista/gotraj"
)

// Decoder reads XYZ trajectories. It holds only a filename tag, carries no
// state between calls, and is safe for concurrent use.
type Decoder struct {
	filename string
}

// New returns a Decoder for trajectory content coming from filename. The
// name is only used in errors; the raw bytes are supplied per call.
func New(filename string) *Decoder {
	return &Decoder{filename: filename}
}

var _ traj.FrameDecoder = (*Decoder)(nil)

//Format returns the format tag, always FormatXYZ
func (d *Decoder) Format() traj.Format { return traj.FormatXYZ }

// ScanFrom walks frame slots from byte offset off, known to hold slot
// number frame. Valid slots are located by skipping their declared atom
// count of lines, never by parsing atom fields; corrupt slots span up to
// the next line that parses as a valid count.
func (d *Decoder) ScanFrom(raw []byte, off int64, frame int, visit traj.IndexVisitor) {
	pos := off
	for {
		start := skipBlank(raw, pos)
		if start >= int64(len(raw)) {
			return
		}
		countLine, afterCount := nextLine(raw, start)
		n, ok := parseCount(countLine)
		if !ok {
			end := resync(raw, afterCount)
			derr := newCorrupt(WrongCountLine, d.filename, frame)
			if !visit(frame, start, end-start, derr) {
				return
			}
			frame++
			pos = end
			continue
		}
		end, intact := skipLines(raw, afterCount, n+1)
		if !intact {
			derr := newCorrupt(TruncatedFrame, d.filename, frame)
			visit(frame, start, int64(len(raw))-start, derr)
			return
		}
		if !visit(frame, start, end-start, nil) {
			return
		}
		frame++
		pos = end
	}
}

// DecodeAt decodes the single frame starting at off, stamping it with the
// given frame number as its step. The scan is local and bounded: only this
// frame's lines are read.
func (d *Decoder) DecodeAt(raw []byte, off int64, frame int) (*traj.Frame, error) {
	start := skipBlank(raw, off)
	countLine, pos := nextLine(raw, start)
	n, ok := parseCount(countLine)
	if !ok {
		return nil, newCorrupt(WrongCountLine, d.filename, frame)
	}
	if pos >= int64(len(raw)) {
		return nil, newCorrupt(TruncatedFrame, d.filename, frame)
	}
	commentLine, pos := nextLine(raw, pos)
	md := traj.ParseAttrs(string(commentLine))

	lattice := latticeFrom(md)
	cols := columnsFrom(md)
	frac := fractionalizer(lattice)

	sites := make([]traj.Site, 0, n)
	for i := 0; i < n; i++ {
		if pos >= int64(len(raw)) {
			return nil, newCorrupt(TruncatedFrame, d.filename, frame)
		}
		var atomLine []byte
		atomLine, pos = nextLine(raw, pos)
		site, err := parseSite(atomLine, cols)
		if err != nil {
			return nil, newCorrupt(fmt.Sprintf("%s %d: %s", WrongAtomLine, i, err.Error()), d.filename, frame)
		}
		if frac != nil {
			site.Abc = frac(site.Xyz)
		}
		sites = append(sites, site)
	}

	f := &traj.Frame{
		Structure: traj.Structure{
			Sites:   sites,
			Lattice: lattice,
			PBC:     pbcFrom(md, lattice),
		},
		Step:     frame,
		Metadata: md,
	}
	return f, nil
}

// DecodeMeta reads only the count and comment lines of the frame at off,
// skipping every atom line, so its cost does not grow with the atom count.
func (d *Decoder) DecodeMeta(raw []byte, off int64, frame int) (traj.FrameMeta, error) {
	start := skipBlank(raw, off)
	countLine, pos := nextLine(raw, start)
	if _, ok := parseCount(countLine); !ok {
		return traj.FrameMeta{}, newCorrupt(WrongCountLine, d.filename, frame)
	}
	if pos >= int64(len(raw)) {
		return traj.FrameMeta{}, newCorrupt(TruncatedFrame, d.filename, frame)
	}
	commentLine, _ := nextLine(raw, pos)
	md := traj.ParseAttrs(string(commentLine))
	return traj.FrameMeta{
		FrameNumber: frame,
		Step:        frame,
		Properties:  md.Numbers(),
	}, nil
}

//nextLine returns the line starting at off, without its newline or a
//trailing carriage return, and the offset just past the newline.
func nextLine(raw []byte, off int64) ([]byte, int64) {
	if off >= int64(len(raw)) {
		return nil, int64(len(raw))
	}
	rest := raw[off:]
	i := bytes.IndexByte(rest, '\n')
	if i < 0 {
		return trimCR(rest), int64(len(raw))
	}
	return trimCR(rest[:i]), off + int64(i) + 1
}

func trimCR(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\r' {
		return line[:n-1]
	}
	return line
}

//skipBlank advances past whitespace-only lines.
func skipBlank(raw []byte, off int64) int64 {
	for off < int64(len(raw)) {
		line, next := nextLine(raw, off)
		if len(bytes.TrimSpace(line)) > 0 {
			return off
		}
		off = next
	}
	return off
}

//skipLines advances past n lines, reporting whether all n were present.
//A final line terminated by end of input instead of a newline counts.
func skipLines(raw []byte, off int64, n int) (int64, bool) {
	for i := 0; i < n; i++ {
		if off >= int64(len(raw)) {
			return off, false
		}
		_, off = nextLine(raw, off)
	}
	return off, true
}

//resync finds the offset of the next line that parses as a valid atom
//count, or end of input.
func resync(raw []byte, off int64) int64 {
	for off < int64(len(raw)) {
		line, next := nextLine(raw, off)
		if _, ok := parseCount(line); ok {
			return off
		}
		off = next
	}
	return off
}

//parseCount parses a non-negative atom count line.
func parseCount(line []byte) (int, bool) {
	s := strings.TrimSpace(string(line))
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

//latticeFrom parses the Lattice attribute, nine floats in row order, and
//returns nil when absent or malformed.
func latticeFrom(md traj.Metadata) *traj.Lattice {
	v, ok := md.Get("Lattice")
	if !ok {
		return nil
	}
	fields := strings.Fields(v.String())
	if len(fields) != 9 {
		return nil
	}
	var cell [3][3]float64
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil
		}
		cell[i/3][i%3] = x
	}
	return traj.NewLattice(cell)
}

//fractionalizer returns the cartesian-to-fractional converter for the
//frame, or nil when there is no usable lattice.
func fractionalizer(l *traj.Lattice) func([3]float64) [3]float64 {
	if l == nil {
		return nil
	}
	frac, err := l.Fractionalizer()
	if err != nil {
		//a singular cell keeps fractional coordinates zeroed
		return nil
	}
	return frac
}

//pbcFrom parses the pbc attribute ("T T F" style). A frame with a lattice
//but no pbc key is taken as fully periodic.
func pbcFrom(md traj.Metadata, lattice *traj.Lattice) [3]bool {
	v, ok := md.Get("pbc")
	if !ok {
		if lattice != nil {
			return [3]bool{true, true, true}
		}
		return [3]bool{}
	}
	fields := strings.Fields(v.String())
	var pbc [3]bool
	for i := 0; i < 3 && i < len(fields); i++ {
		switch strings.ToUpper(fields[i]) {
		case "T", "TRUE", "1":
			pbc[i] = true
		}
	}
	return pbc
}
