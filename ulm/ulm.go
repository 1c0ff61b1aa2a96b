/*Package ulm decodes ULM-style binary trajectory containers. The layout
is a fixed 24-byte signature (8-byte magic plus a 16-byte producer tag),
three little-endian 64-bit header fields (version, frame count, offsets
table position), an offsets table of one absolute 64-bit offset per frame,
and length-prefixed frame bodies carrying scalar properties, the cell and
periodicity flags, atomic numbers and cartesian positions.

Scalars precede the per-atom arrays inside a body, so the plot-metadata
path reads a frame's properties without touching O(atom count) data.
Every slot is validated independently: a bad table entry or truncated
body loses that frame only, while a bad signature or header yields a
container with zero frame slots rather than an error.*/
package ulm

import (
	"encoding/binary"
	"math"

	traj "github.com/atomvista/gotraj"
)

// Container geometry. The tag names the producing application and is not
// validated, so sibling writers stay readable.
const (
	Magic      = "- of Ulm"
	Tag        = "ASE-Trajectory"
	tagSize    = 16
	headerSize = 8 + tagSize + 3*8

	//SupportedVersion is the only container version this decoder reads
	SupportedVersion = 1
)

//payload flag bits
const (
	flagPBCX = 1 << iota
	flagPBCY
	flagPBCZ
	flagCell
)

//per-atom cost in bytes: one atomic number and three coordinates
const atomBytes = 1 + 3*8

// Decoder reads ULM containers. It holds only a filename tag, carries no
// state between calls, and is safe for concurrent use.
type Decoder struct {
	filename string
}

// New returns a Decoder for container content coming from filename.
func New(filename string) *Decoder {
	return &Decoder{filename: filename}
}

var _ traj.FrameDecoder = (*Decoder)(nil)

//Format returns the format tag, always FormatULM
func (d *Decoder) Format() traj.Format { return traj.FormatULM }

type header struct {
	version  uint64
	nframes  int
	tablePos int64
}

//readHeader validates the fixed file header. ok is false when raw cannot
//be a container at all, in which case the input has zero frame slots.
func readHeader(raw []byte) (header, bool) {
	if len(raw) < headerSize {
		return header{}, false
	}
	if string(raw[:8]) != Magic {
		return header{}, false
	}
	h := header{
		version:  binary.LittleEndian.Uint64(raw[24:]),
		nframes:  int(binary.LittleEndian.Uint64(raw[32:])),
		tablePos: int64(binary.LittleEndian.Uint64(raw[40:])),
	}
	if h.version != SupportedVersion {
		return header{}, false
	}
	if h.nframes < 0 || h.tablePos < headerSize || h.tablePos > int64(len(raw)) {
		return header{}, false
	}
	//the whole offsets table must fit inside the input
	if int64(h.nframes) > (int64(len(raw))-h.tablePos)/8 {
		return header{}, false
	}
	return h, true
}

func (h header) tableEntry(raw []byte, i int) int64 {
	return int64(binary.LittleEndian.Uint64(raw[h.tablePos+int64(i)*8:]))
}

// ScanFrom walks frame slots by reading the stored offsets table rather
// than re-scanning bytes; the off argument is redundant for this format
// and the table is authoritative. A slot whose table entry points out of
// range, fails to keep offsets strictly increasing, or declares a length
// past the end of input is reported corrupt on its own; the rest of the
// table stays usable.
func (d *Decoder) ScanFrom(raw []byte, _ int64, frame int, visit traj.IndexVisitor) {
	h, ok := readHeader(raw)
	if !ok || frame < 0 {
		return
	}
	lastValid := int64(-1)
	for i := frame; i < h.nframes; i++ {
		off := h.tableEntry(raw, i)
		if off <= lastValid || off < headerSize || off+8 > int64(len(raw)) {
			if !visit(i, off, 0, newCorrupt(BadOffset, d.filename, i)) {
				return
			}
			continue
		}
		length := binary.LittleEndian.Uint64(raw[off:])
		if length > uint64(int64(len(raw))-off-8) {
			if !visit(i, off, 0, newCorrupt(TruncatedPayload, d.filename, i)) {
				return
			}
			continue
		}
		if !visit(i, off, 8+int64(length), nil) {
			return
		}
		lastValid = off
	}
}

// DecodeAt decodes the single frame body starting at off, stamping it
// with the given frame number as its step. Random access: nothing outside
// this body is read.
func (d *Decoder) DecodeAt(raw []byte, off int64, frame int) (*traj.Frame, error) {
	body, err := frameBody(raw, off, frame, d.filename)
	if err != nil {
		return nil, err
	}
	c := &cursor{b: body}
	natoms := int(c.u32())
	flags := c.u32()
	md, ok := readProps(c)
	if !ok || natoms < 0 || int64(natoms)*atomBytes > int64(len(body)) {
		return nil, newCorrupt(MalformedPayload, d.filename, frame)
	}

	var lattice *traj.Lattice
	if flags&flagCell != 0 {
		var cell [3][3]float64
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				cell[i][j] = c.f64()
			}
		}
		if c.bad {
			return nil, newCorrupt(MalformedPayload, d.filename, frame)
		}
		lattice = traj.NewLattice(cell)
	}

	numbers := c.bytes(natoms)
	sites := make([]traj.Site, natoms)
	for i := range sites {
		sites[i].Xyz[0] = c.f64()
		sites[i].Xyz[1] = c.f64()
		sites[i].Xyz[2] = c.f64()
	}
	if c.bad {
		return nil, newCorrupt(MalformedPayload, d.filename, frame)
	}

	var frac func([3]float64) [3]float64
	if lattice != nil {
		if f, err := lattice.Fractionalizer(); err == nil {
			frac = f
		}
	}
	for i := range sites {
		sym := traj.SymbolFromNumber(int(numbers[i]))
		sites[i].Species = sym
		sites[i].Label = sym
		if frac != nil {
			sites[i].Abc = frac(sites[i].Xyz)
		}
	}

	f := &traj.Frame{
		Structure: traj.Structure{
			Sites:   sites,
			Lattice: lattice,
			PBC: [3]bool{
				flags&flagPBCX != 0,
				flags&flagPBCY != 0,
				flags&flagPBCZ != 0,
			},
		},
		Step:     frame,
		Metadata: md,
	}
	return f, nil
}

// DecodeMeta reads only the scalar header of the frame body at off,
// stopping before the cell and the per-atom arrays, so its cost does not
// grow with the atom count.
func (d *Decoder) DecodeMeta(raw []byte, off int64, frame int) (traj.FrameMeta, error) {
	body, err := frameBody(raw, off, frame, d.filename)
	if err != nil {
		return traj.FrameMeta{}, err
	}
	c := &cursor{b: body}
	c.u32() //atom count
	c.u32() //flags
	md, ok := readProps(c)
	if !ok {
		return traj.FrameMeta{}, newCorrupt(MalformedPayload, d.filename, frame)
	}
	return traj.FrameMeta{
		FrameNumber: frame,
		Step:        frame,
		Properties:  md.Numbers(),
	}, nil
}

//frameBody bounds-checks the length prefix at off and returns the body.
func frameBody(raw []byte, off int64, frame int, filename string) ([]byte, error) {
	if off < headerSize || off+8 > int64(len(raw)) {
		return nil, newCorrupt(BadOffset, filename, frame)
	}
	length := binary.LittleEndian.Uint64(raw[off:])
	if length > uint64(int64(len(raw))-off-8) {
		return nil, newCorrupt(TruncatedPayload, filename, frame)
	}
	return raw[off+8 : off+8+int64(length)], nil
}

//readProps reads the property-count-prefixed key/value block in stored
//order. Each malformed property poisons the cursor, so a short block is
//caught by the final check.
func readProps(c *cursor) (traj.Metadata, bool) {
	var md traj.Metadata
	nprops := int(c.u32())
	if c.bad || nprops < 0 {
		return md, false
	}
	for p := 0; p < nprops; p++ {
		klen := int(c.u16())
		key := c.bytes(klen)
		val := c.f64()
		if c.bad {
			return md, false
		}
		md.Set(string(key), traj.Num(val))
	}
	return md, true
}

//cursor is a bounds-checked little-endian reader over one frame body.
//Reading past the end sets bad and yields zero values.
type cursor struct {
	b   []byte
	off int
	bad bool
}

func (c *cursor) need(n int) bool {
	if c.bad || n < 0 || c.off+n > len(c.b) {
		c.bad = true
		return false
	}
	return true
}

func (c *cursor) u16() uint16 {
	if !c.need(2) {
		return 0
	}
	v := binary.LittleEndian.Uint16(c.b[c.off:])
	c.off += 2
	return v
}

func (c *cursor) u32() uint32 {
	if !c.need(4) {
		return 0
	}
	v := binary.LittleEndian.Uint32(c.b[c.off:])
	c.off += 4
	return v
}

func (c *cursor) f64() float64 {
	if !c.need(8) {
		return 0
	}
	v := math.Float64frombits(binary.LittleEndian.Uint64(c.b[c.off:]))
	c.off += 8
	return v
}

func (c *cursor) bytes(n int) []byte {
	if !c.need(n) {
		return nil
	}
	v := c.b[c.off : c.off+n]
	c.off += n
	return v
}
