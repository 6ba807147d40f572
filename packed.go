package bitfield

import (
	"github.com/alexhholmes/bitfield/internal/bits"
)

// readBits returns width bits of buf starting at bit off. Bit k of a buffer is
// bit k%8 of byte k/8. Chunks are pushed from the most significant end so the
// accumulator ends up holding the field value.
func readBits(buf []byte, off, width int) uint64 {
	var acc bits.PushBuffer[uint64]
	end := off + width
	for end > off {
		start := max(off, (end-1)&^7)
		acc.Push(uint(end-start), buf[start>>3]>>(start&7))
		end = start
	}
	return acc.Bytes()
}

// writeBits stores the low width bits of v into buf starting at bit off,
// leaving every other bit of buf as it was.
func writeBits(buf []byte, off, width int, v uint64) {
	src := bits.NewPopBuffer(v)
	pos, end := off, off+width
	for pos < end {
		shift := pos & 7
		n := min(8-shift, end-pos)
		mask := byte(0xFF>>(8-n)) << shift
		buf[pos>>3] = buf[pos>>3]&^mask | src.Pop(uint(n))<<shift
		pos += n
	}
}

func (s *Schema) readFields(buf []byte, omit Skip, phase Phase) ([]uint64, error) {
	vals := make([]uint64, len(s.fields))
	for i, f := range s.fields {
		if omitted(f, omit) {
			continue
		}
		pattern := readBits(buf, s.layout.Offsets[i], s.layout.Widths[i])
		if err := f.Domain.Decode(pattern); err != nil {
			return nil, at(err, phase, s.name, f.Name)
		}
		vals[i] = pattern
	}
	return vals, nil
}

func (s *Schema) writeFields(buf []byte, vals []uint64, omit Skip) {
	for i, f := range s.fields {
		if omitted(f, omit) {
			continue
		}
		writeBits(buf, s.layout.Offsets[i], s.layout.Widths[i], vals[i])
	}
}

// ReadField returns the bits of field i in a packed buffer of Layout.Bytes
// bytes. It does not consult skip flags.
func (s *Schema) ReadField(buf []byte, i int) uint64 {
	s.field(i)
	return readBits(buf, s.layout.Offsets[i], s.layout.Widths[i])
}

// WriteField stores v into field i of a packed buffer. An out of domain value
// is OutOfBounds and leaves buf untouched.
func (s *Schema) WriteField(buf []byte, i int, v uint64) error {
	if err := s.Check(i, v); err != nil {
		return err
	}
	writeBits(buf, s.layout.Offsets[i], s.layout.Widths[i], v)
	return nil
}

// DecodePacked validates the byte form src and copies it into the packed
// buffer dst. Bits of fields without a setter and of padding are cleared.
// dst is unchanged on error.
func (s *Schema) DecodePacked(dst, src []byte) error {
	if err := s.checkBytes(src, PhaseDecode); err != nil {
		return err
	}
	if _, err := s.readFields(src, SkipSetters, PhaseDecode); err != nil {
		return err
	}
	for i := range dst {
		dst[i] = src[i] & s.decodeMask[i]
	}
	return nil
}

// EncodePacked writes the byte form of the packed buffer src into dst.
// Fields without a getter and padding encode as zero.
func (s *Schema) EncodePacked(dst, src []byte) {
	for i := range dst {
		dst[i] = src[i] & s.encodeMask[i]
	}
}

// PackedInt returns the integer form of a packed buffer. Bits above 128 are
// lost; callers check Layout.BackingWidth.
func (s *Schema) PackedInt(buf []byte) Uint128 {
	out := make([]byte, len(buf))
	s.EncodePacked(out, buf)
	return s.bytesToInt(out)
}

// DecodePackedInt validates the integer form v and stores it in the packed
// buffer dst. dst is unchanged on error.
func (s *Schema) DecodePackedInt(dst []byte, v Uint128) error {
	if err := s.requireBacking(); err != nil {
		return err
	}
	if v.Len() > s.layout.DeclaredBits {
		return s.tooWide(PhaseDecode, v)
	}
	return s.DecodePacked(dst, s.intToBytes(v))
}

// UpdatePackedByteLE replaces byte idx of a packed buffer, counting from the
// least significant byte. buf is unchanged on error.
func (s *Schema) UpdatePackedByteLE(buf []byte, idx int, b byte) error {
	return s.updatePacked(buf, idx, idx, b)
}

// UpdatePackedByteBE is UpdatePackedByteLE counting from the most significant
// byte.
func (s *Schema) UpdatePackedByteBE(buf []byte, idx int, b byte) error {
	return s.updatePacked(buf, idx, s.layout.Bytes-1-idx, b)
}

func (s *Schema) updatePacked(buf []byte, idx, pos int, b byte) error {
	raw := make([]byte, len(buf))
	copy(raw, buf)
	if err := s.patchByte(raw, idx, pos, b); err != nil {
		return err
	}
	if _, err := s.readFields(raw, SkipAll, PhaseUpdate); err != nil {
		return err
	}
	copy(buf, raw)
	return nil
}

// Packed is a record stored as one flat byte buffer. Fields are bit ranges of
// the buffer and have no slots of their own.
type Packed struct {
	schema *Schema
	buf    []byte
}

// NewPacked returns a zeroed packed record of s.
func NewPacked(s *Schema) *Packed {
	return &Packed{schema: s, buf: make([]byte, s.layout.Bytes)}
}

func (p *Packed) Schema() *Schema {
	return p.schema
}

func (p *Packed) Get(i int) uint64 {
	p.schema.getter(i)
	return p.schema.ReadField(p.buf, i)
}

func (p *Packed) GetBool(i int) bool {
	return p.Get(i) != 0
}

func (p *Packed) Set(i int, v uint64) error {
	p.schema.setter(i)
	return p.schema.WriteField(p.buf, i, v)
}

func (p *Packed) With(i int, v uint64) (Record, error) {
	c := p.clone()
	if err := c.Set(i, v); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *Packed) Clone() Record {
	return p.clone()
}

func (p *Packed) clone() *Packed {
	c := &Packed{schema: p.schema, buf: make([]byte, len(p.buf))}
	copy(c.buf, p.buf)
	return c
}

func (p *Packed) Reset() {
	clear(p.buf)
}

func (p *Packed) Bytes() []byte {
	out := make([]byte, len(p.buf))
	p.schema.EncodePacked(out, p.buf)
	return out
}

func (p *Packed) Int() (Uint128, error) {
	if err := p.schema.requireBacking(); err != nil {
		return Uint128{}, err
	}
	return p.schema.PackedInt(p.buf), nil
}

func (p *Packed) UpdateByteLE(idx int, b byte) error {
	return p.schema.UpdatePackedByteLE(p.buf, idx, b)
}

func (p *Packed) UpdateByteBE(idx int, b byte) error {
	return p.schema.UpdatePackedByteBE(p.buf, idx, b)
}

func (p *Packed) String() string {
	return p.schema.FormatPacked(p.buf)
}
