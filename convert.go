package bitfield

import (
	"github.com/alexhholmes/bitfield/internal/bits"
)

// Values are passed around as one uint64 per declared field, in declaration
// order. Padding fields carry no value and read back as zero.

// omitted reports whether f is left out of a conversion that drops the fields
// flagged by omit. Padding is dropped by every non-zero omit set.
func omitted(f Field, omit Skip) bool {
	return omit != 0 && f.Skip&omit == omit
}

// EncodeInt maps field values to the integer form. Field i occupies bits
// [Offsets[i], Offsets[i]+Widths[i]). Fields without a getter and padding
// contribute zero bits. Schemas without an integer backing lose every bit
// above 128.
func (s *Schema) EncodeInt(vals []uint64) Uint128 {
	return s.packInt(vals, SkipGetters)
}

// DecodeInt maps the integer form back to field values. Bits at or above the
// declared width are OutOfBounds; an enum pattern with no variant is
// InvalidBitPattern. Fields without a setter decode as zero.
func (s *Schema) DecodeInt(v Uint128) ([]uint64, error) {
	if err := s.requireBacking(); err != nil {
		return nil, err
	}
	if v.Len() > s.layout.DeclaredBits {
		return nil, s.tooWide(PhaseDecode, v)
	}
	return s.unpackInt(v, SkipSetters, PhaseDecode)
}

// EncodeBytes maps field values to the little-endian byte form: bits [0, 8) of
// the integer form land in byte 0.
func (s *Schema) EncodeBytes(vals []uint64) []byte {
	if s.layout.BackingWidth == 0 {
		buf := make([]byte, s.layout.Bytes)
		s.writeFields(buf, vals, SkipGetters)
		return buf
	}
	return s.intToBytes(s.EncodeInt(vals))
}

// DecodeBytes maps the little-endian byte form back to field values. The
// slice must hold exactly Layout.Bytes bytes and the last byte may only use
// the bits inside the declared width.
func (s *Schema) DecodeBytes(b []byte) ([]uint64, error) {
	if err := s.checkBytes(b, PhaseDecode); err != nil {
		return nil, err
	}
	if s.layout.BackingWidth == 0 {
		return s.readFields(b, SkipSetters, PhaseDecode)
	}
	return s.unpackInt(s.bytesToInt(b), SkipSetters, PhaseDecode)
}

// UpdateByteLE replaces byte idx of the byte form, counting from the least
// significant byte, and returns the re-derived values. Every other byte keeps
// its bits. vals is not modified.
func (s *Schema) UpdateByteLE(vals []uint64, idx int, b byte) ([]uint64, error) {
	return s.updateByte(vals, idx, idx, b)
}

// UpdateByteBE is UpdateByteLE counting from the most significant byte.
func (s *Schema) UpdateByteBE(vals []uint64, idx int, b byte) ([]uint64, error) {
	return s.updateByte(vals, idx, s.layout.Bytes-1-idx, b)
}

func (s *Schema) updateByte(vals []uint64, idx, pos int, b byte) ([]uint64, error) {
	raw := make([]byte, s.layout.Bytes)
	s.writeFields(raw, vals, SkipAll)
	if err := s.patchByte(raw, idx, pos, b); err != nil {
		return nil, err
	}
	return s.readFields(raw, SkipAll, PhaseUpdate)
}

// patchByte writes b at pos after checking the caller's index and the top
// byte mask.
func (s *Schema) patchByte(raw []byte, idx, pos int, b byte) error {
	if idx < 0 || idx >= s.layout.Bytes {
		return outOfBounds(PhaseUpdate, s.name, "", idx, "byte index %d outside [0, %d)", idx, s.layout.Bytes)
	}
	if pos == s.layout.Bytes-1 {
		if extra := b &^ s.layout.TopByteMask(); extra != 0 {
			return outOfBounds(PhaseUpdate, s.name, "", b, "byte %#02x sets bits %#02x above the declared width", b, extra)
		}
	}
	raw[pos] = b
	return nil
}

func (s *Schema) packInt(vals []uint64, omit Skip) Uint128 {
	var v Uint128
	for i, f := range s.fields {
		if omitted(f, omit) {
			continue
		}
		w := uint(s.layout.Widths[i])
		field := bits.FromUint64(vals[i]).And(bits.Mask(w))
		v = v.Or(field.Shl(uint(s.layout.Offsets[i])))
	}
	return v
}

func (s *Schema) unpackInt(v Uint128, omit Skip, phase Phase) ([]uint64, error) {
	vals := make([]uint64, len(s.fields))
	for i, f := range s.fields {
		if omitted(f, omit) {
			continue
		}
		w := uint(s.layout.Widths[i])
		pattern := v.Shr(uint(s.layout.Offsets[i])).And(bits.Mask(w)).Uint64()
		if err := f.Domain.Decode(pattern); err != nil {
			return nil, at(err, phase, s.name, f.Name)
		}
		vals[i] = pattern
	}
	return vals, nil
}

func (s *Schema) intToBytes(v Uint128) []byte {
	out := make([]byte, s.layout.Bytes)
	buf := bits.NewPop128(v)
	for i := range out {
		out[i] = buf.Pop(8)
	}
	return out
}

// bytesToInt assumes b has passed checkBytes.
func (s *Schema) bytesToInt(b []byte) Uint128 {
	var buf bits.Push128
	for i := len(b) - 1; i >= 0; i-- {
		buf.Push(8, b[i])
	}
	return buf.Bytes()
}

func (s *Schema) checkBytes(b []byte, phase Phase) error {
	if len(b) != s.layout.Bytes {
		return outOfBounds(phase, s.name, "", len(b), "got %d bytes, want %d", len(b), s.layout.Bytes)
	}
	top := b[len(b)-1]
	if extra := top &^ s.layout.TopByteMask(); extra != 0 {
		return outOfBounds(phase, s.name, "", top,
			"top byte %#02x sets bits %#02x beyond %d declared bits", top, extra, s.layout.DeclaredBits)
	}
	return nil
}
