package bitfield

import (
	"fmt"
	mathbits "math/bits"
	"slices"
)

// DomainKind identifies the value domain of a field.
type DomainKind uint8

const (
	DomainUint DomainKind = iota + 1 // unsigned integer of N bits
	DomainBool                       // single bit, false or true
	DomainEnum                       // closed set of discriminants
)

func (k DomainKind) String() string {
	switch k {
	case DomainUint:
		return "uint"
	case DomainBool:
		return "bool"
	case DomainEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// maxFieldBits is the widest single field. Records may be wider.
const maxFieldBits = 64

// Domain is the set of legal values of a field together with its bit width.
// The zero Domain is invalid.
type Domain struct {
	kind     DomainKind
	bits     int
	name     string
	variants []uint64
}

// Uint returns the domain of unsigned integers in [0, 2^bits).
func Uint(bits int) Domain {
	return Domain{kind: DomainUint, bits: bits}
}

// Bool returns the one-bit boolean domain.
func Bool() Domain {
	return Domain{kind: DomainBool, bits: 1}
}

// Enum returns a closed enumeration whose legal values are exactly the given
// discriminants. Its width is the smallest N with 2^N >= len(discriminants),
// and never less than one bit.
func Enum(name string, discriminants ...uint64) Domain {
	return Domain{
		kind:     DomainEnum,
		bits:     enumBits(len(discriminants)),
		name:     name,
		variants: slices.Clone(discriminants),
	}
}

func enumBits(variants int) int {
	if variants <= 2 {
		return 1
	}
	return mathbits.Len(uint(variants - 1))
}

func (d Domain) Kind() DomainKind {
	return d.kind
}

// Bits returns the width of the domain in bits.
func (d Domain) Bits() int {
	return d.bits
}

// Name returns the enum type name, or "" for other domains.
func (d Domain) Name() string {
	return d.name
}

// Variants returns the declared enum discriminants in declaration order.
func (d Domain) Variants() []uint64 {
	return slices.Clone(d.variants)
}

// Max returns the largest legal value.
func (d Domain) Max() uint64 {
	switch d.kind {
	case DomainUint:
		if d.bits >= 64 {
			return ^uint64(0)
		}
		return 1<<d.bits - 1
	case DomainBool:
		return 1
	case DomainEnum:
		if len(d.variants) == 0 {
			return 0
		}
		return slices.Max(d.variants)
	default:
		return 0
	}
}

// Contains reports whether v is a legal value of the domain.
func (d Domain) Contains(v uint64) bool {
	if d.kind == DomainEnum {
		return slices.Contains(d.variants, v)
	}
	return d.kind != 0 && v <= d.Max()
}

// Check returns an OutOfBounds error when v is not a legal value. It is the
// setter-side check.
func (d Domain) Check(v uint64) error {
	if d.Contains(v) {
		return nil
	}
	if d.kind == DomainEnum {
		return outOfBounds(PhaseSet, "", "", v, "%d is not a discriminant of %s", v, d)
	}
	return outOfBounds(PhaseSet, "", "", v, "%d exceeds the maximum %d of %s", v, d.Max(), d)
}

// Decode validates a bit pattern read back from storage. Only enums can hold
// an undecodable pattern; it is reported as InvalidBitPattern.
func (d Domain) Decode(pattern uint64) error {
	if d.kind == DomainEnum && !slices.Contains(d.variants, pattern) {
		return &Error{
			Phase:  PhaseDecode,
			Kind:   KindInvalidBitPattern,
			Value:  pattern,
			Detail: fmt.Sprintf("bit pattern %#b has no variant in %s", pattern, d),
		}
	}
	return nil
}

// Validate reports whether the domain itself is well formed.
func (d Domain) Validate() error {
	switch d.kind {
	case DomainUint:
		if d.bits < 1 || d.bits > maxFieldBits {
			return fmt.Errorf("unsigned width must be in [1, %d], got %d", maxFieldBits, d.bits)
		}
	case DomainBool:
	case DomainEnum:
		if len(d.variants) == 0 {
			return fmt.Errorf("enum %s declares no variants", d.name)
		}
		limit := uint64(1) << d.bits
		seen := make(map[uint64]bool, len(d.variants))
		for _, v := range d.variants {
			if v >= limit {
				return fmt.Errorf("enum %s discriminant %d does not fit in %d bits", d.name, v, d.bits)
			}
			if seen[v] {
				return fmt.Errorf("enum %s repeats discriminant %d", d.name, v)
			}
			seen[v] = true
		}
		// Records start from the all-zero pattern, so zero must decode.
		if !seen[0] {
			return fmt.Errorf("enum %s has no variant with discriminant 0", d.name)
		}
	default:
		return fmt.Errorf("unknown domain")
	}
	return nil
}

func (d Domain) String() string {
	switch d.kind {
	case DomainUint:
		return fmt.Sprintf("uint(%d)", d.bits)
	case DomainBool:
		return "bool"
	case DomainEnum:
		return fmt.Sprintf("enum %s(%d variants)", d.name, len(d.variants))
	default:
		return "invalid"
	}
}
