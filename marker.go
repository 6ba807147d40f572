package bitfield

import "github.com/alexhholmes/bitfield/internal/bits"

// Padding marks a declared field that only occupies bits. It has no slot and
// no accessors.
type Padding struct{}

// Of marks a field of a packed record. The field's bits live in the record's
// byte buffer; the marker itself takes no space.
type Of[T any] struct{}

// Uint128 is the integer form of records wider than 64 bits.
type Uint128 = bits.Uint128

// FromUint64 widens v to a Uint128.
func FromUint64(v uint64) Uint128 {
	return bits.FromUint64(v)
}

// FromBool maps a boolean to its stored bit.
func FromBool(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
