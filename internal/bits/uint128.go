package bits

import (
	"fmt"
	mathbits "math/bits"
)

// Uint128 is an unsigned 128-bit integer, the widest integer backing a record.
type Uint128 struct {
	Hi, Lo uint64
}

// FromUint64 widens v to 128 bits.
func FromUint64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// Mask returns a value with the low n bits set. n >= 128 sets every bit.
func Mask(n uint) Uint128 {
	switch {
	case n == 0:
		return Uint128{}
	case n >= 128:
		return Uint128{Hi: ^uint64(0), Lo: ^uint64(0)}
	case n >= 64:
		return Uint128{Hi: ^uint64(0) >> (128 - n), Lo: ^uint64(0)}
	default:
		return Uint128{Lo: ^uint64(0) >> (64 - n)}
	}
}

// Shl shifts u left by n bits. Shifts of 128 or more yield zero.
func (u Uint128) Shl(n uint) Uint128 {
	switch {
	case n == 0:
		return u
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Hi: u.Lo << (n - 64)}
	default:
		return Uint128{Hi: u.Hi<<n | u.Lo>>(64-n), Lo: u.Lo << n}
	}
}

// Shr shifts u right logically by n bits. Shifts of 128 or more yield zero.
func (u Uint128) Shr(n uint) Uint128 {
	switch {
	case n == 0:
		return u
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Lo: u.Hi >> (n - 64)}
	default:
		return Uint128{Hi: u.Hi >> n, Lo: u.Lo>>n | u.Hi<<(64-n)}
	}
}

func (u Uint128) Or(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi | v.Hi, Lo: u.Lo | v.Lo}
}

func (u Uint128) And(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi & v.Hi, Lo: u.Lo & v.Lo}
}

// AndNot clears the bits of u that are set in v.
func (u Uint128) AndNot(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi &^ v.Hi, Lo: u.Lo &^ v.Lo}
}

func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

// Len returns the number of bits needed to represent u.
func (u Uint128) Len() int {
	if u.Hi != 0 {
		return 64 + mathbits.Len64(u.Hi)
	}
	return mathbits.Len64(u.Lo)
}

// Uint64 truncates u to its low 64 bits.
func (u Uint128) Uint64() uint64 {
	return u.Lo
}

func (u Uint128) String() string {
	if u.Hi == 0 {
		return fmt.Sprintf("%#x", u.Lo)
	}
	return fmt.Sprintf("%#x%016x", u.Hi, u.Lo)
}
