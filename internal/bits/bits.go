// Package bits provides the accumulator primitives that move small groups of
// bits (at most 8 at a time) between packed byte buffers and field values.
//
// A PopBuffer drains an accumulator from its least significant end; a
// PushBuffer fills one from the bottom while shifting earlier content up.
// Both are pure bit arithmetic over a single unsigned word, defined for the
// 8, 16, 32 and 64 bit accumulators (generic) and for Uint128.
package bits

// Unsigned is the set of fixed-width accumulators.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// byteMask returns the mask selecting the low amount bits of a byte.
// Amounts above 8 select the whole byte.
func byteMask(amount uint) uint8 {
	if amount >= 8 {
		return 0xFF
	}
	return 0xFF >> (8 - amount)
}

// PopBuffer removes bits from the low end of an accumulator.
type PopBuffer[T Unsigned] struct {
	bytes T
}

// NewPopBuffer returns a pop buffer holding v.
func NewPopBuffer[T Unsigned](v T) *PopBuffer[T] {
	return &PopBuffer[T]{bytes: v}
}

// Pop removes and returns the amount least significant bits of the buffer.
// The remaining content is shifted right logically. An amount at or beyond
// the accumulator width leaves the buffer zeroed.
func (b *PopBuffer[T]) Pop(amount uint) uint8 {
	res := uint8(b.bytes) & byteMask(amount)
	// Go defines over-wide shifts of unsigned values as zero.
	b.bytes >>= amount
	return res
}

// Bytes returns the bits not yet popped.
func (b *PopBuffer[T]) Bytes() T {
	return b.bytes
}

// PushBuffer accumulates bits from the low end of an accumulator.
type PushBuffer[T Unsigned] struct {
	bytes T
}

// Push shifts the existing content left by amount bits and ORs the low amount
// bits of v into the vacated positions. Bits shifted past the top of the
// accumulator are discarded; callers size the accumulator to avoid that.
func (b *PushBuffer[T]) Push(amount uint, v uint8) {
	b.bytes = b.bytes<<amount | T(v&byteMask(amount))
}

// Bytes returns the accumulated bits.
func (b *PushBuffer[T]) Bytes() T {
	return b.bytes
}

// Pop128 is the PopBuffer counterpart for a Uint128 accumulator.
type Pop128 struct {
	bytes Uint128
}

// NewPop128 returns a pop buffer holding v.
func NewPop128(v Uint128) *Pop128 {
	return &Pop128{bytes: v}
}

// Pop removes and returns the amount least significant bits of the buffer.
func (b *Pop128) Pop(amount uint) uint8 {
	res := uint8(b.bytes.Lo) & byteMask(amount)
	b.bytes = b.bytes.Shr(amount)
	return res
}

// Bytes returns the bits not yet popped.
func (b *Pop128) Bytes() Uint128 {
	return b.bytes
}

// Push128 is the PushBuffer counterpart for a Uint128 accumulator.
type Push128 struct {
	bytes Uint128
}

// Push shifts the content left by amount bits and ORs in the low amount bits of v.
func (b *Push128) Push(amount uint, v uint8) {
	b.bytes = b.bytes.Shl(amount).Or(FromUint64(uint64(v & byteMask(amount))))
}

// Bytes returns the accumulated bits.
func (b *Push128) Bytes() Uint128 {
	return b.bytes
}
