package bits

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopBits(t *testing.T) {
	tests := []struct {
		name     string
		start    uint64
		amount   uint
		want     uint8
		wantRest uint64
	}{
		{"low nibble", 0xABCD, 4, 0xD, 0xABC},
		{"full byte", 0xABCD, 8, 0xCD, 0xAB},
		{"single bit", 0b101, 1, 1, 0b10},
		{"zero amount", 0xFF, 0, 0, 0xFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewPopBuffer(tt.start)
			assert.Equal(t, tt.want, b.Pop(tt.amount))
			assert.Equal(t, tt.wantRest, b.Bytes())
		})
	}
}

func TestPopBitsBeyondWidthZeroes(t *testing.T) {
	u8 := NewPopBuffer(uint8(0xFF))
	assert.Equal(t, uint8(0xFF), u8.Pop(8))
	assert.Equal(t, uint8(0), u8.Bytes())

	u16 := NewPopBuffer(uint16(0xFFFF))
	u16.Pop(8)
	u16.Pop(8)
	assert.Equal(t, uint16(0), u16.Bytes())
	assert.Equal(t, uint8(0), u16.Pop(8), "popping an empty buffer yields zero")

	u128 := NewPop128(Mask(128))
	for i := 0; i < 16; i++ {
		require.Equal(t, uint8(0xFF), u128.Pop(8), "byte %d", i)
	}
	assert.True(t, u128.Bytes().IsZero())
}

func TestPushBits(t *testing.T) {
	var b PushBuffer[uint32]
	b.Push(4, 0xA)
	b.Push(8, 0xBC)
	b.Push(3, 0xFF) // only the low 3 bits are kept
	assert.Equal(t, uint32(0xABC<<3|0b111), b.Bytes())
}

func TestPushBitsDiscardsOverflow(t *testing.T) {
	var b PushBuffer[uint8]
	b.Push(8, 0xAB)
	b.Push(4, 0xC)
	assert.Equal(t, uint8(0xBC), b.Bytes())

	b.Push(8, 0x12)
	assert.Equal(t, uint8(0x12), b.Bytes())
}

func TestPushPop128(t *testing.T) {
	var push Push128
	for i := 15; i >= 0; i-- {
		push.Push(8, uint8(i))
	}
	got := push.Bytes()
	assert.Equal(t, uint64(0x0706050403020100), got.Lo)
	assert.Equal(t, uint64(0x0f0e0d0c0b0a0908), got.Hi)

	pop := NewPop128(got)
	for i := 0; i < 16; i++ {
		require.Equal(t, uint8(i), pop.Pop(8))
	}
}

// Pushing a value's bytes from most to least significant and popping them
// back from the bottom must reproduce the value for every accumulator width.
func TestPushPopRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	for i := 0; i < 200; i++ {
		v := r.Uint64()
		t.Run(fmt.Sprintf("case#%d", i), func(t *testing.T) {
			assert.Equal(t, uint8(v), roundTrip[uint8](uint8(v)))
			assert.Equal(t, uint16(v), roundTrip[uint16](uint16(v)))
			assert.Equal(t, uint32(v), roundTrip[uint32](uint32(v)))
			assert.Equal(t, v, roundTrip[uint64](v))
		})
	}
}

func roundTrip[T Unsigned](v T) T {
	pop := NewPopBuffer(v)
	var chunks []uint8
	var amounts []uint
	width := uint(0)
	for w := ^T(0); w != 0; w >>= 1 {
		width++
	}
	for left := width; left > 0; {
		n := min(left, 3)
		chunks = append(chunks, pop.Pop(n))
		amounts = append(amounts, n)
		left -= n
	}
	var push PushBuffer[T]
	for i := len(chunks) - 1; i >= 0; i-- {
		push.Push(amounts[i], chunks[i])
	}
	return push.Bytes()
}

func BenchmarkPopBits(b *testing.B) {
	for i := 0; i < b.N; i++ {
		p := NewPopBuffer(uint64(i))
		for j := 0; j < 8; j++ {
			_ = p.Pop(8)
		}
	}
}
