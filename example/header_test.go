package example

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexhholmes/bitfield"
)

func TestHeader_MSBLayout(t *testing.T) {
	h := NewHeader()
	require.NoError(t, h.SetVersion(5))
	require.NoError(t, h.SetOp(OpWrite))
	require.NoError(t, h.SetUrgent(true))
	require.NoError(t, h.SetLength(0x2A))

	// version 101, op 10, urgent 1, reserved 00, length 0x2a
	assert.Equal(t, uint16(0xB42A), h.IntoUint16())
	assert.Equal(t, [2]byte{0x2A, 0xB4}, h.IntoBytes())

	back, err := HeaderFromUint16(0xB42A)
	require.NoError(t, err)
	assert.Equal(t, h, back)
	assert.Equal(t, OpWrite, back.Op())
}

func TestHeader_ReservedDecodesAsZero(t *testing.T) {
	h, err := HeaderFromBytes([2]byte{0x2A, 0xB7})
	require.NoError(t, err)

	assert.Equal(t, uint8(5), h.Version())
	assert.Equal(t, OpWrite, h.Op())
	assert.True(t, h.Urgent())
	assert.Equal(t, uint8(0), h.Reserved())
	assert.Equal(t, [2]byte{0x2A, 0xB4}, h.IntoBytes())
}

func TestHeader_InvalidOpcode(t *testing.T) {
	_, err := HeaderFromBytes([2]byte{0x00, 0x18})
	assert.ErrorIs(t, err, bitfield.ErrInvalidBitPattern)

	h := NewHeader()
	err = h.SetOp(Opcode(3))
	assert.ErrorIs(t, err, bitfield.ErrOutOfBounds)
	assert.Equal(t, OpNop, h.Op())

	// An update that would produce the bad pattern is rejected whole.
	err = h.UpdateByteBE(0, 0x18)
	assert.ErrorIs(t, err, bitfield.ErrInvalidBitPattern)
	assert.Equal(t, [2]byte{}, h.IntoBytes())
}

func TestHeader_UpdateByte(t *testing.T) {
	h := NewHeader()
	require.NoError(t, h.SetLength(7))

	require.NoError(t, h.UpdateByteBE(0, 0x20))
	assert.Equal(t, uint8(1), h.Version())
	assert.Equal(t, uint8(7), h.Length())

	require.NoError(t, h.UpdateByteLE(0, 0x99))
	assert.Equal(t, uint8(0x99), h.Length())
	assert.Equal(t, uint8(1), h.Version())
}

func TestHeader_String(t *testing.T) {
	h := NewHeader()
	require.NoError(t, h.SetLength(3))
	assert.Equal(t, "Header{version: 0, op: 0, urgent: false, reserved: 0, length: 3}", h.String())
}
