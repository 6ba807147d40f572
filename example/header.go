package example

import "github.com/alexhholmes/bitfield"

//go:generate go run github.com/alexhholmes/bitfield/cmd/bitfieldgen generate $GOFILE

// Opcode is the operation carried by a frame.
//
// @bitenum
type Opcode uint8

const (
	OpNop Opcode = iota
	OpRead
	OpWrite
)

// Header is a two-byte frame header stored packed, version in the top bits.
// The reserved bits are readable but always decode as zero.
//
// @bitfield bits=16 repr=packed order=msb
type Header struct {
	buf [2]byte

	version  bitfield.Of[uint8] `bitfield:"bits=3"`
	op       bitfield.Of[Opcode]
	urgent   bitfield.Of[bool]
	reserved bitfield.Of[uint8] `bitfield:"bits=2,skip=setters"`
	length   bitfield.Of[uint8]
}
