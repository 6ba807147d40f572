package testdata

import "github.com/alexhholmes/bitfield"

// @bitenum
type Mode uint8

const (
	ModeIdle Mode = iota
	ModeRun
	ModeHalt
)

const unrelated = 42

// Color is a 32-bit RGBA value.
//
// @bitfield bits=32
type Color struct {
	r    uint8 `bitfield:"bits=8"`
	g    uint8
	b    uint8
	a    bool
	rest uint8 `bitfield:"bits=7"`
}

// @bitfield repr=packed order=msb filled=false
type Header struct {
	buf [1]byte

	version bitfield.Of[uint8] `bitfield:"bits=3"`
	mode    bitfield.Of[Mode]
	_       bitfield.Of[bitfield.Padding] `bitfield:"bits=2"`
}

type (
	// @bitfield filled=false
	Sparse struct {
		hidden, shown uint16 `bitfield:"bits=10,skip=getters"`
		_             bitfield.Padding `bitfield:"bits=1,skip"`
	}

	// Ignored has no annotation.
	Ignored struct {
		x uint8
	}
)

// @bitenum
type Level uint8

const (
	LevelLow  Level = 1 << iota >> 1
	LevelMid
	LevelHigh Level = 3
)

type Weight uint16
