// Package example shows records declared with @bitfield and the code
// bitfieldgen generates for them.
package example

//go:generate go run github.com/alexhholmes/bitfield/cmd/bitfieldgen generate $GOFILE

// Color is an RGBA value with a one-bit alpha channel.
//
// @bitfield bits=32
type Color struct {
	r    uint8
	g    uint8
	b    uint8
	a    bool
	rest uint8 `bitfield:"bits=7"`
}
