package testdata

// @bitfield bits=x
type BadAnnotation struct {
	a uint8
}

// @bitfield
type BadTag struct {
	a uint8 `bitfield:"bits=0"`
}

// @bitfield
type NotStruct uint8

// @bitenum
type Empty uint8
