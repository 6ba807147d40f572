// Package bitfield packs an ordered sequence of narrow fields (unsigned
// integers of 1 to 64 bits, booleans and closed enumerations) into the
// smallest byte buffer that holds them, and reads or writes one field without
// disturbing its neighbours.
//
// A Schema is built once from a Config and the fields in declaration order.
// Building it plans the layout and rejects inconsistent declarations: a
// per-field width that disagrees with its domain, a total that misses the
// pinned width, or a fill check failure. Records come in two
// representations. Unpacked records keep one slot per field; packed records
// keep the byte form itself. Both convert to a little-endian byte slice and,
// when the declared width fits in 128 bits, to a single unsigned integer.
//
//	s := bitfield.MustSchema("Color", bitfield.Config{Filled: true},
//		bitfield.Field{Name: "r", Domain: bitfield.Uint(8)},
//		bitfield.Field{Name: "g", Domain: bitfield.Uint(8)},
//		bitfield.Field{Name: "b", Domain: bitfield.Uint(8)},
//		bitfield.Field{Name: "a", Domain: bitfield.Bool()},
//		bitfield.Field{Name: "rest", Domain: bitfield.Uint(7)},
//	)
//	rec := s.New()
//	_ = rec.Set(0, 0xFF)
//	rec.Bytes() // [0xFF 0x00 0x00 0x00]
//
// The bitfieldgen command generates typed accessors over these primitives
// from annotated Go declarations.
package bitfield
