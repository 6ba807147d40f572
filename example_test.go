package bitfield_test

import (
	"fmt"

	"github.com/alexhholmes/bitfield"
)

func ExampleSchema() {
	s := bitfield.MustSchema("Color", bitfield.Config{Filled: true},
		bitfield.Field{Name: "r", Domain: bitfield.Uint(8)},
		bitfield.Field{Name: "g", Domain: bitfield.Uint(8)},
		bitfield.Field{Name: "b", Domain: bitfield.Uint(8)},
		bitfield.Field{Name: "a", Domain: bitfield.Bool()},
		bitfield.Field{Name: "rest", Domain: bitfield.Uint(7)},
	)

	rec := s.New()
	_ = rec.Set(0, 0xFF)
	_ = rec.Set(2, 0x80)
	_ = rec.Set(3, bitfield.FromBool(true))

	v, _ := rec.Int()
	fmt.Printf("% x\n", rec.Bytes())
	fmt.Println(v)
	fmt.Println(rec)

	_ = rec.UpdateByteLE(1, 0x42)
	fmt.Println(rec)

	// Output:
	// ff 00 80 01
	// 0x18000ff
	// Color{r: 255, g: 0, b: 128, a: true, rest: 0}
	// Color{r: 255, g: 66, b: 128, a: true, rest: 0}
}

func ExamplePlan() {
	lay, err := bitfield.Plan(bitfield.Config{Bits: 16, Order: bitfield.MSBFirst}, []bitfield.Field{
		{Name: "version", Domain: bitfield.Uint(3)},
		{Name: "urgent", Domain: bitfield.Bool()},
		{Name: "kind", Domain: bitfield.Enum("Kind", 0, 1, 2)},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(lay.Offsets, lay.TotalBits, lay.DeclaredBits, lay.Bytes)

	// Output:
	// [3 2 0] 6 16 2
}
