package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexhholmes/bitfield"
	"github.com/alexhholmes/bitfield/internal/parser"
)

func tag(bits int, skip bitfield.Skip) *parser.FieldTag {
	return &parser.FieldTag{Bits: bits, Skip: skip}
}

func TestAnalyze_Color(t *testing.T) {
	// // @bitfield
	// type Color struct {
	//     r, g, b uint8
	//     a       bool
	//     rest    uint8 `bitfield:"bits=7"`
	// }
	layout := &parser.TypeLayout{
		Name:   "Color",
		Anno:   &parser.TypeAnnotation{Filled: true, Repr: "unpacked", Order: "lsb"},
		BufLen: -1,
		Fields: []parser.Field{
			{Name: "r", GoType: "uint8"},
			{Name: "g", GoType: "uint8"},
			{Name: "b", GoType: "byte"},
			{Name: "a", GoType: "bool"},
			{Name: "rest", GoType: "uint8", Tag: tag(7, 0)},
		},
	}

	analyzed, err := Analyze(layout, NewTypeRegistry())
	require.NoError(t, err)
	require.True(t, analyzed.IsValid(), analyzed.Errors)

	lay := analyzed.Schema.Layout()
	assert.Equal(t, []int{0, 8, 16, 24, 25}, lay.Offsets)
	assert.Equal(t, 32, lay.DeclaredBits)
	assert.Equal(t, bitfield.DomainBool, analyzed.Fields[3].Spec.Domain.Kind())
	assert.Equal(t, 7, analyzed.Fields[4].Spec.Domain.Bits())
}

func TestAnalyze_FillCheckFromSource(t *testing.T) {
	layout := &parser.TypeLayout{
		Name:   "Odd",
		Anno:   &parser.TypeAnnotation{Filled: true},
		BufLen: -1,
		Fields: []parser.Field{
			{Name: "x", GoType: "uint8", Tag: tag(7, 0)},
		},
	}

	analyzed, err := Analyze(layout, NewTypeRegistry())
	require.Error(t, err)
	assert.False(t, analyzed.IsValid())
	assert.Nil(t, analyzed.Schema)
	require.Len(t, analyzed.Errors, 1)
	assert.Contains(t, analyzed.Errors[0], "fill_check at Odd")
}

func TestAnalyze_CollectsFieldErrors(t *testing.T) {
	layout := &parser.TypeLayout{
		Name:   "Bad",
		Anno:   &parser.TypeAnnotation{Filled: true},
		BufLen: -1,
		Fields: []parser.Field{
			{Name: "wide", GoType: "uint8", Tag: tag(9, 0)},
			{Name: "signed", GoType: "int8"},
			{Name: "Exported", GoType: "uint8"},
			{Name: "marker", GoType: "uint8", Marker: true},
			{Name: "_", GoType: PaddingType},
			{Name: "unknown", GoType: "Mystery"},
		},
	}

	analyzed, err := Analyze(layout, NewTypeRegistry())
	require.Error(t, err)
	require.Len(t, analyzed.Errors, 6)
	assert.Contains(t, analyzed.Errors[0], "wide: bits=9 exceeds the 8 bits of uint8")
	assert.Contains(t, analyzed.Errors[1], "signed types not supported")
	assert.Contains(t, analyzed.Errors[2], "must be unexported")
	assert.Contains(t, analyzed.Errors[3], "only valid in packed records")
	assert.Contains(t, analyzed.Errors[4], "padding requires bits=N")
	assert.Contains(t, analyzed.Errors[5], "unknown type: Mystery")
}

func TestAnalyze_ReservedName(t *testing.T) {
	layout := &parser.TypeLayout{
		Name:   "Clash",
		Anno:   &parser.TypeAnnotation{Filled: true},
		BufLen: -1,
		Fields: []parser.Field{
			{Name: "values", GoType: "uint8"},
		},
	}

	analyzed, err := Analyze(layout, NewTypeRegistry())
	require.Error(t, err)
	require.Len(t, analyzed.Errors, 1)
	assert.Contains(t, analyzed.Errors[0], `field name "values" is used by generated methods`)
}

func TestAnalyze_WidthAssertion(t *testing.T) {
	layout := &parser.TypeLayout{
		Name:   "Flags",
		Anno:   &parser.TypeAnnotation{Filled: false},
		BufLen: -1,
		Fields: []parser.Field{
			{Name: "on", GoType: "bool", Tag: tag(2, 0)},
			{Name: "n", GoType: "uint8", Tag: tag(4, 0)},
		},
	}

	analyzed, err := Analyze(layout, NewTypeRegistry())
	require.Error(t, err)
	require.Len(t, analyzed.Errors, 1)
	assert.Contains(t, analyzed.Errors[0], "width_mismatch at Flags.on")
}

func TestAnalyze_Packed(t *testing.T) {
	reg := NewTypeRegistry()
	reg.RegisterEnum(&parser.EnumType{
		Name:       "Kind",
		Underlying: "uint8",
		Variants:   []parser.Variant{{Name: "KindA", Value: 0}, {Name: "KindB", Value: 1}, {Name: "KindC", Value: 2}},
	})

	layout := &parser.TypeLayout{
		Name:   "Header",
		Anno:   &parser.TypeAnnotation{Bits: 16, Repr: "packed", Order: "msb"},
		BufLen: 2,
		Fields: []parser.Field{
			{Name: "version", GoType: "uint8", Marker: true, Tag: tag(3, 0)},
			{Name: "kind", GoType: "Kind", Marker: true},
			{Name: "_", GoType: PaddingType, Marker: true, Tag: tag(4, 0)},
		},
	}

	analyzed, err := Analyze(layout, reg)
	require.NoError(t, err)
	assert.Equal(t, bitfield.ReprPacked, analyzed.Config.Repr)
	assert.Equal(t, bitfield.MSBFirst, analyzed.Config.Order)
	require.NotNil(t, analyzed.Fields[1].Enum)
	assert.Equal(t, 2, analyzed.Fields[1].Spec.Domain.Bits())
	assert.True(t, analyzed.Fields[2].Padding())
	assert.Equal(t, []int{6, 4, 0}, analyzed.Schema.Layout().Offsets)
}

func TestAnalyze_PackedBuffer(t *testing.T) {
	fields := []parser.Field{{Name: "v", GoType: "uint16", Marker: true, Tag: tag(12, 0)}}

	tests := []struct {
		name   string
		bufLen int
		want   string
	}{
		{"missing", -1, "packed record needs a buf [N]byte field"},
		{"short", 1, "buf has 1 bytes, layout needs 2"},
		{"long", 3, "buf has 3 bytes, layout needs 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := &parser.TypeLayout{
				Name:   "P",
				Anno:   &parser.TypeAnnotation{Repr: "packed"},
				BufLen: tt.bufLen,
				Fields: fields,
			}
			analyzed, err := Analyze(layout, NewTypeRegistry())
			require.Error(t, err)
			assert.Contains(t, analyzed.Errors, tt.want)
		})
	}

	_, err := Analyze(&parser.TypeLayout{
		Name:   "U",
		Anno:   &parser.TypeAnnotation{},
		BufLen: 2,
		Fields: []parser.Field{{Name: "v", GoType: "uint16", Tag: tag(12, 0)}},
	}, NewTypeRegistry())
	assert.ErrorContains(t, err, "buf is reserved for packed records")
}

func TestAnalyze_Nil(t *testing.T) {
	_, err := Analyze(nil, NewTypeRegistry())
	assert.Error(t, err)
}

const source = `package demo

import "github.com/alexhholmes/bitfield"

// @bitenum
type Mode uint8

const (
	ModeOff Mode = iota
	ModeOn
	ModeAuto
)

type Level Mode

type Weight uint16

// @bitfield filled=false
type Setting struct {
	mode   Mode
	level  Level
	weight Weight ` + "`bitfield:\"bits=9\"`" + `
	_      bitfield.Padding ` + "`bitfield:\"bits=2\"`" + `
}

// @bitfield
type Broken struct {
	x uint8 ` + "`bitfield:\"bits=3\"`" + `
}
`

func TestAnalyzeFile(t *testing.T) {
	file, err := parser.ParseSource("demo.go", source)
	require.NoError(t, err)

	analyzed, err := AnalyzeFile(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken has 1 errors")
	require.Len(t, analyzed, 2)

	setting := analyzed[0]
	require.True(t, setting.IsValid(), setting.Errors)
	assert.Equal(t, 15, setting.Schema.Layout().DeclaredBits)
	assert.Equal(t, "Mode", setting.Fields[1].Enum.Name)
	assert.Equal(t, bitfield.DomainUint, setting.Fields[2].Spec.Domain.Kind())
	assert.Equal(t, 9, setting.Fields[2].Spec.Domain.Bits())
	assert.Equal(t, bitfield.SkipAll, setting.Fields[3].Spec.Skip)

	assert.False(t, analyzed[1].IsValid())
}
