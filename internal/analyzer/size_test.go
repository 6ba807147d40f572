package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexhholmes/bitfield"
	"github.com/alexhholmes/bitfield/internal/parser"
)

func TestBitsOf(t *testing.T) {
	tests := []struct {
		goType  string
		want    int
		wantErr bool
	}{
		{"bool", 1, false},
		{"uint8", 8, false},
		{"byte", 8, false},
		{"uint16", 16, false},
		{"uint32", 32, false},
		{"uint64", 64, false},
		{"uint", 64, false},
		{"int8", 0, true},
		{"float32", 0, true},
		{"string", 0, true},
		{"Custom", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.goType, func(t *testing.T) {
			got, err := BitsOf(tt.goType)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeRegistry(t *testing.T) {
	reg := NewTypeRegistry()
	reg.RegisterEnum(&parser.EnumType{
		Name:     "Mode",
		Variants: []parser.Variant{{Name: "A", Value: 0}, {Name: "B", Value: 1}, {Name: "C", Value: 3}},
	})
	reg.RegisterAlias("Weight", "uint16")
	reg.RegisterAlias("Heavy", "Weight")
	reg.RegisterAlias("Level", "Mode")
	reg.RegisterAlias("Loop", "Loop")

	assert.Equal(t, "uint16", reg.ResolveType("Heavy"))
	assert.Equal(t, "Loop", reg.ResolveType("Loop"))

	d, err := reg.Domain("Heavy", 12)
	require.NoError(t, err)
	assert.Equal(t, bitfield.Uint(12), d)

	d, err = reg.Domain("Weight", 0)
	require.NoError(t, err)
	assert.Equal(t, 16, d.Bits())

	d, err = reg.Domain("Mode", 0)
	require.NoError(t, err)
	assert.Equal(t, bitfield.DomainEnum, d.Kind())
	assert.Equal(t, []uint64{0, 1, 3}, d.Variants())

	d, err = reg.Domain("Level", 0)
	require.NoError(t, err)
	assert.Equal(t, "Mode", d.Name())

	d, err = reg.Domain("bool", 0)
	require.NoError(t, err)
	assert.Equal(t, bitfield.Bool(), d)

	_, err = reg.Domain("uint8", 9)
	assert.Error(t, err)

	d, err = reg.Domain(PaddingType, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, d.Bits())
}
