package analyzer

import (
	"fmt"

	"github.com/alexhholmes/bitfield"
	"github.com/alexhholmes/bitfield/internal/parser"
)

// PaddingType is the marker type of padding fields
const PaddingType = "bitfield.Padding"

// BitsOf returns the width in bits of a built-in Go type usable as a field.
// Booleans are one bit wide.
func BitsOf(goType string) (int, error) {
	switch goType {
	case "bool":
		return 1, nil
	case "uint8", "byte":
		return 8, nil
	case "uint16":
		return 16, nil
	case "uint32":
		return 32, nil
	case "uint64", "uint", "uintptr":
		return 64, nil
	case "int8", "int16", "int32", "int64", "int", "rune":
		return 0, fmt.Errorf("signed types not supported: %s", goType)
	case "float32", "float64", "complex64", "complex128", "string":
		return 0, fmt.Errorf("type has no bit layout: %s", goType)
	}
	return 0, fmt.Errorf("unknown type: %s (use type registry for enums)", goType)
}

// TypeRegistry tracks @bitenum types and named types for field resolution
type TypeRegistry struct {
	enums   map[string]*parser.EnumType
	aliases map[string]string // alias → underlying type
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		enums:   make(map[string]*parser.EnumType),
		aliases: make(map[string]string),
	}
}

// RegisterEnum adds an enum type with its variants
func (r *TypeRegistry) RegisterEnum(e *parser.EnumType) {
	r.enums[e.Name] = e
}

// RegisterAlias adds a named type mapping (e.g., type Weight uint16)
func (r *TypeRegistry) RegisterAlias(alias, underlying string) {
	r.aliases[alias] = underlying
}

// LookupEnum returns a registered enum type
func (r *TypeRegistry) LookupEnum(name string) (*parser.EnumType, bool) {
	e, ok := r.enums[name]
	return e, ok
}

// ResolveType resolves named types to their underlying types
// Returns the original type if not an alias
func (r *TypeRegistry) ResolveType(goType string) string {
	seen := make(map[string]bool)
	for !seen[goType] {
		seen[goType] = true
		underlying, ok := r.aliases[goType]
		if !ok {
			break
		}
		goType = underlying
	}
	return goType
}

// Domain resolves a field type and its optional bits= width into a value
// domain. For unsigned integers bits selects the width; otherwise the width
// is the type's own.
func (r *TypeRegistry) Domain(goType string, bits int) (bitfield.Domain, error) {
	if goType == PaddingType {
		if bits == 0 {
			return bitfield.Domain{}, fmt.Errorf("padding requires bits=N")
		}
		return bitfield.Uint(bits), nil
	}

	if e, ok := r.enums[goType]; ok {
		discriminants := make([]uint64, len(e.Variants))
		for i, v := range e.Variants {
			discriminants[i] = v.Value
		}
		return bitfield.Enum(e.Name, discriminants...), nil
	}

	resolved := r.ResolveType(goType)
	if e, ok := r.enums[resolved]; ok {
		return r.Domain(e.Name, bits)
	}

	width, err := BitsOf(resolved)
	if err != nil {
		return bitfield.Domain{}, err
	}
	if resolved == "bool" {
		return bitfield.Bool(), nil
	}
	if bits > width {
		return bitfield.Domain{}, fmt.Errorf("bits=%d exceeds the %d bits of %s", bits, width, goType)
	}
	if bits == 0 {
		bits = width
	}
	return bitfield.Uint(bits), nil
}
