package bitfield

import (
	"fmt"

	"go.uber.org/multierr"
)

// Skip suppresses generated accessors of a field.
type Skip uint8

const (
	SkipGetters Skip = 1 << iota // no getter; the field encodes as zero bits
	SkipSetters                  // no setter; the field decodes as zero
	SkipAll     = SkipGetters | SkipSetters

	SkipNone Skip = 0
)

// Getters reports whether the getter is suppressed.
func (s Skip) Getters() bool { return s&SkipGetters != 0 }

// Setters reports whether the setter is suppressed.
func (s Skip) Setters() bool { return s&SkipSetters != 0 }

// All reports whether the field is pure padding.
func (s Skip) All() bool { return s == SkipAll }

func (s Skip) String() string {
	switch s {
	case SkipNone:
		return "none"
	case SkipGetters:
		return "getters"
	case SkipSetters:
		return "setters"
	case SkipAll:
		return "all"
	default:
		return fmt.Sprintf("Skip(%d)", uint8(s))
	}
}

// Repr selects the in-memory representation of records.
type Repr uint8

const (
	ReprUnpacked Repr = iota // one slot per field
	ReprPacked               // one flat byte buffer
)

func (r Repr) String() string {
	switch r {
	case ReprUnpacked:
		return "unpacked"
	case ReprPacked:
		return "packed"
	default:
		return "unknown"
	}
}

// BitOrder selects where field 0 sits in the integer mapping.
type BitOrder uint8

const (
	LSBFirst BitOrder = iota // field 0 at bit 0
	MSBFirst                 // field 0 at the top of the field bits, padding above
)

func (o BitOrder) String() string {
	switch o {
	case LSBFirst:
		return "lsb"
	case MSBFirst:
		return "msb"
	default:
		return "unknown"
	}
}

// Field describes one field of a schema in declaration order.
type Field struct {
	Name   string
	Domain Domain
	Bits   int // asserted width; 0 means no assertion
	Skip   Skip
}

// Config holds the schema-level layout options.
type Config struct {
	Bits   int // pinned total width; 0 uses the natural sum of field widths
	Filled bool
	Repr   Repr
	Order  BitOrder
}

// Layout is the planned position of every field.
type Layout struct {
	Offsets      []int
	Widths       []int
	TotalBits    int // natural sum of field widths
	DeclaredBits int // pinned width, or TotalBits when unpinned
	Bytes        int // ceil(DeclaredBits / 8)
	BackingWidth int // smallest of 8/16/32/64/128 holding DeclaredBits; 0 if none
}

// Plan computes the layout of fields under cfg and validates it. Every
// problem found is reported; the returned error combines them.
//
// With a pinned width N a filled schema must use exactly N bits and an
// unfilled one strictly fewer. Without a pin a filled schema must use a
// multiple of 8 bits and an unfilled one must not, so that an exact byte fit
// is never declared by accident.
func Plan(cfg Config, fields []Field) (Layout, error) {
	var errs error

	lay := Layout{
		Offsets: make([]int, len(fields)),
		Widths:  make([]int, len(fields)),
	}

	if len(fields) == 0 {
		errs = multierr.Append(errs, schemaError(KindInvalidField, "", "schema declares no fields"))
	}

	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		name := f.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
			errs = multierr.Append(errs, schemaError(KindInvalidField, name, "field has no name"))
		} else if name != "_" && seen[name] {
			errs = multierr.Append(errs, schemaError(KindInvalidField, name, "duplicate field name"))
		}
		seen[name] = true

		if err := f.Domain.Validate(); err != nil {
			errs = multierr.Append(errs, &Error{
				Phase:  PhaseSchema,
				Kind:   KindInvalidDomain,
				Field:  name,
				Detail: err.Error(),
				Cause:  err,
			})
			continue
		}

		w := f.Domain.Bits()
		if f.Bits != 0 && f.Bits != w {
			errs = multierr.Append(errs, schemaError(KindWidthMismatch, name,
				"declared %d bits but %s is %d bits wide", f.Bits, f.Domain, w))
		}
		lay.Widths[i] = w
		lay.TotalBits += w
	}

	switch {
	case cfg.Bits < 0:
		errs = multierr.Append(errs, schemaError(KindWidthMismatch, "", "bits must be positive, got %d", cfg.Bits))
	case cfg.Bits > 0:
		lay.DeclaredBits = cfg.Bits
		if cfg.Filled && lay.TotalBits != cfg.Bits {
			errs = multierr.Append(errs, schemaError(KindWidthMismatch, "",
				"fields use %d bits but a filled schema of bits=%d must use exactly %d", lay.TotalBits, cfg.Bits, cfg.Bits))
		}
		if !cfg.Filled && lay.TotalBits >= cfg.Bits {
			errs = multierr.Append(errs, schemaError(KindFillCheck, "",
				"fields use %d bits but an unfilled schema of bits=%d must use fewer", lay.TotalBits, cfg.Bits))
		}
	default:
		lay.DeclaredBits = lay.TotalBits
		if cfg.Filled && lay.TotalBits%8 != 0 {
			errs = multierr.Append(errs, schemaError(KindFillCheck, "",
				"fields use %d bits, which is not a multiple of 8 as a filled schema requires", lay.TotalBits))
		}
		if !cfg.Filled && lay.TotalBits > 0 && lay.TotalBits%8 == 0 {
			errs = multierr.Append(errs, schemaError(KindFillCheck, "",
				"fields use %d bits, an exact multiple of 8, but the schema is unfilled", lay.TotalBits))
		}
	}

	if cfg.Repr != ReprUnpacked && cfg.Repr != ReprPacked {
		errs = multierr.Append(errs, schemaError(KindUnsupported, "", "unknown representation %d", cfg.Repr))
	}
	if cfg.Order != LSBFirst && cfg.Order != MSBFirst {
		errs = multierr.Append(errs, schemaError(KindUnsupported, "", "unknown bit order %d", cfg.Order))
	}
	if cfg.Repr == ReprUnpacked && lay.DeclaredBits > 128 {
		errs = multierr.Append(errs, schemaError(KindUnsupported, "",
			"%d bits exceed the 128-bit integer backing of the unpacked representation", lay.DeclaredBits))
	}

	if errs != nil {
		return Layout{}, errs
	}

	lay.Bytes = (lay.DeclaredBits + 7) / 8
	lay.BackingWidth = backingWidth(lay.DeclaredBits)

	off := 0
	for i, w := range lay.Widths {
		if cfg.Order == MSBFirst {
			lay.Offsets[i] = lay.TotalBits - off - w
		} else {
			lay.Offsets[i] = off
		}
		off += w
	}

	return lay, nil
}

func backingWidth(bits int) int {
	for _, w := range []int{8, 16, 32, 64, 128} {
		if bits <= w {
			return w
		}
	}
	return 0
}

// TopByteMask returns the bits of the last byte that lie inside the declared
// width. Decoding rejects a last byte with any other bit set.
func (l Layout) TopByteMask() byte {
	used := l.DeclaredBits - 8*(l.Bytes-1)
	return 0xFF >> (8 - used)
}
