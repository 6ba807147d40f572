package bitfield

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Schema is a validated, immutable record declaration. It is safe for
// concurrent use; records built from it are not.
type Schema struct {
	name   string
	cfg    Config
	fields []Field
	layout Layout

	slots  []int // field index to Unpacked slot, -1 for padding
	nslots int
	index  map[string]int

	encodeMask []byte // bits emitted when encoding
	decodeMask []byte // bits kept when decoding
}

// NewSchema plans and validates a record declaration. Fields are laid out in
// the order given. A rejected schema reports every problem found; each one
// matches ErrSchema.
func NewSchema(name string, cfg Config, fields ...Field) (*Schema, error) {
	lay, err := Plan(cfg, fields)
	if err != nil {
		for _, e := range multierr.Errors(err) {
			var be *Error
			if errors.As(e, &be) {
				be.Schema = name
			}
		}
		Logger().Debug("schema rejected", zap.String("schema", name), zap.Error(err))
		return nil, err
	}

	s := &Schema{
		name:       name,
		cfg:        cfg,
		fields:     slices.Clone(fields),
		layout:     lay,
		slots:      make([]int, len(fields)),
		index:      make(map[string]int, len(fields)),
		encodeMask: make([]byte, lay.Bytes),
		decodeMask: make([]byte, lay.Bytes),
	}

	for i, f := range s.fields {
		if f.Name != "_" {
			s.index[f.Name] = i
		}
		if f.Skip.All() {
			s.slots[i] = -1
		} else {
			s.slots[i] = s.nslots
			s.nslots++
		}

		ones := ^uint64(0) >> (64 - lay.Widths[i])
		if !f.Skip.Getters() {
			writeBits(s.encodeMask, lay.Offsets[i], lay.Widths[i], ones)
		}
		if !f.Skip.Setters() {
			writeBits(s.decodeMask, lay.Offsets[i], lay.Widths[i], ones)
		}
	}

	Logger().Debug("planned layout",
		zap.String("schema", name),
		zap.Int("fields", len(fields)),
		zap.Int("bits", lay.DeclaredBits),
		zap.Int("bytes", lay.Bytes),
		zap.Int("backing", lay.BackingWidth),
		zap.Stringer("repr", cfg.Repr),
	)

	return s, nil
}

// MustSchema is like NewSchema but panics on an invalid declaration. It is
// meant for package-level schema variables.
func MustSchema(name string, cfg Config, fields ...Field) *Schema {
	s, err := NewSchema(name, cfg, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Name() string {
	return s.name
}

func (s *Schema) Config() Config {
	return s.cfg
}

// Layout returns a copy of the planned layout.
func (s *Schema) Layout() Layout {
	lay := s.layout
	lay.Offsets = slices.Clone(lay.Offsets)
	lay.Widths = slices.Clone(lay.Widths)
	return lay
}

func (s *Schema) NumFields() int {
	return len(s.fields)
}

// Field returns the i-th declared field.
func (s *Schema) Field(i int) Field {
	return s.field(i)
}

// Lookup returns the index of the named field.
func (s *Schema) Lookup(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Check reports whether v may be stored in field i.
func (s *Schema) Check(i int, v uint64) error {
	f := s.field(i)
	if err := f.Domain.Check(v); err != nil {
		return at(err, PhaseSet, s.name, f.Name)
	}
	return nil
}

// New returns a zero-initialized record in the schema's representation.
func (s *Schema) New() Record {
	if s.cfg.Repr == ReprPacked {
		return NewPacked(s)
	}
	return NewUnpacked(s)
}

// FromBytes decodes a record from its little-endian byte form.
func (s *Schema) FromBytes(b []byte) (Record, error) {
	if s.cfg.Repr == ReprPacked {
		p := NewPacked(s)
		if err := s.DecodePacked(p.buf, b); err != nil {
			return nil, err
		}
		return p, nil
	}
	vals, err := s.DecodeBytes(b)
	if err != nil {
		return nil, err
	}
	u := NewUnpacked(s)
	u.load(vals)
	return u, nil
}

// FromInt decodes a record from its integer form.
func (s *Schema) FromInt(v Uint128) (Record, error) {
	if err := s.requireBacking(); err != nil {
		return nil, err
	}
	if s.cfg.Repr == ReprPacked {
		p := NewPacked(s)
		if err := s.DecodePackedInt(p.buf, v); err != nil {
			return nil, err
		}
		return p, nil
	}
	vals, err := s.DecodeInt(v)
	if err != nil {
		return nil, err
	}
	u := NewUnpacked(s)
	u.load(vals)
	return u, nil
}

func (s *Schema) field(i int) Field {
	if i < 0 || i >= len(s.fields) {
		panic(&Error{
			Phase:  PhaseAccess,
			Kind:   KindInvalidField,
			Schema: s.name,
			Detail: fmt.Sprintf("field index %d out of range [0, %d)", i, len(s.fields)),
		})
	}
	return s.fields[i]
}

func (s *Schema) getter(i int) Field {
	f := s.field(i)
	if f.Skip.Getters() {
		panic(&Error{Phase: PhaseAccess, Kind: KindSuppressed, Schema: s.name, Field: f.Name, Detail: "getter is skipped"})
	}
	return f
}

func (s *Schema) setter(i int) Field {
	f := s.field(i)
	if f.Skip.Setters() {
		panic(&Error{Phase: PhaseAccess, Kind: KindSuppressed, Schema: s.name, Field: f.Name, Detail: "setter is skipped"})
	}
	return f
}

func (s *Schema) requireBacking() error {
	if s.layout.BackingWidth == 0 {
		return &Error{
			Phase:  PhaseDecode,
			Kind:   KindUnsupported,
			Schema: s.name,
			Detail: fmt.Sprintf("%d bits have no integer form", s.layout.DeclaredBits),
		}
	}
	return nil
}

func (s *Schema) tooWide(phase Phase, v Uint128) error {
	return outOfBounds(phase, s.name, "", v, "value %s uses %d bits but the schema holds %d", v, v.Len(), s.layout.DeclaredBits)
}

// Format renders field values in the form records use for String. Fields
// without a getter are left out.
func (s *Schema) Format(vals []uint64) string {
	return s.format(func(i int) uint64 { return vals[i] })
}

// FormatPacked is Format reading the fields of a packed buffer.
func (s *Schema) FormatPacked(buf []byte) string {
	return s.format(func(i int) uint64 { return s.ReadField(buf, i) })
}

// format renders the readable fields of a record.
func (s *Schema) format(get func(i int) uint64) string {
	var b strings.Builder
	b.WriteString(s.name)
	b.WriteByte('{')
	first := true
	for i, f := range s.fields {
		if f.Skip.Getters() {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		v := get(i)
		b.WriteString(f.Name)
		b.WriteString(": ")
		if f.Domain.Kind() == DomainBool {
			fmt.Fprintf(&b, "%t", v != 0)
		} else {
			fmt.Fprintf(&b, "%d", v)
		}
	}
	b.WriteByte('}')
	return b.String()
}
