package analyzer

import (
	"fmt"
	"unicode"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/alexhholmes/bitfield"
	"github.com/alexhholmes/bitfield/internal/parser"
)

// Field is a declared field resolved against the core schema
type Field struct {
	parser.Field
	Index int              // Position in the schema
	Spec  bitfield.Field   // Resolved descriptor
	Enum  *parser.EnumType // Set for enum fields
}

// Padding reports whether the field has no accessors and no slot
func (f Field) Padding() bool {
	return f.Spec.Skip.All()
}

// AnalyzedLayout contains a declaration resolved into a validated schema
type AnalyzedLayout struct {
	TypeName string
	Decl     *parser.TypeLayout
	Config   bitfield.Config
	Fields   []Field
	Schema   *bitfield.Schema // nil when Errors is not empty
	Errors   []string         // Validation errors
}

// Analyze resolves a parsed type into a schema. Problems are collected in
// Errors; the returned error summarizes them.
func Analyze(layout *parser.TypeLayout, registry *TypeRegistry) (*AnalyzedLayout, error) {
	if layout == nil {
		return nil, fmt.Errorf("layout is nil")
	}

	a := &AnalyzedLayout{
		TypeName: layout.Name,
		Decl:     layout,
		Config:   config(layout.Anno),
	}

	// Phase 1: Resolve fields into descriptors with distinct accessors
	packed := a.Config.Repr == bitfield.ReprPacked
	for i, field := range layout.Fields {
		f, err := resolveField(i, field, packed, registry)
		if err != nil {
			a.Errors = append(a.Errors, fmt.Sprintf("%s: %v", field.Name, err))
			continue
		}
		a.Fields = append(a.Fields, f)
	}
	a.Errors = append(a.Errors, checkAccessors(a.Fields)...)

	// Phase 2: Check the backing buffer of packed records
	switch {
	case packed && layout.BufLen < 0:
		a.Errors = append(a.Errors, fmt.Sprintf("packed record needs a %s [N]byte field", parser.BufField))
	case !packed && layout.BufLen >= 0:
		a.Errors = append(a.Errors, fmt.Sprintf("%s is reserved for packed records", parser.BufField))
	}

	if len(a.Errors) > 0 {
		return a, a.err()
	}

	// Phase 3: Plan and validate the layout
	specs := make([]bitfield.Field, len(a.Fields))
	for i, f := range a.Fields {
		specs[i] = f.Spec
	}
	schema, err := bitfield.NewSchema(layout.Name, a.Config, specs...)
	if err != nil {
		for _, e := range multierr.Errors(err) {
			a.Errors = append(a.Errors, e.Error())
		}
		return a, a.err()
	}

	// Phase 4: The buffer must hold exactly the layout
	if packed && layout.BufLen != schema.Layout().Bytes {
		a.Errors = append(a.Errors, fmt.Sprintf("%s has %d bytes, layout needs %d",
			parser.BufField, layout.BufLen, schema.Layout().Bytes))
		return a, a.err()
	}

	a.Schema = schema
	logger.Debug("analyzed type",
		zap.String("type", layout.Name),
		zap.Int("fields", len(a.Fields)),
		zap.Int("bits", schema.Layout().DeclaredBits),
	)
	return a, nil
}

// AnalyzeFile registers the enums and named types of a file and analyzes
// each of its @bitfield types
func AnalyzeFile(file *parser.File) ([]*AnalyzedLayout, error) {
	registry := NewTypeRegistry()
	for _, e := range file.Enums {
		registry.RegisterEnum(e)
	}
	for alias, underlying := range file.Aliases {
		registry.RegisterAlias(alias, underlying)
	}

	var (
		out  []*AnalyzedLayout
		errs error
	)
	for _, t := range file.Types {
		a, err := Analyze(t, registry)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", t.Pos, err))
		}
		out = append(out, a)
	}
	return out, errs
}

func (a *AnalyzedLayout) err() error {
	logger.Debug("type rejected", zap.String("type", a.TypeName), zap.Strings("errors", a.Errors))
	return fmt.Errorf("%s has %d errors: %v", a.TypeName, len(a.Errors), a.Errors)
}

func config(anno *parser.TypeAnnotation) bitfield.Config {
	cfg := bitfield.Config{
		Bits:   anno.Bits,
		Filled: anno.Filled,
	}
	if anno.Repr == "packed" {
		cfg.Repr = bitfield.ReprPacked
	}
	if anno.Order == "msb" {
		cfg.Order = bitfield.MSBFirst
	}
	return cfg
}

// reserved holds the unexported method names of generated records
var reserved = map[string]bool{
	"values": true,
	"load":   true,
}

func resolveField(i int, field parser.Field, packed bool, registry *TypeRegistry) (Field, error) {
	f := Field{Field: field, Index: i}

	if field.Marker != packed {
		if packed {
			return f, fmt.Errorf("packed fields must be declared as bitfield.Of[%s]", field.GoType)
		}
		return f, fmt.Errorf("bitfield.Of is only valid in packed records")
	}

	name := field.Name
	if name != "_" && unicode.IsUpper([]rune(name)[0]) {
		return f, fmt.Errorf("field must be unexported, its accessors take the exported name")
	}
	if reserved[name] {
		return f, fmt.Errorf("field name %q is used by generated methods", name)
	}

	var bits int
	var skip bitfield.Skip
	if field.Tag != nil {
		bits, skip = field.Tag.Bits, field.Tag.Skip
	}
	if name == "_" || field.GoType == PaddingType {
		skip = bitfield.SkipAll
	}

	domain, err := registry.Domain(field.GoType, bits)
	if err != nil {
		return f, err
	}

	if e, ok := registry.LookupEnum(field.GoType); ok {
		f.Enum = e
	} else if e, ok := registry.LookupEnum(registry.ResolveType(field.GoType)); ok {
		f.Enum = e
	}

	f.Spec = bitfield.Field{
		Name:   name,
		Domain: domain,
		Bits:   bits,
		Skip:   skip,
	}
	return f, nil
}

// IsValid returns true if layout has no errors
func (a *AnalyzedLayout) IsValid() bool {
	return len(a.Errors) == 0
}
