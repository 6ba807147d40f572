package codegen

import (
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/alexhholmes/bitfield"
	"github.com/alexhholmes/bitfield/internal/analyzer"
)

// Generator generates typed accessor code for one analyzed record type
type Generator struct {
	analyzed *analyzer.AnalyzedLayout
	layout   bitfield.Layout
	recv     string // receiver name
	schema   string // name of the package-level schema variable
}

// NewGenerator creates a new code generator
func NewGenerator(analyzed *analyzer.AnalyzedLayout) *Generator {
	name := analyzed.TypeName
	return &Generator{
		analyzed: analyzed,
		recv:     receiverName(name),
		schema:   lowerFirst(name) + "Schema",
	}
}

func (g *Generator) packed() bool {
	return g.analyzed.Config.Repr == bitfield.ReprPacked
}

// Generate returns the generated code for this type (without package header/imports)
func (g *Generator) Generate() (string, error) {
	if !g.analyzed.IsValid() || g.analyzed.Schema == nil {
		return "", fmt.Errorf("%s: cannot generate an invalid layout: %v", g.analyzed.TypeName, g.analyzed.Errors)
	}
	g.layout = g.analyzed.Schema.Layout()

	var out strings.Builder

	out.WriteString(g.GenerateSchema())
	out.WriteString("\n")
	out.WriteString(g.generateConstructor())

	for _, f := range g.analyzed.Fields {
		if f.Padding() {
			continue
		}
		out.WriteString(g.generateAccessors(f))
	}

	if !g.packed() {
		out.WriteString(g.generateValues())
	}
	out.WriteString(g.generateBytes())
	out.WriteString(g.generateInt())
	out.WriteString(g.generateUpdateByte())
	out.WriteString(g.generateString())

	logger.Debug("generated type",
		zap.String("type", g.analyzed.TypeName),
		zap.Stringer("repr", g.analyzed.Config.Repr),
		zap.Int("fields", len(g.analyzed.Fields)),
	)

	return out.String(), nil
}

// GenerateSchema generates the package-level schema variable
func (g *Generator) GenerateSchema() string {
	var code strings.Builder

	code.WriteString(fmt.Sprintf("var %s = bitfield.MustSchema(%q, %s,\n", g.schema, g.analyzed.TypeName, configLiteral(g.analyzed.Config)))
	for _, f := range g.analyzed.Fields {
		code.WriteString(fmt.Sprintf("\tbitfield.Field{Name: %q, Domain: %s", f.Spec.Name, g.domainExpr(f)))
		if f.Spec.Bits != 0 {
			code.WriteString(fmt.Sprintf(", Bits: %d", f.Spec.Bits))
		}
		if f.Spec.Skip != bitfield.SkipNone {
			code.WriteString(", Skip: " + skipExpr(f.Spec.Skip))
		}
		code.WriteString("},\n")
	}
	code.WriteString(")\n")

	return code.String()
}

func configLiteral(cfg bitfield.Config) string {
	var parts []string
	if cfg.Bits != 0 {
		parts = append(parts, fmt.Sprintf("Bits: %d", cfg.Bits))
	}
	if cfg.Filled {
		parts = append(parts, "Filled: true")
	}
	if cfg.Repr == bitfield.ReprPacked {
		parts = append(parts, "Repr: bitfield.ReprPacked")
	}
	if cfg.Order == bitfield.MSBFirst {
		parts = append(parts, "Order: bitfield.MSBFirst")
	}
	return "bitfield.Config{" + strings.Join(parts, ", ") + "}"
}

func (g *Generator) domainExpr(f analyzer.Field) string {
	d := f.Spec.Domain
	switch d.Kind() {
	case bitfield.DomainBool:
		return "bitfield.Bool()"
	case bitfield.DomainEnum:
		args := []string{fmt.Sprintf("%q", d.Name())}
		if f.Enum != nil {
			for _, v := range f.Enum.Variants {
				args = append(args, fmt.Sprintf("uint64(%s)", v.Name))
			}
		} else {
			for _, v := range d.Variants() {
				args = append(args, fmt.Sprintf("%d", v))
			}
		}
		return "bitfield.Enum(" + strings.Join(args, ", ") + ")"
	default:
		return fmt.Sprintf("bitfield.Uint(%d)", d.Bits())
	}
}

func skipExpr(s bitfield.Skip) string {
	switch s {
	case bitfield.SkipGetters:
		return "bitfield.SkipGetters"
	case bitfield.SkipSetters:
		return "bitfield.SkipSetters"
	default:
		return "bitfield.SkipAll"
	}
}

// generateConstructor generates New<TypeName>(), the all-zero record
func (g *Generator) generateConstructor() string {
	var code strings.Builder
	name := g.analyzed.TypeName

	code.WriteString(fmt.Sprintf("// New%s returns a %s with every field zero.\n", name, name))
	code.WriteString(fmt.Sprintf("func New%s() %s {\n", name, name))
	code.WriteString(fmt.Sprintf("\treturn %s{}\n", name))
	code.WriteString("}\n\n")

	return code.String()
}

// generateAccessors generates the getter, setter and with method of a field
func (g *Generator) generateAccessors(f analyzer.Field) string {
	var code strings.Builder
	name := g.analyzed.TypeName
	method := analyzer.AccessorName(f.Name)
	goType := f.GoType

	if !f.Spec.Skip.Getters() {
		code.WriteString(fmt.Sprintf("// %s returns the %s field.\n", method, f.Name))
		code.WriteString(fmt.Sprintf("func (%s *%s) %s() %s {\n", g.recv, name, method, goType))
		code.WriteString(fmt.Sprintf("\treturn %s\n", g.readExpr(f)))
		code.WriteString("}\n\n")
	}

	if f.Spec.Skip.Setters() {
		return code.String()
	}

	code.WriteString(fmt.Sprintf("// Set%s sets the %s field. A value outside %s is rejected\n", method, f.Name, f.Spec.Domain))
	code.WriteString("// and leaves the record unchanged.\n")
	code.WriteString(fmt.Sprintf("func (%s *%s) Set%s(v %s) error {\n", g.recv, name, method, goType))
	if g.packed() {
		code.WriteString(fmt.Sprintf("\treturn %s.WriteField(%s.buf[:], %d, %s)\n", g.schema, g.recv, f.Index, toUint64("v", f)))
	} else {
		code.WriteString(fmt.Sprintf("\tif err := %s.Check(%d, %s); err != nil {\n", g.schema, f.Index, toUint64("v", f)))
		code.WriteString("\t\treturn err\n")
		code.WriteString("\t}\n")
		code.WriteString(fmt.Sprintf("\t%s.%s = v\n", g.recv, f.Name))
		code.WriteString("\treturn nil\n")
	}
	code.WriteString("}\n\n")

	code.WriteString(fmt.Sprintf("// With%s returns a copy with the %s field set.\n", method, f.Name))
	code.WriteString(fmt.Sprintf("func (%s *%s) With%s(v %s) (%s, error) {\n", g.recv, name, method, goType, name))
	code.WriteString(fmt.Sprintf("\tout := *%s\n", g.recv))
	code.WriteString(fmt.Sprintf("\tif err := out.Set%s(v); err != nil {\n", method))
	code.WriteString(fmt.Sprintf("\t\treturn %s{}, err\n", name))
	code.WriteString("\t}\n")
	code.WriteString("\treturn out, nil\n")
	code.WriteString("}\n\n")

	return code.String()
}

// readExpr returns the expression reading a field as its Go type
func (g *Generator) readExpr(f analyzer.Field) string {
	if !g.packed() {
		return fmt.Sprintf("%s.%s", g.recv, f.Name)
	}
	read := fmt.Sprintf("%s.ReadField(%s.buf[:], %d)", g.schema, g.recv, f.Index)
	return fromUint64(read, f)
}

func toUint64(v string, f analyzer.Field) string {
	if f.Spec.Domain.Kind() == bitfield.DomainBool {
		return fmt.Sprintf("bitfield.FromBool(%s)", v)
	}
	return fmt.Sprintf("uint64(%s)", v)
}

func fromUint64(v string, f analyzer.Field) string {
	if f.Spec.Domain.Kind() == bitfield.DomainBool {
		return v + " != 0"
	}
	return fmt.Sprintf("%s(%s)", f.GoType, v)
}

// generateValues generates the conversion between an unpacked record and
// its per-field values
func (g *Generator) generateValues() string {
	var code strings.Builder
	name := g.analyzed.TypeName

	code.WriteString(fmt.Sprintf("func (%s *%s) values() []uint64 {\n", g.recv, name))
	code.WriteString("\treturn []uint64{\n")
	for _, f := range g.analyzed.Fields {
		if f.Padding() {
			code.WriteString("\t\t0,\n")
			continue
		}
		code.WriteString(fmt.Sprintf("\t\t%s,\n", toUint64(g.recv+"."+f.Name, f)))
	}
	code.WriteString("\t}\n")
	code.WriteString("}\n\n")

	code.WriteString(fmt.Sprintf("func (%s *%s) load(vals []uint64) {\n", g.recv, name))
	for _, f := range g.analyzed.Fields {
		if f.Padding() {
			continue
		}
		code.WriteString(fmt.Sprintf("\t%s.%s = %s\n", g.recv, f.Name, fromUint64(fmt.Sprintf("vals[%d]", f.Index), f)))
	}
	code.WriteString("}\n\n")

	return code.String()
}

// generateBytes generates IntoBytes and <TypeName>FromBytes
func (g *Generator) generateBytes() string {
	var code strings.Builder
	name := g.analyzed.TypeName
	arr := fmt.Sprintf("[%d]byte", g.layout.Bytes)

	code.WriteString(fmt.Sprintf("// IntoBytes returns the %d-byte little-endian form of %s.\n", g.layout.Bytes, g.recv))
	code.WriteString(fmt.Sprintf("func (%s *%s) IntoBytes() %s {\n", g.recv, name, arr))
	code.WriteString(fmt.Sprintf("\tvar out %s\n", arr))
	if g.packed() {
		code.WriteString(fmt.Sprintf("\t%s.EncodePacked(out[:], %s.buf[:])\n", g.schema, g.recv))
	} else {
		code.WriteString(fmt.Sprintf("\tcopy(out[:], %s.EncodeBytes(%s.values()))\n", g.schema, g.recv))
	}
	code.WriteString("\treturn out\n")
	code.WriteString("}\n\n")

	code.WriteString(fmt.Sprintf("// %sFromBytes decodes a %s from its little-endian byte form.\n", name, name))
	code.WriteString(fmt.Sprintf("func %sFromBytes(b %s) (%s, error) {\n", name, arr, name))
	code.WriteString(fmt.Sprintf("\tvar %s %s\n", g.recv, name))
	if g.packed() {
		code.WriteString(fmt.Sprintf("\tif err := %s.DecodePacked(%s.buf[:], b[:]); err != nil {\n", g.schema, g.recv))
		code.WriteString(fmt.Sprintf("\t\treturn %s{}, err\n", name))
		code.WriteString("\t}\n")
	} else {
		code.WriteString(fmt.Sprintf("\tvals, err := %s.DecodeBytes(b[:])\n", g.schema))
		code.WriteString("\tif err != nil {\n")
		code.WriteString(fmt.Sprintf("\t\treturn %s{}, err\n", name))
		code.WriteString("\t}\n")
		code.WriteString(fmt.Sprintf("\t%s.load(vals)\n", g.recv))
	}
	code.WriteString(fmt.Sprintf("\treturn %s, nil\n", g.recv))
	code.WriteString("}\n\n")

	return code.String()
}

// generateInt generates IntoUintN and <TypeName>FromUintN for the backing
// integer. Layouts wider than 128 bits have no integer form.
func (g *Generator) generateInt() string {
	width := g.layout.BackingWidth
	if width == 0 {
		return ""
	}

	var code strings.Builder
	name := g.analyzed.TypeName

	intType := fmt.Sprintf("uint%d", width)
	suffix := fmt.Sprintf("Uint%d", width)
	wrap := func(v string) string { return fmt.Sprintf("%s(%s.Uint64())", intType, v) }
	widen := "bitfield.FromUint64(uint64(v))"
	if width == 128 {
		intType = "bitfield.Uint128"
		wrap = func(v string) string { return v }
		widen = "v"
	}

	code.WriteString(fmt.Sprintf("// Into%s returns the integer form of %s.\n", suffix, g.recv))
	code.WriteString(fmt.Sprintf("func (%s *%s) Into%s() %s {\n", g.recv, name, suffix, intType))
	if g.packed() {
		code.WriteString(fmt.Sprintf("\treturn %s\n", wrap(fmt.Sprintf("%s.PackedInt(%s.buf[:])", g.schema, g.recv))))
	} else {
		code.WriteString(fmt.Sprintf("\treturn %s\n", wrap(fmt.Sprintf("%s.EncodeInt(%s.values())", g.schema, g.recv))))
	}
	code.WriteString("}\n\n")

	code.WriteString(fmt.Sprintf("// %sFrom%s decodes a %s from its integer form.\n", name, suffix, name))
	code.WriteString(fmt.Sprintf("func %sFrom%s(v %s) (%s, error) {\n", name, suffix, intType, name))
	code.WriteString(fmt.Sprintf("\tvar %s %s\n", g.recv, name))
	if g.packed() {
		code.WriteString(fmt.Sprintf("\tif err := %s.DecodePackedInt(%s.buf[:], %s); err != nil {\n", g.schema, g.recv, widen))
		code.WriteString(fmt.Sprintf("\t\treturn %s{}, err\n", name))
		code.WriteString("\t}\n")
	} else {
		code.WriteString(fmt.Sprintf("\tvals, err := %s.DecodeInt(%s)\n", g.schema, widen))
		code.WriteString("\tif err != nil {\n")
		code.WriteString(fmt.Sprintf("\t\treturn %s{}, err\n", name))
		code.WriteString("\t}\n")
		code.WriteString(fmt.Sprintf("\t%s.load(vals)\n", g.recv))
	}
	code.WriteString(fmt.Sprintf("\treturn %s, nil\n", g.recv))
	code.WriteString("}\n\n")

	return code.String()
}

// generateUpdateByte generates UpdateByteLE and UpdateByteBE
func (g *Generator) generateUpdateByte() string {
	var code strings.Builder
	name := g.analyzed.TypeName

	for _, order := range []struct{ suffix, doc string }{
		{"LE", "least"},
		{"BE", "most"},
	} {
		code.WriteString(fmt.Sprintf("// UpdateByte%s replaces byte idx of the byte form, counting from the\n", order.suffix))
		code.WriteString(fmt.Sprintf("// %s significant byte. Every other byte is kept.\n", order.doc))
		code.WriteString(fmt.Sprintf("func (%s *%s) UpdateByte%s(idx int, b byte) error {\n", g.recv, name, order.suffix))
		if g.packed() {
			code.WriteString(fmt.Sprintf("\treturn %s.UpdatePackedByte%s(%s.buf[:], idx, b)\n", g.schema, order.suffix, g.recv))
		} else {
			code.WriteString(fmt.Sprintf("\tvals, err := %s.UpdateByte%s(%s.values(), idx, b)\n", g.schema, order.suffix, g.recv))
			code.WriteString("\tif err != nil {\n")
			code.WriteString("\t\treturn err\n")
			code.WriteString("\t}\n")
			code.WriteString(fmt.Sprintf("\t%s.load(vals)\n", g.recv))
			code.WriteString("\treturn nil\n")
		}
		code.WriteString("}\n\n")
	}

	return code.String()
}

func (g *Generator) generateString() string {
	var code strings.Builder

	code.WriteString(fmt.Sprintf("func (%s *%s) String() string {\n", g.recv, g.analyzed.TypeName))
	if g.packed() {
		code.WriteString(fmt.Sprintf("\treturn %s.FormatPacked(%s.buf[:])\n", g.schema, g.recv))
	} else {
		code.WriteString(fmt.Sprintf("\treturn %s.Format(%s.values())\n", g.schema, g.recv))
	}
	code.WriteString("}\n")

	return code.String()
}

// locals are the parameter and variable names of generated methods
var locals = map[string]bool{
	"v":    true,
	"b":    true,
	"idx":  true,
	"out":  true,
	"vals": true,
	"err":  true,
}

// receiverName is the lowered first letter of the type name, or rec when
// that letter would shadow a parameter or local
func receiverName(typeName string) string {
	recv := lowerFirst(string([]rune(typeName)[:1]))
	if locals[recv] {
		return "rec"
	}
	return recv
}

func lowerFirst(s string) string {
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
