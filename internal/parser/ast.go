package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// BufField is the name of the byte array that backs a packed record
const BufField = "buf"

// File holds the declarations of one source file that bitfieldgen handles
type File struct {
	Package string
	Types   []*TypeLayout
	Enums   []*EnumType
	Aliases map[string]string // Named types over another type: type Weight uint8
}

// TypeLayout represents a parsed struct with @bitfield annotation
type TypeLayout struct {
	Name   string
	Anno   *TypeAnnotation
	Fields []Field
	BufLen int // Length of the packed buf array, -1 if absent
	Pos    token.Position
}

// Field represents one declared bitfield field in declaration order
type Field struct {
	Name   string
	GoType string
	Marker bool      // Declared as bitfield.Of[T]
	Tag    *FieldTag // nil without a bitfield tag
}

// EnumType is a named integer type annotated with @bitenum. Its variants are
// the constants of that type in source order.
type EnumType struct {
	Name       string
	Underlying string
	Variants   []Variant
	Pos        token.Position
}

type Variant struct {
	Name  string
	Value uint64
}

// ParseFile parses a Go source file and extracts @bitfield structs and
// @bitenum types
func ParseFile(filename string) (*File, error) {
	return ParseSource(filename, nil)
}

// ParseSource is ParseFile reading from src when it is not nil
func ParseSource(filename string, src any) (*File, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	x := &extractor{
		fset:    fset,
		enums:   make(map[string]*EnumType),
		aliases: make(map[string]string),
	}
	out := &File{Package: file.Name.Name, Aliases: x.aliases}
	out.Types = x.extractTypes(file)
	out.Enums = x.extractEnums(file)
	if x.errs != nil {
		return nil, x.errs
	}
	return out, nil
}

type extractor struct {
	fset    *token.FileSet
	enums   map[string]*EnumType
	order   []*EnumType
	aliases map[string]string
	errs    error
}

func (x *extractor) errorf(pos token.Pos, format string, args ...any) {
	x.errs = multierr.Append(x.errs, fmt.Errorf("%s: %s", x.fset.Position(pos), fmt.Sprintf(format, args...)))
}

func (x *extractor) extractTypes(file *ast.File) []*TypeLayout {
	var types []*TypeLayout

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec := spec.(*ast.TypeSpec)
			lines := commentLines(typeSpec.Doc)
			if typeSpec.Doc == nil && len(genDecl.Specs) == 1 {
				lines = commentLines(genDecl.Doc)
			}

			if isEnum(lines) {
				x.addEnum(typeSpec)
				continue
			}

			anno, found, err := FindAnnotation(lines)
			if err != nil {
				x.errorf(typeSpec.Pos(), "%s: %v", typeSpec.Name.Name, err)
				continue
			}
			if !found {
				if ident, ok := typeSpec.Type.(*ast.Ident); ok {
					x.aliases[typeSpec.Name.Name] = ident.Name
				}
				continue // No @bitfield, skip this type
			}

			structType, ok := typeSpec.Type.(*ast.StructType)
			if !ok {
				x.errorf(typeSpec.Pos(), "%s: @bitfield requires a struct type", typeSpec.Name.Name)
				continue
			}

			t := &TypeLayout{
				Name:   typeSpec.Name.Name,
				Anno:   anno,
				BufLen: -1,
				Pos:    x.fset.Position(typeSpec.Pos()),
			}
			x.extractFields(t, structType)
			types = append(types, t)
		}
	}

	return types
}

func (x *extractor) addEnum(typeSpec *ast.TypeSpec) {
	ident, ok := typeSpec.Type.(*ast.Ident)
	if !ok {
		x.errorf(typeSpec.Pos(), "%s: @bitenum requires an integer type", typeSpec.Name.Name)
		return
	}
	e := &EnumType{
		Name:       typeSpec.Name.Name,
		Underlying: ident.Name,
		Pos:        x.fset.Position(typeSpec.Pos()),
	}
	x.enums[e.Name] = e
	x.order = append(x.order, e)
}

func (x *extractor) extractFields(t *TypeLayout, structType *ast.StructType) {
	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 {
			x.errorf(field.Pos(), "%s: embedded fields are not supported", t.Name)
			continue
		}

		if field.Names[0].Name == BufField {
			if arr, ok := field.Type.(*ast.ArrayType); ok && arr.Len != nil {
				t.BufLen = x.bufLen(t, arr)
				continue
			}
		}

		var tag *FieldTag
		if field.Tag != nil {
			st := reflect.StructTag(strings.Trim(field.Tag.Value, "`"))
			if value, ok := st.Lookup("bitfield"); ok {
				parsed, err := ParseTag(value)
				if err != nil {
					x.errorf(field.Pos(), "%s.%s: %v", t.Name, field.Names[0].Name, err)
					continue
				}
				tag = parsed
			}
		}

		goType, marker := fieldType(field.Type)
		for _, name := range field.Names {
			t.Fields = append(t.Fields, Field{
				Name:   name.Name,
				GoType: goType,
				Marker: marker,
				Tag:    tag,
			})
		}
	}
}

func (x *extractor) bufLen(t *TypeLayout, arr *ast.ArrayType) int {
	if elt := typeToString(arr.Elt); elt != "byte" && elt != "uint8" {
		x.errorf(arr.Pos(), "%s.%s: must be a byte array, got [...]%s", t.Name, BufField, elt)
		return -1
	}
	lit, ok := arr.Len.(*ast.BasicLit)
	if !ok || lit.Kind != token.INT {
		x.errorf(arr.Pos(), "%s.%s: array length must be an integer literal", t.Name, BufField)
		return -1
	}
	n, err := strconv.Atoi(lit.Value)
	if err != nil {
		x.errorf(arr.Pos(), "%s.%s: invalid array length %s", t.Name, BufField, lit.Value)
		return -1
	}
	return n
}

// extractEnums assigns every constant of an @bitenum type to that type, in
// source order
func (x *extractor) extractEnums(file *ast.File) []*EnumType {
	if len(x.order) == 0 {
		return nil
	}

	values := make(map[string]int64)
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.CONST {
			continue
		}

		var (
			lastType  ast.Expr
			lastExprs []ast.Expr
		)
		for i, spec := range genDecl.Specs {
			vs := spec.(*ast.ValueSpec)
			if vs.Type != nil || len(vs.Values) > 0 {
				lastType, lastExprs = vs.Type, vs.Values
			}

			for k, name := range vs.Names {
				if k >= len(lastExprs) {
					break
				}
				v, err := evalConst(lastExprs[k], int64(i), values)
				if err != nil {
					// Not a constant we can evaluate; only an error for enums.
					if e := x.enumOf(lastType, lastExprs[k]); e != nil {
						x.errorf(name.Pos(), "%s.%s: %v", e.Name, name.Name, err)
					}
					continue
				}
				values[name.Name] = v

				e := x.enumOf(lastType, lastExprs[k])
				if e == nil || name.Name == "_" {
					continue
				}
				if v < 0 {
					x.errorf(name.Pos(), "%s.%s: negative discriminant %d", e.Name, name.Name, v)
					continue
				}
				e.Variants = append(e.Variants, Variant{Name: name.Name, Value: uint64(v)})
			}
		}
	}

	for _, e := range x.order {
		if len(e.Variants) == 0 {
			x.errs = multierr.Append(x.errs, fmt.Errorf("%s: @bitenum %s has no constants", e.Pos, e.Name))
		}
	}
	return x.order
}

// enumOf returns the enum a constant belongs to, from its declared type or a
// conversion like Mode(3)
func (x *extractor) enumOf(typ, value ast.Expr) *EnumType {
	if ident, ok := typ.(*ast.Ident); ok {
		return x.enums[ident.Name]
	}
	if call, ok := value.(*ast.CallExpr); ok {
		if ident, ok := call.Fun.(*ast.Ident); ok {
			return x.enums[ident.Name]
		}
	}
	return nil
}

// evalConst evaluates the integer constant expressions enum declarations use
func evalConst(expr ast.Expr, iota int64, values map[string]int64) (int64, error) {
	switch e := expr.(type) {
	case *ast.BasicLit:
		if e.Kind != token.INT {
			return 0, fmt.Errorf("unsupported literal %s", e.Value)
		}
		return strconv.ParseInt(e.Value, 0, 64)

	case *ast.Ident:
		if e.Name == "iota" {
			return iota, nil
		}
		if v, ok := values[e.Name]; ok {
			return v, nil
		}
		return 0, fmt.Errorf("unknown constant %s", e.Name)

	case *ast.ParenExpr:
		return evalConst(e.X, iota, values)

	case *ast.CallExpr:
		// Type conversion: Mode(3)
		if len(e.Args) != 1 {
			return 0, fmt.Errorf("unsupported call")
		}
		return evalConst(e.Args[0], iota, values)

	case *ast.UnaryExpr:
		v, err := evalConst(e.X, iota, values)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case token.SUB:
			return -v, nil
		case token.ADD:
			return v, nil
		}
		return 0, fmt.Errorf("unsupported operator %s", e.Op)

	case *ast.BinaryExpr:
		l, err := evalConst(e.X, iota, values)
		if err != nil {
			return 0, err
		}
		r, err := evalConst(e.Y, iota, values)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case token.ADD:
			return l + r, nil
		case token.SUB:
			return l - r, nil
		case token.MUL:
			return l * r, nil
		case token.QUO:
			if r == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			return l / r, nil
		case token.SHL:
			return l << r, nil
		case token.SHR:
			return l >> r, nil
		case token.OR:
			return l | r, nil
		case token.AND:
			return l & r, nil
		}
		return 0, fmt.Errorf("unsupported operator %s", e.Op)

	default:
		return 0, fmt.Errorf("unsupported constant expression")
	}
}

func commentLines(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}
	var lines []string
	for _, comment := range doc.List {
		lines = append(lines, CleanComment(comment.Text))
	}
	return lines
}

func isEnum(lines []string) bool {
	for _, line := range lines {
		if IsEnumAnnotation(line) {
			return true
		}
	}
	return false
}

// fieldType returns the type of a field and whether it was declared through
// the bitfield.Of marker
func fieldType(expr ast.Expr) (string, bool) {
	if idx, ok := expr.(*ast.IndexExpr); ok {
		if sel, ok := idx.X.(*ast.SelectorExpr); ok && sel.Sel.Name == "Of" {
			return typeToString(idx.Index), true
		}
	}
	return typeToString(expr), false
}

// typeToString converts AST type expression to string
func typeToString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		// Simple type: uint8, bool, Mode
		return t.Name

	case *ast.SelectorExpr:
		// Qualified type: bitfield.Padding
		return typeToString(t.X) + "." + t.Sel.Name

	case *ast.IndexExpr:
		// Generic instance: bitfield.Of[uint8]
		return typeToString(t.X) + "[" + typeToString(t.Index) + "]"

	case *ast.ArrayType:
		if t.Len == nil {
			return "[]" + typeToString(t.Elt)
		}
		return fmt.Sprintf("[%s]%s", exprToString(t.Len), typeToString(t.Elt))

	case *ast.StarExpr:
		return "*" + typeToString(t.X)

	default:
		return "unknown"
	}
}

func exprToString(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.BasicLit:
		return e.Value
	case *ast.Ident:
		return e.Name
	default:
		return "?"
	}
}
