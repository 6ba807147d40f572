package analyzer

import (
	"fmt"
	"strings"
	"unicode"
)

// generatedMethods are the exported methods every generated record carries
// besides its field accessors
var generatedMethods = map[string]bool{
	"String":       true,
	"IntoBytes":    true,
	"UpdateByteLE": true,
	"UpdateByteBE": true,
	"IntoUint8":    true,
	"IntoUint16":   true,
	"IntoUint32":   true,
	"IntoUint64":   true,
	"IntoUint128":  true,
}

// AccessorName turns a field name into its getter name: rest_bits → RestBits
func AccessorName(name string) string {
	var out strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		r := []rune(part)
		r[0] = unicode.ToUpper(r[0])
		out.WriteString(string(r))
	}
	return out.String()
}

// Accessors returns the generated method names of a field, honoring its
// skip flags. Padding has none.
func (f Field) Accessors() []string {
	if f.Padding() {
		return nil
	}
	name := AccessorName(f.Name)
	var out []string
	if !f.Spec.Skip.Getters() {
		out = append(out, name)
	}
	if !f.Spec.Skip.Setters() {
		out = append(out, "Set"+name, "With"+name)
	}
	return out
}

// checkAccessors reports fields whose accessors are not valid exported
// identifiers or collide with a generated method or another field's accessor
func checkAccessors(fields []Field) []string {
	var problems []string
	owners := make(map[string]string)
	for _, f := range fields {
		if f.Padding() {
			continue
		}
		if r := []rune(AccessorName(f.Name)); len(r) == 0 || !unicode.IsUpper(r[0]) {
			problems = append(problems, fmt.Sprintf("%s: no exported accessor name can be derived", f.Name))
			continue
		}
		for _, m := range f.Accessors() {
			switch owner, taken := owners[m]; {
			case generatedMethods[m]:
				problems = append(problems, fmt.Sprintf("%s: accessor %s clashes with a generated method", f.Name, m))
			case taken:
				problems = append(problems, fmt.Sprintf("%s: accessor %s clashes with field %s", f.Name, m, owner))
			default:
				owners[m] = f.Name
			}
		}
	}
	return problems
}
