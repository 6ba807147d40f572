package codegen

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/tools/imports"

	"github.com/alexhholmes/bitfield/internal/analyzer"
)

// ImportPath is the import path generated files use for the runtime package
const ImportPath = "github.com/alexhholmes/bitfield"

// GenerateFile renders the generated companion file of source holding every
// layout, formatted and with its imports resolved. Invalid layouts are
// reported together and nothing is rendered.
func GenerateFile(pkg, source string, layouts []*analyzer.AnalyzedLayout) ([]byte, error) {
	var (
		body strings.Builder
		errs error
	)
	for _, a := range layouts {
		code, err := NewGenerator(a).Generate()
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		body.WriteString("\n")
		body.WriteString(code)
	}
	if errs != nil {
		return nil, errs
	}

	var src strings.Builder
	src.WriteString(fmt.Sprintf("// Code generated by bitfieldgen from %s. DO NOT EDIT.\n\n", filepath.Base(source)))
	src.WriteString(fmt.Sprintf("package %s\n\n", pkg))
	src.WriteString(fmt.Sprintf("import %q\n", ImportPath))
	src.WriteString(body.String())

	out, err := imports.Process(OutputName(source, ""), []byte(src.String()), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return out, nil
}

// OutputName returns the name of the generated file for source. The default
// suffix is _bitfield.go.
func OutputName(source, suffix string) string {
	if suffix == "" {
		suffix = "_bitfield.go"
	}
	return strings.TrimSuffix(source, ".go") + suffix
}
