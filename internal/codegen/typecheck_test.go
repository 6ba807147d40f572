package codegen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"github.com/alexhholmes/bitfield/internal/analyzer"
	bfparser "github.com/alexhholmes/bitfield/internal/parser"
)

var (
	runtimeOnce sync.Once
	runtimePkg  *types.Package
	runtimeErr  error
)

// runtimeImporter resolves the bitfield import of generated files from the
// module's compiled export data.
type runtimeImporter struct{}

func (runtimeImporter) Import(path string) (*types.Package, error) {
	runtimeOnce.Do(func() {
		pkgs, err := packages.Load(&packages.Config{Mode: packages.NeedName | packages.NeedTypes}, ImportPath)
		if err != nil {
			runtimeErr = err
			return
		}
		if packages.PrintErrors(pkgs) > 0 {
			runtimeErr = pkgs[0].Errors[0]
			return
		}
		runtimePkg = pkgs[0].Types
	})
	if path != ImportPath {
		return nil, &types.Error{Msg: "unexpected import " + path}
	}
	return runtimePkg, runtimeErr
}

// typeCheck generates the companion file of src and type-checks both files
// as one package.
func typeCheck(t *testing.T, src string) {
	t.Helper()

	file, err := bfparser.ParseSource("decl.go", src)
	require.NoError(t, err)
	layouts, err := analyzer.AnalyzeFile(file)
	require.NoError(t, err)
	gen, err := GenerateFile(file.Package, "decl.go", layouts)
	require.NoError(t, err)

	fset := token.NewFileSet()
	var files []*ast.File
	for name, body := range map[string][]byte{"decl.go": []byte(src), "decl_bitfield.go": gen} {
		f, err := parser.ParseFile(fset, name, body, 0)
		require.NoError(t, err)
		files = append(files, f)
	}

	var errs []error
	conf := types.Config{
		Importer: runtimeImporter{},
		Error:    func(err error) { errs = append(errs, err) },
	}
	_, _ = conf.Check(file.Package, fset, files, nil)
	assert.Empty(t, errs, "generated code:\n%s", gen)
}

func TestGenerateFile_TypeChecks(t *testing.T) {
	typeCheck(t, source)
}

// Receivers of these types would shadow the v and b parameters.
const shadowSource = `package demo

import "github.com/alexhholmes/bitfield"

// @bitenum
type Kind uint8

const (
	KindA Kind = iota
	KindB
)

// @bitfield
type Vec struct {
	x uint8 ` + "`bitfield:\"bits=4\"`" + `
	y uint8 ` + "`bitfield:\"bits=4\"`" + `
}

// @bitfield bits=8 repr=packed
type Block struct {
	buf [1]byte

	a    bitfield.Of[uint8] ` + "`bitfield:\"bits=4\"`" + `
	ok   bitfield.Of[bool]
	kind bitfield.Of[Kind]
	_    bitfield.Of[bitfield.Padding] ` + "`bitfield:\"bits=2\"`" + `
}

// @bitfield filled=false
type Big struct {
	v    uint8 ` + "`bitfield:\"bits=3\"`" + `
	b    bool
	kind Kind
	_    bitfield.Padding ` + "`bitfield:\"bits=1\"`" + `
}
`

func TestGenerateFile_ReceiverShadowing(t *testing.T) {
	typeCheck(t, shadowSource)
}
