package docstring

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
)

// ExtractGoDoc returns the doc comment of the top-level function funcName declared
// in a Go source file, with comment markers removed. src is passed to
// go/parser.ParseFile and may be nil to read filename from disk.
func ExtractGoDoc(filename string, src any, funcName string) (string, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || fn.Name.Name != funcName {
			continue
		}
		if fn.Doc == nil {
			return "", nil
		}
		return fn.Doc.Text(), nil
	}
	return "", fmt.Errorf("function %s not declared in %s", funcName, filename)
}
