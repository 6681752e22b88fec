// Package analyzer keeps logging on zerolog by flagging the standard log
// package and bare fmt printing.
package analyzer

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const (
	analyzerName = "nostdlog"
	analyzerDoc  = "reports calls to the standard log package anywhere and fmt.Print* outside the main function"
)

var fmtPrinters = map[string]bool{
	"Print":   true,
	"Printf":  true,
	"Println": true,
}

var Analyzer = &analysis.Analyzer{
	Name:     analyzerName,
	Doc:      analyzerDoc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.FuncDecl)(nil),
	}

	insp.Preorder(nodeFilter, func(node ast.Node) {
		funcDecl := node.(*ast.FuncDecl)
		if funcDecl.Body == nil {
			return
		}

		inMain := pass.Pkg.Name() == "main" && funcDecl.Recv == nil && funcDecl.Name.Name == "main"

		ast.Inspect(funcDecl.Body, func(n ast.Node) bool {
			if callExpr, ok := n.(*ast.CallExpr); ok {
				checkCall(pass, callExpr, inMain)
			}
			return true
		})
	})

	return nil, nil
}

func checkCall(pass *analysis.Pass, callExpr *ast.CallExpr, inMain bool) {
	selectorExpr, ok := callExpr.Fun.(*ast.SelectorExpr)
	if !ok {
		return
	}

	ident, ok := selectorExpr.X.(*ast.Ident)
	if !ok || pass.TypesInfo == nil {
		return
	}

	pkgName, ok := pass.TypesInfo.Uses[ident].(*types.PkgName)
	if !ok {
		return
	}

	fn := selectorExpr.Sel.Name

	switch pkgName.Imported().Path() {
	case "log":
		pass.Reportf(callExpr.Pos(), "log.%s is forbidden, use zerolog", fn)
	case "fmt":
		if fmtPrinters[fn] && !inMain {
			pass.Reportf(callExpr.Pos(), "fmt.%s is forbidden outside main function, use zerolog", fn)
		}
	}
}
