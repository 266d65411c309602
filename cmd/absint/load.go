package main

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"slices"

	"github.com/sirkon/errors"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"

	"github.com/sirkon/absint"
)

// program is a single type-checked file in SSA form.
type program struct {
	fset   *token.FileSet
	source *absint.Source
	funcs  []*ssa.Function
}

func loadProgram(path string) (*program, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, errors.Wrap(err, "parse source file")
	}

	pkg := types.NewPackage(file.Name.Name, file.Name.Name)
	ssapkg, _, err := ssautil.BuildPackage(
		&types.Config{Importer: importer.Default()},
		fset,
		pkg,
		[]*ast.File{file},
		ssa.BuilderMode(0),
	)
	if err != nil {
		return nil, errors.Wrap(err, "build SSA")
	}

	src := absint.NewSource()
	src.AddFile(file)

	var funcs []*ssa.Function
	for _, member := range ssapkg.Members {
		fn, ok := member.(*ssa.Function)
		if !ok || fn.Synthetic != "" {
			continue
		}
		funcs = appendWithAnon(funcs, fn)
	}
	slices.SortFunc(funcs, func(a, b *ssa.Function) int {
		return int(a.Pos()) - int(b.Pos())
	})

	return &program{
		fset:   fset,
		source: src,
		funcs:  funcs,
	}, nil
}

func appendWithAnon(funcs []*ssa.Function, fn *ssa.Function) []*ssa.Function {
	funcs = append(funcs, fn)
	for _, anon := range fn.AnonFuncs {
		funcs = appendWithAnon(funcs, anon)
	}

	return funcs
}
