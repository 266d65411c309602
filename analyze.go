package absint

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"github.com/sirkon/errors"
	"go.uber.org/zap"
	"golang.org/x/tools/go/ssa"

	"github.com/sirkon/absint/internal/absrules"
	"github.com/sirkon/absint/internal/congeq"
	"github.com/sirkon/absint/internal/congruence"
	"github.com/sirkon/absint/internal/equality"
	"github.com/sirkon/absint/internal/interval"
	"github.com/sirkon/absint/internal/lattice"
	"github.com/sirkon/absint/internal/pentagon"
	"github.com/sirkon/absint/internal/tracing"
)

// Source holds what is known about the syntax functions were built from.
type Source struct {
	conditions *tracing.Context
	binaries   map[token.Pos]*ast.BinaryExpr
}

// NewSource creates an empty source index.
func NewSource() *Source {
	return &Source{
		conditions: tracing.NewContext(),
		binaries:   map[token.Pos]*ast.BinaryExpr{},
	}
}

// Add indexes the node. Nodes must come in preorder.
func (s *Source) Add(n ast.Node) {
	s.conditions.AddCondition(n)
	if b, ok := n.(*ast.BinaryExpr); ok {
		s.binaries[b.OpPos] = b
	}
}

// AddFile indexes every node of the file.
func (s *Source) AddFile(file *ast.File) {
	ast.Inspect(file, func(n ast.Node) bool {
		if n != nil {
			s.Add(n)
		}
		return true
	})
}

// sourceFilter lists node types Source is interested in.
var sourceFilter = []ast.Node{
	(*ast.IfStmt)(nil),
	(*ast.ForStmt)(nil),
	(*ast.CaseClause)(nil),
	(*ast.BinaryExpr)(nil),
}

// text renders the binary expression at pos as it is written in source, falling back
// to the lowered form.
func (s *Source) text(pos token.Pos, v ssa.Value) string {
	if b, ok := s.binaries[pos]; ok {
		return types.ExprString(b)
	}
	if e, ok := tracing.Translate(v); ok {
		return e.String()
	}

	return v.Name()
}

// Finding is a single diagnostic.
type Finding struct {
	Rule    absrules.Rule
	Pos     token.Pos
	Message string
}

// BlockState is the stable state at a block entry.
type BlockState struct {
	Index   int
	Comment string
	State   string
}

// Outcome is the result of analyzing one function.
type Outcome struct {
	Function   *ssa.Function
	Converged  bool
	Iterations int
	Blocks     []BlockState
	Findings   []Finding
}

// Analyze interprets the function with the configured domain and collects findings.
// Nothing is found in functions whose interpretation did not converge.
func Analyze(fn *ssa.Function, src *Source, cfg *Config, log *zap.Logger) (*Outcome, error) {
	switch cfg.Domain {
	case DomainKindInterval:
		return analyze(fn, interval.NewEnvironment(), src, cfg, log)
	case DomainKindCongruence:
		return analyze(fn, congruence.NewEnvironment(), src, cfg, log)
	case DomainKindEquality:
		return analyze(fn, equality.Top(), src, cfg, log)
	case DomainKindPentagon:
		return analyze(fn, pentagon.Top(), src, cfg, log)
	case DomainKindCongEq:
		return analyze(fn, congeq.Top(), src, cfg, log)
	default:
		return nil, errors.Newf("unsupported domain %s", cfg.Domain)
	}
}

func analyze[D lattice.Domain[D]](fn *ssa.Function, init D, src *Source, cfg *Config, log *zap.Logger) (*Outcome, error) {
	res, err := tracing.Interpret(fn, init, tracing.Options{
		WideningThreshold: cfg.WideningThreshold,
		MaxIterations:     cfg.MaxIterations,
		Logger:            log,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "interpret %s", fn)
	}

	out := &Outcome{
		Function:   fn,
		Converged:  res.Converged,
		Iterations: res.Iterations,
	}
	for _, b := range fn.Blocks {
		state, ok := res.Entry[b]
		if !ok {
			continue
		}
		out.Blocks = append(out.Blocks, BlockState{
			Index:   b.Index,
			Comment: b.Comment,
			State:   state.String(),
		})
	}
	if !res.Converged {
		return out, nil
	}

	for _, b := range fn.Blocks {
		if len(b.Instrs) == 0 {
			continue
		}
		cond, ok := b.Instrs[len(b.Instrs)-1].(*ssa.If)
		if !ok {
			continue
		}
		sat, ok := res.Conditions[cond]
		if !ok || sat == lattice.Unknown {
			continue
		}

		pos := cond.Cond.Pos()
		if pos == token.NoPos {
			continue
		}
		rule := absrules.ForCondition(sat == lattice.Satisfied)
		if !cfg.Enabled(rule) {
			continue
		}

		kind := "branch"
		if stmt := src.conditions.GetByPos(pos); stmt != nil {
			kind = tracing.StatementKind(stmt)
		}
		verdict := "false"
		if sat == lattice.Satisfied {
			verdict = "true"
		}
		out.Findings = append(out.Findings, Finding{
			Rule:    rule,
			Pos:     pos,
			Message: fmt.Sprintf("%s condition %s is always %s", kind, src.text(pos, cond.Cond), verdict),
		})
	}

	if cfg.Enabled(absrules.DivisionByZero()) {
		for _, div := range res.Divisions {
			out.Findings = append(out.Findings, Finding{
				Rule:    absrules.DivisionByZero(),
				Pos:     div.Pos(),
				Message: fmt.Sprintf("divisor %s is always zero", divisor(src, div)),
			})
		}
	}

	return out, nil
}

func divisor(src *Source, div *ssa.BinOp) string {
	if b, ok := src.binaries[div.Pos()]; ok {
		return types.ExprString(b.Y)
	}

	return tracing.Operand(div.Y).String()
}
