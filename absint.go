package absint

import (
	"go/ast"
	"strings"

	"github.com/sirkon/errors"
	"go.uber.org/zap"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/buildssa"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const doc = `absint reports conditions and divisions decided by abstract interpretation

Every function is interpreted with the selected abstract domain. Conditions
holding in every reachable state (or in none) and divisions by a value that
is always zero are reported.`

var (
	flagDomain domainFlag
	flagConfig string
)

// domainFlag remembers whether the domain was given explicitly.
type domainFlag struct {
	kind DomainKind
	set  bool
}

func (f *domainFlag) String() string {
	if !f.set {
		return DomainKindPentagon.String()
	}

	return f.kind.String()
}

func (f *domainFlag) Set(value string) error {
	if err := f.kind.UnmarshalText([]byte(value)); err != nil {
		return err
	}
	f.set = true

	return nil
}

// Analyzer is the main entry point for the linter
var Analyzer = &analysis.Analyzer{
	Name:     "absint",
	Doc:      doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer, buildssa.Analyzer},
	Run:      run,
}

func init() {
	Analyzer.Flags.Var(&flagDomain, "domain", "abstract domain to use: "+strings.Join(DomainKinds(), ", "))
	Analyzer.Flags.StringVar(&flagConfig, "config", "", "path to a YAML configuration file, its domain is overridden by an explicit -domain")
}

func run(pass *analysis.Pass) (any, error) {
	cfg, err := passConfig()
	if err != nil {
		return nil, err
	}

	pector := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	funcs := pass.ResultOf[buildssa.Analyzer].(*buildssa.SSA)

	src := NewSource()
	pector.Preorder(sourceFilter, func(node ast.Node) {
		src.Add(node)
	})

	log := zap.L().With(zap.String("package", pass.Pkg.Path()))
	for _, fn := range funcs.SrcFuncs {
		out, err := Analyze(fn, src, cfg, log)
		if err != nil {
			return nil, errors.Wrapf(err, "analyze %s", fn.Name())
		}
		if !out.Converged {
			log.Warn("function skipped, no fixpoint", zap.String("function", fn.Name()))
			continue
		}

		for _, f := range out.Findings {
			pass.Reportf(f.Pos, "%s: %s", f.Rule.Code(), f.Message)
		}
	}

	return nil, nil
}

// passConfig builds the configuration from flags.
func passConfig() (*Config, error) {
	cfg := DefaultConfig()
	if flagConfig != "" {
		var err error
		cfg, err = LoadConfig(flagConfig)
		if err != nil {
			return nil, err
		}
	}

	if flagDomain.set {
		cfg.Domain = flagDomain.kind
	}

	return cfg, nil
}
