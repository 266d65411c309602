package main

import (
	"github.com/sirkon/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sirkon/absint"
	"github.com/sirkon/absint/internal/tracing"
)

var errFindings = errors.New("findings reported")

var vetCmd = &cobra.Command{
	Use:   "vet <file.go>",
	Short: "Report conditions and divisions decided by abstract interpretation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		prog, err := loadProgram(args[0])
		if err != nil {
			return err
		}

		var reporter tracing.Reporter
		state := reporter.Phase(tracing.ReportState)
		for _, fn := range prog.funcs {
			res, err := absint.Analyze(fn, prog.source, cfg, logger)
			if err != nil {
				return err
			}
			if !res.Converged {
				logger.Warn("function skipped, no fixpoint", zap.String("function", fn.Name()))
				continue
			}

			for _, f := range res.Findings {
				state.Report(f.Rule, f.Message, prog.fset.Position(f.Pos))
			}
			logger.Debug("function analyzed",
				zap.String("function", fn.Name()),
				zap.Int("iterations", res.Iterations),
				zap.Int("findings", len(res.Findings)),
			)
		}

		if err := reporter.PrintSummary(cmd.OutOrStdout()); err != nil {
			return errors.Wrap(err, "print findings")
		}
		if len(reporter.Reports()) > 0 {
			return errFindings
		}

		return nil
	},
}
