package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sirkon/absint"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file.go>",
	Short: "Print abstract states at the entry of every basic block",
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

		out := cmd.OutOrStdout()
		for _, fn := range prog.funcs {
			res, err := absint.Analyze(fn, prog.source, cfg, logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "func %s (%s)\n", fn.Name(), cfg.Domain)
			if !res.Converged {
				logger.Warn("no fixpoint", zap.String("function", fn.Name()), zap.Int("iterations", res.Iterations))
				fmt.Fprintf(out, "  no fixpoint after %d iterations\n", res.Iterations)
			}
			for _, b := range res.Blocks {
				fmt.Fprintf(out, "  block %d (%s):\n", b.Index, b.Comment)
				for _, line := range strings.Split(b.State, "\n") {
					fmt.Fprintf(out, "    %s\n", line)
				}
			}
		}

		return nil
	},
}
