package main

import (
	"strings"

	"github.com/sirkon/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sirkon/absint"
)

var (
	cfgFile string
	domain  string
	verbose bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:          "absint",
	Short:        "absint - abstract interpretation of Go functions",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewDevelopmentConfig()
		if !verbose {
			cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		}

		var err error
		logger, err = cfg.Build()
		if err != nil {
			return errors.Wrap(err, "setup logger")
		}

		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&domain, "domain", absint.DomainKindPentagon.String(),
		"abstract domain to use: "+strings.Join(absint.DomainKinds(), ", "))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log interpretation progress")

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(vetCmd)
}

// loadConfig combines the configuration file with command line overrides.
func loadConfig(cmd *cobra.Command) (*absint.Config, error) {
	cfg := absint.DefaultConfig()
	if cfgFile != "" {
		var err error
		cfg, err = absint.LoadConfig(cfgFile)
		if err != nil {
			return nil, err
		}
	}

	if cfgFile == "" || cmd.Flags().Changed("domain") {
		if err := cfg.Domain.UnmarshalText([]byte(domain)); err != nil {
			return nil, errors.Wrap(err, "parse domain option")
		}
	}

	return cfg, nil
}
