package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const source = `package p

func nested(x int) int {
	if x > 10 {
		if x > 5 {
			return 1
		}
	}
	return 0
}

func div(x, y int) int {
	if y == 0 {
		return x / y
	}
	return 0
}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "p.go")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append(args, path))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		domain = "pentagon"
		cfgFile = ""
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVet(t *testing.T) {
	out, err := run(t, "vet", "--domain", "interval")
	require.ErrorIs(t, err, errFindings)
	require.Contains(t, out, "ABS001: if condition x > 5 is always true")
	require.Contains(t, out, "ABS010: divisor y is always zero")
}

func TestVetDisabledRules(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "absint.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("disabled_rules: [ABS001, ABS010]\n"), 0o644))

	out, err := run(t, "vet", "--config", cfg)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestDump(t *testing.T) {
	out, err := run(t, "dump", "--domain", "interval")
	require.NoError(t, err)
	require.Contains(t, out, "func nested (interval)")
	require.Contains(t, out, "x: [11, +Inf]")
	require.Contains(t, out, "y: [0, 0]")
}

func TestDumpUnknownDomain(t *testing.T) {
	_, err := run(t, "dump", "--domain", "octagon")
	require.Error(t, err)
}
