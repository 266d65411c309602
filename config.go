package absint

import (
	"bytes"
	"io"
	"os"
	"slices"

	"github.com/sirkon/errors"
	"gopkg.in/yaml.v3"

	"github.com/sirkon/absint/internal/absrules"
	"github.com/sirkon/absint/internal/tracing"
)

// Config controls how functions are interpreted and which findings are reported.
type Config struct {
	Domain            DomainKind      `yaml:"domain"`
	WideningThreshold int             `yaml:"widening_threshold"`
	MaxIterations     int             `yaml:"max_iterations"`
	DisabledRules     []absrules.Rule `yaml:"disabled_rules"`
}

// DefaultConfig is what is used when no configuration file is given.
func DefaultConfig() *Config {
	return &Config{
		Domain:            DomainKindPentagon,
		WideningThreshold: tracing.DefaultWideningThreshold,
		MaxIterations:     tracing.DefaultMaxIterations,
	}
}

// LoadConfig reads a YAML configuration. Fields missing in the file keep their
// default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse config file %s", path)
	}

	return cfg, nil
}

// ParseConfig decodes a YAML configuration. Unknown fields are rejected.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty document decodes into io.EOF as is.
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decode")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if _, ok := domainKindValueMap[c.Domain]; !ok {
		return errors.Newf("invalid domain %s", c.Domain)
	}
	if c.WideningThreshold <= 0 {
		return errors.Newf("widening threshold must be positive, got %d", c.WideningThreshold)
	}
	if c.MaxIterations <= 0 {
		return errors.Newf("max iterations must be positive, got %d", c.MaxIterations)
	}

	return nil
}

// Enabled tells if findings of the rule are to be reported.
func (c *Config) Enabled(rule absrules.Rule) bool {
	return !slices.Contains(c.DisabledRules, rule)
}
