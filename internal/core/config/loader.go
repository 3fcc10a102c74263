package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"uilint/internal/core/errors"
	"uilint/internal/engine/model"
	"uilint/internal/ui/report/formats"
)

const supportedVersion = 1

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return nil, err
	}
	ApplyEnvOverrides(cfg)
	if err := validateOutput(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigError, "decode config")
	}

	applyDefaults(&cfg)

	if err := validateVersion(&cfg); err != nil {
		return nil, err
	}
	if err := validateRules(&cfg); err != nil {
		return nil, err
	}
	if err := validateOutput(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = supportedVersion
	}
	if len(cfg.LintPaths) == 0 {
		cfg.LintPaths = []string{"."}
	}
	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = []string{"node_modules", "dist", "build", ".git"}
	}
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = 300 * time.Millisecond
	}
	if strings.TrimSpace(cfg.Output.Format) == "" {
		cfg.Output.Format = formats.StyleText
	}
	if strings.TrimSpace(cfg.History.Path) == "" {
		cfg.History.Path = "data/uilint-history.db"
	}
	if strings.TrimSpace(cfg.History.ProjectKey) == "" {
		cfg.History.ProjectKey = "default"
	}
}

func validateVersion(cfg *Config) error {
	if cfg.Version != supportedVersion {
		return errors.Newf(errors.CodeConfigError, "unsupported config version %d", cfg.Version)
	}
	return nil
}

func validateRules(cfg *Config) error {
	if cfg.Rules.DuplicateLiteralThreshold < 0 {
		return errors.New(errors.CodeConfigError, "rules.duplicate_literal_threshold must not be negative")
	}
	for id, s := range cfg.Rules.Severity {
		if _, ok := model.ParseSeverity(s); !ok {
			return errors.Newf(errors.CodeConfigError, "invalid severity %q for rule %q", s, id)
		}
	}
	return nil
}

func validateOutput(cfg *Config) error {
	switch cfg.Output.Format {
	case formats.StyleText, formats.StyleRecords, formats.StyleSARIF, formats.StyleTSV:
		return nil
	}
	return errors.Newf(errors.CodeConfigError, "unknown output format %q", cfg.Output.Format)
}
