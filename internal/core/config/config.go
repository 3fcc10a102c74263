package config

import (
	"time"

	"uilint/internal/engine/model"
	"uilint/internal/engine/rules"
)

type Config struct {
	Version       int           `toml:"version"`
	LintPaths     []string      `toml:"lint_paths"`
	Rules         Rules         `toml:"rules"`
	Exclude       Exclude       `toml:"exclude"`
	Watch         Watch         `toml:"watch"`
	Output        Output        `toml:"output"`
	Observability Observability `toml:"observability"`
	History       History       `toml:"history"`
}

type Rules struct {
	Disabled []string `toml:"disabled"`
	// Severity maps rule id to "info" | "warning" | "error".
	Severity                  map[string]string `toml:"severity"`
	DuplicateLiteralThreshold int               `toml:"duplicate_literal_threshold"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type Output struct {
	Format string `toml:"format"`
	Path   string `toml:"path"`
}

type Observability struct {
	Address      string `toml:"address"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

type History struct {
	Enabled    bool   `toml:"enabled"`
	Path       string `toml:"path"`
	ProjectKey string `toml:"project_key"`
}

// RegistryConfig translates the file-level rule section into the engine's
// registry configuration. Severity strings are validated by the loader, so
// the conversion here cannot fail.
func (c *Config) RegistryConfig() rules.RegistryConfig {
	overrides := make(map[string]model.Severity, len(c.Rules.Severity))
	for id, s := range c.Rules.Severity {
		if sev, ok := model.ParseSeverity(s); ok {
			overrides[id] = sev
		}
	}
	return rules.RegistryConfig{
		DisabledRuleIDs:           c.Rules.Disabled,
		SeverityOverrides:         overrides,
		DuplicateLiteralThreshold: c.Rules.DuplicateLiteralThreshold,
	}
}
