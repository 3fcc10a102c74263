package rules

import (
	"uilint/internal/engine/model"

	"uilint/internal/core/errors"
)

// RegistryConfig carries the per-run rule configuration. The zero value
// resolves to the unmodified built-in catalog.
type RegistryConfig struct {
	DisabledRuleIDs           []string
	SeverityOverrides         map[string]model.Severity
	ExtraRules                []Rule
	DuplicateLiteralThreshold int
}

// Resolve builds the active rule set for one run: built-in catalog, minus
// disabled ids, with severity overrides applied, plus extra rules appended.
// The result is owned by the caller and never mutated afterwards, so it may
// be shared by reference across concurrent runs.
func Resolve(cfg RegistryConfig) ([]Rule, error) {
	catalog := Catalog(CatalogOptions{DuplicateLiteralThreshold: cfg.DuplicateLiteralThreshold})

	known := make(map[string]bool, len(catalog))
	for _, r := range catalog {
		known[r.ID] = true
	}

	disabled := make(map[string]bool, len(cfg.DisabledRuleIDs))
	for _, id := range cfg.DisabledRuleIDs {
		if !known[id] {
			return nil, errors.AddContext(
				errors.Newf(errors.CodeConfigError, "cannot disable unknown rule %q", id),
				errors.CtxRule, id,
			)
		}
		disabled[id] = true
	}

	for id := range cfg.SeverityOverrides {
		if !known[id] {
			return nil, errors.AddContext(
				errors.Newf(errors.CodeConfigError, "severity override for unknown rule %q", id),
				errors.CtxRule, id,
			)
		}
	}

	active := make([]Rule, 0, len(catalog)+len(cfg.ExtraRules))
	seen := make(map[string]bool, len(catalog)+len(cfg.ExtraRules))
	for _, r := range catalog {
		if disabled[r.ID] {
			continue
		}
		if sev, ok := cfg.SeverityOverrides[r.ID]; ok {
			r.Severity = sev
		}
		active = append(active, r)
		seen[r.ID] = true
	}

	for _, r := range cfg.ExtraRules {
		if r.ID == "" {
			return nil, errors.New(errors.CodeConfigError, "extra rule has empty id")
		}
		if r.ID == InternalRuleErrorID {
			return nil, errors.Newf(errors.CodeConfigError, "rule id %q is reserved", r.ID)
		}
		if seen[r.ID] || known[r.ID] {
			return nil, errors.Newf(errors.CodeConfigError, "duplicate rule id %q", r.ID)
		}
		if r.Check == nil {
			return nil, errors.Newf(errors.CodeConfigError, "extra rule %q has no predicate", r.ID)
		}
		active = append(active, r)
		seen[r.ID] = true
	}

	return active, nil
}
