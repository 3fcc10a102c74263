package app

import (
	"context"
	"log/slog"

	"uilint/internal/core/config"
	"uilint/internal/data/history"
	"uilint/internal/engine/parser"
	"uilint/internal/engine/rules"
	"uilint/internal/shared/observability"
)

// App wires the parser frontend, the resolved rule registry, and the
// optional history store into one lint runtime. The registry is resolved
// once at construction and shared read-only by every run.
type App struct {
	Config  *config.Config
	Parser  *parser.Parser
	Rules   []rules.Rule
	History *history.Store
}

func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	active, err := rules.Resolve(cfg.RegistryConfig())
	if err != nil {
		return nil, err
	}
	observability.ActiveRules.Set(float64(len(active)))

	a := &App{
		Config: cfg,
		Parser: parser.NewParser(nil),
		Rules:  active,
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			// History is a convenience; a broken store must not block linting.
			slog.Warn("history store unavailable", "path", cfg.History.Path, "error", err)
		} else {
			a.History = store
		}
	}

	return a, nil
}

func (a *App) Close(ctx context.Context) error {
	if a == nil || a.History == nil {
		return nil
	}
	return a.History.Close()
}

// RuleTitles maps active rule ids to their short titles, for formatter
// metadata blocks.
func (a *App) RuleTitles() map[string]string {
	titles := make(map[string]string, len(a.Rules))
	for _, r := range a.Rules {
		titles[r.ID] = r.Title
	}
	return titles
}
