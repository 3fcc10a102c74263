package app

import (
	"context"
	"log/slog"

	"uilint/internal/core/watcher"
	"uilint/internal/shared/util"
)

// Watch re-lints changed files until ctx is cancelled and delivers each
// result to onResult. A token bucket caps relint frequency so editor save
// storms cannot pin a core.
func (a *App) Watch(ctx context.Context, onResult func(Result)) error {
	limiter := util.NewLimiter(4, 8)

	onChange := func(paths []string) {
		if !limiter.Allow(1) {
			if err := limiter.Wait(ctx, 1); err != nil {
				return
			}
		}
		res, err := a.LintFiles(ctx, a.filterSupported(paths))
		if err != nil {
			if ctx.Err() == nil {
				slog.Error("relint failed", "error", err)
			}
			return
		}
		onResult(res)
	}

	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Parser.Loader().SupportedExtensions(),
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		onChange,
	)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Watch(util.UniqueScanRoots(a.Config.LintPaths)); err != nil {
		return err
	}

	slog.Info("watching for changes", "paths", a.Config.LintPaths)
	<-ctx.Done()
	return ctx.Err()
}

func (a *App) filterSupported(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if a.Parser.IsSupportedPath(p) {
			out = append(out, p)
		}
	}
	return out
}
