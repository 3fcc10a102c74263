package app

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"uilint/internal/data/history"
	"uilint/internal/engine/report"
	"uilint/internal/engine/rules"
	"uilint/internal/engine/walker"
	"uilint/internal/shared/observability"
)

// ParseFailure records a source file the frontend refused; the file gets no
// Report and the failure is surfaced next to the batch, never silently.
type ParseFailure struct {
	Path string
	Err  error
}

// Result is the outcome of one batch lint: per-unit reports plus any files
// that could not be parsed.
type Result struct {
	Batch         report.Batch
	ParseFailures []ParseFailure
}

const maxLintWorkers = 8

// LintPaths scans the given roots and lints every supported file on a
// bounded worker pool. The resolved rule set is shared read-only across
// workers; cancelling ctx discards findings of unfinished files only.
func (a *App) LintPaths(ctx context.Context, roots []string) (Result, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.LintPaths", trace.WithAttributes(
		attribute.Int("roots", len(roots)),
	))
	defer span.End()

	files, err := a.ScanDirectories(roots)
	if err != nil {
		return Result{}, err
	}
	return a.LintFiles(ctx, files)
}

// LintFiles lints an explicit file list (watch mode hands changed paths here).
func (a *App) LintFiles(ctx context.Context, files []string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	workers := runtime.NumCPU()
	if workers > maxLintWorkers {
		workers = maxLintWorkers
	}
	if workers < 1 {
		workers = 1
	}

	type unitResult struct {
		report  *report.Report
		failure *ParseFailure
	}

	jobs := make(chan string)
	results := make(chan unitResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if ctx.Err() != nil {
					return
				}
				rep, err := a.lintFile(ctx, path)
				if err != nil {
					results <- unitResult{failure: &ParseFailure{Path: path, Err: err}}
					continue
				}
				results <- unitResult{report: rep}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range files {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var reports []report.Report
	var failures []ParseFailure
	for r := range results {
		if r.failure != nil {
			failures = append(failures, *r.failure)
			continue
		}
		if r.report != nil {
			reports = append(reports, *r.report)
		}
	}
	sort.Slice(failures, func(i, j int) bool { return failures[i].Path < failures[j].Path })

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	batch := report.NewBatch(reports)
	observability.RunsTotal.WithLabelValues(string(batch.Verdict)).Inc()

	if a.History != nil {
		if err := a.History.SaveSnapshot(a.Config.History.ProjectKey, history.FromBatch(batch)); err != nil {
			slog.Warn("failed to persist run snapshot", "error", err)
		}
	}

	return Result{Batch: batch, ParseFailures: failures}, nil
}

// lintFile parses one file and walks every component tree in it, producing
// a single per-unit Report.
func (a *App) lintFile(ctx context.Context, path string) (*report.Report, error) {
	_, span := observability.Tracer.Start(ctx, "app.lintFile", trace.WithAttributes(
		attribute.String("path", path),
	))
	defer span.End()

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lang := a.Parser.Loader().DetectLanguage(path)
	parseStart := time.Now()
	components, err := a.Parser.ParseFile(path, content)
	observability.ParsingDuration.WithLabelValues(lang).Observe(time.Since(parseStart).Seconds())
	if err != nil {
		observability.ParseFailuresTotal.Inc()
		return nil, err
	}

	var findings []rules.Finding
	for _, component := range components {
		walkStart := time.Now()
		findings = append(findings, walker.Walk(component, a.Rules)...)
		observability.WalkDuration.Observe(time.Since(walkStart).Seconds())
	}
	for _, f := range findings {
		observability.FindingsTotal.WithLabelValues(f.Severity.String()).Inc()
	}

	rep := report.Aggregate(path, findings)
	return &rep, nil
}
