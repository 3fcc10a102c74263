// # cmd/uilint/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"uilint/internal/core/app"
	"uilint/internal/core/config"
	"uilint/internal/data/history"
	"uilint/internal/engine/report"
	"uilint/internal/shared/observability"
	"uilint/internal/shared/util"
	"uilint/internal/shared/version"
	"uilint/internal/ui/report/formats"
)

var (
	configPath  = flag.String("config", "./uilint.toml", "Path to config file")
	format      = flag.String("format", "", "Output format: text, json, sarif, tsv (overrides config)")
	outPath     = flag.String("out", "", "Write rendered output to a file instead of stdout")
	watch       = flag.Bool("watch", false, "Watch lint paths and re-lint on change")
	ui          = flag.Bool("ui", false, "Interactive findings browser (implies -watch)")
	trends      = flag.Bool("trends", false, "Print recent run history and exit")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

const (
	exitPass       = 0
	exitFail       = 1
	exitFatalError = 2
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("uilint v%s\n", version.Version)
		os.Exit(exitPass)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logOutput := os.Stderr
	logger := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		if os.IsNotExist(err) && !isConfigFlagSet() {
			cfg = config.Default()
			config.ApplyEnvOverrides(cfg)
		} else {
			slog.Error("failed to load config", "error", err)
			os.Exit(exitFatalError)
		}
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if roots := flag.Args(); len(roots) > 0 {
		cfg.LintPaths = roots
	}

	os.Exit(run(cfg))
}

func isConfigFlagSet() bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			set = true
		}
	})
	return set
}

func run(cfg *config.Config) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Observability.OTLPEndpoint)
	if err != nil {
		slog.Warn("tracing disabled", "error", err)
	} else {
		defer func() { _ = shutdownTracing(context.Background()) }()
	}

	a, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		return exitFatalError
	}
	defer func() { _ = a.Close(context.Background()) }()

	if cfg.Observability.Address != "" {
		srv := observability.NewServer(cfg.Observability.Address)
		if err := srv.Start(ctx); err != nil {
			slog.Warn("observability server failed to start", "error", err)
		} else {
			defer func() { _ = srv.Stop(context.Background()) }()
		}
	}

	if *trends {
		return printTrends(a)
	}

	if *watch || *ui {
		return runWatch(ctx, a)
	}

	res, err := a.LintPaths(ctx, cfg.LintPaths)
	if err != nil {
		slog.Error("lint failed", "error", err)
		return exitFatalError
	}
	return emit(a, res)
}

// emit renders the batch and maps the outcome to a process exit status:
// parse failures are fatal, otherwise the verdict decides.
func emit(a *app.App, res app.Result) int {
	rendered, err := formats.Render(a.Config.Output.Format, projectRoot(), res.Batch, a.RuleTitles())
	if err != nil {
		// A formatting failure never rewrites the verdict; report both.
		slog.Error("failed to render report", "error", err, "verdict", res.Batch.Verdict)
	} else if target := outputTarget(*outPath, a.Config.Output.Path); target != "" {
		if werr := util.WriteFileWithDirs(target, []byte(rendered), 0o644); werr != nil {
			slog.Error("failed to write output", "path", target, "error", werr)
		}
	} else {
		fmt.Print(rendered)
	}

	for _, f := range res.ParseFailures {
		fmt.Fprintf(os.Stderr, "parse error: %s: %v\n", f.Path, f.Err)
	}
	return exitStatus(res)
}

func exitStatus(res app.Result) int {
	if len(res.ParseFailures) > 0 {
		return exitFatalError
	}
	if res.Batch.Verdict == report.VerdictFail {
		return exitFail
	}
	return exitPass
}

// outputTarget picks where the rendered report goes. The -out flag wins
// over the configured output path; empty means stdout.
func outputTarget(flagPath, configPath string) string {
	if flagPath != "" {
		return flagPath
	}
	return configPath
}

func runWatch(ctx context.Context, a *app.App) int {
	// Initial pass so the watcher starts from a known state.
	res, err := a.LintPaths(ctx, a.Config.LintPaths)
	if err != nil {
		slog.Error("initial lint failed", "error", err)
		return exitFatalError
	}

	if *ui {
		return runUI(ctx, a, res)
	}

	emit(a, res)
	err = a.Watch(ctx, func(r app.Result) {
		emit(a, r)
	})
	if err != nil && ctx.Err() == nil {
		slog.Error("watch failed", "error", err)
		return exitFatalError
	}
	return exitPass
}

func printTrends(a *app.App) int {
	if a.History == nil {
		fmt.Fprintln(os.Stderr, "history store is disabled or unavailable")
		return exitFatalError
	}
	snapshots, err := a.History.Recent(a.Config.History.ProjectKey, 20)
	if err != nil {
		slog.Error("failed to read history", "error", err)
		return exitFatalError
	}
	// Recent returns newest first; trends want chronological order.
	for i, j := 0, len(snapshots)-1; i < j; i, j = i+1, j-1 {
		snapshots[i], snapshots[j] = snapshots[j], snapshots[i]
	}
	trend, err := history.BuildTrendReport(snapshots)
	if err != nil {
		fmt.Fprintln(os.Stderr, "no run history yet")
		return exitPass
	}
	for _, p := range trend.Points {
		fmt.Printf("%s  %-4s  files=%d findings=%d (E%d/W%d/I%d)  delta=%+d\n",
			p.Timestamp.Format("2006-01-02 15:04:05"),
			p.Verdict, p.FileCount, p.FindingCount,
			p.ErrorCount, p.WarningCount, p.InfoCount,
			p.DeltaFindings,
		)
	}
	return exitPass
}

func projectRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}
