// # cmd/uilint/main_test.go
package main

import (
	"errors"
	"testing"

	"uilint/internal/core/app"
	"uilint/internal/engine/report"
)

func TestOutputTarget(t *testing.T) {
	if got := outputTarget("", ""); got != "" {
		t.Fatalf("expected stdout default, got %q", got)
	}
	if got := outputTarget("", "reports/out.json"); got != "reports/out.json" {
		t.Fatalf("configured path should apply when the flag is unset, got %q", got)
	}
	if got := outputTarget("flag.json", "reports/out.json"); got != "flag.json" {
		t.Fatalf("flag should win over the configured path, got %q", got)
	}
}

func TestExitStatus(t *testing.T) {
	pass := app.Result{Batch: report.Batch{Verdict: report.VerdictPass}}
	if got := exitStatus(pass); got != exitPass {
		t.Fatalf("pass verdict: got exit %d", got)
	}

	fail := app.Result{Batch: report.Batch{Verdict: report.VerdictFail}}
	if got := exitStatus(fail); got != exitFail {
		t.Fatalf("fail verdict: got exit %d", got)
	}

	fatal := app.Result{
		Batch:         report.Batch{Verdict: report.VerdictPass},
		ParseFailures: []app.ParseFailure{{Path: "a.tsx", Err: errors.New("boom")}},
	}
	if got := exitStatus(fatal); got != exitFatalError {
		t.Fatalf("parse failures should be fatal, got exit %d", got)
	}
}
