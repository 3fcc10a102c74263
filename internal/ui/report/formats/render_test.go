package formats

import (
	"encoding/json"
	"strings"
	"testing"

	"uilint/internal/core/errors"
	"uilint/internal/engine/model"
	"uilint/internal/engine/report"
	"uilint/internal/engine/rules"
)

func sampleBatch() report.Batch {
	rep := report.Aggregate("src/List.jsx", []rules.Finding{
		{
			RuleID:   "no-index-as-key",
			NodeID:   "src/List.jsx:4:7",
			Severity: model.SeverityWarning,
			Message:  "list item keyed by loop index",
			Location: model.Location{File: "src/List.jsx", Line: 4, Column: 7},
		},
		{
			RuleID:       "unsanitized-raw-html",
			NodeID:       "src/List.jsx:9:3",
			Severity:     model.SeverityError,
			Message:      "raw HTML injected without sanitization",
			SuggestedFix: "sanitize the value before injection",
			Location:     model.Location{File: "src/List.jsx", Line: 9, Column: 3},
		},
	})
	return report.NewBatch([]report.Report{rep})
}

func TestRender_UnknownStyle(t *testing.T) {
	_, err := Render("yaml", "", sampleBatch(), nil)
	if err == nil {
		t.Fatal("expected error for unknown style")
	}
	if !errors.IsCode(err, errors.CodeFormatError) {
		t.Errorf("error code should be FORMAT_ERROR, got %v", err)
	}
}

func TestRender_EmptyStyleDefaultsToText(t *testing.T) {
	out, err := Render("", "", sampleBatch(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "verdict: fail") {
		t.Errorf("text output missing verdict line:\n%s", out)
	}
}

func TestGenerateText(t *testing.T) {
	out, err := GenerateText(sampleBatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "src/List.jsx") {
		t.Error("output missing unit header")
	}
	if !strings.Contains(out, "no-index-as-key") {
		t.Error("output missing rule id")
	}
	if !strings.Contains(out, "fix: sanitize the value before injection") {
		t.Error("output missing suggested fix")
	}
	if !strings.Contains(out, "2 problems (1 errors, 1 warnings, 0 info) in 1 files") {
		t.Errorf("summary line wrong:\n%s", out)
	}
}

func TestGenerateRecords(t *testing.T) {
	data, err := GenerateRecords(sampleBatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc struct {
		SchemaVersion int            `json:"schema_version"`
		Verdict       string         `json:"verdict"`
		Totals        map[string]int `json:"totals"`
		Findings      []struct {
			RuleID   string `json:"rule_id"`
			Severity string `json:"severity"`
			Line     int    `json:"line"`
		} `json:"findings"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.SchemaVersion != 1 {
		t.Errorf("schema_version = %d, want 1", doc.SchemaVersion)
	}
	if doc.Verdict != "fail" {
		t.Errorf("verdict = %q, want fail", doc.Verdict)
	}
	if doc.Totals["error"] != 1 || doc.Totals["warning"] != 1 {
		t.Errorf("totals wrong: %v", doc.Totals)
	}
	if len(doc.Findings) != 2 {
		t.Fatalf("expected 2 finding records, got %d", len(doc.Findings))
	}
}

func TestGenerateTSV(t *testing.T) {
	out, err := GenerateTSV(sampleBatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Unit\tRule\tSeverity") {
		t.Errorf("header row wrong: %q", lines[0])
	}
	for _, line := range lines[1:] {
		if got := strings.Count(line, "\t"); got != 7 {
			t.Errorf("row has %d tabs, want 7: %q", got, line)
		}
	}
}

func TestSanitizeCell(t *testing.T) {
	got := sanitizeCell("a\tb\nc")
	if got != "a b c" {
		t.Errorf("sanitizeCell = %q, want %q", got, "a b c")
	}
}
