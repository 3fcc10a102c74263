package formats

import (
	"encoding/json"
	"time"

	"uilint/internal/engine/model"
	"uilint/internal/engine/report"
)

// Structured list-of-records output for downstream tooling. Field layout is
// versioned via schema_version; additions bump the minor behavior only.

const recordsSchemaVersion = 1

type recordsDocument struct {
	SchemaVersion int             `json:"schema_version"`
	RunID         string          `json:"run_id"`
	GeneratedAt   time.Time       `json:"generated_at"`
	Verdict       string          `json:"verdict"`
	Totals        map[string]int  `json:"totals"`
	Findings      []findingRecord `json:"findings"`
}

type findingRecord struct {
	Unit         string `json:"unit"`
	RuleID       string `json:"rule_id"`
	NodeID       string `json:"node_id"`
	Severity     string `json:"severity"`
	Message      string `json:"message"`
	SuggestedFix string `json:"suggested_fix,omitempty"`
	File         string `json:"file"`
	Line         int    `json:"line"`
	Column       int    `json:"column"`
}

// GenerateRecords renders the batch as a stable JSON record list.
func GenerateRecords(batch report.Batch) ([]byte, error) {
	doc := recordsDocument{
		SchemaVersion: recordsSchemaVersion,
		RunID:         batch.RunID,
		GeneratedAt:   batch.GeneratedAt,
		Verdict:       string(batch.Verdict),
		Totals: map[string]int{
			"error":   batch.Totals[model.SeverityError],
			"warning": batch.Totals[model.SeverityWarning],
			"info":    batch.Totals[model.SeverityInfo],
		},
		Findings: make([]findingRecord, 0, batch.FindingCount()),
	}

	for _, rep := range batch.Reports {
		for _, f := range rep.Findings {
			doc.Findings = append(doc.Findings, findingRecord{
				Unit:         rep.Unit,
				RuleID:       f.RuleID,
				NodeID:       f.NodeID,
				Severity:     f.Severity.String(),
				Message:      f.Message,
				SuggestedFix: f.SuggestedFix,
				File:         f.Location.File,
				Line:         f.Location.Line,
				Column:       f.Location.Column,
			})
		}
	}

	return json.MarshalIndent(doc, "", "  ")
}
