package formats

import (
	"fmt"
	"strings"

	"uilint/internal/engine/model"
	"uilint/internal/engine/report"
)

// GenerateText renders the human-readable form: findings grouped per source
// unit with a summary line, verdict last.
func GenerateText(batch report.Batch) (string, error) {
	var buf strings.Builder

	for _, rep := range batch.Reports {
		if len(rep.Findings) == 0 {
			continue
		}
		buf.WriteString(rep.Unit)
		buf.WriteString("\n")
		for _, f := range rep.Findings {
			buf.WriteString(fmt.Sprintf("  %d:%d  %-7s  %s  %s\n",
				f.Location.Line,
				f.Location.Column,
				f.Severity,
				f.RuleID,
				f.Message,
			))
			if f.SuggestedFix != "" {
				buf.WriteString(fmt.Sprintf("           fix: %s\n", f.SuggestedFix))
			}
		}
		buf.WriteString("\n")
	}

	buf.WriteString(fmt.Sprintf("%d problems (%d errors, %d warnings, %d info) in %d files\n",
		batch.FindingCount(),
		batch.Totals[model.SeverityError],
		batch.Totals[model.SeverityWarning],
		batch.Totals[model.SeverityInfo],
		len(batch.Reports),
	))
	buf.WriteString(fmt.Sprintf("verdict: %s\n", batch.Verdict))

	return buf.String(), nil
}
