// # internal/ui/report/formats/tsv.go
package formats

import (
	"fmt"
	"strings"

	"uilint/internal/engine/report"
)

// GenerateTSV renders every finding of the batch as one tab-separated row,
// suitable for spreadsheet import or awk pipelines.
func GenerateTSV(batch report.Batch) (string, error) {
	var buf strings.Builder

	buf.WriteString("Unit\tRule\tSeverity\tFile\tLine\tColumn\tMessage\tSuggestedFix\n")
	for _, rep := range batch.Reports {
		for _, f := range rep.Findings {
			buf.WriteString(fmt.Sprintf("%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
				rep.Unit,
				f.RuleID,
				f.Severity,
				f.Location.File,
				f.Location.Line,
				f.Location.Column,
				sanitizeCell(f.Message),
				sanitizeCell(f.SuggestedFix),
			))
		}
	}

	return buf.String(), nil
}

// sanitizeCell keeps embedded tabs/newlines from breaking row structure.
func sanitizeCell(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
