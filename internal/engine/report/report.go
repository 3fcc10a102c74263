package report

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"uilint/internal/engine/model"
	"uilint/internal/engine/rules"
)

type Verdict string

const (
	VerdictPass Verdict = "pass"
	VerdictFail Verdict = "fail"
)

// Report is the aggregated result for one source unit. Created once per run
// and never mutated afterwards.
type Report struct {
	RunID         string
	Unit          string
	Findings      []rules.Finding
	Verdict       Verdict
	SummaryCounts map[model.Severity]int
	GeneratedAt   time.Time
}

// Aggregate consolidates raw walk output: exact (ruleId, nodeId) repeats are
// dropped, findings are sorted by location then severity (descending) then
// rule id, and the verdict is Fail iff any Error-severity finding remains.
func Aggregate(unit string, findings []rules.Finding) Report {
	type key struct {
		rule string
		node string
	}
	seen := make(map[key]bool, len(findings))
	deduped := make([]rules.Finding, 0, len(findings))
	for _, f := range findings {
		k := key{rule: f.RuleID, node: f.NodeID}
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, f)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		a, b := deduped[i], deduped[j]
		if a.Location.File != b.Location.File {
			return a.Location.File < b.Location.File
		}
		if a.Location.Line != b.Location.Line {
			return a.Location.Line < b.Location.Line
		}
		if a.Location.Column != b.Location.Column {
			return a.Location.Column < b.Location.Column
		}
		if a.Severity != b.Severity {
			return a.Severity > b.Severity
		}
		return a.RuleID < b.RuleID
	})

	counts := make(map[model.Severity]int, 3)
	verdict := VerdictPass
	for _, f := range deduped {
		counts[f.Severity]++
		if f.Severity == model.SeverityError {
			verdict = VerdictFail
		}
	}

	return Report{
		RunID:         uuid.NewString(),
		Unit:          unit,
		Findings:      deduped,
		Verdict:       verdict,
		SummaryCounts: counts,
		GeneratedAt:   time.Now().UTC(),
	}
}

// Batch aggregates many per-unit reports from one invocation.
type Batch struct {
	RunID       string
	Reports     []Report
	Verdict     Verdict
	Totals      map[model.Severity]int
	GeneratedAt time.Time
}

func NewBatch(reports []Report) Batch {
	sorted := append([]Report(nil), reports...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Unit < sorted[j].Unit
	})

	totals := make(map[model.Severity]int, 3)
	verdict := VerdictPass
	for _, r := range sorted {
		for sev, n := range r.SummaryCounts {
			totals[sev] += n
		}
		if r.Verdict == VerdictFail {
			verdict = VerdictFail
		}
	}

	return Batch{
		RunID:       uuid.NewString(),
		Reports:     sorted,
		Verdict:     verdict,
		Totals:      totals,
		GeneratedAt: time.Now().UTC(),
	}
}

// FindingCount is the total number of findings across the batch.
func (b Batch) FindingCount() int {
	n := 0
	for _, r := range b.Reports {
		n += len(r.Findings)
	}
	return n
}
