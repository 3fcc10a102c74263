package history

import (
	"fmt"
	"time"
)

type TrendPoint struct {
	Timestamp     time.Time
	RunID         string
	FileCount     int
	FindingCount  int
	ErrorCount    int
	WarningCount  int
	InfoCount     int
	Verdict       string
	DeltaFindings int
	DeltaErrors   int
	DeltaWarnings int
}

type TrendReport struct {
	SchemaVersion int
	Since         time.Time
	Until         time.Time
	RunCount      int
	Points        []TrendPoint
}

// BuildTrendReport derives per-run deltas over a chronologically ordered
// snapshot slice (oldest first).
func BuildTrendReport(snapshots []Snapshot) (TrendReport, error) {
	if len(snapshots) == 0 {
		return TrendReport{}, fmt.Errorf("no snapshots available")
	}

	points := make([]TrendPoint, 0, len(snapshots))
	for i, current := range snapshots {
		point := TrendPoint{
			Timestamp:    current.Timestamp,
			RunID:        current.RunID,
			FileCount:    current.FileCount,
			FindingCount: current.FindingCount,
			ErrorCount:   current.ErrorCount,
			WarningCount: current.WarningCount,
			InfoCount:    current.InfoCount,
			Verdict:      current.Verdict,
		}
		if i > 0 {
			prev := snapshots[i-1]
			point.DeltaFindings = current.FindingCount - prev.FindingCount
			point.DeltaErrors = current.ErrorCount - prev.ErrorCount
			point.DeltaWarnings = current.WarningCount - prev.WarningCount
		}
		points = append(points, point)
	}

	return TrendReport{
		SchemaVersion: SchemaVersion,
		Since:         snapshots[0].Timestamp,
		Until:         snapshots[len(snapshots)-1].Timestamp,
		RunCount:      len(points),
		Points:        points,
	}, nil
}
