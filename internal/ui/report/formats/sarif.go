package formats

import (
	"encoding/json"
	"path/filepath"
	"sort"

	"uilint/internal/engine/model"
	"uilint/internal/engine/report"
	"uilint/internal/shared/version"
)

// SARIF v2.1.0 schema – see https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json

const (
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	sarifVersion = "2.1.0"
)

// sarifReport is the top-level SARIF document.
type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	DefaultConfig    sarifRuleDefaultConfig `json:"defaultConfiguration"`
}

type sarifRuleDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
}

// GenerateSARIF builds a SARIF v2.1.0 document from a batch of lint reports.
// ruleTitles maps rule ids to short descriptions; ids missing from the map
// still appear in the rules block with the id as name. File URIs are made
// relative to projectRoot so reports are safe to share.
func GenerateSARIF(projectRoot string, batch report.Batch, ruleTitles map[string]string) ([]byte, error) {
	results := make([]sarifResult, 0, batch.FindingCount())
	firing := make(map[string]model.Severity)

	for _, rep := range batch.Reports {
		for _, f := range rep.Findings {
			if _, ok := firing[f.RuleID]; !ok {
				firing[f.RuleID] = f.Severity
			}
			result := sarifResult{
				RuleID:  f.RuleID,
				Level:   severityToLevel(f.Severity),
				Message: sarifMessage{Text: f.Message},
			}
			if f.Location.File != "" {
				loc := sarifLocation{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{
							URI:       relativeURI(projectRoot, f.Location.File),
							URIBaseID: "%SRCROOT%",
						},
					},
				}
				if f.Location.Line > 0 {
					loc.PhysicalLocation.Region = &sarifRegion{
						StartLine:   f.Location.Line,
						StartColumn: f.Location.Column,
					}
				}
				result.Locations = []sarifLocation{loc}
			}
			results = append(results, result)
		}
	}

	doc := sarifReport{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    "uilint",
						Version: version.Version,
						Rules:   buildSARIFRules(firing, ruleTitles),
					},
				},
				Results: results,
			},
		},
	}

	return json.MarshalIndent(doc, "", "  ")
}

// buildSARIFRules returns metadata only for the rules that actually fired.
func buildSARIFRules(firing map[string]model.Severity, titles map[string]string) []sarifRule {
	ids := make([]string, 0, len(firing))
	for id := range firing {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]sarifRule, 0, len(ids))
	for _, id := range ids {
		title := titles[id]
		if title == "" {
			title = id
		}
		out = append(out, sarifRule{
			ID:               id,
			Name:             id,
			ShortDescription: sarifMessage{Text: title},
			DefaultConfig:    sarifRuleDefaultConfig{Level: severityToLevel(firing[id])},
		})
	}
	return out
}

func severityToLevel(s model.Severity) string {
	switch s {
	case model.SeverityError:
		return "error"
	case model.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

// relativeURI converts an absolute file path to a forward-slash relative URI
// anchored at projectRoot. If the path is already relative or projectRoot is
// empty, the original path (with forward slashes) is returned.
func relativeURI(projectRoot, filePath string) string {
	if projectRoot != "" && filepath.IsAbs(filePath) {
		rel, err := filepath.Rel(projectRoot, filePath)
		if err == nil {
			filePath = rel
		}
	}
	// SARIF URIs use forward slashes.
	return filepath.ToSlash(filePath)
}
