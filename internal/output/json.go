package output

import (
	"encoding/json"
	"io"

	"github.com/vulnverified/sweep/internal/detector"
)

// Report is the top-level JSON document written by WriteJSON.
type Report struct {
	Target   string              `json:"target"`
	Findings []*detector.Finding `json:"findings"`
	Summary  Stats               `json:"summary"`
}

// WriteJSON writes findings and their aggregate stats as indented JSON to w.
func WriteJSON(w io.Writer, target string, findings []*detector.Finding, stats Stats) error {
	report := Report{
		Target:   target,
		Findings: findings,
		Summary:  stats,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
