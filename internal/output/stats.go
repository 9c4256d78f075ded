package output

import (
	"time"

	"github.com/vulnverified/sweep/internal/detector"
	"github.com/vulnverified/sweep/internal/recon"
)

// Stats aggregates one scan's findings into the counts the summary and
// JSON report both need.
type Stats struct {
	SubdomainsFound int                      `json:"subdomains_found"`
	LiveHosts       int                      `json:"live_hosts"`
	VerdictCounts   map[detector.Verdict]int `json:"verdict_counts"`
	ProviderCounts  map[string]int           `json:"provider_counts"`
	ZoneTransfers   []recon.ZoneTransfer     `json:"zone_transfers,omitempty"`
	Warnings        []string                 `json:"warnings,omitempty"`
	Duration        time.Duration            `json:"duration_ns"`
}

// BuildStats folds findings and enumeration metadata into a Stats value.
func BuildStats(findings []*detector.Finding, zoneTransfers []recon.ZoneTransfer, warnings []string, duration time.Duration) Stats {
	s := Stats{
		SubdomainsFound: len(findings),
		VerdictCounts:   make(map[detector.Verdict]int),
		ProviderCounts:  make(map[string]int),
		ZoneTransfers:   zoneTransfers,
		Warnings:        warnings,
		Duration:        duration,
	}
	for _, f := range findings {
		s.VerdictCounts[f.Verdict]++
		if f.IsLive {
			s.LiveHosts++
		}
		if f.Provider != "" {
			s.ProviderCounts[f.Provider]++
		}
	}
	return s
}

// TakeoverCount returns the number of findings at HIGHLY_LIKELY or
// CONFIRMED, the threshold cmd/sweep uses to pick its exit code.
func (s Stats) TakeoverCount() int {
	return s.VerdictCounts[detector.VerdictConfirmed] + s.VerdictCounts[detector.VerdictHighlyLikely]
}
