// Package engine orchestrates the subdomain takeover scan: enumeration,
// bounded-parallel analysis, and the aggregate stats the reporting
// collaborator renders.
package engine

import (
	"context"
	"time"

	"github.com/vulnverified/sweep/internal/detector"
	"github.com/vulnverified/sweep/internal/recon"
)

// Config holds the runtime configuration for a sweep takeover run.
type Config struct {
	Target        string
	Concurrency   int
	RatePerSecond float64
	HTTPTimeout   time.Duration
	DNSTimeout    time.Duration
	UserAgent     string
	AXFR          bool
	Subfinder     bool
	UseDig        bool
	DigPath       string
	DNSServers    []string
}

// Enumerator discovers candidate hostnames for a target domain.
type Enumerator interface {
	Enumerate(ctx context.Context, domain string, concurrency int) ([]string, error)
}

// ZoneTransferProvider is an optional interface an Enumerator can
// satisfy to report AXFR results alongside enumeration.
type ZoneTransferProvider interface {
	GetZoneTransfers() []recon.ZoneTransfer
}

// WarningProvider is an optional interface an Enumerator can satisfy to
// report non-fatal source failures.
type WarningProvider interface {
	GetWarnings() []string
}

// Scanner runs the Concurrency Controller over a hostname set.
type Scanner interface {
	Run(ctx context.Context, hosts []string) []*detector.Finding
}

// ProgressReporter is called by the engine to report stage progress.
type ProgressReporter interface {
	Stage(num, total int, msg string)
	Detail(msg string)
	Warn(msg string)
}

// Result is the top-level output of a sweep takeover run.
type Result struct {
	Target        string
	StartedAt     time.Time
	CompletedAt   time.Time
	Duration      time.Duration
	Findings      []*detector.Finding
	ZoneTransfers []recon.ZoneTransfer
	Warnings      []string
}
