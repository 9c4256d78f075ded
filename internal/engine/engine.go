package engine

import (
	"context"
	"fmt"
	"time"
)

const totalStages = 2

// Run discovers candidate hostnames for cfg.Target, then hands them to
// the Concurrency Controller for takeover analysis.
func Run(ctx context.Context, cfg Config, enumerator Enumerator, scanner Scanner, progress ProgressReporter) (*Result, error) {
	result := &Result{
		Target:    cfg.Target,
		StartedAt: time.Now(),
	}

	progress.Stage(1, totalStages, "Enumerating subdomains...")
	hosts, err := enumerator.Enumerate(ctx, cfg.Target, cfg.Concurrency)
	if err != nil {
		return nil, fmt.Errorf("subdomain enumeration failed: %w", err)
	}
	if len(hosts) == 0 {
		return nil, fmt.Errorf("no subdomains discovered for %s", cfg.Target)
	}
	progress.Detail(fmt.Sprintf("found %d unique hostnames", len(hosts)))

	if ztp, ok := enumerator.(ZoneTransferProvider); ok {
		result.ZoneTransfers = ztp.GetZoneTransfers()
	}
	if wp, ok := enumerator.(WarningProvider); ok {
		result.Warnings = wp.GetWarnings()
	}

	progress.Stage(2, totalStages, fmt.Sprintf("Analyzing %d hostnames for takeover risk...", len(hosts)))
	findings := scanner.Run(ctx, hosts)
	result.Findings = findings

	result.CompletedAt = time.Now()
	result.Duration = result.CompletedAt.Sub(result.StartedAt)

	return result, nil
}
