// Package scanner is the Concurrency Controller (C5): it drives a set
// of candidate hostnames through a detector.Detector with bounded
// parallelism, periodic progress reporting, and a shared rate limiter
// for the external services the detector calls into.
package scanner

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/time/rate"

	"github.com/vulnverified/sweep/internal/detector"
)

const defaultConcurrency = 50

// ProgressFunc is called every ten completions (never more often) with
// the running completed/total counts. It must not block.
type ProgressFunc func(completed, total int)

// Detector is the subset of detector.Detector the controller depends
// on, so tests can inject a stub that doesn't touch the network.
type Detector interface {
	Analyze(ctx context.Context, subdomain string) *detector.Finding
}

// Controller bounds parallelism over a hostname set and reports
// progress on a side channel, matching §4.5 of the detection design.
type Controller struct {
	det         Detector
	concurrency int
	limiter     *rate.Limiter
	progress    ProgressFunc
}

// Config controls Controller construction.
type Config struct {
	Concurrency   int
	RatePerSecond float64 // 0 disables rate limiting
	Progress      ProgressFunc
}

// New builds a Controller over det.
func New(det Detector, cfg Config) *Controller {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		limiter = newLimiter(cfg.RatePerSecond)
	}

	return &Controller{
		det:         det,
		concurrency: concurrency,
		limiter:     limiter,
		progress:    cfg.Progress,
	}
}

// Limiter exposes the controller's shared rate limiter so callers can
// thread it into the DNS resolver and HTTP prober's own Config — the
// limiter is process-wide, one per service class, per §5.
func (c *Controller) Limiter() *rate.Limiter {
	return c.limiter
}

// Run drives every hostname in hosts through the detector with up to
// c.concurrency pipelines in flight. Findings are returned sorted by
// subdomain — completion order isn't a contract (§4.5), so tests (and
// callers who want determinism) get a stable result instead.
func (c *Controller) Run(ctx context.Context, hosts []string) []*detector.Finding {
	work := make(chan string, len(hosts))
	for _, h := range hosts {
		work <- h
	}
	close(work)

	results := make(chan *detector.Finding, len(hosts))

	var wg sync.WaitGroup
	for i := 0; i < c.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for host := range work {
				if ctx.Err() != nil {
					results <- cancelledFinding(host)
					continue
				}
				results <- c.det.Analyze(ctx, host)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	findings := make([]*detector.Finding, 0, len(hosts))
	completed := 0
	total := len(hosts)
	for f := range results {
		findings = append(findings, f)
		completed++
		if completed%10 == 0 && c.progress != nil {
			c.progress(completed, total)
		}
	}
	sort.Slice(findings, func(i, j int) bool {
		return findings[i].Subdomain < findings[j].Subdomain
	})
	return findings
}

func cancelledFinding(subdomain string) *detector.Finding {
	return &detector.Finding{
		Subdomain: subdomain,
		Verdict:   detector.VerdictError,
		Evidence:  []string{"cancelled"},
	}
}
