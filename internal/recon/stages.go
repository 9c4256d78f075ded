package recon

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ProgressReporter receives human-readable progress notes during
// enumeration. internal/output.Progress implements this.
type ProgressReporter interface {
	Detail(msg string)
	Warn(msg string)
}

// Enumerator aggregates crt.sh, DNS brute-force, HackerTarget, AlienVault
// OTX, an optional external subfinder subprocess, and optional DNS zone
// transfers into one deduplicated, normalized hostname set — the
// detection core's documented input (§6: "a set of hostname strings").
type Enumerator struct {
	UserAgent string
	Progress  ProgressReporter
	AXFR      bool
	Subfinder bool // attempt the external subfinder subprocess if present on PATH

	mu            sync.Mutex
	zoneTransfers []ZoneTransfer
	warnings      []string
}

// GetZoneTransfers exposes AXFR results for the reporting collaborator.
func (e *Enumerator) GetZoneTransfers() []ZoneTransfer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.zoneTransfers
}

// GetWarnings exposes non-fatal source failures for the reporting
// collaborator's summary.
func (e *Enumerator) GetWarnings() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.warnings
}

// Enumerate discovers subdomains of domain from every configured source
// in parallel and returns the deduplicated, normalized, sorted hostname
// list the Concurrency Controller should analyze.
func (e *Enumerator) Enumerate(ctx context.Context, domain string, concurrency int) ([]string, error) {
	hostSources := make(map[string][]string)
	hostSources[strings.ToLower(domain)] = []string{"root"}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		hosts, err := CrtshEnumerate(ctx, domain, e.UserAgent)
		e.absorb(hostSources, "crt.sh", hosts, err)
	}()

	bruteConcurrency := concurrency / 2
	if bruteConcurrency < 1 {
		bruteConcurrency = 1
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		hosts, err := BruteEnumerate(ctx, domain, bruteConcurrency)
		e.absorb(hostSources, "brute", hosts, err)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		hosts, err := HackertargetEnumerate(ctx, domain, e.UserAgent)
		e.absorb(hostSources, "hackertarget", hosts, err)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		hosts, err := OTXEnumerate(ctx, domain, e.UserAgent)
		e.absorb(hostSources, "otx", hosts, err)
	}()

	if e.Subfinder {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hosts, err := SubfinderEnumerate(ctx, domain)
			e.absorb(hostSources, "subfinder", hosts, err)
		}()
	}

	if e.AXFR {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.runZoneTransfers(ctx, domain, hostSources)
		}()
	}

	wg.Wait()

	if len(hostSources) <= 1 {
		return nil, fmt.Errorf("all subdomain sources failed for %s", domain)
	}

	hosts := make([]string, 0, len(hostSources))
	for host := range hostSources {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)
	return hosts, nil
}

func (e *Enumerator) absorb(hostSources map[string][]string, source string, hosts []string, err error) {
	if err != nil {
		if e.Progress != nil {
			e.Progress.Warn(fmt.Sprintf("%s: %s", source, err))
		}
		e.mu.Lock()
		e.warnings = append(e.warnings, fmt.Sprintf("%s: %s", source, err))
		e.mu.Unlock()
		return
	}

	e.mu.Lock()
	for _, h := range hosts {
		hostSources[h] = append(hostSources[h], source)
	}
	e.mu.Unlock()
	if e.Progress != nil {
		e.Progress.Detail(fmt.Sprintf("%s: %d subdomains", source, len(hosts)))
	}
}

func (e *Enumerator) runZoneTransfers(ctx context.Context, domain string, hostSources map[string][]string) {
	ztResult, err := AttemptZoneTransfers(ctx, domain)
	if err != nil {
		if e.Progress != nil {
			e.Progress.Warn(fmt.Sprintf("zone transfer: %s", err))
		}
		e.mu.Lock()
		e.warnings = append(e.warnings, fmt.Sprintf("zone transfer: %s", err))
		e.mu.Unlock()
		return
	}

	e.mu.Lock()
	e.zoneTransfers = ztResult.Transfers
	for _, h := range ztResult.Hostnames {
		hostSources[h] = append(hostSources[h], "axfr")
	}

	successCount := 0
	for _, zt := range ztResult.Transfers {
		if zt.Success {
			successCount++
		}
	}
	if successCount > 0 {
		e.warnings = append(e.warnings, fmt.Sprintf(
			"zone transfer enabled on %d of %d nameservers",
			successCount, len(ztResult.Transfers),
		))
	}
	e.mu.Unlock()

	if e.Progress != nil {
		e.Progress.Detail(fmt.Sprintf("zone transfer: %d nameservers tested, %d vulnerable",
			len(ztResult.Transfers), successCount))
	}
}
