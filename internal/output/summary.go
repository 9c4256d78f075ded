package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/vulnverified/sweep/internal/detector"
)

// Version is set via ldflags at build time.
var Version = "dev"

// WriteHeader prints the sweep banner.
func WriteHeader(w io.Writer, noColor bool) {
	if noColor {
		fmt.Fprintf(w, "sweep %s — subdomain takeover detection\n\n", Version)
	} else {
		fmt.Fprintf(w, "\033[1msweep %s\033[0m — subdomain takeover detection\n\n", Version)
	}
}

var verdictOrder = []detector.Verdict{
	detector.VerdictConfirmed,
	detector.VerdictHighlyLikely,
	detector.VerdictLikely,
	detector.VerdictPossible,
	detector.VerdictUnlikely,
	detector.VerdictSafe,
	detector.VerdictError,
}

// WriteSummary prints the post-scan summary: subdomain/live counts, a
// verdict histogram, zone transfer call-outs, and the highest-confidence
// findings worth a human's attention.
func WriteSummary(w io.Writer, target string, stats Stats, findings []*detector.Finding, noColor bool) {
	fmt.Fprintln(w)
	if noColor {
		fmt.Fprintf(w, "Target: %s\n", target)
		fmt.Fprintf(w, "Subdomains: %d discovered, %d live\n", stats.SubdomainsFound, stats.LiveHosts)
	} else {
		fmt.Fprintf(w, "\033[1mTarget:\033[0m %s\n", target)
		fmt.Fprintf(w, "\033[1mSubdomains:\033[0m %d discovered, %d live\n", stats.SubdomainsFound, stats.LiveHosts)
	}

	fmt.Fprintln(w)
	for _, v := range verdictOrder {
		count := stats.VerdictCounts[v]
		if count == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-14s %d\n", v, count)
	}

	if len(stats.ProviderCounts) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Providers identified:")
		providers := make([]string, 0, len(stats.ProviderCounts))
		for p := range stats.ProviderCounts {
			providers = append(providers, p)
		}
		sort.Strings(providers)
		for _, p := range providers {
			fmt.Fprintf(w, "  %s: %d\n", p, stats.ProviderCounts[p])
		}
	}

	if len(stats.ZoneTransfers) > 0 {
		vulnerableNS := 0
		for _, zt := range stats.ZoneTransfers {
			if zt.Success {
				vulnerableNS++
			}
		}
		if vulnerableNS > 0 {
			fmt.Fprintln(w)
			if noColor {
				fmt.Fprintf(w, "! Zone transfer enabled (%d of %d nameservers vulnerable)\n", vulnerableNS, len(stats.ZoneTransfers))
			} else {
				fmt.Fprintf(w, "\033[33m!\033[0m Zone transfer enabled (%d of %d nameservers vulnerable)\n", vulnerableNS, len(stats.ZoneTransfers))
			}
			for _, zt := range stats.ZoneTransfers {
				if zt.Success {
					fmt.Fprintf(w, "  %s (%d records)\n", zt.Nameserver, zt.Records)
				}
			}
		}
	}

	takeovers := stats.TakeoverCount()
	if takeovers > 0 {
		fmt.Fprintln(w)
		if noColor {
			fmt.Fprintf(w, "! %d subdomain(s) at HIGHLY_LIKELY or CONFIRMED takeover risk\n", takeovers)
		} else {
			fmt.Fprintf(w, "\033[31m!\033[0m %d subdomain(s) at HIGHLY_LIKELY or CONFIRMED takeover risk\n", takeovers)
		}
		for _, f := range findings {
			if f.Verdict == detector.VerdictConfirmed || f.Verdict == detector.VerdictHighlyLikely {
				fmt.Fprintf(w, "  %s (%s, confidence %d)\n", f.Subdomain, f.Verdict, f.Confidence)
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Completed in %.1fs\n", stats.Duration.Seconds())
}
