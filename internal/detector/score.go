package detector

import (
	"fmt"
	"strings"
)

const (
	scoreNSDelegation      = 50
	scoreCNAMEHeadNXDOMAIN = 40
	scoreChainLinkNXDOMAIN = 35
	maxChainLinkScore      = 70
	scoreExpectedStatus    = 20
	scoreErrorPattern      = 30
	scoreNoClaimedMarker   = 10
	scoreClaimedMarker     = -15
	scoreSSLMismatch       = 15
	scoreDanglingARecord   = 15
	scoreNoHTTPNXDOMAIN    = 10
	scoreWildcardSuppress  = -20
	capWhenCannotTakeover  = 30
)

// scoreInputs carries everything score aggregation needs beyond the
// Finding's own DNS/HTTP/TLS fields: the identified provider (nil if
// none), whether header fingerprinting independently confirmed a
// provider already found via CNAME, and the once-per-scan wildcard memo.
type scoreInputs struct {
	provider                     *matchedProvider
	headerConfirmedIndependently bool
	hasWildcard                  bool
}

// matchedProvider is the subset of catalog.Provider the scorer needs,
// kept separate from the catalog package so score.go has no import
// dependency beyond its own package.
type matchedProvider struct {
	Name           string
	ErrorMarkers   []string
	ClaimedMarkers []string
	ExpectedStatus map[int]bool
	CanTakeover    bool
}

// aggregate computes the confidence score and evidence trail for f. It
// never mutates f. Per the SAFE invariant (§8: "verdict = SAFE implies
// confidence = 0 and no signal-contribution evidence"), a final score
// of zero always returns with its evidence discarded — a net-zero
// outcome (e.g. a lone claimed-site penalty clamped up from negative)
// must not masquerade as having contributed.
func aggregate(f *Finding, in scoreInputs) (confidence int, evidence []string) {
	total := 0
	var ev []string

	if f.NSTakeover {
		total += scoreNSDelegation
		ev = append(ev, fmt.Sprintf("NS delegation to dead nameserver(s): %v", f.DanglingNS))
	}

	if f.NXDOMAINCName {
		if !f.IsLive {
			total += scoreCNAMEHeadNXDOMAIN + scoreNoHTTPNXDOMAIN
			ev = append(ev, fmt.Sprintf("CNAME head %q is NXDOMAIN; no HTTP response either", f.CNAME))
		} else {
			total += scoreCNAMEHeadNXDOMAIN
			ev = append(ev, fmt.Sprintf("CNAME head %q is NXDOMAIN", f.CNAME))
		}
	}

	if n := len(f.DanglingCNAMEChainLinks); n > 0 {
		linkScore := n * scoreChainLinkNXDOMAIN
		if linkScore > maxChainLinkScore {
			linkScore = maxChainLinkScore
		}
		total += linkScore
		ev = append(ev, fmt.Sprintf("%d dangling intermediate CNAME chain link(s): %v", n, f.DanglingCNAMEChainLinks))
	}

	if f.DanglingARecord {
		total += scoreDanglingARecord
		ev = append(ev, fmt.Sprintf("A record(s) %v resolve into a cloud IP range and the host is unreachable", f.ARecords))
	}

	if in.provider != nil && f.IsLive {
		p := in.provider
		if p.ExpectedStatus[f.HTTPStatus] || p.ExpectedStatus[f.HTTPSStatus] {
			total += scoreExpectedStatus
			ev = append(ev, fmt.Sprintf("response status matches %s's unclaimed-resource pattern", p.Name))
		}

		errMatched := false
		for _, marker := range p.ErrorMarkers {
			if containsFold(f.Body, marker) {
				total += scoreErrorPattern
				ev = append(ev, fmt.Sprintf("response body contains %s's error marker %q", p.Name, marker))
				errMatched = true
				break
			}
		}
		_ = errMatched

		claimed := false
		for _, marker := range p.ClaimedMarkers {
			if containsFold(f.Body, marker) {
				claimed = true
				break
			}
		}
		if claimed {
			total += scoreClaimedMarker
			ev = append(ev, fmt.Sprintf("response body contains %s's claimed-site marker", p.Name))
		} else {
			total += scoreNoClaimedMarker
			ev = append(ev, fmt.Sprintf("no claimed-site marker present for %s", p.Name))
		}
	}

	if in.headerConfirmedIndependently {
		ev = append(ev, "header fingerprint independently confirms the provider identified via CNAME")
	}

	if f.SSLMismatch {
		total += scoreSSLMismatch
		ev = append(ev, fmt.Sprintf("TLS certificate name %q does not match %s", f.SSLCertCN, f.Subdomain))
	}

	if in.hasWildcard {
		total -= scoreWildcardSuppressMagnitude()
		ev = append(ev, "wildcard DNS detected on apex; confidence suppressed")
	}

	if in.provider != nil && !in.provider.CanTakeover && !f.NSTakeover && total > capWhenCannotTakeover {
		total = capWhenCannotTakeover
		ev = append(ev, fmt.Sprintf("provider %s does not permit arbitrary third-party claims; confidence capped", in.provider.Name))
	}

	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	if total == 0 {
		return 0, nil
	}
	if len(ev) > maxEvidenceItems {
		ev = ev[:maxEvidenceItems]
	}
	return total, ev
}

func scoreWildcardSuppressMagnitude() int {
	if scoreWildcardSuppress < 0 {
		return -scoreWildcardSuppress
	}
	return scoreWildcardSuppress
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
