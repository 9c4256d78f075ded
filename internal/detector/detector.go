package detector

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/net/publicsuffix"

	"github.com/vulnverified/sweep/internal/catalog"
	"github.com/vulnverified/sweep/internal/dnsresolver"
	"github.com/vulnverified/sweep/internal/probe"
)

const maxErrorMessageLength = 200

// DNSResolver is the subset of dnsresolver.Client the detector depends
// on, extracted as an interface so tests can inject a stub resolver
// producing deterministic classifications.
type DNSResolver interface {
	ResolveCNAME(ctx context.Context, name string) (string, []string)
	ResolveA(ctx context.Context, name string) []string
	ResolveNS(ctx context.Context, name string) []string
	ClassifyTarget(ctx context.Context, name string) dnsresolver.TargetStatus
	HasWildcard(ctx context.Context, apex string) bool
}

// HTTPProber is the subset of probe.Client the detector depends on.
type HTTPProber interface {
	Attempt(ctx context.Context, scheme, host string) (probe.HTTPResult, bool)
}

// TLSProber is implemented by probe.TLSClient.
type TLSProber interface {
	ProbeTLSCert(ctx context.Context, host string, port int) (*probe.TLSResult, error)
}

// Detector orchestrates the per-subdomain pipeline described in §4.4:
// DNS resolution, provider identification, dangling checks, HTTP/TLS
// probing, confidence aggregation, and verdict assignment. A Detector
// is safe for concurrent use by the Concurrency Controller.
type Detector struct {
	dns  DNSResolver
	http HTTPProber
	tls  TLSProber

	wildcardMu   sync.Mutex
	wildcardMemo map[string]bool
}

// New builds a Detector over the given collaborators.
func New(dns DNSResolver, http HTTPProber, tls TLSProber) *Detector {
	return &Detector{
		dns:          dns,
		http:         http,
		tls:          tls,
		wildcardMemo: make(map[string]bool),
	}
}

// Analyze runs the full detection pipeline for subdomain and returns a
// frozen Finding. It never panics out to the caller: any unrecovered
// failure becomes a Finding with verdict ERROR and a truncated error
// message in its evidence.
func (d *Detector) Analyze(ctx context.Context, subdomain string) (f *Finding) {
	f = &Finding{Subdomain: subdomain}

	defer func() {
		if r := recover(); r != nil {
			f.Verdict = VerdictError
			f.RiskLevel = catalog.RiskInfo
			f.Evidence = []string{fmt.Sprintf("Analysis error: %s", truncateMsg(fmt.Sprint(r), maxErrorMessageLength))}
		}
	}()

	if ctx.Err() != nil {
		f.Verdict = VerdictError
		f.RiskLevel = catalog.RiskInfo
		f.Evidence = []string{"cancelled"}
		return f
	}

	// Stage 1 — DNS.
	head, chain := d.dns.ResolveCNAME(ctx, subdomain)
	f.CNAME = head
	f.CNAMEChain = chain
	f.ARecords = d.dns.ResolveA(ctx, subdomain)
	f.NSRecords = d.dns.ResolveNS(ctx, subdomain)

	cloudIPPresent := false
	for _, ip := range f.ARecords {
		if catalog.ClassifyIP(ip) != "" {
			cloudIPPresent = true
			break
		}
	}

	// NS dangling status is needed by Stage 2's early-exit test, so it's
	// computed here even though it's conceptually part of Stage 4.
	for _, ns := range f.NSRecords {
		status := d.dns.ClassifyTarget(ctx, ns)
		if status == dnsresolver.StatusNXDOMAIN || status == dnsresolver.StatusNoNameservers {
			f.DanglingNS = append(f.DanglingNS, ns)
		}
	}
	f.NSTakeover = len(f.DanglingNS) > 0

	// Stage 2 — Early exit.
	if f.CNAME == "" && !f.NSTakeover && !cloudIPPresent {
		f.Verdict = VerdictSafe
		f.RiskLevel = catalog.RiskInfo
		f.Evidence = []string{"no takeover-relevant DNS signals"}
		return f
	}

	// Stage 3 — Provider identification from CNAME.
	provider := catalog.IdentifyByCNAME(f.CNAME, f.CNAMEChain)
	if provider != nil {
		f.Provider = provider.Name
		f.ProviderRisk = provider.Risk
	}

	// Stage 4 — Dangling-resource checks.
	if f.CNAME != "" {
		status := d.dns.ClassifyTarget(ctx, f.CNAME)
		f.NXDOMAINCName = status == dnsresolver.StatusNXDOMAIN || status == dnsresolver.StatusNoNameservers
	}
	if len(f.CNAMEChain) > 1 {
		for _, link := range f.CNAMEChain[:len(f.CNAMEChain)-1] {
			status := d.dns.ClassifyTarget(ctx, link)
			if status == dnsresolver.StatusNXDOMAIN || status == dnsresolver.StatusNoNameservers {
				f.DanglingCNAMEChainLinks = append(f.DanglingCNAMEChainLinks, link)
			}
		}
	}

	// Stage 5 — HTTP probe.
	d.probeHTTP(ctx, f)

	// dangling_a_record depends on is_live, settled only after Stage 5.
	f.DanglingARecord = cloudIPPresent && !f.IsLive

	// Stage 6 — Header fingerprint.
	headerConfirmedIndependently := false
	if len(f.Headers) > 0 {
		if hp := catalog.IdentifyByHeaders(f.Headers); hp != nil {
			switch {
			case provider == nil:
				provider = hp
				f.Provider = provider.Name
				f.ProviderRisk = provider.Risk
			case hp.Name == provider.Name:
				headerConfirmedIndependently = true
			}
			f.HeaderFingerprint = hp.Name
		}
	}

	// Stage 7 — TLS probe.
	d.probeTLS(ctx, f)

	// Stage 8 — Confidence aggregation.
	hasWildcard := d.wildcardFor(ctx, apexOf(subdomain))

	var mp *matchedProvider
	if provider != nil {
		mp = &matchedProvider{
			Name:           provider.Name,
			ErrorMarkers:   provider.ErrorMarkers,
			ClaimedMarkers: provider.ClaimedMarkers,
			ExpectedStatus: provider.ExpectedStatus,
			CanTakeover:    provider.CanTakeover,
		}
	}
	confidence, evidence := aggregate(f, scoreInputs{
		provider:                     mp,
		headerConfirmedIndependently: headerConfirmedIndependently,
		hasWildcard:                  hasWildcard,
	})
	f.Confidence = confidence
	f.Evidence = evidence

	// Stage 9 — Verdict.
	f.Verdict, f.RiskLevel = verdictFor(confidence, provider != nil)

	// Stage 10 — Verification steps.
	if f.Verdict != VerdictSafe && f.Verdict != VerdictError {
		f.VerificationSteps = buildVerificationSteps(f, provider)
	}

	return f
}

func (d *Detector) probeHTTP(ctx context.Context, f *Finding) {
	httpRes, httpOK := d.http.Attempt(ctx, "http", f.Subdomain)
	if httpOK {
		f.HTTPStatus = httpRes.StatusCode
	}
	httpsRes, httpsOK := d.http.Attempt(ctx, "https", f.Subdomain)
	if httpsOK {
		f.HTTPSStatus = httpsRes.StatusCode
	}
	f.IsLive = httpOK || httpsOK

	var chosen *probe.HTTPResult
	switch {
	case httpOK:
		chosen = &httpRes
	case httpsOK:
		chosen = &httpsRes
	}
	if chosen != nil {
		f.FinalURL = chosen.FinalURL
		f.Body = chosen.Body
		f.PageTitle = chosen.Title
		f.ResponseTime = chosen.ElapsedTime
		f.Headers = chosen.Headers
	}
}

func (d *Detector) probeTLS(ctx context.Context, f *Finding) {
	res, err := d.tls.ProbeTLSCert(ctx, f.Subdomain, 443)
	if err != nil || res == nil {
		return
	}
	f.SSLCertCN = res.CN
	f.SSLMismatch = !res.MatchesHost
}

func (d *Detector) wildcardFor(ctx context.Context, apex string) bool {
	d.wildcardMu.Lock()
	if v, ok := d.wildcardMemo[apex]; ok {
		d.wildcardMu.Unlock()
		return v
	}
	d.wildcardMu.Unlock()

	v := d.dns.HasWildcard(ctx, apex)

	d.wildcardMu.Lock()
	d.wildcardMemo[apex] = v
	d.wildcardMu.Unlock()
	return v
}

// apexOf derives the registrable domain a wildcard probe should target.
// Falls back to the input unchanged if it can't be parsed against the
// public suffix list (e.g. a bare single-label host in a test fixture).
func apexOf(hostname string) string {
	apex, err := publicsuffix.EffectiveTLDPlusOne(hostname)
	if err != nil {
		return hostname
	}
	return apex
}

func truncateMsg(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
