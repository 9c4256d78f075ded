package detector

import (
	"context"
	"testing"

	"github.com/vulnverified/sweep/internal/dnsresolver"
	"github.com/vulnverified/sweep/internal/probe"
)

// Mock collaborators for testing.

type mockDNS struct {
	cnameHead  string
	cnameChain []string
	aRecords   []string
	nsRecords  []string
	classify   map[string]dnsresolver.TargetStatus
	wildcard   bool
}

func (m *mockDNS) ResolveCNAME(ctx context.Context, name string) (string, []string) {
	return m.cnameHead, m.cnameChain
}

func (m *mockDNS) ResolveA(ctx context.Context, name string) []string { return m.aRecords }

func (m *mockDNS) ResolveNS(ctx context.Context, name string) []string { return m.nsRecords }

func (m *mockDNS) ClassifyTarget(ctx context.Context, name string) dnsresolver.TargetStatus {
	if m.classify == nil {
		return dnsresolver.StatusExists
	}
	if s, ok := m.classify[name]; ok {
		return s
	}
	return dnsresolver.StatusExists
}

func (m *mockDNS) HasWildcard(ctx context.Context, apex string) bool { return m.wildcard }

type mockHTTP struct {
	byScheme map[string]probe.HTTPResult
	ok       map[string]bool
}

func (m *mockHTTP) Attempt(ctx context.Context, scheme, host string) (probe.HTTPResult, bool) {
	return m.byScheme[scheme], m.ok[scheme]
}

type mockTLS struct {
	result *probe.TLSResult
	err    error
}

func (m *mockTLS) ProbeTLSCert(ctx context.Context, host string, port int) (*probe.TLSResult, error) {
	return m.result, m.err
}

func TestDetector_SafeWhenNoSignals(t *testing.T) {
	dns := &mockDNS{}
	http := &mockHTTP{}
	tls := &mockTLS{}

	d := New(dns, http, tls)
	f := d.Analyze(context.Background(), "plain.example.com")

	if f.Verdict != VerdictSafe {
		t.Errorf("verdict = %s, want SAFE", f.Verdict)
	}
	if f.Confidence != 0 {
		t.Errorf("confidence = %d, want 0", f.Confidence)
	}
}

func TestDetector_S3NXDOMAINScenario(t *testing.T) {
	dns := &mockDNS{
		cnameHead:  "missing-xyz.s3.amazonaws.com",
		cnameChain: []string{"missing-xyz.s3.amazonaws.com"},
		classify: map[string]dnsresolver.TargetStatus{
			"missing-xyz.s3.amazonaws.com": dnsresolver.StatusNXDOMAIN,
		},
	}
	http := &mockHTTP{} // no response on either scheme
	tls := &mockTLS{}

	d := New(dns, http, tls)
	f := d.Analyze(context.Background(), "test.example.com")

	if f.Provider != "aws_s3" {
		t.Errorf("provider = %q, want aws_s3", f.Provider)
	}
	if f.Confidence != 50 {
		t.Errorf("confidence = %d, want 50", f.Confidence)
	}
	if f.Verdict != VerdictLikely {
		t.Errorf("verdict = %s, want LIKELY", f.Verdict)
	}
	if len(f.VerificationSteps) == 0 {
		t.Error("expected non-empty verification steps")
	}
}

func TestDetector_DeadNSDelegation(t *testing.T) {
	dns := &mockDNS{
		nsRecords: []string{"ns1.deadzone.invalid"},
		classify: map[string]dnsresolver.TargetStatus{
			"ns1.deadzone.invalid": dnsresolver.StatusNXDOMAIN,
		},
	}
	http := &mockHTTP{}
	tls := &mockTLS{}

	d := New(dns, http, tls)
	f := d.Analyze(context.Background(), "legacy.example.com")

	if !f.NSTakeover {
		t.Fatal("expected ns_takeover = true")
	}
	if f.Confidence < 50 {
		t.Errorf("confidence = %d, want >= 50", f.Confidence)
	}
	found := false
	for _, s := range f.VerificationSteps {
		if containsFold(s, "nameserver") {
			found = true
		}
	}
	if !found {
		t.Error("expected a verification step mentioning the dead nameserver")
	}
}

func TestDetector_CancelledContextProducesError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := New(&mockDNS{}, &mockHTTP{}, &mockTLS{})
	f := d.Analyze(ctx, "whatever.example.com")

	if f.Verdict != VerdictError {
		t.Errorf("verdict = %s, want ERROR", f.Verdict)
	}
}

func TestDetector_Idempotent(t *testing.T) {
	dns := &mockDNS{
		cnameHead:  "someorg.github.io",
		cnameChain: []string{"someorg.github.io"},
	}
	http := &mockHTTP{
		byScheme: map[string]probe.HTTPResult{
			"http": {StatusCode: 404, Body: "There isn't a GitHub Pages site here.", Headers: map[string]string{}},
		},
		ok: map[string]bool{"http": true},
	}
	tls := &mockTLS{}

	d := New(dns, http, tls)
	first := d.Analyze(context.Background(), "blog.example.com")
	second := d.Analyze(context.Background(), "blog.example.com")

	if first.Confidence != second.Confidence || first.Verdict != second.Verdict {
		t.Errorf("repeated analysis diverged: %+v vs %+v", first, second)
	}
}
