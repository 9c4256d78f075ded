package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/vulnverified/sweep/internal/detector"
	"github.com/vulnverified/sweep/internal/recon"
)

type mockEnumerator struct {
	hosts         []string
	err           error
	zoneTransfers []recon.ZoneTransfer
	warnings      []string
}

func (m *mockEnumerator) Enumerate(ctx context.Context, domain string, concurrency int) ([]string, error) {
	return m.hosts, m.err
}

func (m *mockEnumerator) GetZoneTransfers() []recon.ZoneTransfer {
	return m.zoneTransfers
}

func (m *mockEnumerator) GetWarnings() []string {
	return m.warnings
}

type mockScanner struct {
	findings []*detector.Finding
}

func (m *mockScanner) Run(ctx context.Context, hosts []string) []*detector.Finding {
	return m.findings
}

type noopProgress struct{}

func (p *noopProgress) Stage(num, total int, msg string) {}
func (p *noopProgress) Detail(msg string)                {}
func (p *noopProgress) Warn(msg string)                  {}

func TestEngine_FullPipeline(t *testing.T) {
	enumerator := &mockEnumerator{hosts: []string{"example.com", "www.example.com"}}
	scanner := &mockScanner{
		findings: []*detector.Finding{
			{Subdomain: "example.com", Verdict: detector.VerdictSafe},
			{Subdomain: "www.example.com", Verdict: detector.VerdictLikely, Confidence: 50},
		},
	}

	cfg := Config{Target: "example.com", Concurrency: 10}

	result, err := Run(context.Background(), cfg, enumerator, scanner, &noopProgress{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Target != "example.com" {
		t.Errorf("target = %q, want %q", result.Target, "example.com")
	}
	if len(result.Findings) != 2 {
		t.Errorf("findings = %d, want 2", len(result.Findings))
	}
	if result.Duration <= 0 {
		t.Error("duration should be positive")
	}
}

func TestEngine_NoSubdomains_ReturnsError(t *testing.T) {
	enumerator := &mockEnumerator{err: fmt.Errorf("all sources failed")}
	cfg := Config{Target: "example.com", Concurrency: 5}
	_, err := Run(context.Background(), cfg, enumerator, &mockScanner{}, &noopProgress{})
	if err == nil {
		t.Fatal("expected error when no subdomains found")
	}
}

func TestEngine_EmptyHostList_ReturnsError(t *testing.T) {
	enumerator := &mockEnumerator{hosts: nil}
	cfg := Config{Target: "example.com", Concurrency: 5}
	_, err := Run(context.Background(), cfg, enumerator, &mockScanner{}, &noopProgress{})
	if err == nil {
		t.Fatal("expected error when enumeration yields no hosts")
	}
}

func TestEngine_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	enumerator := &mockEnumerator{err: context.Canceled}
	cfg := Config{Target: "example.com", Concurrency: 5}
	_, err := Run(ctx, cfg, enumerator, &mockScanner{}, &noopProgress{})
	if err == nil {
		t.Fatal("expected error on cancelled context")
	}
}

func TestEngine_ZoneTransfersAndWarningsPropagate(t *testing.T) {
	enumerator := &mockEnumerator{
		hosts: []string{"example.com", "old.example.com"},
		zoneTransfers: []recon.ZoneTransfer{
			{Nameserver: "ns1.example.com", Success: true, Records: 42},
			{Nameserver: "ns2.example.com", Success: false},
		},
		warnings: []string{"zone transfer enabled on 1 of 2 nameservers"},
	}
	scanner := &mockScanner{findings: []*detector.Finding{
		{Subdomain: "example.com", Verdict: detector.VerdictSafe},
		{Subdomain: "old.example.com", Verdict: detector.VerdictHighlyLikely, Confidence: 65},
	}}

	cfg := Config{Target: "example.com", Concurrency: 5}
	result, err := Run(context.Background(), cfg, enumerator, scanner, &noopProgress{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.ZoneTransfers) != 2 {
		t.Fatalf("expected 2 zone transfers, got %d", len(result.ZoneTransfers))
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %d", len(result.Warnings))
	}
}
