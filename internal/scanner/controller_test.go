package scanner

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/vulnverified/sweep/internal/detector"
)

type stubDetector struct {
	calls int32
}

func (s *stubDetector) Analyze(ctx context.Context, subdomain string) *detector.Finding {
	atomic.AddInt32(&s.calls, 1)
	return &detector.Finding{Subdomain: subdomain, Verdict: detector.VerdictSafe}
}

func TestController_RunProcessesAllHosts(t *testing.T) {
	hosts := []string{"c.example.com", "a.example.com", "b.example.com"}
	det := &stubDetector{}

	c := New(det, Config{Concurrency: 2})
	findings := c.Run(context.Background(), hosts)

	if len(findings) != len(hosts) {
		t.Fatalf("got %d findings, want %d", len(findings), len(hosts))
	}
	if atomic.LoadInt32(&det.calls) != int32(len(hosts)) {
		t.Errorf("detector called %d times, want %d", det.calls, len(hosts))
	}
}

func TestController_RunSortsBySubdomain(t *testing.T) {
	hosts := []string{"z.example.com", "a.example.com", "m.example.com"}
	c := New(&stubDetector{}, Config{})
	findings := c.Run(context.Background(), hosts)

	for i := 1; i < len(findings); i++ {
		if findings[i-1].Subdomain > findings[i].Subdomain {
			t.Errorf("findings not sorted: %s before %s", findings[i-1].Subdomain, findings[i].Subdomain)
		}
	}
}

func TestController_ProgressCallbackFiresEveryTen(t *testing.T) {
	hosts := make([]string, 25)
	for i := range hosts {
		hosts[i] = "h" + string(rune('a'+i)) + ".example.com"
	}

	var calls int32
	c := New(&stubDetector{}, Config{
		Concurrency: 5,
		Progress: func(completed, total int) {
			atomic.AddInt32(&calls, 1)
		},
	})
	c.Run(context.Background(), hosts)

	if calls != 2 { // fires at 10 and 20, not at the trailing 25
		t.Errorf("progress called %d times, want 2", calls)
	}
}

func TestController_CancelledContextYieldsErrorFindings(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(&stubDetector{}, Config{})
	findings := c.Run(ctx, []string{"a.example.com"})

	if len(findings) != 1 || findings[0].Verdict != detector.VerdictError {
		t.Errorf("expected a single ERROR finding, got %+v", findings)
	}
}
