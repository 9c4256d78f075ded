package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strings"
	"time"
)

// TLSResult is the certificate-name signal captured from a hostile TLS
// handshake (verification disabled; we want the cert even when it
// doesn't match, because a mismatch is itself evidence).
type TLSResult struct {
	CN          string
	SANs        []string
	MatchesHost bool
}

// TLSProber is implemented by TLSClient. The detector declares its own
// interface of the same shape and does not import this one.
type TLSProber interface {
	ProbeTLSCert(ctx context.Context, host string, port int) (*TLSResult, error)
}

// TLSClient is the default TLSProber.
type TLSClient struct {
	timeout time.Duration
}

// NewTLSClient builds a TLSClient with the given handshake timeout (the
// spec's default is 5s).
func NewTLSClient(timeout time.Duration) *TLSClient {
	return &TLSClient{timeout: timeout}
}

// ProbeTLSCert opens a TLS connection to host:port with hostname
// verification disabled, and extracts the leaf certificate's CN and
// SANs. A connection failure returns (nil, err); absence of a
// certificate from a failed handshake is not itself a mismatch — the
// detector treats a nil result as "no TLS signal available," never as
// evidence of anything.
func (c *TLSClient) ProbeTLSCert(ctx context.Context, host string, port int) (*TLSResult, error) {
	dialer := &net.Dialer{Timeout: c.timeout}
	addr := fmt.Sprintf("%s:%d", host, port)

	conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         host,
	})
	if err != nil {
		return nil, fmt.Errorf("tls dial %s: %w", addr, err)
	}
	defer conn.Close()

	state := conn.ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return nil, fmt.Errorf("tls dial %s: no peer certificate presented", addr)
	}

	leaf := state.PeerCertificates[0]
	result := &TLSResult{
		CN:   leaf.Subject.CommonName,
		SANs: append([]string{}, leaf.DNSNames...),
	}
	result.MatchesHost = hostMatchesAny(host, result.allNames())
	return result, nil
}

func (r *TLSResult) allNames() []string {
	names := make([]string, 0, len(r.SANs)+1)
	if r.CN != "" {
		names = append(names, r.CN)
	}
	names = append(names, r.SANs...)
	return names
}

func hostMatchesAny(host string, names []string) bool {
	for _, n := range names {
		if hostMatchesName(host, n) {
			return true
		}
	}
	return false
}

// hostMatchesName implements the spec's wildcard-matching rule: a
// "*.foo.bar" pattern matches any single-label prefix of foo.bar. A
// bare pattern must match host exactly (case-insensitive).
func hostMatchesName(host, pattern string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	pattern = strings.ToLower(strings.TrimSuffix(pattern, "."))

	if !strings.HasPrefix(pattern, "*.") {
		return host == pattern
	}

	suffix := pattern[1:] // ".foo.bar"
	if !strings.HasSuffix(host, suffix) {
		return false
	}
	prefix := strings.TrimSuffix(host, suffix)
	return prefix != "" && !strings.Contains(prefix, ".")
}
