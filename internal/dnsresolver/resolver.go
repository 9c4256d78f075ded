// Package dnsresolver implements the CNAME-chain walk, A/NS resolution,
// wildcard detection, and NXDOMAIN classification the detector depends
// on. Every lookup is cached for the lifetime of a single Client — the
// cache is scan-scoped, never persisted, and never evicted.
package dnsresolver

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
	"golang.org/x/time/rate"
)

// TargetStatus is the outcome of classifying whether a DNS name exists.
type TargetStatus int

const (
	StatusUnknown TargetStatus = iota
	StatusExists
	StatusNXDOMAIN
	StatusNoNameservers
	StatusOtherError
)

func (s TargetStatus) String() string {
	switch s {
	case StatusExists:
		return "EXISTS"
	case StatusNXDOMAIN:
		return "NXDOMAIN"
	case StatusNoNameservers:
		return "NO_NAMESERVERS"
	case StatusOtherError:
		return "OTHER_ERROR"
	default:
		return "UNKNOWN"
	}
}

const maxCNAMEHops = 5

// Config controls query behavior. Zero values fall back to sane defaults
// in New.
type Config struct {
	QueryTimeout time.Duration
	Servers      []string // resolver addresses; "host" or "host:port" — port 53 assumed when absent
	PreferDig    bool
	DigPath      string
	RateLimiter  *rate.Limiter // optional, shared across a scan
}

// Client is a scan-scoped DNS resolver. It is safe for concurrent use.
type Client struct {
	cfg Config

	cache *cache

	digAvailable bool
}

// New builds a Client. Pass cfg.Servers to pin specific resolvers;
// otherwise the system's /etc/resolv.conf configuration is used, falling
// back to public resolvers if that file can't be read.
func New(cfg Config) *Client {
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = 5 * time.Second
	}
	if cfg.DigPath == "" {
		cfg.DigPath = "dig"
	}
	if len(cfg.Servers) == 0 {
		cfg.Servers = systemResolvers()
	}

	c := &Client{cfg: cfg, cache: newCache()}
	if cfg.PreferDig {
		c.digAvailable = digOnPath(cfg.DigPath)
	}
	return c
}

func systemResolvers() []string {
	conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(conf.Servers) == 0 {
		return []string{"1.1.1.1", "8.8.8.8"}
	}
	return conf.Servers
}

func (c *Client) wait(ctx context.Context) {
	if c.cfg.RateLimiter == nil {
		return
	}
	_ = c.cfg.RateLimiter.Wait(ctx)
}

// ResolveCNAME walks the CNAME chain for name up to 5 hops, stopping on a
// cycle, a NoAnswer result, or a non-CNAME terminus. It returns the chain
// head (the final alias target) and the full ordered, deduplicated chain.
// Any error collapses to ("", nil).
func (c *Client) ResolveCNAME(ctx context.Context, name string) (string, []string) {
	key := cacheKey{"CNAME_CHAIN", strings.ToLower(name)}
	if v, ok := c.cache.get(key); ok {
		r := v.(cnameChainResult)
		return r.head, r.chain
	}

	head, chain := walkChain(name, func(n string) (string, bool) {
		return c.lookupCNAMEHop(ctx, n)
	})

	c.cache.set(key, cnameChainResult{head, chain})
	return head, chain
}

// walkChain follows lookup from start up to maxCNAMEHops times, stopping
// on a cycle or the first hop lookup reports doesn't exist. It returns
// the final alias target (the chain head) and the ordered, deduplicated
// chain of hops actually followed.
func walkChain(start string, lookup func(string) (string, bool)) (string, []string) {
	var chain []string
	seen := map[string]bool{strings.ToLower(start): true}
	current := start
	for i := 0; i < maxCNAMEHops; i++ {
		target, ok := lookup(current)
		if !ok {
			break
		}
		lower := strings.ToLower(target)
		if seen[lower] {
			break // cycle
		}
		seen[lower] = true
		chain = append(chain, target)
		current = target
	}

	var head string
	if len(chain) > 0 {
		head = chain[len(chain)-1]
	}
	return head, chain
}

type cnameChainResult struct {
	head  string
	chain []string
}

func (c *Client) lookupCNAMEHop(ctx context.Context, name string) (string, bool) {
	if c.digAvailable {
		lines, err := c.digQuery(ctx, "CNAME", name, false)
		if err == nil && len(lines) > 0 {
			return strings.TrimSuffix(lines[0], "."), true
		}
		if err == nil {
			return "", false
		}
		// Fall through to the protocol resolver on tool failure.
	}

	c.wait(ctx)
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), dns.TypeCNAME)
	r, err := c.exchange(ctx, m)
	if err != nil || r == nil {
		return "", false
	}
	for _, ans := range r.Answer {
		if rec, ok := ans.(*dns.CNAME); ok {
			return strings.TrimSuffix(rec.Target, "."), true
		}
	}
	return "", false
}

// ResolveA returns the IPv4 addresses for name, or nil on any error.
func (c *Client) ResolveA(ctx context.Context, name string) []string {
	key := cacheKey{"A", strings.ToLower(name)}
	if v, ok := c.cache.get(key); ok {
		return v.([]string)
	}

	var ips []string
	if c.digAvailable {
		if lines, err := c.digQuery(ctx, "A", name, false); err == nil {
			// +short output lists any CNAME targets ahead of the addresses.
			for _, l := range lines {
				if ip := net.ParseIP(l); ip != nil && ip.To4() != nil {
					ips = append(ips, l)
				}
			}
		}
	}
	if ips == nil {
		c.wait(ctx)
		m := new(dns.Msg)
		m.SetQuestion(dns.Fqdn(name), dns.TypeA)
		r, err := c.exchange(ctx, m)
		if err == nil && r != nil {
			for _, ans := range r.Answer {
				if rec, ok := ans.(*dns.A); ok {
					ips = append(ips, rec.A.String())
				}
			}
		}
	}
	c.cache.set(key, ips)
	return ips
}

// ResolveNS returns the nameserver target names for name (trailing dot
// stripped), or nil on NoAnswer/NXDOMAIN/error.
func (c *Client) ResolveNS(ctx context.Context, name string) []string {
	key := cacheKey{"NS", strings.ToLower(name)}
	if v, ok := c.cache.get(key); ok {
		return v.([]string)
	}

	var nameservers []string
	if c.digAvailable {
		if lines, err := c.digQuery(ctx, "NS", name, false); err == nil {
			for _, l := range lines {
				nameservers = append(nameservers, strings.TrimSuffix(l, "."))
			}
		}
	}
	if nameservers == nil {
		c.wait(ctx)
		m := new(dns.Msg)
		m.SetQuestion(dns.Fqdn(name), dns.TypeNS)
		r, err := c.exchange(ctx, m)
		if err == nil && r != nil {
			for _, ans := range r.Answer {
				if rec, ok := ans.(*dns.NS); ok {
					nameservers = append(nameservers, strings.TrimSuffix(rec.Ns, "."))
				}
			}
		}
	}
	c.cache.set(key, nameservers)
	return nameservers
}

// ClassifyTarget determines whether name exists, is NXDOMAIN, has no
// tended nameservers, or couldn't be classified due to a network error.
func (c *Client) ClassifyTarget(ctx context.Context, name string) TargetStatus {
	key := cacheKey{"CLASSIFY", strings.ToLower(name)}
	if v, ok := c.cache.get(key); ok {
		return v.(TargetStatus)
	}

	c.wait(ctx)
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), dns.TypeA)
	r, err := c.exchange(ctx, m)

	var status TargetStatus
	switch {
	case err != nil || r == nil:
		status = StatusOtherError
	case r.Rcode == dns.RcodeNameError:
		status = StatusNXDOMAIN
	case r.Rcode == dns.RcodeServerFailure:
		status = StatusNoNameservers
	case r.Rcode == dns.RcodeSuccess:
		status = StatusExists
	default:
		status = StatusOtherError
	}

	c.cache.set(key, status)
	return status
}

func (c *Client) exchange(ctx context.Context, m *dns.Msg) (*dns.Msg, error) {
	m.RecursionDesired = true
	client := &dns.Client{Timeout: c.cfg.QueryTimeout, Net: "udp"}

	var lastErr error
	for _, server := range c.cfg.Servers {
		r, _, err := client.ExchangeContext(ctx, m, withPort(server, "53"))
		if err == nil {
			return r, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("dns exchange: all resolvers failed: %w", lastErr)
}

// withPort returns server unchanged if it already carries a port,
// otherwise appends defaultPort. Servers may be configured either way
// (systemResolvers and the hardcoded fallback are host-only; an
// operator-supplied config list may include the port already), so this
// is checked rather than assumed.
func withPort(server, defaultPort string) string {
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server
	}
	return net.JoinHostPort(server, defaultPort)
}
