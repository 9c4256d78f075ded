package dnsresolver

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
)

const wildcardLabelLength = 20 // per §4.2: two independent 20-char random labels

// HasWildcard reports whether apex has a wildcard DNS record, per §4.2:
// two independent random labels are probed under apex, and the zone
// counts as wildcarded only if both resolve (an A record or a CNAME —
// either counts as "resolves"). Requiring two independent hits guards
// against a single coincidentally-resolving label producing a false
// wildcard classification. Detector callers use this once per apex
// (memoized by the caller, not here). Each call draws fresh random
// labels, so a repeat call for the same apex issues new lookups rather
// than hitting the name-keyed cache.
func (c *Client) HasWildcard(ctx context.Context, apex string) bool {
	trimmed := strings.TrimSuffix(apex, ".")
	return c.probeResolves(ctx, randomLabel()+"."+trimmed) &&
		c.probeResolves(ctx, randomLabel()+"."+trimmed)
}

func (c *Client) probeResolves(ctx context.Context, name string) bool {
	if ips := c.ResolveA(ctx, name); len(ips) > 0 {
		return true
	}
	head, _ := c.ResolveCNAME(ctx, name)
	return head != ""
}

func randomLabel() string {
	buf := make([]byte, wildcardLabelLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "nonexistent0wildcard0probe00"[:wildcardLabelLength]
	}
	return hex.EncodeToString(buf)
}
