package dnsresolver

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// digOnPath reports whether the named binary is resolvable, without
// running it. Mirrors the availability check the enumeration
// collaborator's external-tool fallback uses.
func digOnPath(path string) bool {
	_, err := exec.LookPath(path)
	return err == nil
}

// digQuery shells out to dig for a single record type and returns the
// "+short" answer lines, trimmed. This is an optional fast path ahead
// of the protocol resolver; callers fall back on any error.
func (c *Client) digQuery(ctx context.Context, recordType, name string, tcp bool) ([]string, error) {
	args := []string{"+short", "+time=" + fmt.Sprint(int(c.cfg.QueryTimeout.Seconds())), recordType, name}
	if tcp {
		args = append(args, "+tcp")
	}
	if len(c.cfg.Servers) > 0 {
		args = append(args, "@"+c.cfg.Servers[0])
	}

	cmd := exec.CommandContext(ctx, c.cfg.DigPath, args...)
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("dig %s %s: %w", recordType, name, err)
	}

	var lines []string
	scanner := bufio.NewScanner(&stdout)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}
