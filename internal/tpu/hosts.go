package tpu

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sea-Snell/tpu-pod-launcher/internal/shell"
)

// Hosts resolves the externally reachable address of every worker in the
// pod, in the order the describe output lists them. Addresses are
// re-queried on every call: pod IPs change whenever a pod is recreated,
// so nothing is cached. When a login user is configured each address is
// returned as user@ip.
//
// Callers must not assume a stable mapping from slice position to
// physical worker across calls.
func (c *Client) Hosts(ctx context.Context, name string, opts shell.Options) ([]string, error) {
	out, err := c.Describe(ctx, name, opts)
	if err != nil {
		return nil, fmt.Errorf("resolving hosts for %q: %w", name, err)
	}
	hosts := parseExternalIPs(out)
	if len(hosts) == 0 {
		return nil, fmt.Errorf("no external addresses found for %q", name)
	}
	if c.creds.User != "" {
		for i, h := range hosts {
			hosts[i] = c.creds.User + "@" + h
		}
	}
	return hosts, nil
}

// parseExternalIPs pulls every "externalIp: <addr>" line out of a gcloud
// describe dump.
func parseExternalIPs(describe string) []string {
	var ips []string
	for _, line := range strings.Split(describe, "\n") {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), "externalIp:")
		if !ok {
			continue
		}
		if ip := strings.TrimSpace(rest); ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}
