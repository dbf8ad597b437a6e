package connectivity

import (
	"context"
	"fmt"
	"net"
	"net/url"
)

// TCPProbe dials the host of rawURL; no HTTP request is made, so no API quota is spent.
func TCPProbe(rawURL string) (Probe, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse probe URL: %w", err)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("probe URL %q has no host", rawURL)
	}

	port := u.Port()
	if port == "" {
		port = "443"
		if u.Scheme == "http" {
			port = "80"
		}
	}
	addr := net.JoinHostPort(u.Hostname(), port)

	var dialer net.Dialer
	return func(ctx context.Context) error {
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return fmt.Errorf("failed to reach %s: %w", addr, err)
		}
		return conn.Close()
	}, nil
}
