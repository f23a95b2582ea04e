// Package ipcheck compares a host's public IP address against its DNS
// record so a change can be reported before stale records strand traffic.
package ipcheck

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"jobkit/internal/logging"
)

// DefaultIPCheckURL returns the caller's public address as plain text.
const DefaultIPCheckURL = "https://ident.me"

// AlertSubject is the email subject used when the addresses differ.
const AlertSubject = "my ip has changed"

// Option configures a Checker.
type Option func(*Checker)

// WithHTTPClient overrides the HTTP client used for the public IP lookup.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) {
		if client != nil {
			c.client = client
		}
	}
}

// WithIPCheckURL overrides the public IP endpoint (tests).
func WithIPCheckURL(url string) Option {
	return func(c *Checker) {
		if url != "" {
			c.ipURL = url
		}
	}
}

// WithLookup overrides DNS resolution (tests).
func WithLookup(lookup func(ctx context.Context, host string) ([]string, error)) Option {
	return func(c *Checker) {
		if lookup != nil {
			c.lookup = lookup
		}
	}
}

// Checker performs the public-IP and DNS lookups.
type Checker struct {
	out    *logging.Logger
	client *http.Client
	ipURL  string
	lookup func(ctx context.Context, host string) ([]string, error)
}

// New constructs a Checker bound to the job's logger.
func New(out *logging.Logger, opts ...Option) *Checker {
	checker := &Checker{
		out:    out,
		client: &http.Client{Timeout: 30 * time.Second},
		ipURL:  DefaultIPCheckURL,
		lookup: func(ctx context.Context, host string) ([]string, error) {
			addrs, err := net.DefaultResolver.LookupIP(ctx, "ip4", host)
			if err != nil {
				return nil, err
			}
			out := make([]string, 0, len(addrs))
			for _, addr := range addrs {
				out = append(out, addr.String())
			}
			return out, nil
		},
	}
	for _, opt := range opts {
		opt(checker)
	}
	return checker
}

// Result holds both sides of the comparison.
type Result struct {
	Hostname   string
	PublicIP   string
	DNSAddress string
}

// Match reports whether the DNS record agrees with the public address.
func (r Result) Match() bool { return r.PublicIP == r.DNSAddress }

// Check fetches the public IP and the hostname's A record. A failed public
// IP fetch is fatal (transport errors propagate); a failed DNS lookup is
// recorded as "ERROR" so the mismatch report still goes out.
func (c *Checker) Check(ctx context.Context, hostname string) (Result, error) {
	c.out.Info(fmt.Sprintf("Checking IP addresses for %s...", hostname))

	publicIP, err := c.publicIP(ctx)
	if err != nil {
		return Result{}, err
	}
	c.out.Info(fmt.Sprintf("Got address info for this server: <%s>", publicIP))

	dnsAddress := "ERROR"
	if addrs, err := c.lookup(ctx, hostname); err == nil && len(addrs) > 0 {
		dnsAddress = addrs[0]
	}
	c.out.Info(fmt.Sprintf("Got address info: <%s> for %s", dnsAddress, hostname))

	return Result{Hostname: hostname, PublicIP: publicIP, DNSAddress: dnsAddress}, nil
}

func (c *Checker) publicIP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ipURL, nil)
	if err != nil {
		return "", fmt.Errorf("build ip check request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch public ip: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ip check returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", fmt.Errorf("read ip check response: %w", err)
	}
	return strings.TrimSpace(string(body)), nil
}

// AlertBody renders the mismatch report mailed to each recipient.
func AlertBody(result Result) string {
	return fmt.Sprintf(`IpChecker has found a difference between DNS and actual IP addresses for host %s:

	My IP address: %s
	DNS entry for %s: %s
`, result.Hostname, result.PublicIP, result.Hostname, result.DNSAddress)
}
