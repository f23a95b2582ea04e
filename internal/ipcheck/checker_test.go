package ipcheck_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"jobkit/internal/ipcheck"
	"jobkit/internal/logging"
)

func newChecker(t *testing.T, opts ...ipcheck.Option) (*ipcheck.Checker, *bytes.Buffer) {
	t.Helper()
	console := &bytes.Buffer{}
	out, err := logging.New(t.Name(), logging.NewIndent(), logging.Options{
		LogFile: filepath.Join(t.TempDir(), "log"),
		Console: console,
	})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	return ipcheck.New(out, opts...), console
}

func TestCheckMatchingAddresses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("203.0.113.7\n"))
	}))
	defer server.Close()

	checker, console := newChecker(t,
		ipcheck.WithIPCheckURL(server.URL),
		ipcheck.WithLookup(func(context.Context, string) ([]string, error) {
			return []string{"203.0.113.7"}, nil
		}),
	)

	result, err := checker.Check(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !result.Match() {
		t.Fatalf("expected match, got %+v", result)
	}
	if result.PublicIP != "203.0.113.7" {
		t.Fatalf("response body not trimmed: %q", result.PublicIP)
	}
	if !strings.Contains(console.String(), "Got address info for this server: <203.0.113.7>") {
		t.Fatalf("public address not narrated: %q", console.String())
	}
}

func TestCheckDNSFailureReportsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("203.0.113.7"))
	}))
	defer server.Close()

	checker, _ := newChecker(t,
		ipcheck.WithIPCheckURL(server.URL),
		ipcheck.WithLookup(func(context.Context, string) ([]string, error) {
			return nil, errors.New("NXDOMAIN")
		}),
	)

	result, err := checker.Check(context.Background(), "gone.example.com")
	if err != nil {
		t.Fatalf("DNS failure must not be fatal: %v", err)
	}
	if result.DNSAddress != "ERROR" {
		t.Fatalf("expected ERROR placeholder, got %q", result.DNSAddress)
	}
	if result.Match() {
		t.Fatal("ERROR placeholder must not match a real address")
	}
}

func TestCheckPublicIPFailureIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	checker, _ := newChecker(t, ipcheck.WithIPCheckURL(server.URL))
	if _, err := checker.Check(context.Background(), "example.com"); err == nil {
		t.Fatal("expected transport failure to propagate")
	}
}

func TestAlertBodyNamesBothAddresses(t *testing.T) {
	body := ipcheck.AlertBody(ipcheck.Result{
		Hostname:   "example.com",
		PublicIP:   "203.0.113.7",
		DNSAddress: "198.51.100.9",
	})
	for _, want := range []string{"example.com", "203.0.113.7", "198.51.100.9"} {
		if !strings.Contains(body, want) {
			t.Fatalf("alert body missing %q:\n%s", want, body)
		}
	}
}
