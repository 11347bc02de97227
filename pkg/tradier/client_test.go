package tradier

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const testToken = "test-token"

// newTestClient starts a server running h and returns a client pointed at it.
// Metrics go to a private registry so tests do not collide.
func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithRegisterer(prometheus.NewRegistry())}, opts...)
	return NewClient(Config{Token: testToken, Endpoint: srv.URL}, opts...)
}

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("reading fixture %s: %v", name, err)
	}
	return b
}

// serveFixture answers method+path with the named fixture and fails the test
// on any other request.
func serveFixture(t *testing.T, method, path, name string) http.HandlerFunc {
	t.Helper()
	body := fixture(t, name)
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method || r.URL.Path != path {
			t.Errorf("unexpected request %s %s, want %s %s", r.Method, r.URL.Path, method, path)
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{Token: "x"}, WithRegisterer(nil))
	if c.Endpoint() != DefaultEndpoint {
		t.Errorf("Endpoint() = %q, want %q", c.Endpoint(), DefaultEndpoint)
	}
	if c.http.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", c.http.Timeout)
	}

	c = NewClient(Config{Token: "x", Endpoint: SandboxEndpoint + "/"}, WithRegisterer(nil), WithTimeout(5*time.Second))
	if c.Endpoint() != SandboxEndpoint {
		t.Errorf("Endpoint() = %q, want trailing slash trimmed", c.Endpoint())
	}
	if c.http.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", c.http.Timeout)
	}
	if got := c.url("/accounts/X/orders"); got != SandboxEndpoint+"/v1/accounts/X/orders" {
		t.Errorf("url() = %q", got)
	}
}

func TestWithHTTPClientDoesNotModifyCaller(t *testing.T) {
	hc := &http.Client{Timeout: time.Second}
	c := NewClient(Config{Token: "x"}, WithRegisterer(nil), WithHTTPClient(hc))
	if hc.Transport != nil {
		t.Error("caller's http.Client transport was replaced")
	}
	if c.http == hc {
		t.Error("client shares the caller's http.Client")
	}
	if c.http.Timeout != time.Second {
		t.Errorf("timeout = %v, want 1s", c.http.Timeout)
	}
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write(fixture(t, "positions_null.json"))
	})

	if _, err := c.GetPositions(context.Background(), "VA1"); err != nil {
		t.Fatalf("GetPositions: %v", err)
	}
	if v := got.Get("Authorization"); v != "Bearer "+testToken {
		t.Errorf("Authorization = %q", v)
	}
	if v := got.Get("Accept"); v != "application/json" {
		t.Errorf("Accept = %q", v)
	}
}

func TestAccountIDIsPathEscaped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/v1/accounts/a%2Fb/positions" {
			t.Errorf("path = %q", r.URL.EscapedPath())
		}
		_, _ = w.Write(fixture(t, "positions_null.json"))
	})
	if _, err := c.GetPositions(context.Background(), "a/b"); err != nil {
		t.Fatalf("GetPositions: %v", err)
	}
}

func TestAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":{"error":"Invalid Parameter: symbols"}}`))
	})

	_, err := c.GetQuotes(context.Background(), []string{"AAPL"}, false)
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %T is not an *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Method != http.MethodGet {
		t.Errorf("APIError = %+v", apiErr)
	}
	if apiErr.Path != "/v1/markets/quotes" {
		t.Errorf("Path = %q", apiErr.Path)
	}
	if len(apiErr.Messages) != 1 || apiErr.Messages[0] != "Invalid Parameter: symbols" {
		t.Errorf("Messages = %q", apiErr.Messages)
	}
	if !strings.Contains(err.Error(), "status 400") {
		t.Errorf("Error() = %q", err.Error())
	}
	if StatusCode(err) != http.StatusBadRequest {
		t.Errorf("StatusCode() = %d", StatusCode(err))
	}
}

func TestAPIErrorPlainBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid Access Token", http.StatusUnauthorized)
	})

	_, err := c.GetUserProfile(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("IsUnauthorized(%v) = false", err)
	}
	if IsNotFound(err) {
		t.Error("IsNotFound reported true for a 401")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && len(apiErr.Messages) != 0 {
		t.Errorf("Messages = %q, want none", apiErr.Messages)
	}
	if !strings.Contains(err.Error(), "Invalid Access Token") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	c := NewClient(Config{Token: "x", Endpoint: endpoint}, WithRegisterer(nil))
	_, err := c.GetBalances(context.Background(), "VA1")
	if err == nil {
		t.Fatal("expected an error")
	}
	if StatusCode(err) != 0 {
		t.Errorf("StatusCode() = %d, want 0 for a transport error", StatusCode(err))
	}
	if !strings.Contains(err.Error(), "get balances") {
		t.Errorf("error %q does not name the operation", err)
	}
}

func TestEmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	if _, err := c.GetUserProfile(context.Background()); err == nil {
		t.Fatal("expected an error for an empty body")
	}
}

func TestMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"positions":{"position":[{"id":"x"}]}}`))
	})
	if _, err := c.GetPositions(context.Background(), "VA1"); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestContextCanceled(t *testing.T) {
	c := newTestClient(t, serveFixture(t, http.MethodGet, "/v1/user/profile", "profile_single.json"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GetUserProfile(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestMetrics(t *testing.T) {
	srv := httptest.NewServer(serveFixture(t, http.MethodGet, "/v1/user/profile", "profile_single.json"))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	c := NewClient(Config{Token: "x", Endpoint: srv.URL}, WithRegisterer(reg))
	// A second client on the same registry must reuse the collectors.
	_ = NewClient(Config{Token: "y", Endpoint: srv.URL}, WithRegisterer(reg))

	if _, err := c.GetUserProfile(context.Background()); err != nil {
		t.Fatalf("GetUserProfile: %v", err)
	}

	m := newMetrics(reg)
	if got := testutil.ToFloat64(m.requests); got != 1 {
		t.Errorf("requests_total = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(m.duration); n != 1 {
		t.Errorf("duration series = %d, want 1", n)
	}
}

func TestDebugTransportRedactsToken(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c := newTestClient(t,
		serveFixture(t, http.MethodGet, "/v1/user/profile", "profile_single.json"),
		WithLogger(logger), WithDebug(true))
	if _, err := c.GetUserProfile(context.Background()); err != nil {
		t.Fatalf("GetUserProfile: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, testToken) {
		t.Error("debug output contains the bearer token")
	}
	if !strings.Contains(out, "[redacted]") {
		t.Error("debug output has no redacted Authorization header")
	}
	if !strings.Contains(out, "George Costanza") {
		t.Error("debug output has no response body")
	}
}
