package tradier

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"os"
)

// authTransport adds the bearer token and JSON Accept header to each request.
type authTransport struct {
	base  http.RoundTripper
	token string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Accept", "application/json")
	cloned.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(cloned)
}

// debugTransport dumps requests and responses at debug level. The bearer
// token is redacted from the dump.
type debugTransport struct {
	base http.RoundTripper
	log  *slog.Logger
}

func (t *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	redacted := req.Clone(req.Context())
	if redacted.Header.Get("Authorization") != "" {
		redacted.Header.Set("Authorization", "Bearer [redacted]")
	}
	// Headers only; the body belongs to the real request.
	redacted.Body, redacted.GetBody = nil, nil
	if dump, err := httputil.DumpRequestOut(redacted, false); err == nil {
		t.log.Debug("http request", "method", req.Method, "url", req.URL.String(), "dump", string(dump))
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.log.Debug("http request failed", "method", req.Method, "url", req.URL.String(), "err", err)
		return nil, err
	}

	if dump, err := httputil.DumpResponse(resp, true); err == nil {
		t.log.Debug("http response", "method", req.Method, "url", req.URL.String(), "status", resp.StatusCode, "dump", string(dump))
	}
	return resp, nil
}

func debugRequested() bool {
	return os.Getenv("TRADIER_DEBUG") == "true"
}
