// Package tradier is a client for the Tradier brokerage REST API. It covers
// account data (balances, positions, orders, history, profile), market data
// (quotes, time and sales) and order entry.
//
// Every exported call is a single request/response round trip. The upstream
// API is inconsistent about list-shaped fields, returning an object, an array
// or the string "null" depending on how many items exist; all of these are
// normalized into ordinary Go slices before they reach the caller.
package tradier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// DefaultEndpoint is the production API base URL.
	DefaultEndpoint = "https://api.tradier.com"
	// SandboxEndpoint is the paper-trading API base URL.
	SandboxEndpoint = "https://sandbox.tradier.com"

	apiVersion = "v1"
)

// Config holds the credentials and base URL used for every request.
type Config struct {
	Token    string `json:"token" yaml:"token"`
	Endpoint string `json:"endpoint" yaml:"endpoint"`
}

// Client issues authenticated requests against the Tradier API. A Client is
// safe for concurrent use; it holds no per-call state.
type Client struct {
	cfg   Config
	http  *http.Client
	log   *slog.Logger
	debug bool
	reg   prometheus.Registerer
}

// NewClient creates a Client for cfg. An empty endpoint falls back to
// DefaultEndpoint.
func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")

	c := &Client{
		cfg:   cfg,
		http:  &http.Client{Timeout: 30 * time.Second},
		log:   slog.Default().With("component", "tradier"),
		debug: debugRequested(),
		reg:   prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.installTransport()
	return c
}

// Endpoint returns the base URL requests are sent to.
func (c *Client) Endpoint() string { return c.cfg.Endpoint }

// installTransport layers auth, metrics and optional debug dumping over the
// configured base transport. Auth is outermost so the header is present on
// every attempt, and the debug dump sees the final request.
func (c *Client) installTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	if c.debug {
		base = &debugTransport{base: base, log: c.log}
	}
	base = newMetrics(c.reg).instrument(base)
	c.http.Transport = &authTransport{base: base, token: c.cfg.Token}
}

func (c *Client) url(path string) string {
	return c.cfg.Endpoint + "/" + apiVersion + "/" + strings.TrimLeft(path, "/")
}

// newRequest builds a request for path. params is encoded into the query
// string for GET/DELETE and into a form body for POST/PUT; nil means none.
func (c *Client) newRequest(ctx context.Context, method, path string, params any) (*http.Request, error) {
	target := c.url(path)

	var (
		body     io.Reader
		formBody bool
	)
	if params != nil {
		values, err := query.Values(params)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding parameters for %s %s", method, path)
		}
		encoded := values.Encode()
		switch method {
		case http.MethodPost, http.MethodPut:
			body = strings.NewReader(encoded)
			formBody = true
		default:
			if encoded != "" {
				target += "?" + encoded
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, errors.Wrapf(err, "building %s %s request", method, path)
	}
	if formBody {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req, nil
}

// roundTrip sends req and reads the whole response body.
func (c *Client) roundTrip(op string, req *http.Request) (int, []byte, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, errors.Wrap(err, op)
	}
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, errors.Wrapf(err, "%s: reading response body", op)
	}

	c.log.Debug("tradier request",
		"op", op,
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)
	return resp.StatusCode, b, nil
}

// call performs one request and decodes a 2xx JSON body into out.
func (c *Client) call(ctx context.Context, op, method, path string, params, out any) error {
	req, err := c.newRequest(ctx, method, path, params)
	if err != nil {
		return err
	}
	status, body, err := c.roundTrip(op, req)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return newAPIError(req, status, body)
	}
	return decode(op, body, out)
}

func decode(op string, body []byte, out any) error {
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errors.Errorf("%s: empty response body", op)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "%s: decoding response", op)
	}
	return nil
}

// escape makes an identifier safe to embed as a single path segment.
func escape(segment string) string { return url.PathEscape(segment) }
