package tradier

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Client during construction in NewClient.
type Option func(*Client)

// WithHTTPClient uses a copy of hc as the underlying HTTP client. The copy is
// what gets its transport wrapped, so hc itself is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc == nil {
			return
		}
		cp := *hc
		c.http = &cp
	}
}

// WithTimeout bounds the total time of a single request. Non-positive values
// are ignored; prefer context deadlines for per-call limits.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithDebug dumps every request and response at debug level. It is also
// enabled by TRADIER_DEBUG=true.
func WithDebug(enabled bool) Option {
	return func(c *Client) { c.debug = c.debug || enabled }
}

// WithRegisterer registers the client's request metrics with reg instead of
// the default Prometheus registerer. A nil reg disables registration.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Client) { c.reg = reg }
}
