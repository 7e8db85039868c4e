package people

import (
	"net/http"
	"time"

	"github.com/vortex-fintech/people/logger"
	"github.com/vortex-fintech/people/metrics"
)

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. WithTimeout is ignored
// when a client is supplied.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l logger.LoggerInterface) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithRetry toggles retries of idempotent requests. Enabled by default.
func WithRetry(enabled bool) Option {
	return func(c *Client) { c.retry = enabled }
}

// WithCache enables read-through caching of Get.
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}
