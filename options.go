package solrdex

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	url        string
	transport  Transport
	httpClient *http.Client
	timeout    time.Duration
	username   string
	password   string

	zap        *zap.Logger
	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithURL sets the core URL, e.g. http://localhost:8983/solr/products.
func WithURL(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.url = url
	})
}

// WithTransport replaces the built-in HTTP transport.
// URL, HTTP client, timeout, auth and zap settings are ignored when set.
func WithTransport(t Transport) Option {
	return optionFunc(func(c *clientConfig) {
		c.transport = t
	})
}

// WithHTTPClient sets the http.Client used by the built-in transport.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithTimeout bounds every request. Zero (default) leaves deadlines to the context.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithBasicAuth sends HTTP basic credentials with every request.
func WithBasicAuth(username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.password = password
	})
}

// WithZap sets the logger of the built-in transport (one line per request).
func WithZap(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.zap = l
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// and transport request metrics on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
