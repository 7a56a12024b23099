// Package solrhttp sends select and update requests to a search server over HTTP.
package solrhttp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/solrdex/internal/domain"
	"github.com/kailas-cloud/solrdex/internal/domain/query"
	"github.com/kailas-cloud/solrdex/internal/logger"
	"github.com/kailas-cloud/solrdex/internal/metrics"
)

const (
	headerRequestID = "X-Request-ID"
	contentTypeXML  = "text/xml; charset=utf-8"
	// maxErrorBody caps the response text kept in a StatusError.
	maxErrorBody = 4 << 10
)

// Config holds the transport settings.
type Config struct {
	BaseURL    string // core URL, e.g. http://localhost:8983/solr/products
	HTTPClient *http.Client
	Timeout    time.Duration // per request; 0 means no extra deadline
	Username   string
	Password   string
	Logger     *zap.Logger
}

// Client is the HTTP transport. Safe for concurrent use.
type Client struct {
	base     *url.URL
	http     *http.Client
	timeout  time.Duration
	username string
	password string
	logger   *zap.Logger
}

// New validates cfg and creates a transport.
func New(cfg *Config) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", cfg.BaseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: host is required", cfg.BaseURL)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	l := cfg.Logger
	if l == nil {
		l = zap.NewNop()
	}
	return &Client{
		base:     u,
		http:     hc,
		timeout:  cfg.Timeout,
		username: cfg.Username,
		password: cfg.Password,
		logger:   l,
	}, nil
}

// Get issues GET base+path with params in order, followed by wt=xml.
func (c *Client) Get(ctx context.Context, path string, params []query.Param) (string, error) {
	qs := query.Params(params).With("wt", "xml").Encode()
	return c.do(ctx, http.MethodGet, path, qs, "")
}

// Post issues POST base+path with an XML body.
func (c *Client) Post(ctx context.Context, path, body string) (string, error) {
	return c.do(ctx, http.MethodPost, path, "wt=xml", body)
}

func (c *Client) do(ctx context.Context, method, path, rawQuery, body string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := *c.base
	u.Path = c.base.Path + "/" + strings.TrimLeft(path, "/")
	u.RawQuery = rawQuery

	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	requestID, ok := logger.RequestIDFromContext(ctx)
	if !ok {
		requestID = uuid.NewString()
	}
	req.Header.Set(headerRequestID, requestID)
	req.Header.Set("Accept", "application/xml")
	if body != "" {
		req.Header.Set("Content-Type", contentTypeXML)
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveRequest(method, path, 0, time.Since(start).Seconds(), 0)
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return "", fmt.Errorf("%s %s: %w: %w", method, path, domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	latency := time.Since(start)
	metrics.ObserveRequest(method, path, resp.StatusCode, latency.Seconds(), len(data))
	if err != nil {
		return "", fmt.Errorf("%s %s: read body: %w: %w", method, path, domain.ErrTransport, err)
	}

	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", latency),
		zap.String("request_id", requestID),
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("unexpected status", fields...)
		return "", newStatusError(resp.StatusCode, data)
	}
	c.logger.Debug("request completed", fields...)
	return string(data), nil
}
