package solrdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/solrdex/internal/domain"
	"github.com/kailas-cloud/solrdex/internal/metrics"
	"github.com/kailas-cloud/solrdex/internal/transport/solrhttp"
	"github.com/kailas-cloud/solrdex/internal/xmlwire"
)

// Client is the solrdex SDK entry point. It is bound to one core
// and safe for concurrent use.
type Client struct {
	transport Transport
	obs       *observer
}

// New creates a Client. Either WithURL or WithTransport is required.
// No request is made; use Ping to check connectivity.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	t := cfg.transport
	if t == nil {
		if cfg.url == "" {
			return nil, errors.New("solrdex: server url required (use WithURL or WithTransport)")
		}
		ht, err := solrhttp.New(&solrhttp.Config{
			BaseURL:    cfg.url,
			HTTPClient: cfg.httpClient,
			Timeout:    cfg.timeout,
			Username:   cfg.username,
			Password:   cfg.password,
			Logger:     cfg.zap,
		})
		if err != nil {
			return nil, fmt.Errorf("solrdex: create transport: %w", err)
		}
		t = ht
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	if cfg.metricsReg != nil {
		if err := metrics.Register(cfg.metricsReg); err != nil {
			return nil, fmt.Errorf("solrdex: %w", err)
		}
	}
	return &Client{transport: t, obs: obs}, nil
}

// AddDocuments sends untyped documents. Typed documents go through Index.Add.
func (c *Client) AddDocuments(ctx context.Context, docs ...Document) error {
	if len(docs) == 0 {
		return nil
	}
	return c.update(ctx, opAdd, len(docs), xmlwire.Add(docs...))
}

// DeleteByID deletes the documents with the given unique keys.
func (c *Client) DeleteByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return fmt.Errorf("delete: %w: at least one id is required", domain.ErrInvalidQuery)
	}
	return c.update(ctx, opDelete, len(ids), xmlwire.DeleteByID(ids...))
}

// DeleteByQuery deletes every document matching q. The query text is sent
// as is; QueryBuilder.String renders a builder into this form.
func (c *Client) DeleteByQuery(ctx context.Context, q string) error {
	if q == "" {
		return fmt.Errorf("delete: %w: query is required", domain.ErrInvalidQuery)
	}
	return c.update(ctx, opDelete, -1, xmlwire.DeleteByQuery(q))
}

// Commit makes pending changes visible to searchers.
func (c *Client) Commit(ctx context.Context, opts ...CommitOption) error {
	return c.update(ctx, opCommit, -1, xmlwire.Commit(commitOptions(opts)))
}

// Optimize merges index segments.
func (c *Client) Optimize(ctx context.Context, opts ...CommitOption) error {
	return c.update(ctx, opOptimize, -1, xmlwire.Optimize(commitOptions(opts)))
}

// Ping checks that the core answers its ping handler.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(opPing, start, -1, err) }()

	if _, err = c.transport.Get(ctx, PathPing, nil); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Select sends select parameters and returns the raw response text.
func (c *Client) Select(ctx context.Context, params []Param) (string, error) {
	raw, err := c.transport.Get(ctx, PathSelect, params)
	if err != nil {
		return "", fmt.Errorf("select: %w", err)
	}
	return raw, nil
}

func (c *Client) update(ctx context.Context, op string, docs int, body string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(op, start, docs, err) }()

	if _, err = c.transport.Post(ctx, PathUpdate, body); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
