package solrdex

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/solrdex/internal/domain"
	"github.com/kailas-cloud/solrdex/internal/domain/schema"
	"github.com/kailas-cloud/solrdex/internal/xmlwire"
)

// IndexOption configures a typed index or result parser.
type IndexOption func(*indexConfig)

type indexConfig struct {
	strict bool
}

// Strict makes response fields without a matching member fail with
// ErrUnknownField. By default they are dropped.
func Strict() IndexOption {
	return func(c *indexConfig) {
		c.strict = true
	}
}

func applyIndexOptions(opts []IndexOption) indexConfig {
	var cfg indexConfig
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// Index is a typed view of the client's core.
// Schema is inferred from T's `solr` struct tags at construction time.
type Index[T any] struct {
	client *Client
	parser *ResultParser[T]
}

// NewIndex creates a typed index handle. T must be a struct (or pointer to one)
// whose members have supported types; the schema is resolved once here.
func NewIndex[T any](client *Client, opts ...IndexOption) (*Index[T], error) {
	p, err := NewResultParser[T](opts...)
	if err != nil {
		return nil, fmt.Errorf("new index: %w", err)
	}
	return &Index[T]{client: client, parser: p}, nil
}

// Parser returns the index's result parser.
func (idx *Index[T]) Parser() *ResultParser[T] { return idx.parser }

// Add sends docs in one <add> command. Nil members are omitted.
func (idx *Index[T]) Add(ctx context.Context, docs ...T) error {
	if err := idx.ensureClient(); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}
	out := make([]xmlwire.Doc, len(docs))
	for i, d := range docs {
		out[i] = toWireDoc(idx.parser.schema.Values(d))
	}
	return idx.client.update(ctx, opAdd, len(docs), xmlwire.Add(out...))
}

// Delete removes docs by their `key` member. Like Add, no docs means no request.
func (idx *Index[T]) Delete(ctx context.Context, docs ...T) error {
	if err := idx.ensureClient(); err != nil {
		return err
	}
	if _, ok := idx.parser.schema.Key(); !ok {
		return fmt.Errorf("delete: %w: %s declares no key member", domain.ErrInvalidSchema, idx.parser.schema.Type())
	}
	if len(docs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(docs))
	for i, d := range docs {
		id, ok := idx.parser.schema.KeyValue(d)
		if !ok {
			return fmt.Errorf("delete: doc %d: %w: key has no value", i, domain.ErrInvalidQuery)
		}
		ids = append(ids, id)
	}
	return idx.client.DeleteByID(ctx, ids...)
}

// Query starts a new query over this index.
func (idx *Index[T]) Query() QueryBuilder[T] {
	return QueryBuilder[T]{idx: idx}
}

func (idx *Index[T]) ensureClient() error {
	if idx.client == nil {
		return errors.New("solrdex: index has no client")
	}
	return nil
}

func toWireDoc(values []schema.WireValue) xmlwire.Doc {
	doc := make(xmlwire.Doc, len(values))
	for i, v := range values {
		doc[i] = xmlwire.Field{Name: v.Name, Value: v.Value}
	}
	return doc
}
