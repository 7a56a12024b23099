// Package solrdex provides a Go client for Solr-compatible search servers
// speaking the XML select and update protocol.
//
// Documents are plain structs. Wire names come from `solr` struct tags,
// falling back to the member name; `key` marks the unique key:
//
//	type Product struct {
//	    ID       string    `solr:"id,key"`
//	    Name     string    `solr:"name"`
//	    Price    float64   `solr:"price"`
//	    Features []string  `solr:"features"`
//	    Updated  time.Time `solr:"updated"`
//	    InStock  bool      // wire name "InStock"
//	}
//
// # Updates
//
//	client, _ := solrdex.New(solrdex.WithURL("http://localhost:8983/solr/products"))
//	idx, _ := solrdex.NewIndex[Product](client)
//	_ = idx.Add(ctx, products...)
//	_ = client.Commit(ctx)
//
// # Queries
//
// The query builder is immutable; each call returns a new value.
//
//	res, err := idx.Query().
//	    By("name").Is("laptop").
//	    ByRange("price", 100, 500).Exclusive().
//	    OrderBy("price", solrdex.Desc).
//	    Paginate(0, 20).
//	    Run(ctx)
//
// Field names and values are escaped; wrap a value with Raw to send it as is.
// Response fields without a matching member are dropped unless the index
// is created with Strict.
package solrdex
