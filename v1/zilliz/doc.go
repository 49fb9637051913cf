// Package zilliz provides a thin adapter between the vectordb abstraction
// and Zilliz Cloud (managed Milvus).
//
// The package is organized around two types:
//
//   - ZillizClient: owns the connections to the cluster. The remote service
//     exposes a data-plane surface (search, upsert, delete) and a
//     connection-scoped management surface (collection DDL, loading,
//     statistics); the client dials one handle for each, both bound to the
//     same endpoint and token.
//
//   - Store: implements vectordb.Service against one configured collection.
//     It translates backend-agnostic requests into SDK calls, shapes the
//     responses back, and performs no retries and keeps no caches.
//
// # Configuration
//
// Connection parameters come from the environment and are validated at
// construction time; a missing endpoint or token fails immediately rather
// than on first use:
//
//	ZILLIZ_CLOUD_URI=https://in01-xxxx.api.region.zillizcloud.com
//	ZILLIZ_CLOUD_TOKEN=...
//	ZILLIZ_CLOUD_COLLECTION=embedchain_store   # optional, this is the default
//
// # Usage
//
//	cfg, err := zilliz.NewConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := zilliz.NewZillizClient(zilliz.ZillizParams{Config: cfg})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close(ctx)
//
//	store, _ := zilliz.NewStore(zilliz.StoreParams{Client: client, Embedder: embedder})
//
//	// Add documents (embedded automatically when no vector is supplied)
//	err = store.Add(ctx,
//	    vectordb.Document{ID: "doc1", Text: "hello world", Meta: map[string]any{"app": "demo"}},
//	)
//
//	// Retrieve the most similar stored texts
//	texts, err := store.Query(ctx, vectordb.QueryRequest{
//	    Texts: []string{"greeting"},
//	    TopK:  1,
//	})
//
// Callers that already hold query vectors can skip the embedder entirely:
//
//	texts, err := store.Query(ctx, vectordb.QueryRequest{
//	    Vectors:       [][]float32{queryVec},
//	    TopK:          5,
//	    SkipEmbedding: true,
//	})
//
// Querying a collection that was never written to returns an empty result
// without contacting the search endpoint.
//
// # Collection lifecycle
//
// The collection is created lazily on the first Add: a four-field schema
// (id, text, meta, vector) with an AutoIndex over cosine similarity, loaded
// immediately after creation. Reset drops the collection; the next Add
// recreates it.
//
// # Filtering
//
// vectordb filter sets compile to Milvus boolean expressions. User-defined
// metadata fields are stored in the JSON "meta" column and addressed as
// meta["field"] in expressions; internal fields are addressed bare.
//
// # FX Module Integration
//
//	app := fx.New(
//	    logger.FXModule,
//	    embedding.FXModule,
//	    zilliz.FXModule,
//	    fx.Provide(zilliz.NewConfig),
//	    fx.Invoke(func(store *zilliz.Store) {
//	        // use the store
//	    }),
//	)
//
// The FX module closes both connection handles on application shutdown.
package zilliz
