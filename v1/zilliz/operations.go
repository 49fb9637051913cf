package zilliz

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/embedstack/std/v1/observability"
	"github.com/embedstack/std/v1/vectordb"
)

// Embedder computes embedding vectors for texts. The v1/embedding Client
// satisfies this interface.
type Embedder interface {
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float64, error)
}

// Store implements vectordb.Service on top of a ZillizClient and a single
// configured collection.
//
// The store is a thin adapter: it translates the backend-agnostic request
// types into SDK calls and shapes responses back. It performs no retries and
// keeps no caches; failures surface directly to the caller.
type Store struct {
	client   *ZillizClient
	cfg      *Config
	embedder Embedder
	observer observability.Observer
}

// NewStore builds a Store bound to the collection in p.Client's config.
// Embedder and Observer are optional: without an embedder only requests that
// carry precomputed vectors (SkipEmbedding) can be served.
func NewStore(p StoreParams) (*Store, error) {
	if p.Client == nil {
		return nil, ErrNotStarted
	}

	return &Store{
		client:   p.Client,
		cfg:      p.Client.cfg,
		embedder: p.Embedder,
		observer: p.Observer,
	}, nil
}

// WithObserver attaches an operation observer. Returns the store for chaining.
func (s *Store) WithObserver(o observability.Observer) *Store {
	s.observer = o
	return s
}

// observe notifies the observer about a completed operation if one is configured.
func (s *Store) observe(operation string, start time.Time, err error, size int64) {
	if s.observer != nil {
		s.observer.ObserveOperation(observability.OperationContext{
			Component: "zilliz",
			Operation: operation,
			Resource:  s.cfg.Collection,
			Duration:  time.Since(start),
			Error:     err,
			Size:      size,
		})
	}
}

// Query ──────────────────────────────────────────────────────────────
//
// Query runs a similarity search for a single question and returns the stored
// text of the nearest documents, best match first.
//
// When req.SkipEmbedding is set the caller supplies the query vectors directly
// via req.Vectors and no embedder is consulted. Otherwise req.Texts are
// embedded first.
//
// If the collection does not exist yet (nothing was ever added), Query returns
// an empty slice without contacting the search endpoint at all.
func (s *Store) Query(ctx context.Context, req vectordb.QueryRequest) (texts []string, err error) {
	defer func(start time.Time) { s.observe("query", start, err, int64(len(texts))) }(time.Now())

	if err = validateQueryRequest(req); err != nil {
		return nil, err
	}

	exists, err := s.client.admin.HasCollection(ctx, s.cfg.Collection)
	if err != nil {
		return nil, fmt.Errorf("[Zilliz] failed to check collection '%s': %w", s.cfg.Collection, err)
	}
	if !exists {
		log.Printf("[Zilliz] Collection '%s' does not exist, returning no results", s.cfg.Collection)
		return []string{}, nil
	}

	empty, err := s.collectionEmpty(ctx)
	if err != nil {
		return nil, err
	}
	if empty {
		log.Printf("[Zilliz] Collection '%s' is empty, returning no results", s.cfg.Collection)
		return []string{}, nil
	}

	vectors, err := s.resolveVectors(ctx, req)
	if err != nil {
		return nil, err
	}

	expr, err := buildFilterExpr(req.Filters)
	if err != nil {
		return nil, err
	}

	sets, err := s.client.data.Search(ctx, searchParams{
		collection:   s.cfg.Collection,
		vectors:      vectors,
		limit:        req.TopK,
		expr:         expr,
		outputFields: []string{fieldText},
	})
	if err != nil {
		return nil, fmt.Errorf("[Zilliz] search failed: %w", err)
	}

	if len(sets) == 0 {
		return []string{}, nil
	}

	texts, err = extractTexts(sets[0])
	if err != nil {
		return nil, err
	}

	log.Printf("[Zilliz] Query returned %d results (collection=%s)", len(texts), s.cfg.Collection)
	return texts, nil
}

// Search ──────────────────────────────────────────────────────────────
//
// Search is the full-fidelity sibling of Query: it accepts multiple query
// vectors in one request and returns scored results with payloads, one result
// slice per query vector.
//
// All vectors travel in a single remote call; the backend answers them as a
// batch.
func (s *Store) Search(ctx context.Context, req vectordb.QueryRequest) (results [][]vectordb.SearchResult, err error) {
	defer func(start time.Time) { s.observe("search", start, err, int64(len(results))) }(time.Now())

	if err = validateQueryRequest(req); err != nil {
		return nil, err
	}

	exists, err := s.client.admin.HasCollection(ctx, s.cfg.Collection)
	if err != nil {
		return nil, fmt.Errorf("[Zilliz] failed to check collection '%s': %w", s.cfg.Collection, err)
	}
	if !exists {
		return [][]vectordb.SearchResult{}, nil
	}

	empty, err := s.collectionEmpty(ctx)
	if err != nil {
		return nil, err
	}
	if empty {
		return [][]vectordb.SearchResult{}, nil
	}

	vectors, err := s.resolveVectors(ctx, req)
	if err != nil {
		return nil, err
	}

	expr, err := buildFilterExpr(req.Filters)
	if err != nil {
		return nil, err
	}

	sets, err := s.client.data.Search(ctx, searchParams{
		collection:   s.cfg.Collection,
		vectors:      vectors,
		limit:        req.TopK,
		expr:         expr,
		outputFields: []string{fieldText, fieldMeta},
	})
	if err != nil {
		return nil, fmt.Errorf("[Zilliz] search failed: %w", err)
	}

	results, err = convertResults(sets)
	if err != nil {
		return nil, err
	}

	log.Printf("[Zilliz] Search answered %d queries (collection=%s)", len(results), s.cfg.Collection)
	return results, nil
}

// Add ──────────────────────────────────────────────────────────────
//
// Add upserts documents into the collection, creating the collection on
// first use. Documents without a vector are embedded through the configured
// embedder; if none is configured such documents are rejected.
//
// Large inputs are split into chunks of defaultBatchSize and upserted
// sequentially.
func (s *Store) Add(ctx context.Context, docs ...vectordb.Document) (err error) {
	defer func(start time.Time) { s.observe("upsert", start, err, int64(len(docs))) }(time.Now())

	if len(docs) == 0 {
		return nil
	}

	if err = validateDocuments(docs); err != nil {
		return err
	}

	if err = s.embedMissing(ctx, docs); err != nil {
		return err
	}

	if err = s.ensureCollection(ctx); err != nil {
		return err
	}

	for start := 0; start < len(docs); start += defaultBatchSize {
		end := start + defaultBatchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]

		cols, err := buildColumns(batch)
		if err != nil {
			return err
		}

		if _, err := s.client.data.Upsert(ctx, s.cfg.Collection, cols); err != nil {
			return fmt.Errorf("[Zilliz] batch upsert failed at [%d:%d]: %w", start, end, err)
		}
		log.Printf("[Zilliz] Upserted batch [%d:%d] (collection=%s)", start, end, s.cfg.Collection)
	}

	return nil
}

// Delete ──────────────────────────────────────────────────────────────
//
// Delete removes documents from the collection by their IDs. Deleting from a
// missing collection or with no IDs is a no-op.
func (s *Store) Delete(ctx context.Context, ids []string) (err error) {
	defer func(start time.Time) { s.observe("delete", start, err, int64(len(ids))) }(time.Now())

	if len(ids) == 0 {
		return nil
	}

	exists, err := s.client.admin.HasCollection(ctx, s.cfg.Collection)
	if err != nil {
		return fmt.Errorf("[Zilliz] failed to check collection '%s': %w", s.cfg.Collection, err)
	}
	if !exists {
		return nil
	}

	count, err := s.client.data.DeleteByIDs(ctx, s.cfg.Collection, ids)
	if err != nil {
		return fmt.Errorf("[Zilliz] delete failed: %w", err)
	}

	log.Printf("[Zilliz] Delete completed (count=%d, collection=%s)", count, s.cfg.Collection)
	return nil
}

// Count ──────────────────────────────────────────────────────────────
//
// Count reports the number of stored documents. A missing collection counts
// as zero rather than an error, matching Query's view of an empty store.
func (s *Store) Count(ctx context.Context) (count uint64, err error) {
	defer func(start time.Time) { s.observe("count", start, err, int64(count)) }(time.Now())

	exists, err := s.client.admin.HasCollection(ctx, s.cfg.Collection)
	if err != nil {
		return 0, fmt.Errorf("[Zilliz] failed to check collection '%s': %w", s.cfg.Collection, err)
	}
	if !exists {
		return 0, nil
	}

	count, err = s.client.admin.RowCount(ctx, s.cfg.Collection)
	if err != nil {
		return 0, fmt.Errorf("[Zilliz] failed to count collection '%s': %w", s.cfg.Collection, err)
	}
	return count, nil
}

// Reset ──────────────────────────────────────────────────────────────
//
// Reset drops the collection entirely. The next Add recreates it. Resetting
// a store whose collection never existed is a no-op.
func (s *Store) Reset(ctx context.Context) (err error) {
	defer func(start time.Time) { s.observe("reset", start, err, 0) }(time.Now())

	exists, err := s.client.admin.HasCollection(ctx, s.cfg.Collection)
	if err != nil {
		return fmt.Errorf("[Zilliz] failed to check collection '%s': %w", s.cfg.Collection, err)
	}
	if !exists {
		return nil
	}

	if err = s.client.admin.DropCollection(ctx, s.cfg.Collection); err != nil {
		return fmt.Errorf("[Zilliz] failed to drop collection '%s': %w", s.cfg.Collection, err)
	}

	log.Printf("[Zilliz] Dropped collection '%s'", s.cfg.Collection)
	return nil
}

// Collection ──────────────────────────────────────────────────────────────
//
// Collection retrieves metadata about the configured collection: its vector
// dimension, row count, and load state. The returned struct is decoupled
// from the SDK so the application layer stays independent of the client
// library.
func (s *Store) Collection(ctx context.Context) (coll *vectordb.Collection, err error) {
	defer func(start time.Time) { s.observe("describe", start, err, 0) }(time.Now())

	coll, err = s.client.admin.Describe(ctx, s.cfg.Collection)
	if err != nil {
		return nil, fmt.Errorf("[Zilliz] failed to describe collection '%s': %w", s.cfg.Collection, err)
	}

	count, err := s.client.admin.RowCount(ctx, s.cfg.Collection)
	if err != nil {
		return nil, fmt.Errorf("[Zilliz] failed to count collection '%s': %w", s.cfg.Collection, err)
	}
	coll.RowCount = count

	return coll, nil
}

// ListCollections ──────────────────────────────────────────────────────────────
//
// ListCollections returns the names of all collections in the cluster.
func (s *Store) ListCollections(ctx context.Context) (names []string, err error) {
	defer func(start time.Time) { s.observe("list", start, err, int64(len(names))) }(time.Now())

	names, err = s.client.admin.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("[Zilliz] failed to list collections: %w", err)
	}

	log.Printf("[Zilliz] Found %d collections", len(names))
	return names, nil
}

// ensureCollection creates and loads the configured collection if it does
// not exist yet. Safe to call repeatedly.
func (s *Store) ensureCollection(ctx context.Context) error {
	exists, err := s.client.admin.HasCollection(ctx, s.cfg.Collection)
	if err != nil {
		return fmt.Errorf("[Zilliz] failed to check collection '%s': %w", s.cfg.Collection, err)
	}
	if exists {
		return nil
	}

	log.Printf("[Zilliz] Collection '%s' not found, creating it...", s.cfg.Collection)

	if err := s.client.admin.CreateCollection(ctx, s.cfg.Collection, s.cfg.VectorDim); err != nil {
		return fmt.Errorf("[Zilliz] failed to create collection '%s': %w", s.cfg.Collection, err)
	}
	if err := s.client.admin.LoadCollection(ctx, s.cfg.Collection); err != nil {
		return fmt.Errorf("[Zilliz] failed to load collection '%s': %w", s.cfg.Collection, err)
	}

	log.Printf("[Zilliz] Created collection '%s' successfully (dim=%d)", s.cfg.Collection, s.cfg.VectorDim)
	return nil
}

// collectionEmpty reports whether the configured collection holds zero rows.
// Searching an empty collection is pointless, so read paths bail out before
// the remote search call.
func (s *Store) collectionEmpty(ctx context.Context) (bool, error) {
	count, err := s.client.admin.RowCount(ctx, s.cfg.Collection)
	if err != nil {
		return false, fmt.Errorf("[Zilliz] failed to count collection '%s': %w", s.cfg.Collection, err)
	}
	return count == 0, nil
}

// resolveVectors returns the query vectors for a request: caller-supplied
// when SkipEmbedding is set, computed through the embedder otherwise.
func (s *Store) resolveVectors(ctx context.Context, req vectordb.QueryRequest) ([][]float32, error) {
	if req.SkipEmbedding {
		return req.Vectors, nil
	}

	if s.embedder == nil {
		return nil, ErrNoEmbedder
	}

	embedded, err := s.embedder.CreateEmbeddings(ctx, req.Texts)
	if err != nil {
		return nil, fmt.Errorf("[Zilliz] failed to embed query: %w", err)
	}
	return toFloat32Vectors(embedded), nil
}

// embedMissing fills in vectors for documents that lack one.
func (s *Store) embedMissing(ctx context.Context, docs []vectordb.Document) error {
	var texts []string
	var indices []int
	for i, doc := range docs {
		if len(doc.Vector) == 0 {
			texts = append(texts, doc.Text)
			indices = append(indices, i)
		}
	}
	if len(texts) == 0 {
		return nil
	}

	if s.embedder == nil {
		return ErrNoEmbedder
	}

	embedded, err := s.embedder.CreateEmbeddings(ctx, texts)
	if err != nil {
		return fmt.Errorf("[Zilliz] failed to embed documents: %w", err)
	}
	if len(embedded) != len(indices) {
		return fmt.Errorf("[Zilliz] embedder returned %d vectors for %d texts", len(embedded), len(indices))
	}

	vectors := toFloat32Vectors(embedded)
	for j, i := range indices {
		docs[i].Vector = vectors[j]
	}
	return nil
}
