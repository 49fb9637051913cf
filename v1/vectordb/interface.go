package vectordb

import "context"

// Service is the common interface for all vector store backends.
// It provides a backend-agnostic abstraction over a single named collection
// of text+vector records, allowing applications to switch between managed
// vector databases (Zilliz Cloud, Qdrant, pgVector, etc.) without changing
// application code.
//
// Implementations are collection-scoped: the target collection is fixed at
// construction time (usually from configuration), mirroring how the host
// application binds one store per knowledge base.
//
// Example usage:
//
//	func NewKnowledgeBase(db vectordb.Service) *KnowledgeBase {
//	    return &KnowledgeBase{db: db}
//	}
//
//	// Works with any implementation:
//	// - zilliz.NewStore(...)
type Service interface {
	// Query runs a similarity search and returns the stored text of each
	// match, ordered by relevance and limited to req.TopK entries.
	//
	// When req.SkipEmbedding is true the caller supplies pre-computed
	// vectors in req.Vectors; otherwise the backend applies its embedding
	// function to req.Texts first.
	//
	// Only the first query of the request is shaped into the result; see
	// Search for the multi-vector path.
	Query(ctx context.Context, req QueryRequest) ([]string, error)

	// Search is the full-fidelity variant of Query. It returns one result
	// slice per query vector, each entry carrying id, score, text and any
	// extra payload the backend stores alongside the vector.
	Search(ctx context.Context, req QueryRequest) ([][]SearchResult, error)

	// Add writes documents and their vectors into the collection.
	// Documents without a vector are embedded first. Conflict resolution
	// is the backend's upsert semantics.
	Add(ctx context.Context, docs ...Document) error

	// Delete removes records by their IDs.
	Delete(ctx context.Context, ids []string) error

	// Count reports the number of records in the collection.
	Count(ctx context.Context) (uint64, error)

	// Reset drops the collection. It is recreated lazily on the next write.
	Reset(ctx context.Context) error

	// Collection retrieves metadata about the configured collection.
	Collection(ctx context.Context) (*Collection, error)

	// ListCollections returns the names of all collections on the backend.
	ListCollections(ctx context.Context) ([]string, error)
}
