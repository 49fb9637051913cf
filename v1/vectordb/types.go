package vectordb

// Document is a single text record to be stored with its embedding.
type Document struct {
	// ID is the unique identifier of the record
	ID string `json:"id"`

	// Text is the raw text payload stored alongside the vector.
	// Query results are shaped from this field.
	Text string `json:"text"`

	// Vector is the embedding of Text. When empty, the backend applies
	// its embedding function before writing.
	Vector []float32 `json:"vector,omitempty"`

	// Meta is optional metadata stored with the record
	Meta map[string]any `json:"meta,omitempty"`
}

// QueryRequest describes one similarity search against the configured
// collection. Texts and Vectors are parallel inputs: exactly one of them is
// consulted depending on SkipEmbedding.
type QueryRequest struct {
	// Texts are the raw input queries, embedded by the backend unless
	// SkipEmbedding is set
	Texts []string `json:"texts"`

	// Vectors are caller-supplied query embeddings, used verbatim when
	// SkipEmbedding is set
	Vectors [][]float32 `json:"vectors,omitempty"`

	// TopK is the maximum number of results per query
	TopK int `json:"topK"`

	// Filters is optional metadata filtering (AND/OR/NOT logic)
	Filters *FilterSet `json:"filters,omitempty"`

	// SkipEmbedding indicates the caller has pre-embedded the queries and
	// Vectors should be sent to the backend as-is
	SkipEmbedding bool `json:"skipEmbedding,omitempty"`
}

// SearchResult represents a single search hit with its similarity score.
// This is backend-agnostic—payload is converted to map[string]any.
type SearchResult struct {
	// ID is the unique identifier of the matched record
	ID string `json:"id"`

	// Score is the similarity score (higher = more similar for cosine)
	Score float32 `json:"score"`

	// Text is the stored text payload of the match
	Text string `json:"text"`

	// Payload contains any further fields stored with the vector
	Payload map[string]any `json:"payload,omitempty"`
}

// Collection contains metadata about a vector collection.
type Collection struct {
	// Name is the unique identifier of the collection
	Name string `json:"name"`

	// VectorSize is the dimension of vectors in this collection
	VectorSize uint64 `json:"vectorSize"`

	// RowCount is the number of stored records
	RowCount uint64 `json:"rowCount"`

	// Loaded reports whether the collection is loaded and searchable
	Loaded bool `json:"loaded"`
}
