package zilliz

import "errors"

// Common Zilliz adapter errors
var (
	// ErrMissingURI is returned when ZILLIZ_CLOUD_URI is not set.
	ErrMissingURI = errors.New("zilliz: missing ZILLIZ_CLOUD_URI")

	// ErrMissingToken is returned when ZILLIZ_CLOUD_TOKEN is not set.
	ErrMissingToken = errors.New("zilliz: missing ZILLIZ_CLOUD_TOKEN")

	// ErrNotStarted is returned when an operation is attempted on a client
	// that was never initialized or has already been closed.
	ErrNotStarted = errors.New("zilliz: client not started")

	// ErrNoEmbedder is returned when a query needs embeddings computed but
	// no embedder was configured on the store.
	ErrNoEmbedder = errors.New("zilliz: no embedder configured")

	// ErrMissingTextField is returned when a search response carries no
	// "text" output field to shape results from.
	ErrMissingTextField = errors.New("zilliz: search result missing text field")
)

// IsConfigError checks whether the error stems from missing environment
// configuration.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrMissingURI) || errors.Is(err, ErrMissingToken)
}
