package zilliz

import (
	"fmt"
	"os"
	"time"
)

// DefaultCollection is the collection used when no explicit name is supplied.
const DefaultCollection = "embedchain_store"

// defaultVectorDim is the embedding dimension used when creating a missing
// collection (model-dependent; 1536 matches the common OpenAI-style models).
const defaultVectorDim = 1536

// Config holds connection and behavior settings for the Zilliz Cloud client.
//
// URI and Token are resolved from the environment and are mandatory:
// construction fails immediately when either is absent, never on first use.
//
// Example:
//
//	cfg, err := zilliz.NewConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg = cfg.WithCollection("test_collection")
type Config struct {
	// Public endpoint of the Zilliz Cloud cluster, e.g.
	// "https://in01-xxxx.api.region.zillizcloud.com".
	URI string `yaml:"uri" env:"ZILLIZ_CLOUD_URI"`

	// API key / access token for the cluster.
	Token string `yaml:"token" env:"ZILLIZ_CLOUD_TOKEN"`

	// Collection this store operates on. Defaults to DefaultCollection.
	Collection string `yaml:"collection" env:"ZILLIZ_CLOUD_COLLECTION"`

	// Embedding dimension used when the collection has to be created.
	VectorDim uint64 `yaml:"vector_dim"`

	// Connection establishment timeout.
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// NewConfig reads connection parameters from the environment and validates
// them. Missing URI or token is a hard error here so that misconfiguration
// surfaces at startup rather than on the first query.
func NewConfig() (*Config, error) {
	uri := os.Getenv("ZILLIZ_CLOUD_URI")
	if uri == "" {
		return nil, fmt.Errorf("[Zilliz] invalid config: %w", ErrMissingURI)
	}

	token := os.Getenv("ZILLIZ_CLOUD_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("[Zilliz] invalid config: %w", ErrMissingToken)
	}

	collection := os.Getenv("ZILLIZ_CLOUD_COLLECTION")
	if collection == "" {
		collection = DefaultCollection
	}

	return &Config{
		URI:            uri,
		Token:          token,
		Collection:     collection,
		VectorDim:      defaultVectorDim,
		ConnectTimeout: 5 * time.Second,
	}, nil
}

// Builder-style helpers (optional, ergonomic)

// WithCollection overrides the collection name this store operates on.
func (c *Config) WithCollection(name string) *Config {
	if name != "" {
		c.Collection = name
	}
	return c
}

// WithVectorDim overrides the dimension used when creating the collection.
func (c *Config) WithVectorDim(dim uint64) *Config {
	if dim > 0 {
		c.VectorDim = dim
	}
	return c
}

// WithConnectTimeout overrides the connection establishment timeout.
func (c *Config) WithConnectTimeout(d time.Duration) *Config {
	if d > 0 {
		c.ConnectTimeout = d
	}
	return c
}
