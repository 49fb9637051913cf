// Package embedding computes text embeddings through an OpenAI-compatible
// inference service.
//
// The package exposes a small surface: a Client created from environment
// configuration, with CreateEmbeddings as its single operation. The HTTP
// provider behind it is an implementation detail; application code should
// depend on *Client (or on a local Embedder interface satisfied by it).
//
// # Configuration
//
// The client is configured via environment variables:
//
//	EMBEDDING_ENDPOINT=https://inference.example.com   # Base URL, no /v1/embeddings suffix
//	EMBEDDING_SERVICE_TOKEN=...                        # Bearer token
//	EMBEDDING_MODEL=text-embedding-3-small             # Model identifier
//	EMBEDDING_HTTP_TIMEOUT_SECONDS=30                  # Optional, defaults to 30
//
// # Usage
//
//	cfg := embedding.NewConfig()
//	client, err := embedding.NewClient(cfg)
//	if err != nil {
//	    return err
//	}
//
//	vectors, err := client.CreateEmbeddings(ctx, []string{"hello world"})
//
// # FX Module Integration
//
//	app := fx.New(
//	    embedding.FXModule,
//	    // other modules...
//	)
//
// The FX module reads configuration from the environment, provides *Client,
// and closes it on application shutdown.
package embedding
