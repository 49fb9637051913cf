// Package vectordb provides a backend-agnostic abstraction for vector similarity search.
//
// # Overview
//
// This package defines a common interface [Service] that can be implemented
// by different vector store adapters (Zilliz Cloud, Qdrant, Pinecone, etc.),
// allowing applications to switch between backends without changing
// application code.
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                    Application Layer                        │
//	│       (uses vectordb.Service - no vendor imports)           │
//	└──────────────────────────┬──────────────────────────────────┘
//	                           │
//	                           ▼
//	┌─────────────────────────────────────────────────────────────┐
//	│                     vectordb.Service                        │
//	│          (common interface + backend-agnostic types)        │
//	└──────────────────────────┬──────────────────────────────────┘
//	                           │
//	        ┌──────────────────┼──────────────────┐
//	        ▼                  ▼                  ▼
//	┌───────────────┐  ┌───────────────┐  ┌───────────────┐
//	│ zilliz.Store  │  │qdrant.Adapter │  │pinecone.Store │
//	│  (implements) │  │   (future)    │  │   (future)    │
//	└───────────────┘  └───────────────┘  └───────────────┘
//
// # Usage
//
// In your application, depend only on the vectordb interface:
//
//	import "github.com/embedstack/std/v1/vectordb"
//
//	type KnowledgeBase struct {
//	    db vectordb.Service
//	}
//
//	func (kb *KnowledgeBase) Answer(ctx context.Context, question string) ([]string, error) {
//	    return kb.db.Query(ctx, vectordb.QueryRequest{
//	        Texts: []string{question},
//	        TopK:  5,
//	    })
//	}
//
// # Wire Up with Zilliz Cloud
//
// In your main setup:
//
//	import (
//	    "github.com/embedstack/std/v1/vectordb"
//	    "github.com/embedstack/std/v1/zilliz"
//	)
//
//	func main() {
//	    cfg, _ := zilliz.NewConfig() // ZILLIZ_CLOUD_URI / ZILLIZ_CLOUD_TOKEN
//	    client, _ := zilliz.NewZillizClient(zilliz.ZillizParams{Config: cfg})
//	    var db vectordb.Service = zilliz.NewStore(client, embedder)
//	    // ...
//	}
//
// # Filter Types
//
// The package provides backend-agnostic filter conditions:
//
//	| Type                  | Description       | SQL Equivalent                      |
//	|-----------------------|-------------------|-------------------------------------|
//	| MatchCondition        | Exact value match | WHERE field = value                 |
//	| MatchAnyCondition     | Value in set      | WHERE field IN (...)                |
//	| MatchExceptCondition  | Value not in set  | WHERE field NOT IN (...)            |
//	| NumericRangeCondition | Numeric range     | WHERE field >= min AND field <= max |
//
// Use convenience constructors for cleaner code:
//
//	// Internal field (top-level in payload)
//	vectordb.NewMatch("app_id", "demo")
//
//	// User-defined field (stored under the backend's metadata prefix)
//	vectordb.NewUserMatch("category", "research")
//
//	// Range conditions with a NumericRange struct
//	vectordb.NewNumericRange("price", vectordb.NumericRange{Gte: &min, Lt: &max})
package vectordb
