package zilliz

import (
	"fmt"

	"github.com/embedstack/std/v1/vectordb"
)

// validateQueryRequest validates common search parameters before any remote
// call is made.
func validateQueryRequest(req vectordb.QueryRequest) error {
	if req.TopK <= 0 {
		return fmt.Errorf("topK must be greater than 0")
	}

	if req.SkipEmbedding {
		if len(req.Vectors) == 0 {
			return fmt.Errorf("vectors cannot be empty when embedding is skipped")
		}
		for i, v := range req.Vectors {
			if len(v) == 0 {
				return fmt.Errorf("vector [%d] cannot be empty", i)
			}
		}
		return nil
	}

	if len(req.Texts) == 0 {
		return fmt.Errorf("texts cannot be empty")
	}
	return nil
}

// validateDocuments checks that every document has an ID and either a text
// (to embed) or a precomputed vector.
func validateDocuments(docs []vectordb.Document) error {
	for i, doc := range docs {
		if doc.ID == "" {
			return fmt.Errorf("document [%d] has no id", i)
		}
		if doc.Text == "" && len(doc.Vector) == 0 {
			return fmt.Errorf("document '%s' has neither text nor vector", doc.ID)
		}
	}
	return nil
}
