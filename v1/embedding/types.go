package embedding

import "context"

// Provider contract
type Provider interface {
	// CreateEmbeddings generates one embedding vector per input text.
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float64, error)
}
