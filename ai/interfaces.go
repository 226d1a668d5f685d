package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// search. Given N texts it returns N vectors of a fixed dimension, in the
// same order as the input, and is deterministic for a fixed model identity.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. Batching amortizes model invocation overhead; the returned
	// slice matches the input texts in length and order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
