package mock

import (
	"context"
	"hash/fnv"
)

// Dimensions is the vector dimension produced by the mock embedder,
// matching the production sentence-transformer models.
const Dimensions = 384

// MockEmbedder is a test double for ai.Embedder. It produces deterministic
// vectors by default and records every batch it receives, so tests can
// assert on invocation counts, batch sizes, and ordering.
type MockEmbedder struct {
	// EmbedTextFunc is called by EmbedText if set.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc is called by EmbedTexts if set.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	callCount int
	batches   [][]string
}

// NewMockEmbedder creates a mock embedder with default deterministic
// behavior. Returns the concrete type to allow test assertions.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

// EmbedText generates a deterministic embedding based on the text hash.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.callCount++

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}

	return DeterministicVector(text), nil
}

// EmbedTexts generates deterministic embeddings for multiple texts, in
// input order.
func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount++
	m.batches = append(m.batches, append([]string(nil), texts...))

	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = DeterministicVector(text)
	}
	return vectors, nil
}

// CallCount returns the number of times any method was called.
func (m *MockEmbedder) CallCount() int {
	return m.callCount
}

// Batches returns a copy of every text batch passed to EmbedTexts, in call
// order.
func (m *MockEmbedder) Batches() [][]string {
	return m.batches
}

// BatchSizes returns the size of each EmbedTexts batch, in call order.
func (m *MockEmbedder) BatchSizes() []int {
	sizes := make([]int, len(m.batches))
	for i, batch := range m.batches {
		sizes[i] = len(batch)
	}
	return sizes
}

// Reset clears recorded calls and injected behavior.
func (m *MockEmbedder) Reset() {
	m.callCount = 0
	m.batches = nil
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
}

// DeterministicVector creates a deterministic embedding vector from text.
// It uses an FNV hash seed so the same text always produces the same
// vector, mirroring the encoder's determinism contract.
func DeterministicVector(text string) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vector := make([]float32, Dimensions)
	for i := 0; i < Dimensions; i++ {
		seed = seed*1664525 + 1013904223 // LCG constants
		vector[i] = float32(seed%1000) / 1000.0
	}

	return vector
}
