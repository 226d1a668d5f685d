package ingestion

import "errors"

var (
	// ErrRepositoryRequired is returned when a work repository is not provided.
	ErrRepositoryRequired = errors.New("work repository required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidBatchSize is returned for non-positive batch sizes.
	ErrInvalidBatchSize = errors.New("batch size must be greater than 0")
)
