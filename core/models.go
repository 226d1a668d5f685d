package core

// Work represents one bibliographic work record destined for the store.
// It is the durable union of the metadata extracted from a dump line and
// the embedding vector computed for its search text. Works are immutable
// once built; the store never updates an existing row for the same key.
type Work struct {
	Key              string    // natural key from the source corpus, e.g. "/works/OL45883W"
	Title            string
	Authors          []string  // author key references, unresolved to names
	Subjects         []string
	FirstPublishYear *int      // nil when the source record carries no usable year
	SearchText       string    // canonical embedding text derived from title and subjects
	Vector           []float32 // embedding, dimension fixed by the encoder model
}
