package ingestion

import "log/slog"

// Stats aggregates the pipeline's running counters. The pipeline is
// single-threaded, so plain fields suffice.
//
//   - Processed: lines parsed into candidate records (pre-quality)
//   - Inserted: rows actually inserted by the store (conflict skips excluded)
//   - SkippedQuality: well-formed records rejected by the quality gate
//   - Unparsed: lines dropped for malformed fields or invalid JSON
//   - Errored: records lost with their whole batch to an encode or write failure
type Stats struct {
	Processed      int64
	Inserted       int64
	SkippedQuality int64
	Unparsed       int64
	Errored        int64
}

// LogProgress emits a milestone line with the running counters.
func (s *Stats) LogProgress(logger *slog.Logger) {
	logger.Info("ingestion progress",
		"inserted", s.Inserted,
		"processed", s.Processed,
		"skipped", s.SkippedQuality,
		"unparsed", s.Unparsed,
		"errored", s.Errored,
	)
}

// LogSummary emits the final counters, followed by the post-load reminder:
// the approximate similarity index should be (re)built only once bulk load
// completes, since its clustering parameter is derived from the final row
// count and an index built over a mostly-empty table is both slow to build
// and low quality.
func (s *Stats) LogSummary(logger *slog.Logger) {
	logger.Info("ingestion complete",
		"processed", s.Processed,
		"inserted", s.Inserted,
		"skipped", s.SkippedQuality,
		"unparsed", s.Unparsed,
		"errored", s.Errored,
	)
	logger.Info("build the vector similarity index after bulk load",
		"hint", "CREATE INDEX books_embedding_idx ON books USING ivfflat (embedding vector_cosine_ops) WITH (lists = ...)",
		"note", "derive lists from the final row count",
	)
}
