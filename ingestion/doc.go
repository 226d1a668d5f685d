// Package ingestion orchestrates the bulk load of work records from a
// compressed dump into the store.
//
// The Pipeline streams lines from a dump.Reader, parses and quality-filters
// each record, and accumulates accepted works into fixed-size batches. Each
// batch runs one full cycle before the next begins: a single encoder call
// for the whole batch, vectors paired back onto works by position, then a
// single all-or-nothing store write. Processing is deliberately
// single-threaded with no batch overlap, bounding peak memory to one
// batch of records and vectors regardless of corpus size.
//
// Recoverability after interruption relies entirely on the store's
// insert-or-skip conflict policy: a re-run re-reads and re-embeds from the
// start of the dump but performs no redundant writes. No file offset is
// checkpointed.
package ingestion
