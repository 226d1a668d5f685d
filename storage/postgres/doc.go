// Package postgres implements storage.WorkRepository against a
// pgvector-enabled PostgreSQL database, the production target of the bulk
// loader. The serving layer later runs nearest-neighbor queries against
// the embedding column; this package only loads it.
package postgres
