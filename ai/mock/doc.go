// Package mock provides a deterministic ai.Embedder test double.
//
// The mock needs no external services: by default it derives a fixed
// 384-dimension vector from each input text's hash, and it records every
// batch for assertions on call counts, sizes, and ordering.
package mock
