// Copyright 2025 The WhatToRead Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package storage provides the store abstraction for ingested works.
//
// The WorkRepository interface decouples the pipeline from a concrete
// backend. Two implementations exist:
//
//   - storage/postgres: the production target, a pgvector-enabled
//     PostgreSQL table queried later by the serving layer
//   - storage/badger: an embedded BadgerDB store for local runs and tests
//
// Both enforce the same write contract: one explicit transaction per
// batch, insert-or-skip keyed by the work's natural key, never updating an
// existing row. Repeated ingestion of the same input therefore converges
// to the same final set of rows.
//
// Public constructors return interface or concrete types following the
// same convention as the ai package: pipeline-facing constructors return
// storage.WorkRepository, internal helpers return concrete types.
package storage
