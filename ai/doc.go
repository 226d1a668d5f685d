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


// Package ai defines the encoder contract used by the ingestion pipeline.
//
// The Embedder interface converts batches of text into fixed-dimension
// vectors. The pipeline depends only on this abstraction; concrete
// implementations live in sub-packages:
//
//   - ai/openai: production implementation for OpenAI-compatible APIs
//   - ai/mock: deterministic test double, no external dependencies
//
// Public constructors in the implementation packages return the Embedder
// interface to keep callers decoupled from a specific backend; mock
// constructors return the concrete type so tests can inject behavior and
// assert on recorded calls.
package ai
