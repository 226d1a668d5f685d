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


// Package dump reads and parses Open Library works dump files.
//
// A dump is a gzip-compressed, newline-delimited export where each line
// carries five tab-separated fields: type, key, revision, last-modified,
// and a JSON payload. The package provides:
//
//   - Reader: streams decompressed lines without materializing the file
//   - ParseLine: decodes one line into a typed Record
//   - QualityFilter: the ingestion quality gate
//   - SearchText: the deterministic embedding-text derivation
//
// Dump payloads are loosely typed; every optional field decodes to an
// explicit absent value rather than an error, so only a missing field
// count or an unparseable JSON object rejects a line outright.
package dump
