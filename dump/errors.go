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


package dump

import "errors"

// Parse errors. Lines failing with either are dropped and counted as
// unparsed, distinct from quality rejection.
var (
	// ErrMalformedLine indicates a line with fewer than five tab-separated fields.
	ErrMalformedLine = errors.New("malformed dump line")

	// ErrInvalidPayload indicates the JSON payload column could not be decoded.
	ErrInvalidPayload = errors.New("invalid record payload")
)

// Quality rejection reasons. A record failing any of these is well-formed
// but below the ingestion quality bar.
var (
	// ErrTooFewSubjects indicates the record has fewer subjects than the configured minimum.
	ErrTooFewSubjects = errors.New("too few subjects")

	// ErrMissingTitle indicates the record has no title.
	ErrMissingTitle = errors.New("missing title")

	// ErrNotWork indicates the record is not a work-type record.
	ErrNotWork = errors.New("not a work record")
)
