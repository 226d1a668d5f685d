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


package core

import "fmt"

// ValidateWork validates a Work according to domain rules.
//
// Validation rules:
//   - Key must not be empty (it is the store's uniqueness constraint)
//   - Title must not be empty
//
// NOT validated (populated by the pipeline):
//   - Vector (empty until the encoder runs)
//   - SearchText (derived, may legitimately equal the title alone)
func ValidateWork(work *Work) error {
	if work == nil {
		return fmt.Errorf("%w: work is nil", ErrInvalidWork)
	}

	if work.Key == "" {
		return fmt.Errorf("%w: %w", ErrInvalidWork, ErrEmptyKey)
	}

	if work.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidWork, ErrEmptyTitle)
	}

	return nil
}
