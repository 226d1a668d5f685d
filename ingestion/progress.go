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


package ingestion

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports bulk-load progress against the compressed input
// size. The compressed offset is only an approximation of record progress:
// compression ratio and record size vary across the dump, so the
// percentage is a coarse indicator, not a linear record count.
type ProgressTracker struct {
	writer       io.Writer
	total        int64 // compressed bytes
	current      int64
	reportEvery  int64 // bytes between reports
	lastReported int64
	startTime    time.Time
	started      bool
	mu           sync.Mutex
}

// defaultReportBytes spaces progress lines out to roughly one per 8 MiB of
// compressed input consumed.
const defaultReportBytes = 8 << 20

// NewProgressTracker creates a progress tracker.
// writer: where to write progress output (typically os.Stderr)
// total: compressed input size in bytes
// reportEvery: bytes of compressed input between reports (0 = default)
func NewProgressTracker(writer io.Writer, total, reportEvery int64) *ProgressTracker {
	if reportEvery <= 0 {
		reportEvery = defaultReportBytes
	}
	return &ProgressTracker{
		writer:      writer,
		total:       total,
		reportEvery: reportEvery,
	}
}

// Start begins tracking progress.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.current = 0
	p.lastReported = 0
}

// Update sets the current compressed offset.
func (p *ProgressTracker) Update(current int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	if current > p.total {
		current = p.total
	}
	p.current = current

	if p.current-p.lastReported >= p.reportEvery {
		p.report()
		p.lastReported = p.current
	}
}

// Finish prints the final progress line.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.current = p.total
	p.report()
	fmt.Fprintln(p.writer)
}

// Elapsed returns the time elapsed since Start was called.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}

	return time.Since(p.startTime)
}

// report prints the current progress. Must be called with lock held.
func (p *ProgressTracker) report() {
	elapsed := time.Since(p.startTime)
	rate := float64(p.current) / (1 << 20) / elapsed.Seconds()

	percentage := 0.0
	if p.total > 0 {
		percentage = float64(p.current) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rProgress: %.1f%% (%.1f/%.1f MiB compressed) - %.1f MiB/s",
		percentage, float64(p.current)/(1<<20), float64(p.total)/(1<<20), rate)
}
