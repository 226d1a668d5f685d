package ingestion

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTrackerReporting(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100<<20, 10<<20)
	tracker.Start()

	tracker.Update(5 << 20) // below the report interval
	assert.Empty(t, buf.String())

	tracker.Update(20 << 20)
	assert.Contains(t, buf.String(), "20.0%")

	tracker.Finish()
	assert.Contains(t, buf.String(), "100.0%")
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestProgressTrackerClampsToTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10<<20, 1<<20)
	tracker.Start()

	tracker.Update(50 << 20)
	assert.Contains(t, buf.String(), "100.0%")
}

func TestProgressTrackerBeforeStart(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 1)

	tracker.Update(5)
	tracker.Finish()
	assert.Empty(t, buf.String())
	assert.Zero(t, tracker.Elapsed())
}
