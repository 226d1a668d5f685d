package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/whattoread/ingest/ai"
	"github.com/whattoread/ingest/core"
	"github.com/whattoread/ingest/dump"
	"github.com/whattoread/ingest/storage"
)

// Config holds the pipeline's tuning knobs.
type Config struct {
	// BatchSize is the number of accepted works per encode/write cycle.
	BatchSize int

	// MinSubjects is the quality gate's subject-count threshold.
	MinSubjects int

	// WorkType is the type marker a record must carry to qualify.
	// Empty means dump.WorkTypeKey.
	WorkType string

	// MaxInserted caps total inserted rows for dry runs. Checked only
	// after a batch's write completes, so a run stops at or just past the
	// cap on a batch boundary. 0 disables the cap.
	MaxInserted int64

	// BatchDelay paces batch cycles to bound CPU/IO pressure on shared
	// infrastructure. It has no effect on correctness. 0 disables pacing.
	BatchDelay time.Duration

	// ReportInterval is how many insertions between milestone log lines.
	ReportInterval int64
}

// DefaultConfig returns a Config with conservative defaults for long bulk
// loads on shared infrastructure.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      250,
		MinSubjects:    dump.DefaultMinSubjects,
		WorkType:       dump.WorkTypeKey,
		MaxInserted:    0,
		BatchDelay:     200 * time.Millisecond,
		ReportInterval: 10000,
	}
}

// Pipeline drives the bulk load: read, filter, batch, encode, write.
// One batch's full cycle completes before the next begins; there is no
// batch overlap, keeping peak memory proportional to BatchSize.
type Pipeline struct {
	repo     storage.WorkRepository
	embedder ai.Embedder
	filter   *dump.QualityFilter
	config   *Config
	limiter  *rate.Limiter
	progress io.Writer
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
	}
}

// WithProgressWriter sets where byte-based progress output is written.
// Default is os.Stderr.
func WithProgressWriter(w io.Writer) Option {
	return func(p *Pipeline) {
		if w == nil {
			w = io.Discard
		}
		p.progress = w
	}
}

// NewPipeline creates a bulk-load pipeline. The repository and embedder
// are owned by the caller and must outlive the pipeline; they are created
// once at startup and passed in explicitly rather than reached through
// globals.
func NewPipeline(repo storage.WorkRepository, embedder ai.Embedder, config *Config, opts ...Option) (*Pipeline, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.BatchSize <= 0 {
		return nil, ErrInvalidBatchSize
	}

	// The limiter spaces cycle starts BatchDelay apart; the first cycle is
	// never delayed.
	limiter := rate.NewLimiter(rate.Inf, 1)
	if config.BatchDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(config.BatchDelay), 1)
	}

	filter := dump.NewQualityFilter(config.MinSubjects)
	if config.WorkType != "" {
		filter.WorkType = config.WorkType
	}

	p := &Pipeline{
		repo:     repo,
		embedder: embedder,
		filter:   filter,
		config:   config,
		limiter:  limiter,
		progress: os.Stderr,
		logger:   slog.Default().With("component", "pipeline"),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Run streams the dump at path through the pipeline until end of stream,
// the inserted-rows cap, or a fatal error. The returned Stats are valid on
// every path where the dump could be opened, including the error paths, so
// callers can always emit a summary.
func (p *Pipeline) Run(ctx context.Context, path string) (*Stats, error) {
	reader, err := dump.Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	p.logger.Info("starting bulk load",
		"dump", path,
		"compressedBytes", reader.Size(),
		"batchSize", p.config.BatchSize,
		"minSubjects", p.filter.MinSubjects,
		"batchDelay", p.config.BatchDelay,
		"maxInserted", p.config.MaxInserted,
	)

	stats := &Stats{}
	tracker := NewProgressTracker(p.progress, reader.Size(), 0)
	tracker.Start()

	batch := make([]*core.Work, 0, p.config.BatchSize)
	var lastMilestone int64

	for reader.Scan() {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		rec, err := dump.ParseLine(reader.Line())
		if err != nil {
			stats.Unparsed++
			continue
		}
		stats.Processed++

		if err := p.filter.Evaluate(rec); err != nil {
			stats.SkippedQuality++
			continue
		}

		batch = append(batch, rec.Work())
		if len(batch) < p.config.BatchSize {
			continue
		}

		if err := p.flush(ctx, batch, stats); err != nil {
			return stats, err
		}
		batch = batch[:0]

		tracker.Update(reader.BytesRead())
		p.logMilestone(stats, &lastMilestone)

		if p.capReached(stats) {
			p.logger.Info("reached max inserted records, stopping",
				"cap", p.config.MaxInserted, "inserted", stats.Inserted)
			tracker.Finish()
			return stats, nil
		}
	}
	if err := reader.Err(); err != nil {
		return stats, fmt.Errorf("read dump: %w", err)
	}

	if len(batch) > 0 {
		if err := p.flush(ctx, batch, stats); err != nil {
			return stats, err
		}
	}

	tracker.Finish()
	p.logger.Info("bulk load finished",
		"elapsed", tracker.Elapsed().Round(time.Second))
	return stats, nil
}

// flush runs one batch cycle: throttle, one encoder call for the whole
// batch, vectors paired onto works by position, one store write. Encode
// and write failures discard the batch into Errored and let the run
// continue; only context cancellation is returned as an error.
func (p *Pipeline) flush(ctx context.Context, batch []*core.Work, stats *Stats) error {
	if len(batch) == 0 {
		return nil
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	texts := make([]string, len(batch))
	for i, work := range batch {
		texts[i] = work.SearchText
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		stats.Errored += int64(len(batch))
		p.logger.Error("embedding batch failed, discarding batch",
			"size", len(batch), "err", err)
		return nil
	}
	if len(vectors) != len(batch) {
		stats.Errored += int64(len(batch))
		p.logger.Error("embedding count mismatch, discarding batch",
			"expected", len(batch), "received", len(vectors))
		return nil
	}

	for i := range batch {
		batch[i].Vector = vectors[i]
	}

	inserted, err := p.repo.UpsertWorks(ctx, batch...)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		stats.Errored += int64(len(batch))
		p.logger.Error("writing batch failed, discarding batch",
			"size", len(batch), "err", err)
		return nil
	}

	stats.Inserted += int64(inserted)
	return nil
}

func (p *Pipeline) capReached(stats *Stats) bool {
	return p.config.MaxInserted > 0 && stats.Inserted >= p.config.MaxInserted
}

func (p *Pipeline) logMilestone(stats *Stats, lastMilestone *int64) {
	if p.config.ReportInterval <= 0 {
		return
	}
	if stats.Inserted-*lastMilestone >= p.config.ReportInterval {
		stats.LogProgress(p.logger)
		*lastMilestone = stats.Inserted
	}
}
