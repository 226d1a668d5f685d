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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/whattoread/ingest/ai"
	"github.com/whattoread/ingest/ai/openai"
	"github.com/whattoread/ingest/ingestion"
	"github.com/whattoread/ingest/storage"
	"github.com/whattoread/ingest/storage/badger"
	"github.com/whattoread/ingest/storage/postgres"
)

func main() {
	app := &cli.App{
		Name:  "ingest",
		Usage: "Bulk-load Open Library work dumps into the book search store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "load",
				Usage:  "Stream a compressed works dump into the store",
				Action: loadCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "dump",
						Aliases:  []string{"f"},
						Usage:    "Path to the gzip-compressed works dump",
						EnvVars:  []string{"DUMP_FILE"},
						Required: true,
					},
					&cli.StringFlag{
						Name:  "store",
						Usage: "Storage backend (postgres, badger)",
						Value: "postgres",
					},
					&cli.StringFlag{
						Name:    "database-url",
						Usage:   "PostgreSQL connection URL",
						EnvVars: []string{"DATABASE_URL"},
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory (badger store only)",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:    "embedding-model",
						Usage:   "Embedding model name",
						EnvVars: []string{"EMBEDDING_MODEL"},
						Value:   "all-MiniLM-L6-v2",
					},
					&cli.IntFlag{
						Name:    "batch-size",
						Usage:   "Number of records per encode/write cycle",
						EnvVars: []string{"BATCH_SIZE"},
						Value:   250,
					},
					&cli.IntFlag{
						Name:    "embed-batch-size",
						Usage:   "Number of texts per embedding service request",
						EnvVars: []string{"EMBEDDING_BATCH_SIZE"},
						Value:   32,
					},
					&cli.IntFlag{
						Name:    "min-subjects",
						Usage:   "Minimum subject count for a record to qualify",
						EnvVars: []string{"MIN_SUBJECTS"},
						Value:   3,
					},
					&cli.Int64Flag{
						Name:    "max-records",
						Usage:   "Stop after this many inserted records (0 = unlimited)",
						EnvVars: []string{"MAX_RECORDS"},
						Value:   0,
					},
					&cli.DurationFlag{
						Name:    "batch-delay",
						Usage:   "Pause between batch cycles",
						EnvVars: []string{"BATCH_DELAY"},
						Value:   200 * time.Millisecond,
					},
					&cli.Int64Flag{
						Name:  "report-interval",
						Usage: "Log a milestone every N inserted records",
						Value: 10000,
					},
				},
			},
			{
				Name:   "init",
				Usage:  "Create the database schema (PostgreSQL only)",
				Action: initCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "database-url",
						Usage:    "PostgreSQL connection URL",
						EnvVars:  []string{"DATABASE_URL"},
						Required: true,
					},
					&cli.IntFlag{
						Name:  "dimensions",
						Usage: "Embedding vector dimensions",
						Value: postgres.DefaultDimensions,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, cleanup, err := openStore(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithModel(c.String("embedding-model")),
		ai.WithBatchSize(c.Int("embed-batch-size")),
	)
	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	// Probe the embedding service up front so a missing or unloadable
	// model aborts before any of the dump is read.
	if _, err := embedder.EmbedText(ctx, "startup probe"); err != nil {
		return fmt.Errorf("embedding service unavailable: %w", err)
	}

	config := &ingestion.Config{
		BatchSize:      c.Int("batch-size"),
		MinSubjects:    c.Int("min-subjects"),
		MaxInserted:    c.Int64("max-records"),
		BatchDelay:     c.Duration("batch-delay"),
		ReportInterval: c.Int64("report-interval"),
	}

	pipeline, err := ingestion.NewPipeline(repo, embedder, config)
	if err != nil {
		return err
	}

	stats, runErr := pipeline.Run(ctx, c.String("dump"))
	if stats != nil {
		// The summary is emitted on every termination path, successful
		// or not, so partial runs are still accounted for.
		stats.LogSummary(slog.Default())
	}
	if runErr != nil {
		return fmt.Errorf("bulk load failed: %w", runErr)
	}

	return nil
}

func initCommand(c *cli.Context) error {
	ctx := context.Background()

	store, err := postgres.Connect(ctx, c.String("database-url"))
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.InitSchema(ctx, c.Int("dimensions")); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("schema initialized", "dimensions", c.Int("dimensions"))
	return nil
}

// openStore builds the work repository selected by the --store flag. The
// returned cleanup closes the repository and everything underneath it.
func openStore(ctx context.Context, c *cli.Context) (storage.WorkRepository, func(), error) {
	switch c.String("store") {
	case "postgres":
		url := c.String("database-url")
		if url == "" {
			return nil, nil, fmt.Errorf("database-url is required for the postgres store")
		}
		store, err := postgres.Connect(ctx, url)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case "badger":
		path := c.String("db")
		if path == "" {
			return nil, nil, fmt.Errorf("db path is required for the badger store")
		}
		backend, err := badger.OpenBackend(path, false)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		repo, err := badger.NewWorkRepository(backend)
		if err != nil {
			backend.Close()
			return nil, nil, err
		}
		return repo, func() {
			repo.Close()
			backend.Close()
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q (expected postgres or badger)", c.String("store"))
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", levelStr)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	return nil
}
