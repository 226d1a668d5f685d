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


package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
	"github.com/whattoread/ingest/core"
	"github.com/whattoread/ingest/storage"
)

// DefaultDimensions matches the all-MiniLM family of sentence transformers.
const DefaultDimensions = 384

// Store implements storage.WorkRepository backed by PostgreSQL with the
// pgvector extension. It holds a single long-lived connection: the bulk
// loader is its only user and runs strictly sequential batches, so a pool
// would only add contention against the serving process's own pool.
type Store struct {
	conn   *pgx.Conn
	logger *slog.Logger
}

var _ storage.WorkRepository = (*Store)(nil)

// Connect opens a connection to the database named by databaseURL.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return &Store{
		conn:   conn,
		logger: slog.Default().With("component", "postgres-store"),
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close(context.Background())
}

// InitSchema creates the pgvector extension, the books table, and its
// secondary indexes. The vector similarity index is deliberately NOT
// created here: it should be built after bulk load completes, from the
// final row count.
func (s *Store) InitSchema(ctx context.Context, dimensions int) error {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS books (
			id BIGSERIAL PRIMARY KEY,
			ol_key TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			authors TEXT[],
			first_publish_year INT,
			subjects TEXT[],
			search_content TEXT,
			embedding vector(%d)
		)`, dimensions),
		`CREATE INDEX IF NOT EXISTS idx_books_ol_key ON books(ol_key)`,
		`CREATE INDEX IF NOT EXISTS idx_books_title ON books(title)`,
		`CREATE INDEX IF NOT EXISTS idx_books_year ON books(first_publish_year)`,
	}

	for _, stmt := range statements {
		if _, err := s.conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	s.logger.Info("schema initialized", "dimensions", dimensions)
	return nil
}

const upsertWorkSQL = `
INSERT INTO books (ol_key, title, authors, first_publish_year, subjects, search_content, embedding)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (ol_key) DO NOTHING`

// UpsertWorks inserts works inside one explicit transaction. Conflicting
// natural keys are skipped by the database and excluded from the returned
// count; any error rolls the whole batch back.
func (s *Store) UpsertWorks(ctx context.Context, works ...*core.Work) (int, error) {
	if len(works) == 0 {
		return 0, nil
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, work := range works {
		if err := core.ValidateWork(work); err != nil {
			return 0, err
		}
		batch.Queue(upsertWorkSQL,
			work.Key,
			work.Title,
			work.Authors,
			work.FirstPublishYear,
			work.Subjects,
			work.SearchText,
			pgvector.NewVector(work.Vector),
		)
	}

	results := tx.SendBatch(ctx, batch)
	inserted := 0
	for range works {
		tag, err := results.Exec()
		if err != nil {
			results.Close()
			return 0, fmt.Errorf("batch insert: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("close batch results: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}

	return inserted, nil
}

// GetWork retrieves a single work by its natural key.
func (s *Store) GetWork(ctx context.Context, key string) (*core.Work, error) {
	var work core.Work
	var embedding pgvector.Vector

	row := s.conn.QueryRow(ctx,
		`SELECT ol_key, title, authors, first_publish_year, subjects, search_content, embedding
		 FROM books WHERE ol_key = $1`, key)
	err := row.Scan(&work.Key, &work.Title, &work.Authors, &work.FirstPublishYear,
		&work.Subjects, &work.SearchText, &embedding)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get work: %w", err)
	}

	work.Vector = embedding.Slice()
	return &work, nil
}

// CountWorks returns the total number of stored works.
func (s *Store) CountWorks(ctx context.Context) (int64, error) {
	var count int64
	if err := s.conn.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count works: %w", err)
	}
	return count, nil
}
