package badger

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whattoread/ingest/core"
	"github.com/whattoread/ingest/storage"
)

func setupTestRepo(t *testing.T) storage.WorkRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func testWork(key, title string) *core.Work {
	return &core.Work{
		Key:        key,
		Title:      title,
		Subjects:   []string{"Fiction", "Adventure", "Classics"},
		Authors:    []string{"/authors/OL1A"},
		SearchText: title + ". Fiction Adventure Classics",
		Vector:     []float32{0.1, 0.2, 0.3},
	}
}

func TestUpsertWorks_InsertsNewRows(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	inserted, err := repo.UpsertWorks(ctx, testWork("/works/OL1W", "One"), testWork("/works/OL2W", "Two"))
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	count, err := repo.CountWorks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestUpsertWorks_SkipsExistingKeys(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	inserted, err := repo.UpsertWorks(ctx, testWork("/works/OL1W", "Original Title"))
	require.NoError(t, err)
	require.Equal(t, 1, inserted)

	// Same key with different content: must be skipped, not updated.
	changed := testWork("/works/OL1W", "Changed Title")
	changed.Vector = []float32{9.9, 9.9, 9.9}
	inserted, err = repo.UpsertWorks(ctx, changed)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	stored, err := repo.GetWork(ctx, "/works/OL1W")
	require.NoError(t, err)
	assert.Equal(t, "Original Title", stored.Title)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, stored.Vector)
}

func TestUpsertWorks_MixedBatchCountsOnlyNewRows(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.UpsertWorks(ctx, testWork("/works/OL1W", "One"))
	require.NoError(t, err)

	inserted, err := repo.UpsertWorks(ctx,
		testWork("/works/OL1W", "Duplicate"),
		testWork("/works/OL2W", "Two"),
		testWork("/works/OL3W", "Three"),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
}

func TestUpsertWorks_Idempotent(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	works := []*core.Work{
		testWork("/works/OL1W", "One"),
		testWork("/works/OL2W", "Two"),
		testWork("/works/OL3W", "Three"),
	}

	first, err := repo.UpsertWorks(ctx, works...)
	require.NoError(t, err)
	assert.Equal(t, 3, first)

	second, err := repo.UpsertWorks(ctx, works...)
	require.NoError(t, err)
	assert.Equal(t, 0, second)

	count, err := repo.CountWorks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestUpsertWorks_InvalidWorkFailsWholeBatch(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.UpsertWorks(ctx,
		testWork("/works/OL1W", "One"),
		&core.Work{Key: "", Title: "No Key"},
	)
	require.Error(t, err)

	// The valid work preceding the invalid one must not have been applied.
	count, err := repo.CountWorks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestGetWork_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.GetWork(context.Background(), "/works/OL404W")
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetWork_RoundTrip(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	year := 1970
	work := testWork("/works/OL1W", "Fantastic Mr Fox")
	work.FirstPublishYear = &year

	_, err := repo.UpsertWorks(ctx, work)
	require.NoError(t, err)

	stored, err := repo.GetWork(ctx, "/works/OL1W")
	require.NoError(t, err)
	assert.Equal(t, work.Key, stored.Key)
	assert.Equal(t, work.Title, stored.Title)
	assert.Equal(t, work.Authors, stored.Authors)
	assert.Equal(t, work.Subjects, stored.Subjects)
	require.NotNil(t, stored.FirstPublishYear)
	assert.Equal(t, 1970, *stored.FirstPublishYear)
	assert.Equal(t, work.Vector, stored.Vector)
}

func TestCountWorks_ManyBatches(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for batch := 0; batch < 4; batch++ {
		works := make([]*core.Work, 25)
		for i := range works {
			works[i] = testWork(fmt.Sprintf("/works/OL%d-%dW", batch, i), "T")
		}
		_, err := repo.UpsertWorks(ctx, works...)
		require.NoError(t, err)
	}

	count, err := repo.CountWorks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(100), count)
}
