package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-service/internal/models"
)

func storedResult(id string) models.QuoteResult {
	return models.QuoteResult{
		ID:         id,
		PriceRange: "1300 - 1600 AED",
		Status:     models.QuoteSuccess,
		Language:   models.LanguageEN,
		CreatedAt:  time.Now(),
	}
}

func TestMemoryResultStore_SaveAndGet(t *testing.T) {
	store := NewMemoryResultStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", storedResult("r1")))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "r1", got.ID)
	assert.Equal(t, "1300 - 1600 AED", got.PriceRange)
}

func TestMemoryResultStore_MissingSession(t *testing.T) {
	store := NewMemoryResultStore(time.Minute)

	_, err := store.Get(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrResultNotFound)
}

func TestMemoryResultStore_SaveReplaces(t *testing.T) {
	store := NewMemoryResultStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", storedResult("r1")))
	require.NoError(t, store.Save(ctx, "s1", storedResult("r2")))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "r2", got.ID)
}

func TestMemoryResultStore_EntriesExpire(t *testing.T) {
	store := NewMemoryResultStore(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", storedResult("r1")))
	time.Sleep(30 * time.Millisecond)

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrResultNotFound)
}

func TestMemoryResultStore_Delete(t *testing.T) {
	store := NewMemoryResultStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", storedResult("r1")))
	require.NoError(t, store.Delete(ctx, "s1"))

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrResultNotFound)

	assert.NoError(t, store.Delete(ctx, "s1"), "deleting an absent session is not an error")
}

func TestMemoryResultStore_SessionsAreIsolated(t *testing.T) {
	store := NewMemoryResultStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", storedResult("r1")))
	require.NoError(t, store.Save(ctx, "s2", storedResult("r2")))
	require.NoError(t, store.Delete(ctx, "s1"))

	got, err := store.Get(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, "r2", got.ID)
}
