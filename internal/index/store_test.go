package index

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenInitializesSchema(t *testing.T) {
	store := newTestStore(t)

	records, tokens, err := store.Counts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, records)
	assert.Zero(t, tokens)
	require.NoError(t, store.Validate(context.Background()))

	empty, err := store.IsEmpty(context.Background())
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestOpenReadOnlyDoesNotCreateSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")

	store, err := Open(context.Background(), path, true)
	if err != nil {
		return // driver may refuse the file outright, also fine
	}
	defer store.Close()

	// No schema means counting fails as corruption, never as success.
	_, _, err = store.Counts(context.Background())
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestValidateDetectsCountMismatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx,
		`INSERT INTO icons (prefix, name, full_id) VALUES ('mdi', 'home', 'mdi:home')`)
	require.NoError(t, err)

	err = store.Validate(ctx)
	require.ErrorIs(t, err, ErrCorrupt)
	assert.Contains(t, err.Error(), "1 records vs 0 token rows")
}

func TestLookupByIDMissing(t *testing.T) {
	store := newTestStore(t)

	rec, err := store.LookupByID(context.Background(), "mdi:no-such-icon")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestReadStatsOnEmptyIndex(t *testing.T) {
	store := newTestStore(t)

	stats, err := store.ReadStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalIcons)
	assert.Zero(t, stats.Collections)
	assert.Empty(t, stats.BuildID)
	assert.Greater(t, stats.SizeBytes, int64(0))
}
