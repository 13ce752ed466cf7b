package flagged

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/bannerkeeper/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlag_IdempotentAndListed(t *testing.T) {
	db := storage.OpenTest(t)
	for _, id := range []string{"alice", "bob"} {
		_, err := db.Exec(`INSERT INTO accounts (identity, secret_hash, salt, role, created_at)
			VALUES (?, x'00', x'00', 'standard', '2025-01-01T00:00:00.000000Z')`, id)
		require.NoError(t, err)
	}

	r := NewSQLiteRepository(db)
	ctx := context.Background()
	t0 := time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)

	created, err := r.Flag(ctx, "bob", t0)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = r.Flag(ctx, "alice", t0.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = r.Flag(ctx, "bob", t0.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, created, "second flag is a no-op")

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "bob", list[0].Identity)
	assert.True(t, list[0].FlaggedAt.Equal(t0), "original flag time is kept")
	assert.Equal(t, "alice", list[1].Identity)
}

func TestFlag_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO flagged_accounts`).WillReturnError(errors.New("readonly"))
	_, err = NewSQLiteRepository(db).Flag(context.Background(), "x", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to flag account: readonly")
}
