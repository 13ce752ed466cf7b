package banners

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/bannerkeeper/internal/common"
	"github.com/dmitrijs2005/bannerkeeper/internal/models"
	"github.com/dmitrijs2005/bannerkeeper/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T, owners ...string) *sql.DB {
	t.Helper()
	db := storage.OpenTest(t)
	for _, o := range owners {
		_, err := db.Exec(`INSERT INTO accounts (identity, secret_hash, salt, role, created_at)
			VALUES (?, x'00', x'00', 'standard', '2025-01-01T00:00:00.000000Z')`, o)
		require.NoError(t, err)
	}
	return db
}

func banner(owner, title string, day models.Weekday) *models.Banner {
	return &models.Banner{
		Image:           []byte{0x89, 0x50, 0x4e, 0x47},
		Title:           title,
		ReleaseDay:      day,
		ReleaseTime:     "12:00",
		CurrentEpisodes: 1,
		TotalEpisodes:   12,
		Owner:           owner,
	}
}

func titles(bs []models.Banner) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.Title)
	}
	return out
}

func TestCreate_ScopedUniqueness(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t, "alice", "bob"))
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, banner("alice", "Frieren", models.Friday)))
	require.NoError(t, r.Create(ctx, banner("bob", "Frieren", models.Friday)), "same title, other owner")

	err := r.Create(ctx, banner("alice", "Frieren", models.Monday))
	require.ErrorIs(t, err, common.ErrConflict)

	all, err := r.ListAll(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, *banner("alice", "Frieren", models.Friday), all[0])
}

func TestCreate_UnknownOwnerViolatesForeignKey(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	err := r.Create(context.Background(), banner("nobody", "Orphan", models.Monday))
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrConflict)
}

func TestDelete_ScopedAndNoOp(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t, "alice", "bob"))
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, banner("alice", "Mushishi", models.Sunday)))

	n, err := r.Delete(ctx, "bob", "Mushishi")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n, "other owners cannot delete")

	n, err = r.Delete(ctx, "alice", "Mushishi")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = r.Delete(ctx, "alice", "Mushishi")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestUpdateField(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t, "alice"))
	ctx := context.Background()
	require.NoError(t, r.Create(ctx, banner("alice", "Monster", models.Tuesday)))

	cases := []struct {
		field models.BannerField
		value any
	}{
		{models.FieldCurrentEpisodes, uint32(7)},
		{models.FieldTotalEpisodes, uint32(74)},
		{models.FieldReleaseDay, string(models.Saturday)},
		{models.FieldReleaseTime, "23:30"},
	}
	for _, c := range cases {
		n, err := r.UpdateField(ctx, "alice", "Monster", c.field, c.value)
		require.NoError(t, err, c.field)
		assert.EqualValues(t, 1, n, c.field)
	}

	all, err := r.ListAll(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.EqualValues(t, 7, all[0].CurrentEpisodes)
	assert.EqualValues(t, 74, all[0].TotalEpisodes)
	assert.Equal(t, models.Saturday, all[0].ReleaseDay)
	assert.Equal(t, "23:30", all[0].ReleaseTime)

	n, err := r.UpdateField(ctx, "alice", "Missing", models.FieldReleaseTime, "00:00")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	_, err = r.UpdateField(ctx, "alice", "Monster", models.BannerField("owner"), "mallory")
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestListPage(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t, "alice", "bob"))
	ctx := context.Background()
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, r.Create(ctx, banner("alice", title, models.Monday)))
	}
	require.NoError(t, r.Create(ctx, banner("bob", "z", models.Monday)))

	page, err := r.ListPage(ctx, "alice", models.Page{Size: 2, Index: 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, titles(page))

	page, err = r.ListPage(ctx, "alice", models.Page{Size: 2, Index: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"e"}, titles(page))

	page, err = r.ListPage(ctx, "alice", models.Page{Size: 2, Index: 10})
	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}

func TestSearch(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t, "alice", "bob"))
	ctx := context.Background()
	for _, title := range []string{"Attack on Titan", "Titan Rising", "Vinland Saga", "100%_Real"} {
		require.NoError(t, r.Create(ctx, banner("alice", title, models.Monday)))
	}
	require.NoError(t, r.Create(ctx, banner("bob", "Titanic", models.Monday)))

	got, err := r.Search(ctx, "alice", "titan", models.Page{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"Attack on Titan", "Titan Rising"}, titles(got))

	got, err = r.Search(ctx, "alice", "titan", models.Page{Size: 1, Index: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Titan Rising"}, titles(got))

	got, err = r.Search(ctx, "alice", "%_", models.Page{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"100%_Real"}, titles(got), "wildcards match literally")

	got, err = r.Search(ctx, "alice", "nonexist", models.Page{Size: 10})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListByReleaseDay(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t, "alice"))
	ctx := context.Background()
	require.NoError(t, r.Create(ctx, banner("alice", "fri", models.Friday)))
	require.NoError(t, r.Create(ctx, banner("alice", "mon", models.Monday)))
	require.NoError(t, r.Create(ctx, banner("alice", "wed", models.Wednesday)))
	require.NoError(t, r.Create(ctx, banner("alice", "mon2", models.Monday)))

	got, err := r.ListByReleaseDay(ctx, "alice", models.Monday, models.Page{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"mon", "mon2", "wed", "fri"}, titles(got))

	got, err = r.ListByReleaseDay(ctx, "alice", models.Thursday, models.Page{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"fri", "mon", "mon2", "wed"}, titles(got))

	got, err = r.ListByReleaseDay(ctx, "alice", models.Thursday, models.Page{Size: 2, Index: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"mon2", "wed"}, titles(got))
}

func TestQueryErrorIsWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	r := NewSQLiteRepository(db)

	mock.ExpectQuery(`FROM banners`).WillReturnError(errors.New("db is down"))
	_, err = r.ListAll(context.Background(), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to select banners: db is down")

	mock.ExpectExec(`DELETE FROM banners`).WillReturnResult(sqlmock.NewErrorResult(errors.New("no count")))
	_, err = r.Delete(context.Background(), "alice", "x")
	require.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}
