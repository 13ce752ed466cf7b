package banners

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bannerkeeper/internal/common"
	"github.com/dmitrijs2005/bannerkeeper/internal/dbx"
	"github.com/dmitrijs2005/bannerkeeper/internal/models"
)

const selectColumns = `SELECT image, title, release_day, release_time, current_episodes, total_episodes, owner
	FROM banners`

// dayIndexExpr maps release_day to its Monday-based index.
const dayIndexExpr = `CASE release_day
		WHEN 'Monday' THEN 0 WHEN 'Tuesday' THEN 1 WHEN 'Wednesday' THEN 2
		WHEN 'Thursday' THEN 3 WHEN 'Friday' THEN 4 WHEN 'Saturday' THEN 5
		WHEN 'Sunday' THEN 6 END`

// updatableColumns whitelists the columns UpdateField may touch.
var updatableColumns = map[models.BannerField]string{
	models.FieldCurrentEpisodes: "current_episodes",
	models.FieldTotalEpisodes:   "total_episodes",
	models.FieldReleaseDay:      "release_day",
	models.FieldReleaseTime:     "release_time",
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, b *models.Banner) error {
	query := `INSERT INTO banners (owner, title, image, release_day, release_time, current_episodes, total_episodes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		b.Owner, b.Title, b.Image, string(b.ReleaseDay), b.ReleaseTime, b.CurrentEpisodes, b.TotalEpisodes)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrConflict
		}
		return fmt.Errorf("failed to insert banner: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, owner, title string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM banners WHERE owner = ? AND title = ?`, owner, title)
	if err != nil {
		return 0, fmt.Errorf("failed to delete banner: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) UpdateField(ctx context.Context, owner, title string, field models.BannerField, value any) (int64, error) {
	column, ok := updatableColumns[field]
	if !ok {
		return 0, fmt.Errorf("%w: unknown banner field %q", common.ErrorValidation, field)
	}

	query := fmt.Sprintf(`UPDATE banners SET %s = ? WHERE owner = ? AND title = ?`, column)
	res, err := r.db.ExecContext(ctx, query, value, owner, title)
	if err != nil {
		return 0, fmt.Errorf("failed to update banner %s: %w", column, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) ListAll(ctx context.Context, owner string) ([]models.Banner, error) {
	return r.query(ctx, selectColumns+` WHERE owner = ? ORDER BY rowid`, owner)
}

func (r *SQLiteRepository) ListPage(ctx context.Context, owner string, page models.Page) ([]models.Banner, error) {
	return r.query(ctx, selectColumns+` WHERE owner = ? ORDER BY rowid LIMIT ? OFFSET ?`,
		owner, page.Size, page.Offset())
}

func (r *SQLiteRepository) Search(ctx context.Context, owner, query string, page models.Page) ([]models.Banner, error) {
	return r.query(ctx, selectColumns+` WHERE owner = ? AND title LIKE ? ESCAPE '\'
		ORDER BY rowid LIMIT ? OFFSET ?`,
		owner, "%"+escapeLike(query)+"%", page.Size, page.Offset())
}

func (r *SQLiteRepository) ListByReleaseDay(ctx context.Context, owner string, today models.Weekday, page models.Page) ([]models.Banner, error) {
	return r.query(ctx, selectColumns+` WHERE owner = ?
		ORDER BY ((`+dayIndexExpr+`) - ? + 7) % 7, rowid
		LIMIT ? OFFSET ?`,
		owner, today.Index(), page.Size, page.Offset())
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]models.Banner, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select banners: %w", err)
	}
	defer rows.Close()

	result := make([]models.Banner, 0)
	for rows.Next() {
		var (
			b   models.Banner
			day string
		)
		if err := rows.Scan(&b.Image, &b.Title, &day, &b.ReleaseTime,
			&b.CurrentEpisodes, &b.TotalEpisodes, &b.Owner); err != nil {
			return nil, err
		}
		b.ReleaseDay = models.Weekday(day)
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// escapeLike makes %, _ and \ in s match literally under ESCAPE '\'.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
