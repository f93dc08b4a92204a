package exports

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eslconsole/internal/client/models"
	"github.com/dmitrijs2005/eslconsole/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, rec *models.ExportRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	query := `INSERT INTO exports (view, format, location, rows, created_at) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		rec.View, rec.Format, rec.Location, rec.Rows, rec.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert export: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get export id: %w", err)
	}
	rec.ID = id
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, limit int) ([]models.ExportRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT id, view, format, location, rows, created_at FROM exports
		ORDER BY created_at DESC, id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select exports: %w", err)
	}
	defer rows.Close()

	var result []models.ExportRecord
	for rows.Next() {
		var (
			rec     models.ExportRecord
			created int64
		)
		if err := rows.Scan(&rec.ID, &rec.View, &rec.Format, &rec.Location, &rec.Rows, &created); err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		rec.CreatedAt = time.Unix(created, 0)
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Prune(ctx context.Context, keep int) (int64, error) {
	query := `DELETE FROM exports WHERE id NOT IN (
		SELECT id FROM exports ORDER BY created_at DESC, id DESC LIMIT ?
	)`
	res, err := r.db.ExecContext(ctx, query, max(keep, 0))
	if err != nil {
		return 0, fmt.Errorf("failed to prune exports: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
