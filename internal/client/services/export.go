package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eslconsole/internal/client/export"
	"github.com/dmitrijs2005/eslconsole/internal/client/models"
	"github.com/dmitrijs2005/eslconsole/internal/client/repositories/exports"
	"github.com/dmitrijs2005/eslconsole/internal/dbx"
)

// DefaultExportHistory is how many export records are kept locally.
const DefaultExportHistory = 50

// ExportService ships encoded documents through an Exporter and keeps a local
// history of what was exported where.
type ExportService interface {
	Save(ctx context.Context, view string, f export.Format, data []byte, rows int) (models.ExportRecord, error)
	History(ctx context.Context, limit int) ([]models.ExportRecord, error)
}

type exportService struct {
	exporter export.Exporter
	db       *sql.DB
	keep     int
	now      func() time.Time
}

func NewExportService(exporter export.Exporter, db *sql.DB) ExportService {
	return &exportService{exporter: exporter, db: db, keep: DefaultExportHistory, now: time.Now}
}

func (s *exportService) getExportsRepo(db dbx.DBTX) exports.Repository {
	return exports.NewSQLiteRepository(db)
}

func (s *exportService) Save(ctx context.Context, view string, f export.Format, data []byte, rows int) (models.ExportRecord, error) {
	now := s.now()
	location, err := s.exporter.Export(ctx, export.FileName(view, f, now), f, data)
	if err != nil {
		return models.ExportRecord{}, fmt.Errorf("export %s: %w", view, err)
	}

	rec := models.ExportRecord{View: view, Format: string(f), Location: location, Rows: rows, CreatedAt: now}
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.getExportsRepo(tx)
		if err := repo.Add(ctx, &rec); err != nil {
			return err
		}
		_, err := repo.Prune(ctx, s.keep)
		return err
	})
	if err != nil {
		// The document is already stored; only the history entry is lost.
		return rec, fmt.Errorf("record export: %w", err)
	}
	return rec, nil
}

func (s *exportService) History(ctx context.Context, limit int) ([]models.ExportRecord, error) {
	return s.getExportsRepo(s.db).List(ctx, limit)
}
