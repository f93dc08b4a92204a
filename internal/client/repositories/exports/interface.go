package exports

import (
	"context"

	"github.com/dmitrijs2005/eslconsole/internal/client/models"
)

// Repository stores export history records.
type Repository interface {
	// Add inserts rec and sets rec.ID. A zero CreatedAt is set to now.
	Add(ctx context.Context, rec *models.ExportRecord) error

	// List returns up to limit records, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]models.ExportRecord, error)

	// Prune deletes all but the newest keep records and reports how many
	// were removed.
	Prune(ctx context.Context, keep int) (int64, error)
}
