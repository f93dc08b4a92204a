package models

import "time"

// ExportRecord is one row of the local export history.
type ExportRecord struct {
	ID        int64
	View      string
	Format    string
	Location  string
	Rows      int
	CreatedAt time.Time
}
