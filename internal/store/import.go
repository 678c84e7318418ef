package store

import (
	"context"
	"database/sql"
	"log/slog"
)

// ImportResult is the tally of a legacy-closet import.
type ImportResult struct {
	Migrated int `json:"migrated"`
	Failed   int `json:"failed"`
}

// ImportClothing copies legacy locally-cached closet items into a user's
// closet, one at a time. A failed item is counted and skipped, never
// aborting the rest of the batch.
func ImportClothing(ctx context.Context, db *sql.DB, userID int64, items []ClothingFields) (ImportResult, error) {
	var result ImportResult
	for _, fields := range items {
		if _, err := CreateClothing(ctx, db, userID, fields); err != nil {
			slog.Warn("failed to import legacy item", "name", fields.Name, "error", err)
			result.Failed++
			continue
		}
		result.Migrated++
	}
	return result, nil
}
