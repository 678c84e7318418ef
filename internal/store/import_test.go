package store

import (
	"context"
	"testing"

	"github.com/digicloset/digicloset/internal/db"
)

func TestImportClothing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := testUser(t, database, "alice")

	result, err := ImportClothing(ctx, database, user.ID, []ClothingFields{
		{Name: "Old Jeans", Material: "Denim"},
		{Name: "   "}, // blank name, must be skipped
		{Name: "Old Shirt", Category: "Fast Fashion"},
	})
	if err != nil {
		t.Fatalf("ImportClothing: %v", err)
	}
	if result.Migrated != 2 || result.Failed != 1 {
		t.Errorf("expected 2 migrated / 1 failed, got %d / %d", result.Migrated, result.Failed)
	}

	items, _ := ListClothing(ctx, database, user.ID)
	if len(items) != 2 {
		t.Errorf("expected 2 persisted items, got %d", len(items))
	}
}

func TestImportClothingEmpty(t *testing.T) {
	database := db.NewTestDB(t)
	user := testUser(t, database, "alice")

	result, err := ImportClothing(context.Background(), database, user.ID, nil)
	if err != nil {
		t.Fatalf("ImportClothing: %v", err)
	}
	if result.Migrated != 0 || result.Failed != 0 {
		t.Errorf("expected empty tally, got %+v", result)
	}
}
