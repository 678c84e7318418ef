package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/digicloset/digicloset/internal/db"
	"github.com/digicloset/digicloset/internal/model"
)

// testUser creates a user to own closet items in tests.
func testUser(t *testing.T, database *sql.DB, username string) *model.User {
	t.Helper()
	user, err := CreateUser(context.Background(), database, username, "not-a-real-hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

func TestCreateClothingComputesScore(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := testUser(t, database, "alice")

	item, err := CreateClothing(ctx, database, user.ID, ClothingFields{
		Name:     "  Blue Jeans  ",
		Material: "Denim",
		Category: "Casual",
	})
	if err != nil {
		t.Fatalf("CreateClothing: %v", err)
	}
	if item.Name != "Blue Jeans" {
		t.Errorf("expected trimmed name 'Blue Jeans', got %q", item.Name)
	}
	if item.SustainabilityScore != 75 {
		t.Errorf("expected denim score 75, got %d", item.SustainabilityScore)
	}
	if item.TimesWorn != 0 {
		t.Errorf("expected times_worn 0, got %d", item.TimesWorn)
	}
	if item.UserID != user.ID {
		t.Errorf("expected user_id %d, got %d", user.ID, item.UserID)
	}
}

func TestCreateClothingDefaultsMaterialAndCategory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := testUser(t, database, "alice")

	item, err := CreateClothing(ctx, database, user.ID, ClothingFields{Name: "Mystery Shirt"})
	if err != nil {
		t.Fatalf("CreateClothing: %v", err)
	}
	if item.Material != model.UnknownAttribute || item.Category != model.UnknownAttribute {
		t.Errorf("expected N/A defaults, got material=%q category=%q", item.Material, item.Category)
	}
	if item.SustainabilityScore != 100 {
		t.Errorf("expected score 100 with no tier match, got %d", item.SustainabilityScore)
	}
}

func TestCreateClothingBlankName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := testUser(t, database, "alice")

	_, err := CreateClothing(ctx, database, user.ID, ClothingFields{Name: "   "})
	if !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}

	items, err := ListClothing(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("ListClothing: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected nothing persisted, got %d items", len(items))
	}
}

func TestListClothingScopedAndNewestFirst(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := testUser(t, database, "alice")
	bob := testUser(t, database, "bob")

	first, _ := CreateClothing(ctx, database, alice.ID, ClothingFields{Name: "First"})
	second, _ := CreateClothing(ctx, database, alice.ID, ClothingFields{Name: "Second"})
	CreateClothing(ctx, database, bob.ID, ClothingFields{Name: "Bob's Coat"})

	items, err := ListClothing(ctx, database, alice.ID)
	if err != nil {
		t.Fatalf("ListClothing: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items for alice, got %d", len(items))
	}
	if items[0].ID != second.ID || items[1].ID != first.ID {
		t.Errorf("expected newest first, got ids %d, %d", items[0].ID, items[1].ID)
	}
	for _, item := range items {
		if item.UserID != alice.ID {
			t.Errorf("list leaked item owned by user %d", item.UserID)
		}
	}
}

func TestUpdateClothingPartialFields(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := testUser(t, database, "alice")

	item, _ := CreateClothing(ctx, database, user.ID, ClothingFields{
		Name: "Jacket", Material: "Polyester", Category: "Outdoor", Color: "green",
	})

	brand := "Patagonia"
	updated, err := UpdateClothing(ctx, database, user.ID, item.ID, ClothingPatch{Brand: &brand})
	if err != nil {
		t.Fatalf("UpdateClothing: %v", err)
	}
	if updated.Brand != "Patagonia" {
		t.Errorf("expected updated brand, got %q", updated.Brand)
	}
	if updated.Name != "Jacket" || updated.Color != "green" {
		t.Error("absent patch fields must be left unchanged")
	}
	if updated.SustainabilityScore != 60 {
		t.Errorf("score must not change when material/category untouched, got %d", updated.SustainabilityScore)
	}
}

func TestUpdateClothingRecomputesScore(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := testUser(t, database, "alice")

	item, _ := CreateClothing(ctx, database, user.ID, ClothingFields{
		Name: "Blue Jeans", Material: "Denim", Category: "Casual",
	})

	// Wear decay accumulates, then a material edit replaces it entirely.
	worn, err := RegisterWear(ctx, database, user.ID, item.ID, 5)
	if err != nil {
		t.Fatalf("RegisterWear: %v", err)
	}
	if worn.SustainabilityScore != 70 || worn.TimesWorn != 1 {
		t.Fatalf("expected score 70 and times_worn 1, got %d and %d", worn.SustainabilityScore, worn.TimesWorn)
	}

	material := "Organic Cotton"
	updated, err := UpdateClothing(ctx, database, user.ID, item.ID, ClothingPatch{Material: &material})
	if err != nil {
		t.Fatalf("UpdateClothing: %v", err)
	}
	if updated.SustainabilityScore != 95 {
		t.Errorf("expected recomputed score 95, got %d", updated.SustainabilityScore)
	}
	if updated.TimesWorn != 1 {
		t.Errorf("recompute must not touch wear count, got %d", updated.TimesWorn)
	}
}

func TestUpdateClothingForbidden(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := testUser(t, database, "alice")
	bob := testUser(t, database, "bob")

	item, _ := CreateClothing(ctx, database, alice.ID, ClothingFields{Name: "Dress"})

	name := "Stolen Dress"
	_, err := UpdateClothing(ctx, database, bob.ID, item.ID, ClothingPatch{Name: &name})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Any patch shape must be rejected the same way.
	worn := 99
	_, err = UpdateClothing(ctx, database, bob.ID, item.ID, ClothingPatch{TimesWorn: &worn})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdateClothingNegativeWearCount(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := testUser(t, database, "alice")

	item, _ := CreateClothing(ctx, database, user.ID, ClothingFields{Name: "Shirt"})

	worn := -1
	_, err := UpdateClothing(ctx, database, user.ID, item.ID, ClothingPatch{TimesWorn: &worn})
	if !errors.Is(err, ErrInvalidWearCount) {
		t.Fatalf("expected ErrInvalidWearCount, got %v", err)
	}
}

func TestRegisterWearDrivesScoreToZero(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := testUser(t, database, "alice")

	item, _ := CreateClothing(ctx, database, user.ID, ClothingFields{
		Name: "Gym Shirt", Material: "Polyester",
	})
	if item.SustainabilityScore != 60 {
		t.Fatalf("expected initial score 60, got %d", item.SustainabilityScore)
	}

	var last *model.Clothing
	for i := 1; i <= 15; i++ {
		var err error
		last, err = RegisterWear(ctx, database, user.ID, item.ID, 5)
		if err != nil {
			t.Fatalf("RegisterWear #%d: %v", i, err)
		}
		want := 60 - i*5
		if want < 0 {
			want = 0
		}
		if last.SustainabilityScore != want {
			t.Fatalf("wear #%d: expected score %d, got %d", i, want, last.SustainabilityScore)
		}
	}
	if last.TimesWorn != 15 {
		t.Errorf("expected times_worn 15, got %d", last.TimesWorn)
	}
	if last.SustainabilityScore != 0 {
		t.Errorf("expected score pinned at 0, got %d", last.SustainabilityScore)
	}
}

func TestWearHistory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := testUser(t, database, "alice")

	item, _ := CreateClothing(ctx, database, user.ID, ClothingFields{Name: "Boots", Material: "Denim"})
	RegisterWear(ctx, database, user.ID, item.ID, 2)
	RegisterWear(ctx, database, user.ID, item.ID, 2)

	records, err := WearHistory(ctx, database, user.ID, item.ID)
	if err != nil {
		t.Fatalf("WearHistory: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 wear records, got %d", len(records))
	}
	// Newest first: the later wear has the lower score.
	if records[0].ScoreAfter != 71 || records[1].ScoreAfter != 73 {
		t.Errorf("expected scores [71 73], got [%d %d]", records[0].ScoreAfter, records[1].ScoreAfter)
	}

	bob := testUser(t, database, "bob")
	if _, err := WearHistory(ctx, database, bob.ID, item.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-owner history, got %v", err)
	}
}

func TestDeleteClothing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := testUser(t, database, "alice")
	bob := testUser(t, database, "bob")

	item, _ := CreateClothing(ctx, database, alice.ID, ClothingFields{Name: "Old Coat"})

	if err := DeleteClothing(ctx, database, bob.ID, item.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner delete, got %v", err)
	}

	if err := DeleteClothing(ctx, database, alice.ID, item.ID); err != nil {
		t.Fatalf("DeleteClothing: %v", err)
	}

	// The id is gone for every follow-up operation.
	if _, err := GetClothing(ctx, database, alice.ID, item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	name := "Ghost"
	if _, err := UpdateClothing(ctx, database, alice.ID, item.ID, ClothingPatch{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on update after delete, got %v", err)
	}
	if _, err := RegisterWear(ctx, database, alice.ID, item.ID, 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on wear after delete, got %v", err)
	}
	if err := DeleteClothing(ctx, database, alice.ID, item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on repeated delete, got %v", err)
	}
}

func TestClothingPhoto(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := testUser(t, database, "alice")

	item, _ := CreateClothing(ctx, database, user.ID, ClothingFields{Name: "Photo Shirt"})
	photo := []byte("fake jpeg data")
	if err := SetClothingPhoto(ctx, database, user.ID, item.ID, photo, "image/jpeg"); err != nil {
		t.Fatalf("SetClothingPhoto: %v", err)
	}

	data, mime, err := GetClothingPhoto(ctx, database, user.ID, item.ID)
	if err != nil {
		t.Fatalf("GetClothingPhoto: %v", err)
	}
	if string(data) != "fake jpeg data" {
		t.Errorf("expected photo data, got %q", string(data))
	}
	if mime != "image/jpeg" {
		t.Errorf("expected mime 'image/jpeg', got %q", mime)
	}

	bob := testUser(t, database, "bob")
	if _, _, err := GetClothingPhoto(ctx, database, bob.ID, item.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-owner photo, got %v", err)
	}
}
