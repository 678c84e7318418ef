package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/digicloset/digicloset/internal/model"
	"github.com/digicloset/digicloset/internal/score"
)

// ClothingFields holds the caller-supplied attributes for a new item.
type ClothingFields struct {
	Name         string
	Image        string
	Material     string
	Category     string
	Color        string
	Brand        string
	PurchaseDate *time.Time
}

// ClothingPatch holds a partial update. Nil fields are left unchanged.
type ClothingPatch struct {
	Name         *string
	Material     *string
	Category     *string
	Color        *string
	Brand        *string
	PurchaseDate *time.Time
	TimesWorn    *int
}

// CreateClothing adds an item to a user's closet. The name must be non-empty
// after trimming. Material and category default to "N/A" when absent, and
// the sustainability score is computed from them at creation time.
func CreateClothing(ctx context.Context, db *sql.DB, userID int64, fields ClothingFields) (*model.Clothing, error) {
	name := strings.TrimSpace(fields.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	material := fields.Material
	if material == "" {
		material = model.UnknownAttribute
	}
	category := fields.Category
	if category == "" {
		category = model.UnknownAttribute
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO clothes (user_id, name, image, material, category, color, brand, purchase_date, times_worn, sustainability_score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?)`,
		userID, name, fields.Image, material, category, fields.Color, fields.Brand,
		fields.PurchaseDate, score.Compute(material, category),
	)
	if err != nil {
		return nil, fmt.Errorf("creating clothing item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting clothing item id: %w", err)
	}

	return GetClothing(ctx, db, userID, id)
}

// GetClothing returns one of the user's items by ID.
func GetClothing(ctx context.Context, db *sql.DB, userID, id int64) (*model.Clothing, error) {
	row := db.QueryRowContext(ctx,
		`SELECT id, user_id, name, image, photo_mime, material, category, color, brand,
		        purchase_date, times_worn, sustainability_score, created_at, updated_at
		 FROM clothes WHERE id = ?`, id,
	)

	item, err := scanClothing(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting clothing item: %w", err)
	}
	if item.UserID != userID {
		return nil, ErrForbidden
	}
	return item, nil
}

// ListClothing returns all of a user's items, newest first.
func ListClothing(ctx context.Context, db *sql.DB, userID int64) ([]model.Clothing, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, name, image, photo_mime, material, category, color, brand,
		        purchase_date, times_worn, sustainability_score, created_at, updated_at
		 FROM clothes WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing clothing items: %w", err)
	}
	defer rows.Close()

	var items []model.Clothing
	for rows.Next() {
		item, err := scanClothing(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning clothing item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateClothing applies a partial update to one of the user's items. If the
// patch touches material or category, the sustainability score is recomputed
// from the updated values, replacing any decay accumulated through wear.
func UpdateClothing(ctx context.Context, db *sql.DB, userID, id int64, patch ClothingPatch) (*model.Clothing, error) {
	item, err := GetClothing(ctx, db, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		item.Name = name
	}
	if patch.Material != nil {
		item.Material = *patch.Material
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Color != nil {
		item.Color = *patch.Color
	}
	if patch.Brand != nil {
		item.Brand = *patch.Brand
	}
	if patch.PurchaseDate != nil {
		item.PurchaseDate = patch.PurchaseDate
	}
	if patch.TimesWorn != nil {
		if *patch.TimesWorn < 0 {
			return nil, ErrInvalidWearCount
		}
		item.TimesWorn = *patch.TimesWorn
	}

	if patch.Material != nil || patch.Category != nil {
		item.SustainabilityScore = score.Compute(item.Material, item.Category)
	}

	_, err = db.ExecContext(ctx,
		`UPDATE clothes SET name = ?, material = ?, category = ?, color = ?, brand = ?,
		        purchase_date = ?, times_worn = ?, sustainability_score = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		item.Name, item.Material, item.Category, item.Color, item.Brand,
		item.PurchaseDate, item.TimesWorn, item.SustainabilityScore, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating clothing item: %w", err)
	}

	return GetClothing(ctx, db, userID, id)
}

// RegisterWear increments an item's wear count, decays its score by the
// given amount, and records the wear in the item's history. The score is
// only decayed here, never recomputed from material or category.
func RegisterWear(ctx context.Context, db *sql.DB, userID, id int64, decay int) (*model.Clothing, error) {
	item, err := GetClothing(ctx, db, userID, id)
	if err != nil {
		return nil, err
	}

	newScore := score.Decay(item.SustainabilityScore, decay)

	_, err = db.ExecContext(ctx,
		`UPDATE clothes SET times_worn = ?, sustainability_score = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		item.TimesWorn+1, newScore, id,
	)
	if err != nil {
		return nil, fmt.Errorf("registering wear: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO wear_log (clothing_id, score_after) VALUES (?, ?)`,
		id, newScore,
	)
	if err != nil {
		return nil, fmt.Errorf("recording wear history: %w", err)
	}

	return GetClothing(ctx, db, userID, id)
}

// DeleteClothing permanently removes one of the user's items. Deleting an
// already-deleted item returns ErrNotFound.
func DeleteClothing(ctx context.Context, db *sql.DB, userID, id int64) error {
	if _, err := GetClothing(ctx, db, userID, id); err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM clothes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting clothing item: %w", err)
	}
	return nil
}

// WearHistory returns an item's wear records, newest first.
func WearHistory(ctx context.Context, db *sql.DB, userID, id int64) ([]model.WearRecord, error) {
	if _, err := GetClothing(ctx, db, userID, id); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, clothing_id, worn_at, score_after
		 FROM wear_log WHERE clothing_id = ? ORDER BY worn_at DESC, id DESC`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("getting wear history: %w", err)
	}
	defer rows.Close()

	var records []model.WearRecord
	for rows.Next() {
		var rec model.WearRecord
		if err := rows.Scan(&rec.ID, &rec.ClothingID, &rec.WornAt, &rec.ScoreAfter); err != nil {
			return nil, fmt.Errorf("scanning wear record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SetClothingPhoto stores an item's photo data.
func SetClothingPhoto(ctx context.Context, db *sql.DB, userID, id int64, photo []byte, mime string) error {
	if _, err := GetClothing(ctx, db, userID, id); err != nil {
		return err
	}

	_, err := db.ExecContext(ctx,
		`UPDATE clothes SET photo = ?, photo_mime = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		photo, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting clothing photo: %w", err)
	}
	return nil
}

// GetClothingPhoto returns an item's photo data and MIME type. The data is
// nil when no photo has been uploaded.
func GetClothingPhoto(ctx context.Context, db *sql.DB, userID, id int64) ([]byte, string, error) {
	if _, err := GetClothing(ctx, db, userID, id); err != nil {
		return nil, "", err
	}

	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM clothes WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err != nil {
		return nil, "", fmt.Errorf("getting clothing photo: %w", err)
	}
	return photo, mime.String, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanClothing(s scanner) (*model.Clothing, error) {
	item := &model.Clothing{}
	var image, photoMime, color, brand sql.NullString
	var purchaseDate sql.NullTime
	err := s.Scan(&item.ID, &item.UserID, &item.Name, &image, &photoMime,
		&item.Material, &item.Category, &color, &brand, &purchaseDate,
		&item.TimesWorn, &item.SustainabilityScore, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.Image = image.String
	item.PhotoMIME = photoMime.String
	item.Color = color.String
	item.Brand = brand.String
	if purchaseDate.Valid {
		item.PurchaseDate = &purchaseDate.Time
	}
	return item, nil
}
