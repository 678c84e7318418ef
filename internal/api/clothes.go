package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/digicloset/digicloset/internal/imaging"
	"github.com/digicloset/digicloset/internal/model"
	"github.com/digicloset/digicloset/internal/store"
)

// ClothesHandler handles closet endpoints.
type ClothesHandler struct {
	DB *sql.DB

	// WearDecay is how many score points an item loses per wear.
	WearDecay int
}

type createClothingRequest struct {
	Name         string     `json:"name"`
	Image        string     `json:"image"`
	Material     string     `json:"material"`
	Category     string     `json:"category"`
	Color        string     `json:"color"`
	Brand        string     `json:"brand"`
	PurchaseDate *time.Time `json:"purchase_date"`
}

type updateClothingRequest struct {
	Name         *string    `json:"name"`
	Material     *string    `json:"material"`
	Category     *string    `json:"category"`
	Color        *string    `json:"color"`
	Brand        *string    `json:"brand"`
	PurchaseDate *time.Time `json:"purchase_date"`
	TimesWorn    *int       `json:"times_worn"`
}

func (r createClothingRequest) fields() store.ClothingFields {
	return store.ClothingFields{
		Name:         r.Name,
		Image:        r.Image,
		Material:     r.Material,
		Category:     r.Category,
		Color:        r.Color,
		Brand:        r.Brand,
		PurchaseDate: r.PurchaseDate,
	}
}

// storeError maps store sentinel errors to HTTP statuses.
func storeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNameRequired), errors.Is(err, store.ErrInvalidWearCount):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrForbidden):
		jsonError(w, http.StatusForbidden, err.Error())
	default:
		jsonError(w, http.StatusInternalServerError, fallback)
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

// List handles GET /api/clothes.
func (h *ClothesHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	items, err := store.ListClothing(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list clothes")
		return
	}
	if items == nil {
		items = []model.Clothing{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/clothes.
func (h *ClothesHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req createClothingRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.CreateClothing(r.Context(), h.DB, claims.UserID, req.fields())
	if err != nil {
		storeError(w, err, "failed to create clothing item")
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/clothes/{id}.
func (h *ClothesHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetClothing(r.Context(), h.DB, claims.UserID, id)
	if err != nil {
		storeError(w, err, "failed to get clothing item")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/clothes/{id}.
func (h *ClothesHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req updateClothingRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.UpdateClothing(r.Context(), h.DB, claims.UserID, id, store.ClothingPatch{
		Name:         req.Name,
		Material:     req.Material,
		Category:     req.Category,
		Color:        req.Color,
		Brand:        req.Brand,
		PurchaseDate: req.PurchaseDate,
		TimesWorn:    req.TimesWorn,
	})
	if err != nil {
		storeError(w, err, "failed to update clothing item")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Wear handles PUT /api/clothes/{id}/wear.
func (h *ClothesHandler) Wear(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.RegisterWear(r.Context(), h.DB, claims.UserID, id, h.WearDecay)
	if err != nil {
		storeError(w, err, "failed to register wear")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/clothes/{id}.
func (h *ClothesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := store.DeleteClothing(r.Context(), h.DB, claims.UserID, id); err != nil {
		storeError(w, err, "failed to delete clothing item")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "clothing item deleted"})
}

// History handles GET /api/clothes/{id}/history.
func (h *ClothesHandler) History(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	records, err := store.WearHistory(r.Context(), h.DB, claims.UserID, id)
	if err != nil {
		storeError(w, err, "failed to get wear history")
		return
	}
	if records == nil {
		records = []model.WearRecord{}
	}
	jsonResponse(w, http.StatusOK, records)
}

// Import handles POST /api/clothes/import, the legacy-closet migration.
func (h *ClothesHandler) Import(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req []createClothingRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]store.ClothingFields, 0, len(req))
	for _, item := range req {
		items = append(items, item.fields())
	}

	result, err := store.ImportClothing(r.Context(), h.DB, claims.UserID, items)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to import clothes")
		return
	}
	jsonResponse(w, http.StatusOK, result)
}

// UploadPhoto handles PUT /api/clothes/{id}/photo.
func (h *ClothesHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	processed, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetClothingPhoto(r.Context(), h.DB, claims.UserID, id, processed.Data, processed.MIME); err != nil {
		storeError(w, err, "failed to save photo")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "photo uploaded"})
}

// GetPhoto handles GET /api/clothes/{id}/photo.
func (h *ClothesHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	data, mime, err := store.GetClothingPhoto(r.Context(), h.DB, claims.UserID, id)
	if err != nil {
		storeError(w, err, "failed to get photo")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}
