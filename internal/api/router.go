package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, wearDecay int) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	clothesHandler := &ClothesHandler{DB: db, WearDecay: wearDecay}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public: register and login.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated account routes.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Closet routes, all scoped to the authenticated owner.
	mux.Handle("GET /api/clothes", authMW(http.HandlerFunc(clothesHandler.List)))
	mux.Handle("POST /api/clothes", authMW(http.HandlerFunc(clothesHandler.Create)))
	mux.Handle("POST /api/clothes/import", authMW(http.HandlerFunc(clothesHandler.Import)))
	mux.Handle("GET /api/clothes/{id}", authMW(http.HandlerFunc(clothesHandler.Get)))
	mux.Handle("PUT /api/clothes/{id}", authMW(http.HandlerFunc(clothesHandler.Update)))
	mux.Handle("DELETE /api/clothes/{id}", authMW(http.HandlerFunc(clothesHandler.Delete)))
	mux.Handle("PUT /api/clothes/{id}/wear", authMW(http.HandlerFunc(clothesHandler.Wear)))
	mux.Handle("GET /api/clothes/{id}/history", authMW(http.HandlerFunc(clothesHandler.History)))
	mux.Handle("PUT /api/clothes/{id}/photo", authMW(http.HandlerFunc(clothesHandler.UploadPhoto)))
	mux.Handle("GET /api/clothes/{id}/photo", authMW(http.HandlerFunc(clothesHandler.GetPhoto)))

	return mux
}
