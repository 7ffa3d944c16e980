package api

import (
	"database/sql"
	"net/http"

	"github.com/RhodP10/Lost-And-Found/internal/uploads"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, uploadStore *uploads.Store) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	itemsHandler := &ItemsHandler{DB: db}
	claimsHandler := &ClaimsHandler{DB: db}
	categoriesHandler := &CategoriesHandler{DB: db}
	adminHandler := &AdminHandler{DB: db}
	uploadHandler := &UploadHandler{Store: uploadStore}

	authMW := AuthMiddleware(jwtSecret, db)
	admin := func(h http.HandlerFunc) http.Handler { return authMW(RequireAdmin(h)) }

	// Public: accounts, browsing, and claim submission.
	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("GET /api/categories", categoriesHandler.List)
	mux.HandleFunc("POST /api/claims", claimsHandler.Submit)
	mux.HandleFunc("GET /uploads/{file}", uploadHandler.Serve)

	// Authenticated routes.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("PUT /api/user/profile", authMW(http.HandlerFunc(usersHandler.UpdateProfile)))
	mux.Handle("GET /api/user/items", authMW(http.HandlerFunc(usersHandler.MyItems)))
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("PUT /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("POST /api/upload", authMW(http.HandlerFunc(uploadHandler.Upload)))

	// Admin: item removal, claim adjudication, categories, users, grants.
	mux.Handle("DELETE /api/items/{id}", admin(itemsHandler.Delete))
	mux.Handle("GET /api/claims", admin(claimsHandler.List))
	mux.Handle("GET /api/claims/{id}", admin(claimsHandler.Get))
	mux.Handle("PUT /api/claims/{id}", admin(claimsHandler.Adjudicate))
	mux.Handle("DELETE /api/claims/{id}", admin(claimsHandler.Delete))
	mux.Handle("POST /api/admin/categories", admin(categoriesHandler.Create))
	mux.Handle("DELETE /api/admin/categories/{id}", admin(categoriesHandler.Delete))
	mux.Handle("GET /api/admin/stats", admin(adminHandler.Stats))
	mux.Handle("GET /api/admin/users", admin(adminHandler.ListUsers))
	mux.Handle("GET /api/admin/admins", admin(adminHandler.ListAdmins))
	mux.Handle("POST /api/admin/admins", admin(adminHandler.AddAdmin))
	mux.Handle("DELETE /api/admin/admins/{userID}", admin(adminHandler.RemoveAdmin))

	return mux
}
