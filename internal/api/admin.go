package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/RhodP10/Lost-And-Found/internal/model"
	"github.com/RhodP10/Lost-And-Found/internal/store"
)

// AdminHandler handles the administrative endpoints: stats, user listing,
// and admin grants.
type AdminHandler struct {
	DB *sql.DB
}

type addAdminRequest struct {
	UserID      int64  `json:"user_id"`
	Role        string `json:"role"`
	Permissions string `json:"permissions"`
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := store.GetStats(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := store.ListUsers(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	jsonResponse(w, http.StatusOK, users)
}

// ListAdmins handles GET /api/admin/admins.
func (h *AdminHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := store.ListAdmins(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list admins")
		return
	}
	if admins == nil {
		admins = []model.Admin{}
	}
	jsonResponse(w, http.StatusOK, admins)
}

// AddAdmin handles POST /api/admin/admins.
func (h *AdminHandler) AddAdmin(w http.ResponseWriter, r *http.Request) {
	var req addAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.UserID == 0 {
		jsonError(w, http.StatusBadRequest, "user id required")
		return
	}

	if err := store.AddAdmin(r.Context(), h.DB, req.UserID, req.Role, req.Permissions); err != nil {
		storeError(w, err, "failed to add admin")
		return
	}

	actor := GetClaims(r.Context())
	slog.Info("admin granted", "user", req.UserID, "by", actor.Username)
	jsonResponse(w, http.StatusCreated, map[string]string{"message": "admin added"})
}

// RemoveAdmin handles DELETE /api/admin/admins/{userID}.
func (h *AdminHandler) RemoveAdmin(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	actor := GetClaims(r.Context())
	if actor != nil && actor.UserID == userID {
		jsonError(w, http.StatusBadRequest, "cannot revoke your own admin access")
		return
	}

	if err := store.RemoveAdminByUserID(r.Context(), h.DB, userID); err != nil {
		storeError(w, err, "failed to remove admin")
		return
	}

	slog.Info("admin revoked", "user", userID, "by", actor.Username)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "admin removed"})
}
