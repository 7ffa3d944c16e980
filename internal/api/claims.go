package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/RhodP10/Lost-And-Found/internal/model"
	"github.com/RhodP10/Lost-And-Found/internal/store"
)

// ClaimsHandler handles claim submission and adjudication endpoints.
type ClaimsHandler struct {
	DB *sql.DB
}

type submitClaimRequest struct {
	ItemID           int64  `json:"item_id"`
	ClaimantName     string `json:"claimant_name"`
	ClaimantEmail    string `json:"claimant_email"`
	ClaimantPhone    string `json:"claimant_phone"`
	StudentID        string `json:"student_id"`
	ProofDescription string `json:"proof_description"`
	Notes            string `json:"notes"`
}

type adjudicateClaimRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// Submit handles POST /api/claims.
func (h *ClaimsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ItemID == 0 {
		jsonError(w, http.StatusBadRequest, "item id required")
		return
	}

	claim, err := store.SubmitClaim(r.Context(), h.DB, store.ClaimParams{
		ItemID:           req.ItemID,
		ClaimantName:     req.ClaimantName,
		ClaimantEmail:    req.ClaimantEmail,
		ClaimantPhone:    req.ClaimantPhone,
		StudentID:        req.StudentID,
		ProofDescription: req.ProofDescription,
		Notes:            req.Notes,
	})
	if err != nil {
		storeError(w, err, "failed to submit claim")
		return
	}

	slog.Info("claim submitted", "claim", claim.ID, "item", claim.ItemID)
	jsonResponse(w, http.StatusCreated, claim)
}

// List handles GET /api/claims.
func (h *ClaimsHandler) List(w http.ResponseWriter, r *http.Request) {
	var itemID int64
	if s := r.URL.Query().Get("item_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid item id")
			return
		}
		itemID = id
	}

	status := r.URL.Query().Get("status")
	if status != "" && !model.ValidClaimStatus(status) {
		jsonError(w, http.StatusBadRequest, "invalid status")
		return
	}

	claims, err := store.ListClaims(r.Context(), h.DB, itemID, status)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list claims")
		return
	}
	if claims == nil {
		claims = []model.Claim{}
	}
	jsonResponse(w, http.StatusOK, claims)
}

// Get handles GET /api/claims/{id}.
func (h *ClaimsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid claim id")
		return
	}

	claim, err := store.GetClaim(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get claim")
		return
	}
	if claim == nil {
		jsonError(w, http.StatusNotFound, "claim not found")
		return
	}

	jsonResponse(w, http.StatusOK, claim)
}

// Adjudicate handles PUT /api/claims/{id}.
func (h *ClaimsHandler) Adjudicate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid claim id")
		return
	}

	var req adjudicateClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Status == "" {
		jsonError(w, http.StatusBadRequest, "status required")
		return
	}

	claim, err := store.AdjudicateClaim(r.Context(), h.DB, id, req.Status, req.Notes)
	if err != nil {
		storeError(w, err, "failed to update claim")
		return
	}

	admin := GetClaims(r.Context())
	slog.Info("claim adjudicated",
		"claim", claim.ID, "item", claim.ItemID, "status", claim.Status, "by", admin.Username)
	jsonResponse(w, http.StatusOK, claim)
}

// Delete handles DELETE /api/claims/{id}.
func (h *ClaimsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid claim id")
		return
	}

	if err := store.DeleteClaim(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "failed to delete claim")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "claim deleted"})
}
