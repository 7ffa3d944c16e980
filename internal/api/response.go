package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/RhodP10/Lost-And-Found/internal/store"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("error encoding response: %v", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// storeError maps store errors to HTTP statuses. Validation failures are
// reported verbatim, referential misses as 404, business-rule rejections
// as 409. Anything else stays inside; the caller only sees fallback.
func storeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrValidation):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrItemNotFound),
		errors.Is(err, store.ErrClaimNotFound),
		errors.Is(err, store.ErrCategoryNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrAlreadyClaimed),
		errors.Is(err, store.ErrNotClaimable),
		errors.Is(err, store.ErrDuplicatePendingClaim),
		errors.Is(err, store.ErrCategoryInUse),
		errors.Is(err, store.ErrEmailTaken),
		errors.Is(err, store.ErrUsernameTaken):
		jsonError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("store error: %v", err)
		jsonError(w, http.StatusInternalServerError, fallback)
	}
}
