package api

import (
	"net/http"

	"github.com/RhodP10/Lost-And-Found/internal/imaging"
	"github.com/RhodP10/Lost-And-Found/internal/uploads"
)

// UploadHandler handles item photo uploads and serving.
type UploadHandler struct {
	Store *uploads.Store
}

// maxUploadSize limits uploads to 5 MB.
const maxUploadSize = 5 << 20

// Upload handles POST /api/upload.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	// Process validates the actual bytes, so the client headers don't matter.
	result, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	url, err := h.Store.Save(result.Data, result.MIME)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	jsonResponse(w, http.StatusCreated, map[string]string{"image_url": url})
}

// Serve handles GET /uploads/{file}.
func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	path, err := h.Store.Open(r.PathValue("file"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeFile(w, r, path)
}
