package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxUploadBytes = 10 << 20

var allowedUploadExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// UploadImage stores a product photo and returns its public URL so the
// client can pass it back as imageUrl when generating copy.
func (a *App) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	if a.Store == nil {
		a.error(w, http.StatusServiceUnavailable, "storage_unavailable", "uploads are not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_request", "image file required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(path.Ext(header.Filename))
	if _, ok := allowedUploadExt[ext]; !ok {
		a.error(w, http.StatusBadRequest, "invalid_request", "unsupported image type")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_request", "failed to read image")
		return
	}
	if len(data) == 0 {
		a.error(w, http.StatusBadRequest, "invalid_request", "empty image")
		return
	}

	key := fmt.Sprintf("uploads/%s/%d-%s%s", userID, time.Now().UnixMilli(), uuid.NewString(), ext)
	storedKey, err := a.Store.Write(r.Context(), key, data)
	if err != nil {
		a.Logger.Error().Err(err).Msg("store upload failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to store image")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"success":  true,
		"imageUrl": a.fileURL(storedKey),
	})
}
