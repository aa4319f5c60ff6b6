package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"lariskan-server/internal/domain"
	"lariskan-server/pkg/zip"
)

type generationDTO struct {
	ID         string    `json:"id"`
	Platform   string    `json:"platform"`
	ToneVoice  string    `json:"tone_of_voice"`
	ResultText string    `json:"result_text"`
	CreatedAt  time.Time `json:"created_at"`
}

type historyItemDTO struct {
	ID          string          `json:"id"`
	ImageURL    string          `json:"image_url"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	KeyFeatures string          `json:"key_features"`
	CreatedAt   time.Time       `json:"created_at"`
	Generations []generationDTO `json:"generations"`
}

func historyItem(h domain.ProductHistory) historyItemDTO {
	item := historyItemDTO{
		ID:          h.Product.ID,
		ImageURL:    h.Product.ImageURL,
		ProductName: h.Product.ProductName,
		Category:    string(h.Product.Category),
		KeyFeatures: h.Product.KeyFeatures,
		CreatedAt:   h.Product.CreatedAt,
		Generations: []generationDTO{},
	}
	for _, g := range h.Generations {
		item.Generations = append(item.Generations, generationDTO{
			ID:         g.ID,
			Platform:   string(g.Platform),
			ToneVoice:  string(g.Tone),
			ResultText: g.ResultText,
			CreatedAt:  g.CreatedAt,
		})
	}
	return item
}

// ListHistory returns the caller's generated products, newest first.
func (a *App) ListHistory(w http.ResponseWriter, r *http.Request) {
	profile, err := a.currentProfile(r)
	if err != nil {
		a.historyError(w, err)
		return
	}
	items, err := a.Products.ListByUser(r.Context(), profile.ID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list history failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load history")
		return
	}
	dtos := make([]historyItemDTO, 0, len(items))
	for _, h := range items {
		dtos = append(dtos, historyItem(h))
	}
	a.json(w, http.StatusOK, map[string]any{"items": dtos})
}

// GetHistoryItem returns one product with its generations.
func (a *App) GetHistoryItem(w http.ResponseWriter, r *http.Request) {
	profile, err := a.currentProfile(r)
	if err != nil {
		a.historyError(w, err)
		return
	}
	productID := chi.URLParam(r, "id")
	item, err := a.Products.GetByID(r.Context(), productID, profile.ID)
	if err != nil {
		a.historyError(w, err)
		return
	}
	a.json(w, http.StatusOK, historyItem(*item))
}

// DeleteHistoryItem removes one product owned by the caller. The uploaded
// image is cleaned out of local storage first, best-effort: a leftover file
// never blocks the row delete.
func (a *App) DeleteHistoryItem(w http.ResponseWriter, r *http.Request) {
	profile, err := a.currentProfile(r)
	if err != nil {
		a.historyError(w, err)
		return
	}
	productID := chi.URLParam(r, "id")
	item, err := a.Products.GetByID(r.Context(), productID, profile.ID)
	if err != nil {
		a.historyError(w, err)
		return
	}
	a.removeStoredImage(r.Context(), item.Product.ImageURL)
	if err := a.Products.Delete(r.Context(), productID, profile.ID); err != nil {
		a.historyError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"success": true})
}

// removeStoredImage deletes the file backing an image URL when the URL points
// at this service's own storage. External image URLs are left alone.
func (a *App) removeStoredImage(ctx context.Context, imageURL string) {
	if a.Store == nil || a.Config == nil {
		return
	}
	base := strings.TrimRight(a.Config.StorageBaseURL, "/") + "/"
	if !strings.HasPrefix(imageURL, base) {
		return
	}
	key := strings.TrimPrefix(imageURL, base)
	if key == "" {
		return
	}
	if err := a.Store.Remove(ctx, key); err != nil {
		a.Logger.Warn().Err(err).Str("key", key).Msg("remove stored image failed")
	}
}

// ExportHistoryItem bundles a product's copy as plain-text files in a zip.
func (a *App) ExportHistoryItem(w http.ResponseWriter, r *http.Request) {
	profile, err := a.currentProfile(r)
	if err != nil {
		a.historyError(w, err)
		return
	}
	productID := chi.URLParam(r, "id")
	item, err := a.Products.GetByID(r.Context(), productID, profile.ID)
	if err != nil {
		a.historyError(w, err)
		return
	}
	docs := make([]zip.Document, 0, len(item.Generations))
	for _, g := range item.Generations {
		docs = append(docs, zip.Document{
			Filename: fmt.Sprintf("%s.txt", g.Platform),
			Data:     []byte(g.ResultText),
		})
	}
	archive := zip.ArchiveDocuments(docs)
	if archive == nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", item.Product.ProductName+".zip"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

func (a *App) historyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "product not found")
	default:
		a.Logger.Error().Err(err).Msg("history request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
