package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"lariskan-server/internal/domain"
)

type generateRequest struct {
	ImageURL    string `json:"imageUrl"`
	ProductName string `json:"productName"`
	Category    string `json:"category"`
	KeyFeatures string `json:"keyFeatures"`
	ToneOfVoice string `json:"toneOfVoice"`
}

type generateResponse struct {
	Success   bool            `json:"success"`
	Data      *domain.CopySet `json:"data"`
	ProductID string          `json:"productId"`
	Model     string          `json:"model"`
}

// GenerateCopy runs the full pipeline: validate, load the caller's profile,
// call the vision model and persist the product with its three generations.
func (a *App) GenerateCopy(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_request", "invalid payload")
		return
	}

	out, err := a.Copy.Generate(r.Context(), userID, domain.GenerationRequest{
		ImageURL:    req.ImageURL,
		ProductName: req.ProductName,
		Category:    domain.Category(req.Category),
		KeyFeatures: req.KeyFeatures,
		Tone:        domain.Tone(req.ToneOfVoice),
	})
	if err != nil {
		a.generateError(w, err)
		return
	}

	a.json(w, http.StatusOK, generateResponse{
		Success:   true,
		Data:      &out.Copy,
		ProductID: out.ProductID,
		Model:     string(out.Model),
	})
}

func (a *App) generateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
	case errors.Is(err, domain.ErrInvalidRequest):
		a.error(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, domain.ErrProfileNotFound):
		a.error(w, http.StatusNotFound, "profile_not_found", "profile not found")
	case errors.Is(err, domain.ErrProviderFailure), errors.Is(err, domain.ErrParseFailed):
		a.error(w, http.StatusBadGateway, "generation_failed", "failed to generate content")
	case errors.Is(err, domain.ErrPersistenceFailed):
		a.error(w, http.StatusInternalServerError, "persistence_failed", "failed to save results")
	default:
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
