package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"lariskan-server/internal/domain"
)

type settingsResponse struct {
	AIModel string `json:"aiModel"`
}

type settingsUpdateRequest struct {
	AIModel string `json:"aiModel"`
}

// GetSettings returns the caller's backend preference. Callers without a
// stored profile see the default so the settings page always renders.
func (a *App) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	profile, err := a.Profiles.GetByExternalID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.json(w, http.StatusOK, settingsResponse{AIModel: string(domain.DefaultModel)})
			return
		}
		a.Logger.Error().Err(err).Msg("load settings failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load settings")
		return
	}
	a.json(w, http.StatusOK, settingsResponse{AIModel: string(profile.Model)})
}

// UpdateSettings stores the caller's backend preference.
func (a *App) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req settingsUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_request", "invalid payload")
		return
	}
	model := domain.ModelID(req.AIModel)
	if !domain.KnownModel(model) {
		a.error(w, http.StatusBadRequest, "invalid_request", "aiModel must be gemini or mistral")
		return
	}
	if err := a.Profiles.UpdateModel(r.Context(), userID, model); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "profile_not_found", "profile not found")
			return
		}
		a.Logger.Error().Err(err).Msg("update settings failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update settings")
		return
	}
	a.json(w, http.StatusOK, settingsResponse{AIModel: string(model)})
}
