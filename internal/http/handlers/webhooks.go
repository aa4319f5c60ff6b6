package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"lariskan-server/internal/domain"
	"lariskan-server/internal/middleware"
)

type identityEvent struct {
	Type string `json:"type"`
	Data struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		FullName  string `json:"full_name"`
		AvatarURL string `json:"avatar_url"`
	} `json:"data"`
}

// IdentityWebhook keeps local profiles in sync with the identity provider.
// The payload is authenticated with an HMAC-SHA256 signature over the raw
// body.
func (a *App) IdentityWebhook(w http.ResponseWriter, r *http.Request) {
	if a.Config.WebhookSecret == "" {
		a.error(w, http.StatusServiceUnavailable, "webhook_unavailable", "webhook secret not configured")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_request", "failed to read payload")
		return
	}
	if !verifySignature(a.Config.WebhookSecret, body, r.Header.Get("X-Webhook-Signature")) {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid signature")
		return
	}

	var event identityEvent
	if err := json.Unmarshal(body, &event); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_request", "invalid payload")
		return
	}
	if event.Data.ID == "" {
		a.error(w, http.StatusBadRequest, "invalid_request", "missing user id")
		return
	}

	switch event.Type {
	case "user.created", "user.updated":
		profile := &domain.Profile{
			ExternalID: event.Data.ID,
			Email:      event.Data.Email,
			FullName:   event.Data.FullName,
			AvatarURL:  event.Data.AvatarURL,
			Model:      domain.DefaultModel,
			LocalePref: middleware.LocaleFromContext(r.Context()),
		}
		if _, err := a.Profiles.Upsert(r.Context(), profile); err != nil {
			a.Logger.Error().Err(err).Str("event", event.Type).Msg("profile sync failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to sync profile")
			return
		}
	case "user.deleted":
		if err := a.Profiles.DeleteByExternalID(r.Context(), event.Data.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			a.Logger.Error().Err(err).Msg("profile delete failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to delete profile")
			return
		}
	default:
		// Unknown event types are acknowledged so the provider stops retrying.
	}

	a.json(w, http.StatusOK, map[string]any{"received": true})
}

func verifySignature(secret string, body []byte, header string) bool {
	header = strings.TrimSpace(strings.TrimPrefix(header, "sha256="))
	if header == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(header)))
}
