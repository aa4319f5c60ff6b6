package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"lariskan-server/internal/copygen"
	"lariskan-server/internal/domain"
	"lariskan-server/internal/infra"
	"lariskan-server/internal/middleware"
	"lariskan-server/internal/storage"
)

// copyGenerator is the slice of copygen.Service the handlers need.
type copyGenerator interface {
	Generate(ctx context.Context, callerID string, req domain.GenerationRequest) (*copygen.Output, error)
}

type App struct {
	Logger   zerolog.Logger
	Config   *infra.Config
	SQL      infra.SQLExecutor
	Profiles domain.ProfileRepository
	Products domain.ProductRepository
	Copy     copyGenerator
	Store    *storage.FileStore
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{
		"error":   errCode,
		"message": message,
	})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

// currentProfile resolves the authenticated caller's stored profile.
func (a *App) currentProfile(r *http.Request) (*domain.Profile, error) {
	userID := a.currentUserID(r)
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return a.Profiles.GetByExternalID(r.Context(), userID)
}

func (a *App) fileURL(key string) string {
	base := strings.TrimRight(a.Config.StorageBaseURL, "/")
	return base + "/" + strings.TrimLeft(key, "/")
}
