package handlers

import (
	"net/http"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"lariskan-server/internal/sqlinline"
)

type recentProductDTO struct {
	ID          string    `json:"id"`
	ProductName string    `json:"productName"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DashboardStats summarizes the caller's activity for the dashboard page.
func (a *App) DashboardStats(w http.ResponseWriter, r *http.Request) {
	profile, err := a.currentProfile(r)
	if err != nil {
		a.historyError(w, err)
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QDashboardStats, profile.ID)
	var totalProducts, totalGenerations, thisMonth int64
	if err := row.Scan(&totalProducts, &totalGenerations, &thisMonth); err != nil {
		a.Logger.Error().Err(err).Msg("load stats failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}

	rows, err := a.SQL.Query(r.Context(), sqlinline.QRecentProducts, profile.ID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("load recent products failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	defer rows.Close()

	titler := cases.Title(language.Und)
	recent := []recentProductDTO{}
	for rows.Next() {
		var p recentProductDTO
		if err := rows.Scan(&p.ID, &p.ProductName, &p.Category, &p.ImageURL, &p.CreatedAt); err != nil {
			a.Logger.Warn().Err(err).Msg("skip recent product row")
			continue
		}
		p.Category = titler.String(p.Category)
		recent = append(recent, p)
	}

	a.json(w, http.StatusOK, map[string]any{
		"totalProducts":     totalProducts,
		"totalGenerations":  totalGenerations,
		"thisMonthProducts": thisMonth,
		"recentProducts":    recent,
	})
}
