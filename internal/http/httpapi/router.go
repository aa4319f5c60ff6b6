package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"lariskan-server/internal/http/handlers"
	"lariskan-server/internal/infra/geoip"
	"lariskan-server/internal/middleware"
)

// NewRouter assembles the HTTP surface. Everything under /v1 except health,
// docs and the identity webhook requires a bearer token.
func NewRouter(app *handlers.App, geo geoip.CountryResolver) stdhttp.Handler {
	var lookup middleware.CountryLookup
	if geo != nil {
		lookup = geo.CountryCode
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(app.Config.AllowedOrigins),
		middleware.I18N("id", lookup),
	)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.Health)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)

		r.Post("/webhooks/identity", app.IdentityWebhook)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthJWT(app.Config.JWTSecret))
			r.Use(middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute))

			r.Post("/generate", app.GenerateCopy)

			r.Route("/history", func(r chi.Router) {
				r.Get("/", app.ListHistory)
				r.Get("/{id}", app.GetHistoryItem)
				r.Delete("/{id}", app.DeleteHistoryItem)
				r.Get("/{id}/export", app.ExportHistoryItem)
			})

			r.Get("/settings", app.GetSettings)
			r.Put("/settings", app.UpdateSettings)

			r.Get("/stats", app.DashboardStats)

			r.Post("/uploads", app.UploadImage)
		})
	})

	if app.Store != nil {
		fs := stdhttp.StripPrefix("/static/", stdhttp.FileServer(stdhttp.Dir(app.Store.BasePath())))
		r.Handle("/static/*", fs)
	}

	return r
}
