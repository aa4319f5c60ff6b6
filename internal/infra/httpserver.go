package infra

import (
	"context"
	"net/http"
	"time"
)

// HTTPServer wraps http.Server with this API's timeout profile. The write
// timeout must outlast a full vision-model round trip on /v1/generate, which
// regularly runs tens of seconds; reads stay short since request bodies are
// small JSON or a single image upload.
type HTTPServer struct {
	server *http.Server
}

// NewHTTPServer builds the server on the configured port and timeouts.
func NewHTTPServer(cfg *Config, handler http.Handler) *HTTPServer {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}
	return &HTTPServer{server: srv}
}

// Start blocks serving requests until the listener fails or Shutdown runs.
func (s *HTTPServer) Start() error {
	if s.server == nil {
		return nil
	}
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests; a generation call already sent to a
// model backend is allowed to finish within the context deadline.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
