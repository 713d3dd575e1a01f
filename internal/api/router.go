package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(apiHandler *APIHandler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	// All API routes live under /api
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		// Core chatbot pipeline
		r.Post("/chat-semantic", apiHandler.ChatSemanticHandler)

		// Legacy glue endpoints; these propagate failures as HTTP errors
		r.Post("/chat", apiHandler.ChatHandler)
		r.Post("/fetch-section", apiHandler.FetchSectionHandler)
		r.Route("/notion", func(r chi.Router) {
			r.Post("/search-faq", apiHandler.SearchFAQHandler)
			r.Post("/company-info", apiHandler.CompanyInfoHandler)
			r.Get("/services", apiHandler.ServicesHandler)
		})

		// Observability
		r.Get("/interactions", apiHandler.InteractionsHandler)
	})

	return r
}

// RequestLogger logs one structured line per request.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
