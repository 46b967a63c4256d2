package http

import (
	"context"

	"seo_meta_analyzer/internal/http/handlers"
	"seo_meta_analyzer/internal/http/middleware"

	"github.com/go-chi/chi/v5"
)

func initRoutes(_ context.Context, r *Router) {
	r.httpRouter.Use(middleware.MetricsMiddleware)
	r.httpRouter.Use(middleware.RequestIDLoggerMiddleware(r.log))

	history := handlers.NewHistoryHandler(r.analyzer, r.recentLimit, r.log)

	r.httpRouter.Get("/ready", handlers.NewReadyHandler().Handle)
	r.httpRouter.Route("/api", func(api chi.Router) {
		api.Post("/analyze", handlers.NewAnalyzeHandler(r.analyzer, r.log).Handle)
		api.Post("/score", handlers.NewScoreHandler(r.analyzer, r.log).Handle)
		api.Get("/recent", history.Recent)
		api.Get("/analyses", history.Latest)
		api.Get("/analyses/{id}", history.Get)
	})
}
