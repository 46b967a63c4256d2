package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"seo_meta_analyzer/internal/adaptors"
	"seo_meta_analyzer/internal/application/config"
	"seo_meta_analyzer/internal/service"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

type Router struct {
	httpRouter  *chi.Mux
	analyzer    *service.Analyzer
	recentLimit int
	log         *log.Logger
}

func NewRouter(ctx context.Context, log *log.Logger, analyzer *service.Analyzer, recentLimit int) *Router {
	router := &Router{
		httpRouter:  chi.NewRouter(),
		analyzer:    analyzer,
		recentLimit: recentLimit,
		log:         log,
	}
	initRoutes(ctx, router)
	return router
}

func Init(ctx context.Context, log *log.Logger, appCfg *config.AppConfig) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	cfg, err := NewHTTPServerConfig()
	if err != nil {
		log.Fatalf(`Failed to load config: %v`, err)
	}

	webClient := adaptors.NewWebClient(appCfg.Fetch, log)
	history := adaptors.NewMemoryHistory(appCfg.History.MaxEntries, log)
	analyzer := service.NewAnalyzer(log, webClient, history)
	router := NewRouter(ctx, log, analyzer, appCfg.History.RecentLimit)

	metricsServer := NewMetricsServer(appCfg.MetricsHost, cfg.Timeouts.ShutdownWait, log)
	go serve(log, `metrics`, metricsServer.Start)

	httpServer := NewHttpServer(ctx, cfg, router.httpRouter, log)
	go serve(log, `http`, httpServer.Start)

	// pprof handlers live on http.DefaultServeMux
	pprofServer := NewPprofServer(appCfg.PprofHost, cfg.Timeouts.ShutdownWait, log)
	go serve(log, `pprof`, pprofServer.Start)

	<-sigs
	if err := httpServer.Stop(); err != nil {
		log.WithError(err).Error(`http server shutdown failed`)
	}

	if err := pprofServer.Stop(); err != nil {
		log.WithError(err).Error(`pprof server shutdown failed`)
	}

	if err := metricsServer.Stop(); err != nil {
		log.WithError(err).Error(`metrics server shutdown failed`)
	}
}

func serve(log *log.Logger, name string, start func() error) {
	if err := start(); err != nil {
		log.WithError(err).WithField(`server`, name).Fatal(`server stopped unexpectedly`)
	}
}
