package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"seo_meta_analyzer/internal/pkg/errors"
	"seo_meta_analyzer/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// AuxServer is a side listener (metrics or pprof) next to the API server.
type AuxServer struct {
	name    string
	timeout time.Duration
	server  *http.Server
	log     *log.Logger
}

func NewMetricsServer(host string, timeout time.Duration, log *log.Logger) *AuxServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.MetricsRegister(), promhttp.HandlerOpts{}))
	return newAuxServer(`metrics`, host, mux, timeout, log)
}

// NewPprofServer serves http.DefaultServeMux, where net/http/pprof registers.
func NewPprofServer(host string, timeout time.Duration, log *log.Logger) *AuxServer {
	return newAuxServer(`pprof`, host, nil, timeout, log)
}

func newAuxServer(name, host string, handler http.Handler, timeout time.Duration, log *log.Logger) *AuxServer {
	return &AuxServer{
		name:    name,
		timeout: timeout,
		server: &http.Server{
			Addr:              host,
			Handler:           handler,
			ReadHeaderTimeout: timeout,
		},
		log: log,
	}
}

func (s *AuxServer) Start() error {
	s.log.WithField(`server`, s.name).Info("server starting on ", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *AuxServer) Stop() error {
	if s.server == nil {
		return fmt.Errorf("%s server is not initialized", s.name)
	}
	s.log.WithField(`server`, s.name).Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, fmt.Sprintf(`failed to shutdown %s server`, s.name))
	}

	s.log.WithField(`server`, s.name).Info("server exiting")
	return nil
}
