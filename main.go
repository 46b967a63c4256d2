package main

import (
	"context"
	_ "net/http/pprof"
	"strings"
	"time"

	"seo_meta_analyzer/internal/application/config"
	"seo_meta_analyzer/internal/http"

	log "github.com/sirupsen/logrus"
)

func main() {
	logInstance := log.New()
	logInstance.SetFormatter(&log.JSONFormatter{
		TimestampFormat:   time.RFC3339,
		DisableHTMLEscape: true,
	})

	cfg, err := config.NewAppConfig()
	if err != nil {
		logInstance.WithError(err).Fatal(`Failed to load config`)
		return
	}

	logLevel, err := log.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		logInstance.WithError(err).Fatal(`Failed to parse log level`)
		return
	}
	if cfg.DebugMode {
		logLevel = log.DebugLevel
	}
	logInstance.SetLevel(logLevel)

	ctx := context.WithoutCancel(context.Background())

	http.Init(ctx, logInstance, cfg)
}
