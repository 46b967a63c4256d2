package http

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type HTTPServerConfig struct {
	Host     string
	Timeouts struct {
		Read         time.Duration
		ReadHeader   time.Duration
		Write        time.Duration
		Idle         time.Duration
		ShutdownWait time.Duration
	}
}

// NewHTTPServerConfig reads the API listener settings from the environment.
// config.env is loaded by the application config before this runs.
func NewHTTPServerConfig() (*HTTPServerConfig, error) {
	var errors []string
	cfg := &HTTPServerConfig{}

	cfg.Host = os.Getenv("HTTP_SERVER_HOST")
	if cfg.Host == "" {
		errors = append(errors, "HTTP_SERVER_HOST is required")
	}

	parseDuration := func(envVar string, dst *time.Duration) {
		value := os.Getenv(envVar)
		if value == "" {
			errors = append(errors, fmt.Sprintf("%s is required", envVar))
			return
		}
		duration, err := time.ParseDuration(value)
		if err != nil {
			errors = append(errors, fmt.Sprintf("%s: invalid duration format: %v", envVar, err))
			return
		}
		if duration <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive", envVar))
			return
		}
		*dst = duration
	}

	parseDuration("HTTP_APP_READ_TIMEOUT_DURATION", &cfg.Timeouts.Read)
	parseDuration("HTTP_APP_READ_HEADER_TIMEOUT_DURATION", &cfg.Timeouts.ReadHeader)
	parseDuration("HTTP_APP_WRITE_TIMEOUT_DURATION", &cfg.Timeouts.Write)
	parseDuration("HTTP_APP_IDLE_TIMEOUT_DURATION", &cfg.Timeouts.Idle)
	parseDuration("HTTP_APP_SHUTDOWN_TIMEOUT_DURATION", &cfg.Timeouts.ShutdownWait)

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return cfg, nil
}
