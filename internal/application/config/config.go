package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"seo_meta_analyzer/internal/domain/adaptors"

	"github.com/joho/godotenv"
)

const (
	defaultPprofHost         = ":6060"
	defaultFetchTimeout      = 10 * time.Second
	defaultFetchMaxRedirects = 5
	defaultFetchMaxBodyBytes = 10 << 20
	defaultUserAgent         = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	defaultHistoryMaxEntries = 1000
	defaultRecentLimit       = 5
)

type AppConfig struct {
	LogLevel    string
	DebugMode   bool
	MetricsHost string
	PprofHost   string
	Fetch       FetchConfig
	History     HistoryConfig
}

// FetchConfig controls how pages are downloaded.
type FetchConfig struct {
	Timeout              time.Duration
	MaxRedirects         int
	MaxBodyBytes         int64
	UserAgent            string
	AllowPrivateNetworks bool
}

// HistoryConfig controls the in-memory analysis history.
type HistoryConfig struct {
	MaxEntries  int
	RecentLimit int
}

func NewAppConfig() (*AppConfig, error) {
	err := godotenv.Load(`config.env`)
	if err != nil {
		return nil, err
	}

	return fromEnv()
}

func fromEnv() (*AppConfig, error) {
	var errMsg []string

	cfg := AppConfig{}
	cfg.LogLevel = os.Getenv("APP_LOG_LEVEL")
	cfg.DebugMode = os.Getenv("APP_ENABLE_DEBUG") == "true"
	cfg.MetricsHost = os.Getenv("HTTP_APP_METRICS_HOST")
	cfg.PprofHost = getEnv("HTTP_APP_PPROF_HOST", defaultPprofHost)

	cfg.Fetch.UserAgent = getEnv("FETCH_USER_AGENT", defaultUserAgent)
	cfg.Fetch.AllowPrivateNetworks = os.Getenv("FETCH_ALLOW_PRIVATE_NETWORKS") == "true"

	var err error
	if cfg.Fetch.Timeout, err = durationEnv("FETCH_TIMEOUT_DURATION", defaultFetchTimeout); err != nil {
		errMsg = append(errMsg, err.Error())
	}
	if cfg.Fetch.MaxRedirects, err = intEnv("FETCH_MAX_REDIRECTS", defaultFetchMaxRedirects); err != nil {
		errMsg = append(errMsg, err.Error())
	}
	maxBody, err := intEnv("FETCH_MAX_BODY_BYTES", defaultFetchMaxBodyBytes)
	if err != nil {
		errMsg = append(errMsg, err.Error())
	}
	cfg.Fetch.MaxBodyBytes = int64(maxBody)
	if cfg.History.MaxEntries, err = intEnv("HISTORY_MAX_ENTRIES", defaultHistoryMaxEntries); err != nil {
		errMsg = append(errMsg, err.Error())
	}
	if cfg.History.RecentLimit, err = intEnv("HISTORY_RECENT_LIMIT", defaultRecentLimit); err != nil {
		errMsg = append(errMsg, err.Error())
	}

	errMsg = append(errMsg, validate(&cfg)...)
	if len(errMsg) != 0 {
		return nil, fmt.Errorf(`validation failed: %s`, strings.Join(errMsg, "\n"))
	}

	return &cfg, nil
}

func validate(cfg *AppConfig) []string {
	var errMsg []string
	if cfg.LogLevel == "" {
		errMsg = append(errMsg, `log level is empty`)
	} else if !adaptors.LogLevel(strings.ToLower(cfg.LogLevel)).Valid() {
		errMsg = append(errMsg, fmt.Sprintf(`log level %q is not supported`, cfg.LogLevel))
	}

	if cfg.MetricsHost == "" {
		errMsg = append(errMsg, `metrics host is empty`)
	}

	if cfg.Fetch.Timeout <= 0 {
		errMsg = append(errMsg, `fetch timeout must be positive`)
	}

	if cfg.Fetch.MaxRedirects < 0 {
		errMsg = append(errMsg, `fetch max redirects must not be negative`)
	}

	if cfg.Fetch.MaxBodyBytes <= 0 {
		errMsg = append(errMsg, `fetch max body bytes must be positive`)
	}

	if cfg.History.MaxEntries < 1 {
		errMsg = append(errMsg, `history max entries must be at least 1`)
	}

	if cfg.History.RecentLimit < 1 {
		errMsg = append(errMsg, `history recent limit must be at least 1`)
	}

	return errMsg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number: %w", key, err)
	}
	return v, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration format: %w", key, err)
	}
	return d, nil
}
