package adaptors

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"seo_meta_analyzer/internal/application/config"
	"seo_meta_analyzer/internal/domain/models"
	"seo_meta_analyzer/internal/pkg/errors"
	"seo_meta_analyzer/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	errTooManyRedirects = errors.New("too many redirects")
	errBlockedRedirect  = errors.New("redirect to non-http(s) scheme blocked")
	errBodyTooLarge     = errors.New("response body exceeds limit")
)

type WebClient struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
	log          *log.Logger
}

func NewWebClient(cfg config.FetchConfig, log *log.Logger) *WebClient {
	dialer := &net.Dialer{
		Timeout:   cfg.Timeout,
		KeepAlive: 30 * time.Second,
	}
	if !cfg.AllowPrivateNetworks {
		dialer.Control = blockPrivateAddresses
	}

	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	rTripper := promhttp.InstrumentRoundTripperDuration(
		metrics.HTTPClientRequestDuration,
		promhttp.InstrumentRoundTripperCounter(metrics.HTTPClientRequestsTotal, transport))

	return &WebClient{
		client: &http.Client{
			Timeout:       cfg.Timeout,
			Transport:     rTripper,
			CheckRedirect: redirectPolicy(cfg.MaxRedirects),
		},
		userAgent:    cfg.UserAgent,
		maxBodyBytes: cfg.MaxBodyBytes,
		log:          log,
	}
}

func redirectPolicy(maxRedirects int) func(req *http.Request, via []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) > maxRedirects {
			return errors.Wrap(errTooManyRedirects, fmt.Sprintf(`stopped after %d`, maxRedirects))
		}
		if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
			return errors.Wrap(errBlockedRedirect, req.URL.Scheme)
		}
		return nil
	}
}

// Fetch downloads the page at url. Non 2xx statuses are not errors here, the
// caller decides what to do with them.
func (w *WebClient) Fetch(ctx context.Context, url string) (*models.FetchedPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		w.log.WithError(err).Error(`failed to create request`)
		return nil, errors.Wrap(err, `failed to create request`)
	}

	req.Header.Set("User-Agent", w.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := w.client.Do(req)
	if err != nil {
		metrics.HTTPClientErrorsTotal.WithLabelValues(http.MethodGet, "0").Inc()
		w.log.WithError(err).WithField(`url`, url).Error(`failed to fetch page`)
		return nil, errors.Wrap(err, `failed to fetch page`)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		metrics.HTTPClientErrorsTotal.WithLabelValues(http.MethodGet, strconv.Itoa(resp.StatusCode)).Inc()
	}

	// read one byte past the limit so an oversized body can be told apart
	bodyByte, err := io.ReadAll(io.LimitReader(resp.Body, w.maxBodyBytes+1))
	if err != nil {
		w.log.Errorf(`failed to read response body. error: %v`, err)
		return nil, errors.Wrap(err, `failed to read response body`)
	}
	if int64(len(bodyByte)) > w.maxBodyBytes {
		w.log.WithField(`url`, url).Warnf(`response body exceeds %d bytes`, w.maxBodyBytes)
		return nil, errors.E(errors.Unreachable, fmt.Sprintf(`The page exceeds the %d byte size limit for analysis.`, w.maxBodyBytes), errBodyTooLarge)
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &models.FetchedPage{
		Body:        bodyByte,
		StatusCode:  resp.StatusCode,
		FinalURL:    finalURL,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
