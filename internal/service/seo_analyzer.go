package service

import (
	"bytes"
	"context"
	"net"
	"net/http"

	"seo_meta_analyzer/internal/domain/adaptors"
	"seo_meta_analyzer/internal/domain/models"
	"seo_meta_analyzer/internal/pkg/errors"
	"seo_meta_analyzer/internal/pkg/metrics"
	"seo_meta_analyzer/internal/pkg/requestid"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

type Analyzer struct {
	log       *log.Logger
	webClient adaptors.WebClient
	history   adaptors.History
	flights   singleflight.Group
}

func NewAnalyzer(log *log.Logger, webClient adaptors.WebClient, history adaptors.History) *Analyzer {
	return &Analyzer{
		log:       log,
		webClient: webClient,
		history:   history,
	}
}

// Evaluate runs every engine over meta. It does not touch the network or the
// history.
func Evaluate(meta models.PageMetadata) *models.AnalysisResult {
	return &models.AnalysisResult{
		Metadata:        meta,
		Report:          ComputeScore(meta),
		Recommendations: ComputeRecommendations(meta),
		Tags:            EvaluateTags(meta),
		Previews:        BuildPreviews(meta),
	}
}

// Analyze fetches pageURL, evaluates it and stores the result.
func (a *Analyzer) Analyze(ctx context.Context, pageURL string) (*models.AnalysisResult, error) {
	logger := a.log.WithContext(ctx).WithFields(log.Fields{
		`url`:        pageURL,
		`request_id`: requestid.FromContext(ctx),
	})
	logger.Debug(`analyze page started...`)

	meta, err := a.metadata(ctx, pageURL)
	if err != nil {
		a.fail(logger, err)
		return nil, err
	}

	evaluated := Evaluate(meta)
	evaluated.RequestedURL = pageURL
	result, err := a.history.Save(ctx, evaluated)
	if err != nil {
		err = errors.Wrap(err, `failed to save analysis`)
		a.fail(logger, err)
		return nil, err
	}

	a.record(result)
	logger.WithFields(log.Fields{
		`id`:       result.ID,
		`title`:    result.Metadata.Title,
		`score`:    result.Report.Score,
		`passed`:   result.Report.Passed,
		`warnings`: result.Report.Warnings,
		`errors`:   result.Report.Errors,
	}).Info(`analysis complete`)
	return result, nil
}

// Score evaluates caller supplied metadata without fetching or storing anything.
func (a *Analyzer) Score(ctx context.Context, meta models.PageMetadata) (*models.AnalysisResult, error) {
	logger := a.log.WithContext(ctx).WithFields(log.Fields{
		`url`:        meta.URL,
		`request_id`: requestid.FromContext(ctx),
	})

	if err := meta.Validate(); err != nil {
		a.fail(logger, err)
		return nil, err
	}

	result := Evaluate(meta)
	a.record(result)
	logger.WithField(`score`, result.Report.Score).Info(`metadata scored`)
	return result, nil
}

func (a *Analyzer) Get(ctx context.Context, id int64) (*models.AnalysisResult, error) {
	return a.history.Get(ctx, id)
}

// Latest returns the newest analysis requested for, or resolved to, pageURL.
func (a *Analyzer) Latest(ctx context.Context, pageURL string) (*models.AnalysisResult, error) {
	return a.history.GetByURL(ctx, pageURL)
}

func (a *Analyzer) Recent(ctx context.Context, limit int) ([]models.AnalysisSummary, error) {
	results, err := a.history.Recent(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, `failed to list recent analyses`)
	}

	summaries := make([]models.AnalysisSummary, 0, len(results))
	for _, r := range results {
		summaries = append(summaries, r.Summary())
	}
	return summaries, nil
}

// metadata fetches and extracts the page. Concurrent calls for the same URL
// share one download. The download is detached from the caller's
// cancellation so one caller leaving does not fail the others; the client
// timeout still bounds it.
func (a *Analyzer) metadata(ctx context.Context, pageURL string) (models.PageMetadata, error) {
	fetchCtx := context.WithoutCancel(ctx)
	ch := a.flights.DoChan(pageURL, func() (any, error) {
		return a.fetchMetadata(fetchCtx, pageURL)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			if ctx.Err() != nil {
				return models.PageMetadata{}, contextError(ctx)
			}
			return models.PageMetadata{}, res.Err
		}
		if res.Shared {
			a.log.WithField(`url`, pageURL).Debug(`page fetch shared with concurrent request`)
		}
		return res.Val.(models.PageMetadata), nil
	case <-ctx.Done():
		return models.PageMetadata{}, contextError(ctx)
	}
}

func contextError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return errors.E(errors.Canceled, `Analysis canceled.`, ctx.Err())
	}
	return errors.E(errors.Timeout, `Analysis timed out. The target URL may be slow to respond.`, ctx.Err())
}

func (a *Analyzer) fetchMetadata(ctx context.Context, pageURL string) (models.PageMetadata, error) {
	page, err := a.webClient.Fetch(ctx, pageURL)
	if err != nil {
		if isTimeout(err) {
			return models.PageMetadata{}, errors.E(errors.Timeout, `Analysis timed out. The target URL may be slow to respond.`, err)
		}
		var appErr *errors.AppError
		if errors.As(err, &appErr) {
			return models.PageMetadata{}, err
		}
		return models.PageMetadata{}, errors.E(errors.Unreachable, `The provided URL could not be reached. Check the address.`, err)
	}

	if page.StatusCode >= http.StatusBadRequest {
		return models.PageMetadata{}, &errors.AppError{
			Kind:           errors.Unreachable,
			UpstreamStatus: page.StatusCode,
			Message:        `The provided URL returned an error status.`,
		}
	}

	finalURL := page.FinalURL
	if finalURL == "" {
		finalURL = pageURL
	}
	return ExtractMetadata(finalURL, bytes.NewReader(page.Body))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func (a *Analyzer) fail(logger *log.Entry, err error) {
	kind := errors.KindOf(err)
	metrics.AnalysesTotal.WithLabelValues(kind.String()).Inc()

	fields := log.Fields{`kind`: kind.String()}
	var appErr *errors.AppError
	if errors.As(err, &appErr) && appErr.UpstreamStatus != 0 {
		fields[`target_status`] = appErr.UpstreamStatus
	}
	logger.WithError(err).WithFields(fields).Error(`analysis failed`)
}

func (a *Analyzer) record(result *models.AnalysisResult) {
	metrics.AnalysesTotal.WithLabelValues(`success`).Inc()
	metrics.AnalysisScore.Observe(float64(result.Report.Score))
	metrics.CheckResultsTotal.WithLabelValues(`passed`).Add(float64(result.Report.Passed))
	metrics.CheckResultsTotal.WithLabelValues(`warning`).Add(float64(result.Report.Warnings))
	metrics.CheckResultsTotal.WithLabelValues(`error`).Add(float64(result.Report.Errors))
	for _, r := range result.Recommendations {
		metrics.RecommendationsTotal.WithLabelValues(string(r.Type)).Inc()
	}
}
