package adaptors

import (
	"context"

	"seo_meta_analyzer/internal/domain/models"
)

// History keeps past analyses.
type History interface {
	Save(ctx context.Context, result *models.AnalysisResult) (*models.AnalysisResult, error)
	Get(ctx context.Context, id int64) (*models.AnalysisResult, error)
	GetByURL(ctx context.Context, url string) (*models.AnalysisResult, error)
	Recent(ctx context.Context, limit int) ([]*models.AnalysisResult, error)
}
