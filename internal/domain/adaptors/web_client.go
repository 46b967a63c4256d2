package adaptors

import (
	"context"

	"seo_meta_analyzer/internal/domain/models"
)

type WebClient interface {
	Fetch(ctx context.Context, url string) (*models.FetchedPage, error)
}
