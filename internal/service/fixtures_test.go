package service

import (
	"strings"

	"seo_meta_analyzer/internal/domain/models"
)

func emptyMetadata() models.PageMetadata {
	return models.PageMetadata{URL: "https://example.com/"}
}

// idealMetadata has every tag present with optimal lengths.
func idealMetadata() models.PageMetadata {
	return models.PageMetadata{
		URL:   "https://example.com/",
		Title: strings.Repeat("t", 30),
		MetaTags: models.MetaTags{
			Description: &models.ContentTag{Content: strings.Repeat("d", 140)},
			Viewport:    &models.ContentTag{Content: "width=device-width, initial-scale=1"},
			Robots:      &models.ContentTag{Content: "index, follow"},
			Canonical:   &models.CanonicalTag{Href: "https://example.com/"},
		},
		SocialTags: models.SocialTags{
			OpenGraph: []models.OpenGraphTag{
				{Property: "og:title", Content: "Example Open Graph title"},
				{Property: "og:description", Content: "Example Open Graph description"},
				{Property: "og:image", Content: "https://example.com/og.png"},
			},
			Twitter: []models.TwitterTag{
				{Name: "twitter:title", Content: "Example Twitter title"},
				{Name: "twitter:description", Content: "Example Twitter description"},
				{Name: "twitter:image", Content: "https://example.com/tw.png"},
			},
		},
		LinkTags: models.LinkTags{
			Hreflang: []models.HreflangTag{
				{Hreflang: "en", Href: "https://example.com/"},
				{Hreflang: "de", Href: "https://example.com/de/"},
			},
		},
	}
}

func withTitle(m models.PageMetadata, title string) models.PageMetadata {
	m.Title = title
	return m
}

func withDescription(m models.PageMetadata, content string) models.PageMetadata {
	m.MetaTags.Description = &models.ContentTag{Content: content}
	return m
}
