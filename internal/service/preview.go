package service

import (
	"html"
	"net/url"
	"strings"

	"seo_meta_analyzer/internal/domain/models"

	"github.com/microcosm-cc/bluemonday"
)

const (
	searchTitleLimit        = 60
	searchDescriptionLimit  = 160
	facebookDescLimit       = 100
	twitterDescriptionLimit = 140
	defaultTwitterCard      = "summary"
	noDescription           = "No description available"
)

// textPolicy strips every element, leaving plain text.
var textPolicy = bluemonday.StrictPolicy()

// BuildPreviews produces the text shown by a search result and social cards.
func BuildPreviews(meta models.PageMetadata) models.Previews {
	title := plainText(meta.Title)
	if title == "" {
		title = meta.URL
	}
	description := ""
	if meta.MetaTags.Description != nil {
		description = plainText(meta.MetaTags.Description.Content)
	}

	ogTitleText := firstNonEmpty(openGraphText(meta, ogTitle), title)
	ogDescText := firstNonEmpty(openGraphText(meta, ogDescription), description)
	ogImageURL, _ := meta.OpenGraph(ogImage)

	return models.Previews{
		Search: models.SearchPreview{
			Title:       truncate(title, searchTitleLimit),
			URL:         displayURL(meta.URL),
			Description: orPlaceholder(truncate(description, searchDescriptionLimit)),
		},
		Facebook: models.FacebookPreview{
			Title:       ogTitleText,
			Description: orPlaceholder(truncate(ogDescText, facebookDescLimit)),
			Image:       strings.TrimSpace(ogImageURL),
			SiteName:    firstNonEmpty(openGraphText(meta, ogSiteName), hostOf(meta.URL)),
		},
		Twitter: models.TwitterPreview{
			Card:        firstNonEmpty(twitterText(meta, twitterCard), defaultTwitterCard),
			Title:       firstNonEmpty(twitterText(meta, twitterTitle), ogTitleText),
			Description: orPlaceholder(truncate(firstNonEmpty(twitterText(meta, twitterDescription), ogDescText), twitterDescriptionLimit)),
			Image:       firstNonEmpty(twitterText(meta, twitterImage), strings.TrimSpace(ogImageURL)),
		},
	}
}

// truncate shortens s to at most n characters, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// plainText drops markup and entities from untrusted tag content.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

func openGraphText(meta models.PageMetadata, property string) string {
	content, _ := meta.OpenGraph(property)
	return plainText(content)
}

func twitterText(meta models.PageMetadata, name string) string {
	content, _ := meta.Twitter(name)
	return plainText(content)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func orPlaceholder(s string) string {
	if s == "" {
		return noDescription
	}
	return s
}

// displayURL renders a URL the way search results show it: host and path,
// no scheme, query or trailing slash.
func displayURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return strings.TrimSuffix(u.Host+u.EscapedPath(), "/")
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
