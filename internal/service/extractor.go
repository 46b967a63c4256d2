package service

import (
	"io"
	"net/url"
	"strings"

	"seo_meta_analyzer/internal/domain/models"
	"seo_meta_analyzer/internal/pkg/errors"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var faviconRels = map[string]bool{
	"icon":             true,
	"shortcut icon":    true,
	"apple-touch-icon": true,
}

// ExtractMetadata parses the page markup and collects the tags the engines
// work on. pageURL must be absolute; relative link hrefs are resolved against it.
func ExtractMetadata(pageURL string, body io.Reader) (models.PageMetadata, error) {
	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		return models.PageMetadata{}, errors.E(errors.InvalidInput, `page url is not absolute`, err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return models.PageMetadata{}, errors.E(errors.ParsingFailed, `failed to parse html`, err)
	}

	meta := models.PageMetadata{
		URL:   pageURL,
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
		SocialTags: models.SocialTags{
			OpenGraph: []models.OpenGraphTag{},
			Twitter:   []models.TwitterTag{},
		},
		LinkTags: models.LinkTags{
			Hreflang: []models.HreflangTag{},
		},
		AllMetaTags: []map[string]string{},
		AllLinkTags: []map[string]string{},
	}

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		attrs := attributes(s.Nodes[0])
		meta.AllMetaTags = append(meta.AllMetaTags, attrs)
		collectMeta(&meta, attrs)
	})

	doc.Find("link").Each(func(_ int, s *goquery.Selection) {
		attrs := attributes(s.Nodes[0])
		meta.AllLinkTags = append(meta.AllLinkTags, attrs)
		collectLink(&meta, attrs, base)
	})

	if err := meta.Validate(); err != nil {
		return models.PageMetadata{}, err
	}
	return meta, nil
}

func collectMeta(meta *models.PageMetadata, attrs map[string]string) {
	content := attrs["content"]

	if property := attrs["property"]; strings.HasPrefix(property, models.OpenGraphPrefix) {
		meta.SocialTags.OpenGraph = append(meta.SocialTags.OpenGraph, models.OpenGraphTag{Property: property, Content: content})
	}

	name := attrs["name"]
	if strings.HasPrefix(name, models.TwitterPrefix) {
		meta.SocialTags.Twitter = append(meta.SocialTags.Twitter, models.TwitterTag{Name: name, Content: content})
		return
	}

	// first occurrence wins
	switch strings.ToLower(name) {
	case "description":
		if meta.MetaTags.Description == nil {
			meta.MetaTags.Description = &models.ContentTag{Content: content}
		}
	case "viewport":
		if meta.MetaTags.Viewport == nil {
			meta.MetaTags.Viewport = &models.ContentTag{Content: content}
		}
	case "robots":
		if meta.MetaTags.Robots == nil {
			meta.MetaTags.Robots = &models.ContentTag{Content: content}
		}
	}
}

func collectLink(meta *models.PageMetadata, attrs map[string]string, base *url.URL) {
	rel := strings.ToLower(strings.TrimSpace(attrs["rel"]))
	href := strings.TrimSpace(attrs["href"])

	switch {
	case rel == "canonical":
		if meta.MetaTags.Canonical == nil {
			meta.MetaTags.Canonical = &models.CanonicalTag{Href: resolve(base, href)}
		}
	case rel == "alternate":
		code := strings.TrimSpace(attrs["hreflang"])
		if code == "" || href == "" {
			return
		}
		meta.LinkTags.Hreflang = append(meta.LinkTags.Hreflang, models.HreflangTag{Hreflang: code, Href: resolve(base, href)})
	case faviconRels[rel]:
		if meta.LinkTags.Favicon == nil {
			meta.LinkTags.Favicon = &models.FaviconTag{Rel: rel, Href: resolve(base, href)}
		}
	}
}

// attributes copies the node's attributes; the first duplicate wins.
func attributes(n *html.Node) map[string]string {
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		key := strings.ToLower(a.Key)
		if _, ok := attrs[key]; ok {
			continue
		}
		attrs[key] = a.Val
	}
	return attrs
}

func resolve(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
