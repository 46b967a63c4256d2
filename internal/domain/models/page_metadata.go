package models

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"seo_meta_analyzer/internal/pkg/errors"
)

const (
	OpenGraphPrefix = "og:"
	TwitterPrefix   = "twitter:"
)

// PageMetadata is the SEO relevant data pulled out of a single page.
// It is built once per analysis and never mutated afterwards.
type PageMetadata struct {
	URL         string              `json:"url"`
	Title       string              `json:"title,omitempty"`
	MetaTags    MetaTags            `json:"metaTags"`
	SocialTags  SocialTags          `json:"socialTags"`
	LinkTags    LinkTags            `json:"linkTags"`
	AllMetaTags []map[string]string `json:"allMetaTags,omitempty"`
	AllLinkTags []map[string]string `json:"allLinkTags,omitempty"`
}

// MetaTags holds the individual tags the engines look at. nil means absent.
type MetaTags struct {
	Description *ContentTag   `json:"description,omitempty"`
	Viewport    *ContentTag   `json:"viewport,omitempty"`
	Robots      *ContentTag   `json:"robots,omitempty"`
	Canonical   *CanonicalTag `json:"canonical,omitempty"`
}

type ContentTag struct {
	Content string `json:"content"`
}

type CanonicalTag struct {
	Href string `json:"href"`
}

type SocialTags struct {
	OpenGraph []OpenGraphTag `json:"openGraph"`
	Twitter   []TwitterTag   `json:"twitter"`
}

type OpenGraphTag struct {
	Property string `json:"property"`
	Content  string `json:"content"`
}

type TwitterTag struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type LinkTags struct {
	Hreflang []HreflangTag `json:"hreflang"`
	Favicon  *FaviconTag   `json:"favicon,omitempty"`
}

type HreflangTag struct {
	Hreflang string `json:"hreflang"`
	Href     string `json:"href"`
}

type FaviconTag struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// HasTitle reports whether the page has a non-empty title.
func (m PageMetadata) HasTitle() bool {
	return m.Title != ""
}

// OpenGraph returns the content of the first og tag with the given property.
func (m PageMetadata) OpenGraph(property string) (string, bool) {
	for _, tag := range m.SocialTags.OpenGraph {
		if tag.Property == property {
			return tag.Content, true
		}
	}
	return "", false
}

// Twitter returns the content of the first twitter tag with the given name.
func (m PageMetadata) Twitter(name string) (string, bool) {
	for _, tag := range m.SocialTags.Twitter {
		if tag.Name == name {
			return tag.Content, true
		}
	}
	return "", false
}

// Validate checks the invariants every PageMetadata must satisfy before it is
// handed to the scoring and recommendation engines.
func (m PageMetadata) Validate() error {
	var errMsg []string
	if strings.TrimSpace(m.URL) == "" {
		errMsg = append(errMsg, `url is empty`)
	}

	for i, tag := range m.SocialTags.OpenGraph {
		if !strings.HasPrefix(tag.Property, OpenGraphPrefix) {
			errMsg = append(errMsg, fmt.Sprintf(`openGraph[%d]: property %q does not start with %q`, i, tag.Property, OpenGraphPrefix))
		}
	}

	for i, tag := range m.SocialTags.Twitter {
		if !strings.HasPrefix(tag.Name, TwitterPrefix) {
			errMsg = append(errMsg, fmt.Sprintf(`twitter[%d]: name %q does not start with %q`, i, tag.Name, TwitterPrefix))
		}
	}

	for i, tag := range m.LinkTags.Hreflang {
		if tag.Hreflang == "" || tag.Href == "" {
			errMsg = append(errMsg, fmt.Sprintf(`hreflang[%d]: both hreflang and href are required`, i))
		}
	}

	if len(errMsg) != 0 {
		return errors.E(errors.InvalidInput, `invalid page metadata: `+strings.Join(errMsg, "; "), nil)
	}
	return nil
}

// Clone returns a deep copy of m.
func (m PageMetadata) Clone() PageMetadata {
	out := m
	out.MetaTags = MetaTags{
		Description: clonePtr(m.MetaTags.Description),
		Viewport:    clonePtr(m.MetaTags.Viewport),
		Robots:      clonePtr(m.MetaTags.Robots),
		Canonical:   clonePtr(m.MetaTags.Canonical),
	}
	out.SocialTags.OpenGraph = slices.Clone(m.SocialTags.OpenGraph)
	out.SocialTags.Twitter = slices.Clone(m.SocialTags.Twitter)
	out.LinkTags.Hreflang = slices.Clone(m.LinkTags.Hreflang)
	out.LinkTags.Favicon = clonePtr(m.LinkTags.Favicon)
	out.AllMetaTags = cloneAttributes(m.AllMetaTags)
	out.AllLinkTags = cloneAttributes(m.AllLinkTags)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneAttributes(in []map[string]string) []map[string]string {
	if in == nil {
		return nil
	}
	out := make([]map[string]string, len(in))
	for i, attrs := range in {
		out[i] = maps.Clone(attrs)
	}
	return out
}
