package models

import (
	"slices"
	"time"
)

// FetchedPage is the raw outcome of downloading a page.
type FetchedPage struct {
	Body        []byte
	StatusCode  int
	FinalURL    string
	ContentType string
}

// AnalysisResult is everything produced for one analyzed page.
type AnalysisResult struct {
	ID              int64            `json:"id"`
	CreatedAt       time.Time        `json:"createdAt"`
	RequestedURL    string           `json:"requestedUrl,omitempty"`
	Metadata        PageMetadata     `json:"metadata"`
	Report          ScoreReport      `json:"report"`
	Recommendations []Recommendation `json:"recommendations"`
	Tags            []TagStatus      `json:"tags"`
	Previews        Previews         `json:"previews"`
}

// AnalysisSummary is the short form listed by the recent analyses endpoint.
type AnalysisSummary struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Score       int       `json:"score"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Clone returns a deep copy of r, so stored results never share slices with callers.
func (r *AnalysisResult) Clone() *AnalysisResult {
	out := *r
	out.Metadata = r.Metadata.Clone()
	out.Recommendations = slices.Clone(r.Recommendations)
	out.Tags = slices.Clone(r.Tags)
	return &out
}

// Summary condenses the result for listings.
func (r *AnalysisResult) Summary() AnalysisSummary {
	s := AnalysisSummary{
		ID:        r.ID,
		URL:       r.Metadata.URL,
		Title:     r.Metadata.Title,
		Score:     r.Report.Score,
		CreatedAt: r.CreatedAt,
	}
	if r.Metadata.MetaTags.Description != nil {
		s.Description = r.Metadata.MetaTags.Description.Content
	}
	return s
}
