package models

// ScoreReport is the outcome of the scoring rubric for one page.
type ScoreReport struct {
	Score    int `json:"score"`
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

type RecommendationType string

const (
	RecommendationSuccess RecommendationType = "success"
	RecommendationWarning RecommendationType = "warning"
	RecommendationError   RecommendationType = "error"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation is an actionable fix for the analyzed page.
type Recommendation struct {
	Type         RecommendationType `json:"type"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Code         string             `json:"code,omitempty"`
	Priority     Priority           `json:"priority,omitempty"`
	LearnMoreURL string             `json:"learnMoreUrl,omitempty"`
}

type TagState string

const (
	TagOptimal          TagState = "optimal"
	TagNeedsImprovement TagState = "needs_improvement"
	TagMissing          TagState = "missing"
)

// TagStatus describes how a single tag measures up.
type TagStatus struct {
	Tag     string   `json:"tag"`
	Status  TagState `json:"status"`
	Value   string   `json:"value,omitempty"`
	Length  int      `json:"length"`
	Message string   `json:"message"`
}
