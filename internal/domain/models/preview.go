package models

// Previews is the text a search result and social cards would show.
type Previews struct {
	Search   SearchPreview   `json:"search"`
	Facebook FacebookPreview `json:"facebook"`
	Twitter  TwitterPreview  `json:"twitter"`
}

type SearchPreview struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type FacebookPreview struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	SiteName    string `json:"siteName"`
}

type TwitterPreview struct {
	Card        string `json:"card"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}
