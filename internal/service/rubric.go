package service

import "unicode/utf8"

// Length bounds shared by scoring, recommendations and tag statuses.
// Both bounds are exclusive: a title of exactly 10 or 60 characters is not optimal.
const (
	titleMinLength       = 10
	titleMaxLength       = 60
	descriptionMinLength = 120
	descriptionMaxLength = 158

	// og/twitter title and description are considered descriptive past this length
	socialTextMinLength = 10
)

const (
	ogTitle            = "og:title"
	ogDescription      = "og:description"
	ogImage            = "og:image"
	ogSiteName         = "og:site_name"
	twitterCard        = "twitter:card"
	twitterTitle       = "twitter:title"
	twitterDescription = "twitter:description"
	twitterImage       = "twitter:image"
)

const (
	titlePointsOptimal       = 15
	titlePointsPresent       = 5
	descriptionPointsOptimal = 15
	descriptionPointsPresent = 5
	canonicalPoints          = 10
	viewportPoints           = 10
	socialTagPoints          = 5
	robotsPoints             = 10
	hreflangPoints           = 10
)

func charCount(s string) int {
	return utf8.RuneCountInString(s)
}

func inRange(length, lo, hi int) bool {
	return length > lo && length < hi
}
