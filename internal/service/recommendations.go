package service

import (
	"fmt"
	"html"

	"seo_meta_analyzer/internal/domain/models"
)

const (
	learnMoreTitle       = "https://moz.com/learn/seo/title-tag"
	learnMoreDescription = "https://moz.com/learn/seo/meta-description"
	learnMoreViewport    = "https://developer.mozilla.org/en-US/docs/Web/HTML/Viewport_meta_tag"
	learnMoreCanonical   = "https://moz.com/learn/seo/canonicalization"
	learnMoreOpenGraph   = "https://ogp.me/"
	learnMoreTwitter     = "https://developer.twitter.com/en/docs/twitter-for-websites/cards/overview/abouts-cards"
	learnMoreRobots      = "https://developers.google.com/search/docs/advanced/robots/robots_meta_tag"
	learnMoreHreflang    = "https://developers.google.com/search/docs/specialty/international/localized-versions"
)

// ComputeRecommendations lists what to fix on the page, in evaluation order.
// When nothing needs fixing it returns a single success entry.
func ComputeRecommendations(meta models.PageMetadata) []models.Recommendation {
	var recs []models.Recommendation
	pageURL := html.EscapeString(meta.URL)

	if !meta.HasTitle() {
		recs = append(recs, models.Recommendation{
			Type:         models.RecommendationError,
			Title:        "Add Title Tag",
			Description:  "Missing page title. Add a descriptive title tag between 50-60 characters.",
			Code:         "<title>Primary Keyword - Secondary Keyword | Brand Name</title>",
			Priority:     models.PriorityHigh,
			LearnMoreURL: learnMoreTitle,
		})
	} else if n := charCount(meta.Title); n < titleMinLength {
		recs = append(recs, models.Recommendation{
			Type:         models.RecommendationWarning,
			Title:        "Improve Title Tag",
			Description:  fmt.Sprintf("Your title is too short (%d characters). Aim for 50-60 characters.", n),
			Priority:     models.PriorityMedium,
			LearnMoreURL: learnMoreTitle,
		})
	} else if n > titleMaxLength {
		recs = append(recs, models.Recommendation{
			Type:         models.RecommendationWarning,
			Title:        "Shorten Title Tag",
			Description:  fmt.Sprintf("Your title is too long (%d characters). Keep it under %d characters to avoid truncation in search results.", n, titleMaxLength),
			Priority:     models.PriorityMedium,
			LearnMoreURL: learnMoreTitle,
		})
	}

	if meta.MetaTags.Description == nil {
		recs = append(recs, models.Recommendation{
			Type:         models.RecommendationError,
			Title:        "Add Meta Description",
			Description:  fmt.Sprintf("Missing meta description. Add a compelling description between %d-%d characters.", descriptionMinLength, descriptionMaxLength),
			Code:         `<meta name="description" content="A concise summary of the page content.">`,
			Priority:     models.PriorityHigh,
			LearnMoreURL: learnMoreDescription,
		})
	} else if n := charCount(meta.MetaTags.Description.Content); n < descriptionMinLength {
		recs = append(recs, models.Recommendation{
			Type:         models.RecommendationWarning,
			Title:        "Improve Meta Description",
			Description:  fmt.Sprintf("Your meta description is too short (%d characters). Aim for %d-%d characters to improve CTR.", n, descriptionMinLength, descriptionMaxLength),
			Priority:     models.PriorityMedium,
			LearnMoreURL: learnMoreDescription,
		})
	} else if n > descriptionMaxLength {
		recs = append(recs, models.Recommendation{
			Type:         models.RecommendationWarning,
			Title:        "Shorten Meta Description",
			Description:  fmt.Sprintf("Your meta description is too long (%d characters). Keep it under %d characters to avoid truncation in search results.", n, descriptionMaxLength),
			Priority:     models.PriorityMedium,
			LearnMoreURL: learnMoreDescription,
		})
	}

	if meta.MetaTags.Viewport == nil {
		recs = append(recs, models.Recommendation{
			Type:         models.RecommendationError,
			Title:        "Add Viewport Meta Tag",
			Description:  "Missing viewport meta tag affects mobile optimization and search ranking.",
			Code:         `<meta name="viewport" content="width=device-width, initial-scale=1">`,
			Priority:     models.PriorityHigh,
			LearnMoreURL: learnMoreViewport,
		})
	}

	if meta.MetaTags.Canonical == nil {
		recs = append(recs, models.Recommendation{
			Type:         models.RecommendationWarning,
			Title:        "Add Canonical URL Tag",
			Description:  "Missing canonical URL tag. This helps prevent duplicate content issues.",
			Code:         fmt.Sprintf(`<link rel="canonical" href="%s">`, pageURL),
			Priority:     models.PriorityMedium,
			LearnMoreURL: learnMoreCanonical,
		})
	}

	if len(meta.SocialTags.OpenGraph) == 0 {
		recs = append(recs, models.Recommendation{
			Type:         models.RecommendationError,
			Title:        "Add Open Graph Tags",
			Description:  "Missing Open Graph tags. These improve how your content appears when shared on Facebook and other platforms.",
			Code:         openGraphSnippet(pageURL),
			Priority:     models.PriorityHigh,
			LearnMoreURL: learnMoreOpenGraph,
		})
	} else if !hasAllOpenGraph(meta) {
		recs = append(recs, models.Recommendation{
			Type:         models.RecommendationWarning,
			Title:        "Complete Open Graph Tags",
			Description:  "Some Open Graph tags are missing. Ensure you have og:title, og:description, and og:image for better social sharing.",
			Code:         openGraphSnippet(pageURL),
			Priority:     models.PriorityMedium,
			LearnMoreURL: learnMoreOpenGraph,
		})
	}

	// twitter absence is a warning here even though scoring counts it as an error
	if len(meta.SocialTags.Twitter) == 0 {
		recs = append(recs, models.Recommendation{
			Type:         models.RecommendationWarning,
			Title:        "Add Twitter Card Tags",
			Description:  "Missing Twitter Card tags. These improve how your content appears when shared on Twitter.",
			Code:         twitterSnippet(),
			Priority:     models.PriorityMedium,
			LearnMoreURL: learnMoreTwitter,
		})
	}

	if meta.MetaTags.Robots == nil {
		recs = append(recs, models.Recommendation{
			Type:         models.RecommendationWarning,
			Title:        "Add Robots Meta Tag",
			Description:  "Missing robots meta tag. This helps control how search engines crawl and index your page.",
			Code:         `<meta name="robots" content="index, follow">`,
			Priority:     models.PriorityMedium,
			LearnMoreURL: learnMoreRobots,
		})
	}

	if len(meta.LinkTags.Hreflang) == 0 {
		recs = append(recs, models.Recommendation{
			Type:         models.RecommendationWarning,
			Title:        "Consider Adding Hreflang Tags",
			Description:  "If your site serves different languages, add hreflang tags to help search engines serve the correct version.",
			Code:         fmt.Sprintf(`<link rel="alternate" hreflang="en" href="%s">`, pageURL),
			Priority:     models.PriorityLow,
			LearnMoreURL: learnMoreHreflang,
		})
	}

	if len(recs) == 0 {
		recs = append(recs, models.Recommendation{
			Type:        models.RecommendationSuccess,
			Title:       "Great SEO Implementation",
			Description: "Your page has all the essential SEO tags properly implemented.",
		})
	}

	return recs
}

func hasAllOpenGraph(meta models.PageMetadata) bool {
	for _, property := range []string{ogTitle, ogDescription, ogImage} {
		if _, ok := meta.OpenGraph(property); !ok {
			return false
		}
	}
	return true
}

func openGraphSnippet(pageURL string) string {
	return fmt.Sprintf(`<meta property="og:title" content="Page Title">
<meta property="og:description" content="Page description">
<meta property="og:image" content="https://example.com/image.jpg">
<meta property="og:url" content="%s">`, pageURL)
}

func twitterSnippet() string {
	return `<meta name="twitter:card" content="summary_large_image">
<meta name="twitter:title" content="Page Title">
<meta name="twitter:description" content="Page description">
<meta name="twitter:image" content="https://example.com/image.jpg">`
}
