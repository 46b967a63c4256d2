package service

import (
	"fmt"
	"strings"

	"seo_meta_analyzer/internal/domain/models"

	"golang.org/x/text/language"
)

const hreflangDefault = "x-default"

// EvaluateTags reports the state of every tag the rubric cares about, in a
// fixed order suitable for a tag table.
func EvaluateTags(meta models.PageMetadata) []models.TagStatus {
	statuses := []models.TagStatus{
		titleStatus(meta),
		descriptionStatus(meta),
		presenceStatus("viewport", meta.MetaTags.Viewport,
			"Missing viewport meta tag. This is important for mobile optimization."),
		canonicalStatus(meta),
		presenceStatus("robots", meta.MetaTags.Robots,
			"Missing robots meta tag. This helps control how search engines crawl and index your page."),
	}

	for _, property := range []string{ogTitle, ogDescription, ogImage} {
		content, ok := meta.OpenGraph(property)
		statuses = append(statuses, socialStatus(property, content, ok))
	}
	for _, name := range []string{twitterTitle, twitterDescription, twitterImage} {
		content, ok := meta.Twitter(name)
		statuses = append(statuses, socialStatus(name, content, ok))
	}

	return append(statuses, hreflangStatus(meta.LinkTags.Hreflang))
}

func titleStatus(meta models.PageMetadata) models.TagStatus {
	s := models.TagStatus{Tag: "title"}
	if !meta.HasTitle() {
		s.Status = models.TagMissing
		s.Message = "Missing title tag. Add a descriptive title between 50-60 characters."
		return s
	}
	s.Value = meta.Title
	s.Length = charCount(meta.Title)
	s.Status, s.Message = lengthStatus("Title", s.Length, titleMinLength, titleMaxLength)
	return s
}

func descriptionStatus(meta models.PageMetadata) models.TagStatus {
	s := models.TagStatus{Tag: "description"}
	if meta.MetaTags.Description == nil {
		s.Status = models.TagMissing
		s.Message = fmt.Sprintf("Missing meta description. Add a compelling description between %d-%d characters.", descriptionMinLength, descriptionMaxLength)
		return s
	}
	s.Value = meta.MetaTags.Description.Content
	s.Length = charCount(s.Value)
	s.Status, s.Message = lengthStatus("Description", s.Length, descriptionMinLength, descriptionMaxLength)
	return s
}

func lengthStatus(label string, length, lo, hi int) (models.TagState, string) {
	if inRange(length, lo, hi) {
		return models.TagOptimal, fmt.Sprintf("%s length (%d characters) is optimal.", label, length)
	}
	verdict := "too long"
	if length <= lo {
		verdict = "too short"
	}
	return models.TagNeedsImprovement, fmt.Sprintf("%s length (%d characters) is %s. Aim for %d-%d characters.", label, length, verdict, lo+1, hi-1)
}

func presenceStatus(tag string, content *models.ContentTag, missingMsg string) models.TagStatus {
	if content == nil {
		return models.TagStatus{Tag: tag, Status: models.TagMissing, Message: missingMsg}
	}
	return models.TagStatus{
		Tag:     tag,
		Status:  models.TagOptimal,
		Value:   content.Content,
		Length:  charCount(content.Content),
		Message: fmt.Sprintf("%s tag is properly implemented.", tag),
	}
}

func canonicalStatus(meta models.PageMetadata) models.TagStatus {
	if meta.MetaTags.Canonical == nil {
		return models.TagStatus{
			Tag:     "canonical",
			Status:  models.TagMissing,
			Message: "Missing canonical URL tag. This helps prevent duplicate content issues.",
		}
	}
	href := meta.MetaTags.Canonical.Href
	return models.TagStatus{
		Tag:     "canonical",
		Status:  models.TagOptimal,
		Value:   href,
		Length:  charCount(href),
		Message: "canonical tag is properly implemented.",
	}
}

func socialStatus(tag, content string, present bool) models.TagStatus {
	s := models.TagStatus{Tag: tag, Value: content, Length: charCount(content)}
	if !present {
		s.Status = models.TagMissing
		s.Message = fmt.Sprintf("Missing %s tag.", tag)
		return s
	}

	optimal := s.Length > socialTextMinLength
	if tag == ogImage || tag == twitterImage {
		optimal = strings.HasPrefix(content, "http")
	}
	if optimal {
		s.Status = models.TagOptimal
		s.Message = fmt.Sprintf("%s tag is properly implemented.", tag)
	} else {
		s.Status = models.TagNeedsImprovement
		s.Message = fmt.Sprintf("%s tag could be improved.", tag)
	}
	return s
}

func hreflangStatus(tags []models.HreflangTag) models.TagStatus {
	s := models.TagStatus{Tag: "hreflang", Length: len(tags)}
	if len(tags) == 0 {
		s.Status = models.TagMissing
		s.Message = "Missing hreflang tags. These are important if your site has multilingual content."
		return s
	}

	codes := make([]string, 0, len(tags))
	var invalid []string
	for _, tag := range tags {
		codes = append(codes, tag.Hreflang)
		if !validHreflang(tag.Hreflang) {
			invalid = append(invalid, tag.Hreflang)
		}
	}
	s.Value = strings.Join(codes, ", ")

	if len(invalid) > 0 {
		s.Status = models.TagNeedsImprovement
		s.Message = fmt.Sprintf("Invalid hreflang codes: %s.", strings.Join(invalid, ", "))
		return s
	}
	s.Status = models.TagOptimal
	s.Message = "hreflang tags are properly implemented."
	return s
}

func validHreflang(code string) bool {
	if strings.EqualFold(code, hreflangDefault) {
		return true
	}
	_, err := language.Parse(code)
	return err == nil
}
