package service

import (
	"seo_meta_analyzer/internal/domain/models"
)

// tally accumulates points and bucket counts while the rubric runs.
type tally struct {
	report models.ScoreReport
}

func (t *tally) pass(points int) {
	t.report.Score += points
	t.report.Passed++
}

func (t *tally) warn(points int) {
	t.report.Score += points
	t.report.Warnings++
}

func (t *tally) fail() {
	t.report.Errors++
}

// ComputeScore runs the fixed SEO rubric over meta. It never fails: absent
// fields fall into the missing branch of their check.
func ComputeScore(meta models.PageMetadata) models.ScoreReport {
	t := &tally{}

	switch {
	case !meta.HasTitle():
		t.fail()
	case inRange(charCount(meta.Title), titleMinLength, titleMaxLength):
		t.pass(titlePointsOptimal)
	default:
		t.warn(titlePointsPresent)
	}

	switch description := meta.MetaTags.Description; {
	case description == nil:
		t.fail()
	case inRange(charCount(description.Content), descriptionMinLength, descriptionMaxLength):
		t.pass(descriptionPointsOptimal)
	default:
		t.warn(descriptionPointsPresent)
	}

	// a missing canonical is only a warning, unlike a missing viewport
	if meta.MetaTags.Canonical != nil {
		t.pass(canonicalPoints)
	} else {
		t.warn(0)
	}

	if meta.MetaTags.Viewport != nil {
		t.pass(viewportPoints)
	} else {
		t.fail()
	}

	if len(meta.SocialTags.OpenGraph) > 0 {
		for _, property := range []string{ogTitle, ogDescription, ogImage} {
			if _, ok := meta.OpenGraph(property); ok {
				t.pass(socialTagPoints)
			} else {
				t.warn(0)
			}
		}
	} else {
		t.fail()
	}

	if len(meta.SocialTags.Twitter) > 0 {
		for _, name := range []string{twitterTitle, twitterDescription, twitterImage} {
			if _, ok := meta.Twitter(name); ok {
				t.pass(socialTagPoints)
			} else {
				t.warn(0)
			}
		}
	} else {
		t.fail()
	}

	if meta.MetaTags.Robots != nil {
		t.pass(robotsPoints)
	} else {
		t.warn(0)
	}

	if len(meta.LinkTags.Hreflang) > 0 {
		t.pass(hreflangPoints)
	} else {
		t.warn(0)
	}

	t.report.Score = min(100, max(0, t.report.Score))
	return t.report
}
