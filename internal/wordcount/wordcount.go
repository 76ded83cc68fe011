// Package wordcount counts words in markdown text, excluding markup syntax.
package wordcount

import (
	"regexp"
	"strings"
)

// Each stage strips one class of markdown construct. Order matters: later
// stages operate on text already stripped of earlier constructs, e.g. the
// inline-link stage runs before the image stage and the emphasis stage runs
// last, on text with no remaining structural markers.
var (
	wikilinkRe   = regexp.MustCompile(`\[\[([^\]|]+)(?:\|[^\]]+)?\]\]`)
	fenceLineRe  = regexp.MustCompile("(?m)^```[^\n]*$")
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	inlineLinkRe = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	imageRe      = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	bulletRe     = regexp.MustCompile(`(?m)^[-*+]\s+`)
	orderedRe    = regexp.MustCompile(`(?m)^\d+\.\s+`)
	emphasisRe   = regexp.MustCompile(`[*_~]`)
)

// Count returns the number of whitespace-delimited words in markdown text
// after stripping syntax. Wikilinks are removed entirely (they are
// navigation, not content); fenced code content is kept but the fence marker
// lines are not; link syntax keeps only its display text.
func Count(text string) int {
	return len(strings.Fields(clean(text)))
}

// clean applies the strip pipeline in its fixed order.
func clean(text string) string {
	text = wikilinkRe.ReplaceAllString(text, "")
	text = fenceLineRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "`", "")
	text = htmlTagRe.ReplaceAllString(text, "")
	text = inlineLinkRe.ReplaceAllString(text, "$1")
	text = imageRe.ReplaceAllString(text, "")
	text = headingRe.ReplaceAllString(text, "")
	text = bulletRe.ReplaceAllString(text, "")
	text = orderedRe.ReplaceAllString(text, "")
	text = emphasisRe.ReplaceAllString(text, "")
	return text
}
