package seeder

import (
	"regexp"
	"strings"
)

// TextProcessor normalizes text pulled from legal source pages
type TextProcessor struct {
	multiWhitespace *regexp.Regexp
	htmlTags        *regexp.Regexp
}

func NewTextProcessor() *TextProcessor {
	return &TextProcessor{
		multiWhitespace: regexp.MustCompile(`\s+`),
		htmlTags:        regexp.MustCompile(`<[^>]*>`),
	}
}

// CleanTitle strips markup and collapses whitespace in a scraped page title.
// Site suffixes like " | City of Lexington" are dropped.
func (tp *TextProcessor) CleanTitle(title string) string {
	title = tp.htmlTags.ReplaceAllString(title, "")
	title = tp.multiWhitespace.ReplaceAllString(title, " ")
	title = strings.TrimSpace(title)

	for _, sep := range []string{" | ", " - ", " — "} {
		if idx := strings.Index(title, sep); idx > 0 {
			title = title[:idx]
		}
	}
	return strings.TrimSpace(title)
}

// CleanAnswer normalizes an answer body: strips markup, collapses runs of
// whitespace and trims the result.
func (tp *TextProcessor) CleanAnswer(answer string) string {
	answer = tp.htmlTags.ReplaceAllString(answer, "")
	answer = tp.multiWhitespace.ReplaceAllString(answer, " ")
	return strings.TrimSpace(answer)
}
