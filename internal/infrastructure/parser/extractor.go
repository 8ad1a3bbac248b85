package parser

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/3469335/referent-n/internal/domain"
)

// Real-world articles share no schema, so every field runs through an
// ordered cascade of selectors and stops at the first plausible hit. Each
// tier trades precision for recall; the length thresholds keep an
// empty-but-plausible container from beating a worse-but-nonempty fallback.

const (
	untitledFallback = "Untitled Article"

	// Paragraphs at or below this length are captions, bylines, noise.
	minParagraphRunes = 20
	// A container candidate must exceed this to win outright.
	minContainerRunes = 100
	// The whole-document pass is accepted from this length on.
	minFallbackRunes = 50
	// Cap on qualifying paragraphs in the whole-document pass.
	maxFallbackParagraphs = 20
	// Hard cap for the flattened raw-text dump of last resort.
	maxRawDumpRunes = 5000
)

var titleSelectors = []string{
	"article h1",
	`[role="article"] h1`,
	".article-title",
	".post-title",
	"h1",
	"title",
	`meta[property="og:title"]`,
	`meta[name="twitter:title"]`,
}

var dateSelectors = []string{
	"time[datetime]",
	"time",
	`[itemprop="datePublished"]`,
	`meta[property="article:published_time"]`,
	`meta[name="publish-date"]`,
	".published-date",
	".post-date",
}

var contentSelectors = []string{
	"article",
	`[role="article"]`,
	".article-content",
	".post-content",
	".entry-content",
	"main article",
	`[itemprop="articleBody"]`,
}

const (
	// Stripped inside a candidate container. header/footer stay here: some
	// sites nest the real content under them.
	containerNoise = "script, style, nav, aside, .advertisement, .ads, .social-share, .comments"
	// The whole-document pass also drops header/footer.
	documentNoise = containerNoise + ", header, footer"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"02.01.2006",
	"01/02/2006",
}

var newlineRuns = regexp.MustCompile(`\n{3,}`)

// Extract parses raw HTML into an Article. Extraction quality is never an
// error: degraded results fall through the cascade down to a truncated
// whole-page text dump. Only structurally unparsable markup fails.
func Extract(rawHTML string) (domain.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return domain.Article{}, domain.WrapError(domain.KindParseError, err, "parse document")
	}

	return domain.Article{
		Title:       extractTitle(doc),
		PublishedAt: extractDate(doc),
		Body:        extractBody(doc),
	}, nil
}

func extractTitle(doc *goquery.Document) string {
	for _, selector := range titleSelectors {
		if strings.HasPrefix(selector, "meta") {
			if content, ok := doc.Find(selector).Attr("content"); ok {
				if title := strings.TrimSpace(content); title != "" {
					return title
				}
			}
			continue
		}

		element := doc.Find(selector).First()
		if element.Length() == 0 {
			continue
		}
		if title := strings.TrimSpace(element.Text()); title != "" {
			return title
		}
	}
	return untitledFallback
}

// extractDate walks the date cascade; an unparsable candidate is treated as
// absent and the cascade moves on. When nothing parses, the extraction
// wall-clock time stands in.
func extractDate(doc *goquery.Document) time.Time {
	for _, selector := range dateSelectors {
		var candidate string
		if strings.HasPrefix(selector, "meta") {
			candidate, _ = doc.Find(selector).Attr("content")
		} else {
			element := doc.Find(selector).First()
			if element.Length() == 0 {
				continue
			}
			if attr, ok := element.Attr("datetime"); ok && strings.TrimSpace(attr) != "" {
				candidate = attr
			} else {
				candidate = element.Text()
			}
		}

		if parsed, ok := parseDate(candidate); ok {
			return parsed
		}
	}
	return time.Now().UTC()
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

func extractBody(doc *goquery.Document) string {
	for _, selector := range contentSelectors {
		container := doc.Find(selector).First()
		if container.Length() == 0 {
			continue
		}

		container.Find(containerNoise).Remove()
		candidate := joinParagraphs(container, 0)
		if utf8.RuneCountInString(candidate) > minContainerRunes {
			return tidy(candidate)
		}
	}

	body := doc.Find("body")
	body.Find(documentNoise).Remove()
	candidate := joinParagraphs(body, maxFallbackParagraphs)
	if utf8.RuneCountInString(candidate) >= minFallbackRunes {
		return tidy(candidate)
	}

	return tidy(truncateRunes(strings.TrimSpace(body.Text()), maxRawDumpRunes))
}

// joinParagraphs collects paragraph text from the selection, discards
// noise-length paragraphs, and joins survivors with a blank line. A limit
// of zero means unbounded.
func joinParagraphs(root *goquery.Selection, limit int) string {
	var kept []string
	root.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := strings.TrimSpace(p.Text())
		if utf8.RuneCountInString(text) <= minParagraphRunes {
			return true
		}
		kept = append(kept, text)
		return limit == 0 || len(kept) < limit
	})
	return strings.Join(kept, "\n\n")
}

func tidy(text string) string {
	return strings.TrimSpace(newlineRuns.ReplaceAllString(text, "\n\n"))
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
