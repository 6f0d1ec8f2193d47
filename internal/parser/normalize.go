package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MaxContentLength bounds the stored and compared page text, in characters.
// Tail content of longer pages is dropped.
const MaxContentLength = 10000

// noiseSelector lists elements that never carry page content.
const noiseSelector = "script, style, nav, header, footer"

// Normalize extracts the visible text of an HTML document in canonical form.
func Normalize(inp io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(inp)
	if err != nil {
		return "", fmt.Errorf("data cannot be parsed as HTML: %w", err)
	}

	doc.Find(noiseSelector).Remove()

	return canonical(doc.Text()), nil
}

// NormalizeString is Normalize for in-memory markup.
func NormalizeString(markup string) string {
	text, err := Normalize(strings.NewReader(markup))
	if err != nil {
		// goquery only fails on reader errors, which a strings.Reader never returns.
		return canonical(markup)
	}

	return text
}

// Truncate cuts s to at most limit characters without splitting a rune.
func Truncate(s string, limit int) string {
	if limit < 0 {
		return ""
	}

	count := 0
	for idx := range s {
		if count == limit {
			return s[:idx]
		}
		count++
	}

	return s
}

// canonical collapses whitespace runs and applies the length cap.
// The cut may land after a separator, so the result is trimmed again to stay idempotent.
func canonical(s string) string {
	collapsed := strings.Join(strings.Fields(s), " ")

	return strings.TrimRight(Truncate(collapsed, MaxContentLength), " ")
}
