// Package markup turns crawled HTML fragments into terminal-safe text.
package markup

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText strips tags, decodes entities and collapses whitespace.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapse(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapse(s)
	}
	doc.Find("script, style").Remove()
	return collapse(doc.Text())
}

// Truncate shortens s to n runes, ending in "..." when cut.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
