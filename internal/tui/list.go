package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/awwong1/semscrape/internal/markup"
	"github.com/awwong1/semscrape/internal/searchapi"
	"github.com/awwong1/semscrape/internal/sentiment"
)

// columns splits a row into title, URL and sentiment widths.
type columns struct {
	title, url, sentiment int
}

func layoutColumns(width int) columns {
	if width < 30 {
		width = 30
	}
	sent := 22
	rest := width - sent - 2 // column gaps
	title := rest * 3 / 5
	return columns{title: title, url: rest - title, sentiment: sent}
}

func cell(s string, w int) string {
	return lipgloss.NewStyle().Width(w).MaxWidth(w).Render(markup.Truncate(s, w))
}

func renderHeaderRow(cols columns) string {
	return columnHeaderStyle.Render(
		cell("  Title", cols.title) + " " + cell("URL", cols.url) + " " + cell("Overall Sentiment", cols.sentiment),
	)
}

func renderRow(a searchapi.Article, selected bool, cols columns) string {
	c := sentiment.Classify(a.OverallSentiment)

	marker := "  "
	style := rowStyle
	if selected {
		marker = "> "
		style = rowSelectedStyle
	}
	title := style.Render(cell(marker+markup.PlainText(a.Title), cols.title))
	link := urlStyle.Render(cell(a.URL, cols.url))
	sent := sentimentStyle(c.Category).Render(cell(c.Text(), cols.sentiment))

	return title + " " + link + " " + sent
}

func renderList(articles []searchapi.Article, cursor int, height int, width int) string {
	cols := layoutColumns(width)
	header := renderHeaderRow(cols)
	if len(articles) == 0 {
		return header + "\n" + lipglossCenter("No articles found", width, height-1)
	}

	visible := height - 1
	if visible < 1 {
		visible = 1
	}

	// Keep the cursor on screen
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(articles) {
		end = len(articles)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	b.WriteString(header)
	for i := start; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(renderRow(articles[i], i == cursor, cols))
	}
	return b.String()
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	top := height / 3
	if top < 0 {
		top = 0
	}
	return strings.Repeat("\n", top) + strings.Repeat(" ", pad) + s
}
