package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/awwong1/semscrape/internal/markup"
	"github.com/awwong1/semscrape/internal/searchapi"
	"github.com/awwong1/semscrape/internal/sentiment"
)

// sentenceRow is one line of the per-sentence table.
type sentenceRow struct {
	Text  string
	Class sentiment.Classification
}

func sentenceRows(a *searchapi.Article) []sentenceRow {
	rows := make([]sentenceRow, 0, len(a.Sentiment))
	for _, s := range a.Sentiment {
		rows = append(rows, sentenceRow{
			Text:  markup.PlainText(s.Sentence),
			Class: sentiment.Classify(s.Sentiment),
		})
	}
	return rows
}

func publishedLabel(a *searchapi.Article) string {
	if t, ok := a.Published(); ok {
		return t.Format("Jan 2, 2006 15:04")
	}
	if a.PublicationDate == "" {
		return "Unknown date"
	}
	return a.PublicationDate
}

func overallLine(a *searchapi.Article) string {
	c := sentiment.Classify(a.OverallSentiment)
	line := badgeStyle(c.Category).Render(c.Label)
	if c.Magnitude != "" {
		line += " " + detailMetaStyle.Render("Average Positivity "+c.Magnitude)
	}
	return line
}

func renderDetail(article *searchapi.Article, width, height, scroll int) string {
	if article == nil {
		return lipglossCenter("Select an article", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := detailTitleStyle.Width(contentWidth).Render(markup.PlainText(article.Title))
	meta := detailMetaStyle.Render(publishedLabel(article) + " · " + article.AuthorName())
	link := detailLinkStyle.Width(contentWidth).Render(article.URL)

	parts := []string{title, meta, link, "", overallLine(article), ""}

	rows := sentenceRows(article)
	if len(rows) == 0 {
		parts = append(parts, detailMetaStyle.Render("(No sentence analysis available)"))
	} else {
		parts = append(parts, columnHeaderStyle.Render("Sentence sentiment"))
	}
	const badgeWidth = 10
	for _, r := range rows {
		badge := badgeStyle(r.Class.Category).Width(badgeWidth).Render(r.Class.Label)
		score := sentimentStyle(r.Class.Category).Width(6).Render(r.Class.Magnitude)
		textWidth := contentWidth - badgeWidth - 8
		if textWidth < 10 {
			textWidth = 10
		}
		text := detailMetaStyle.Width(textWidth).Render(wrapText(r.Text, textWidth))
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, badge, " ", score, " ", text))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
