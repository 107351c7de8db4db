package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/awwong1/semscrape/internal/session"
)

// renderFooter shows progress through the result set and what can be
// done next.
func renderFooter(st session.State, pageSize int, spinnerView string) string {
	switch {
	case st.Loading:
		return spinnerView + " " + footerStyle.Render("Loading...")
	case st.HasNext():
		return helpDimStyle.Render(loadedLabel(st)) + "  " + footerStyle.Render(fmt.Sprintf("Load next %d? (n)", pageSize))
	default:
		return helpDimStyle.Render(loadedLabel(st)) + "  " + footerStyle.Render("All done!")
	}
}

func loadedLabel(st session.State) string {
	return fmt.Sprintf("Loaded %d of %d articles.", len(st.Results), st.Count)
}

func renderStatusBar(st session.State, width int, m mode) string {
	left := " all articles"
	if st.Query != "" {
		left = fmt.Sprintf(" search: %q", st.Query)
	}

	right := " / search  enter details  n next  o open  ? help  q quit "
	switch m {
	case modeSearch:
		right = " esc cancel  enter search "
	case modeDetail:
		right = " j/k scroll  o open  esc close "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
