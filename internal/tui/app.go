package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/awwong1/semscrape/internal/browser"
	"github.com/awwong1/semscrape/internal/session"
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeDetail
	modeHelp
)

// App is the bubbletea model. It owns the search session and is the only
// place the session is mutated.
type App struct {
	sess     *session.Session
	fetcher  session.Fetcher
	pageSize int
	timeout  time.Duration
	open     func(string) error

	cursor int
	mode   mode

	width  int
	height int

	// Sub-components
	searchInput textinput.Model
	spinner     spinner.Model

	detailScroll int
	err          error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Fetcher  session.Fetcher
	PageSize int
	Timeout  time.Duration
	Logger   *slog.Logger
	// OpenURL defaults to browser.Open.
	OpenURL func(string) error
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Find articles..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	open := opts.OpenURL
	if open == nil {
		open = browser.Open
	}

	return &App{
		sess:        session.New(opts.Logger),
		fetcher:     opts.Fetcher,
		pageSize:    opts.PageSize,
		timeout:     timeout,
		open:        open,
		searchInput: ti,
		spinner:     sp,
	}
}

// Init issues the default listing.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.fetchCmd(a.sess.Initialize()), a.spinner.Tick)
}

// fetchCmd captures the request and fetcher so the goroutine never touches
// App state.
func (a *App) fetchCmd(req session.Request) tea.Cmd {
	f := a.fetcher
	timeout := a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return fetchDoneMsg{result: session.Execute(ctx, f, req)}
	}
}

func (a *App) openCmd(url string) tea.Cmd {
	open := a.open
	return func() tea.Msg {
		if err := open(url); err != nil {
			return browserErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case fetchDoneMsg:
		if !a.sess.Resolve(msg.result) {
			return a, nil
		}
		st := a.sess.State()
		if st.Err != nil {
			a.err = fmt.Errorf("search failed: %w", st.Err)
		}
		if a.cursor >= len(st.Results) {
			a.cursor = max(0, len(st.Results)-1)
		}
		return a, nil

	case browserErrMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.sess.State().Loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeDetail:
		return a.handleDetailKey(msg)
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeNormal
		}
		return a, nil
	}

	st := a.sess.State()
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.cursor < len(st.Results)-1 {
			a.cursor++
		}
		return a, nil
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "g", "home":
		a.cursor = 0
		return a, nil
	case "G", "end":
		a.cursor = max(0, len(st.Results)-1)
		return a, nil
	case "enter":
		if a.sess.SelectIndex(a.cursor) {
			a.mode = modeDetail
			a.detailScroll = 0
		}
		return a, nil
	case "n", " ":
		return a, a.loadNext()
	case "o":
		if a.cursor < len(st.Results) {
			return a, a.openCmd(st.Results[a.cursor].URL)
		}
		return a, nil
	case "/":
		a.mode = modeSearch
		a.searchInput.Focus()
		return a, textinput.Blink
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) loadNext() tea.Cmd {
	req, ok := a.sess.LoadNext()
	if !ok {
		return nil
	}
	return tea.Batch(a.fetchCmd(req), a.spinner.Tick)
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.Blur()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		req, ok := a.sess.Search(a.searchInput.Value())
		if !ok {
			// Blank input keeps the current results
			return a, nil
		}
		a.cursor = 0
		return a, tea.Batch(a.fetchCmd(req), a.spinner.Tick)
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

func (a *App) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "backspace", "enter":
		a.sess.ClearSelection()
		a.mode = modeNormal
		return a, nil
	case "j", "down":
		a.detailScroll++
		return a, nil
	case "k", "up":
		if a.detailScroll > 0 {
			a.detailScroll--
		}
		return a, nil
	case "o":
		if sel := a.sess.State().Selected; sel != nil {
			return a, a.openCmd(sel.URL)
		}
		return a, nil
	}
	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  semscrape")
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	st := a.sess.State()

	headerHeight := 1
	searchHeight := 1
	footerHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - searchHeight - footerHeight - statusHeight - 2 // borders
	if contentHeight < 3 {
		contentHeight = 3
	}

	// Header
	headerLeft := headerStyle.Render("semscrape")
	headerRight := headerInfoStyle.Render(loadedLabel(st))
	if st.Loading {
		headerRight = headerInfoStyle.Render("searching...")
	}
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	search := helpDimStyle.Render("  press / to search")
	if a.mode == modeSearch {
		search = a.searchInput.View()
	} else if st.Query != "" {
		search = searchPromptStyle.Render("/ ") + st.Query
	}

	var content string
	if a.mode == modeDetail && st.Selected != nil {
		listWidth := int(float64(a.width) * 0.45)
		detailWidth := a.width - listWidth - 1
		listPane := listPaneStyle.Width(listWidth - 2).Height(contentHeight).
			Render(renderList(st.Results, a.cursor, contentHeight, listWidth-4))
		detailPane := detailPaneStyle.Width(detailWidth - 2).Height(contentHeight).
			Render(renderDetail(st.Selected, detailWidth-4, contentHeight, a.detailScroll))
		content = lipgloss.JoinHorizontal(lipgloss.Top, listPane, " ", detailPane)
	} else {
		content = listPaneActiveStyle.Width(a.width - 2).Height(contentHeight).
			Render(renderList(st.Results, a.cursor, contentHeight, a.width-4))
	}

	footer := lipgloss.PlaceHorizontal(a.width, lipgloss.Center, renderFooter(st, a.pageSize, a.spinner.View()))

	status := renderStatusBar(st, a.width, a.mode)
	if a.err != nil {
		status = errorStyle.Render(a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, search, content, footer, status)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("semscrape")
	dim := helpDimStyle

	help := title + dim.Render(" Keyboard Shortcuts") + "\n\n" +
		dim.Render("Results") + "\n" +
		"  j/k, ↑/↓     Move through results\n" +
		"  g/G           First / last loaded result\n" +
		"  enter         Show sentence sentiment\n" +
		"  n, space      Load next page\n" +
		"  o             Open article in browser\n\n" +
		dim.Render("Search") + "\n" +
		"  /             Start a search\n" +
		"  enter         Run it (blank keeps results)\n" +
		"  esc           Cancel\n\n" +
		dim.Render("Details") + "\n" +
		"  j/k           Scroll\n" +
		"  esc           Close\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(strings.TrimRight(help, "\n"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
