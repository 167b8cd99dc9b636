// Package tui provides the interactive Bubble Tea year browser for ridewrap.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/ridewrap/internal/cli"
	"github.com/theirongolddev/ridewrap/internal/pipeline"
	"github.com/theirongolddev/ridewrap/internal/tui/components"
	"github.com/theirongolddev/ridewrap/internal/tui/theme"
)

// ReportLoadedMsg is sent when the report build finishes.
type ReportLoadedMsg struct {
	Result   *pipeline.ReportResult
	Err      error
	LoadTime time.Duration
}

// ProgressMsg reports file parsing progress.
type ProgressMsg struct {
	Current int
	Total   int
}

// Sections of a year page.
const (
	sectionOverview = iota
	sectionRides
	sectionEats
)

var sectionNames = []string{"Overview", "Rides", "Eats"}

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	chromeHeight     = 6 // header + two tab rows + blank + status bar
)

// Options configure where the app loads its report from.
type Options struct {
	DataDir  string
	Pipeline pipeline.Options
	UseCache bool
	// TopN bounds the ranked lists shown per card; zero shows everything.
	TopN int
}

// App is the root Bubble Tea model.
type App struct {
	opts Options

	result   *pipeline.ReportResult
	loadErr  error
	loaded   bool
	loadTime time.Duration

	width      int
	height     int
	activeYear int
	section    int
	showHelp   bool

	viewport viewport.Model

	spinner     spinner.Model
	progress    int
	progressMax int
	loadSub     chan tea.Msg
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		opts:     opts,
		spinner:  sp,
		viewport: viewport.New(0, 0),
		loadSub:  make(chan tea.Msg, 1),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadReportCmd(a.opts, a.loadSub),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resizeViewport()
		a.refreshContent()
		return a, nil

	case spinner.TickMsg:
		if a.loaded {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case ProgressMsg:
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case ReportLoadedMsg:
		a.loaded = true
		a.result = msg.Result
		a.loadErr = msg.Err
		a.loadTime = msg.LoadTime
		a.activeYear = 0
		a.refreshContent()
		return a, nil

	case tea.MouseMsg:
		if a.loaded && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == 1 {
			if idx := components.TabAtX(a.labels(), msg.X); idx >= 0 {
				a.selectYear(idx)
			}
			return a, nil
		}

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return a, tea.Quit
	}

	if a.showHelp {
		a.showHelp = false
		return a, nil
	}
	if !a.loaded || a.loadErr != nil {
		return a, nil
	}

	switch msg.String() {
	case "?":
		a.showHelp = true
	case "left", "h":
		a.selectYear(a.activeYear - 1)
	case "right", "l":
		a.selectYear(a.activeYear + 1)
	case "home":
		a.selectYear(0)
	case "end":
		a.selectYear(len(a.labels()) - 1)
	case "tab":
		a.selectSection((a.section + 1) % len(sectionNames))
	case "shift+tab":
		a.selectSection((a.section + len(sectionNames) - 1) % len(sectionNames))
	case "o", "1":
		a.selectSection(sectionOverview)
	case "r", "2":
		a.selectSection(sectionRides)
	case "e", "3":
		a.selectSection(sectionEats)
	default:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) selectYear(idx int) {
	n := len(a.labels())
	if n == 0 {
		return
	}
	a.activeYear = min(max(idx, 0), n-1)
	a.refreshContent()
}

func (a *App) selectSection(s int) {
	a.section = s
	a.refreshContent()
}

func (a App) labels() []string {
	if a.result == nil {
		return nil
	}
	return a.result.Report.Labels()
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a *App) resizeViewport() {
	a.viewport.Width = a.contentWidth()
	a.viewport.Height = max(a.height-chromeHeight, 3)
}

// refreshContent re-renders the active year and section into the viewport.
func (a *App) refreshContent() {
	if a.result == nil || a.width == 0 {
		return
	}
	years := a.result.Report.Years
	if a.activeYear >= len(years) {
		return
	}
	entry := years[a.activeYear]

	w := a.contentWidth()
	var body string
	switch a.section {
	case sectionRides:
		body = renderRides(entry.Summary.Trips, w, a.opts.TopN)
	case sectionEats:
		body = renderEats(entry.Summary.Eats, w, a.opts.TopN)
	default:
		body = renderOverview(entry, a.result.Report.Profile, w)
	}
	a.viewport.SetContent(body)
	a.viewport.GotoTop()
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  ridewrap needs at least %d columns.\n", a.width, minTerminalWidth)
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.loadErr != nil {
		return a.viewError()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ ridewrap"))
	b.WriteString(mutedStyle.Render(" · your rides and eats, wrapped"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	if a.progressMax > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" Parsing %s of %s files",
			cli.FormatCount(a.progress), cli.FormatCount(a.progressMax))))
		b.WriteString("\n\n")
		b.WriteString(components.LoadBar(a.progress, a.progressMax, 30))
	} else {
		b.WriteString(mutedStyle.Render(" Scanning " + a.opts.DataDir))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()))
}

func (a App) viewError() string {
	t := theme.Active
	warn := lipgloss.NewStyle().Foreground(t.Warn).Bold(true)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)
	return "\n  " + warn.Render("Could not load export") + "\n\n  " +
		muted.Render(a.loadErr.Error()) + "\n\n  " +
		muted.Render("Check --data-dir or run `ridewrap setup`. Press q to quit.") + "\n"
}

func (a App) viewHelp() string {
	t := theme.Active
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	keys := [][2]string{
		{"←/h →/l", "previous / next year"},
		{"home/end", "lifetime / oldest year"},
		{"tab", "next section"},
		{"o r e", "overview, rides, eats"},
		{"↑/↓ pgup/pgdn", "scroll"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(keyStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-14s", k[0])), descStyle.Render(k[1])))
	}
	b.WriteString("\n  ")
	b.WriteString(descStyle.Render("Press any key to close"))
	return b.String()
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.contentWidth()

	header := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true).Render("◈ ridewrap") +
		lipgloss.NewStyle().Foreground(t.TextMuted).Render("  "+a.result.DataDir)

	yearTabs := components.RenderTabs(a.labels(), a.activeYear)
	sectionTabs := components.RenderTabs(sectionNames, a.section)

	right := fmt.Sprintf("%d files · %s", a.result.TotalFiles, a.loadTime.Round(time.Millisecond))
	if a.result.CacheHit {
		right = fmt.Sprintf("%d files · cached", a.result.TotalFiles)
	}
	status := components.RenderStatusBar(w, " [←→]year [tab]section [?]help [q]uit", right+" ")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		yearTabs,
		sectionTabs,
		"",
		a.viewport.View(),
		status,
	)
}

func loadReportCmd(opts Options, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()

			// Non-blocking send so workers aren't stalled; the next update catches up.
			progressFn := func(current, total int) {
				select {
				case sub <- ProgressMsg{Current: current, Total: total}:
				default:
				}
			}

			res, err := pipeline.LoadReport(opts.DataDir, opts.Pipeline, opts.UseCache, progressFn)
			sub <- ReportLoadedMsg{Result: res, Err: err, LoadTime: time.Since(start)}
		}()

		return <-sub
	}
}

func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}
