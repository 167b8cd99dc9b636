package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/ridewrap/internal/config"
	"github.com/theirongolddev/ridewrap/internal/model"
	"github.com/theirongolddev/ridewrap/internal/pipeline"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func loadedApp(t *testing.T) App {
	t.Helper()
	in := pipeline.Input{
		Trips: []model.TripRecord{
			{Status: "completed", RequestTimeLocal: "2022-03-01 08:00:00", FareAmount: "12.00", City: "Lisbon", ProductType: "UberX"},
			{Status: "completed", RequestTimeLocal: "2023-07-04 22:00:00", FareAmount: "30.00", City: "Porto", ProductType: "uberxl"},
		},
		Orders: []model.OrderLine{
			{RequestTimeLocal: "2023-07-05 13:00:00", RestaurantName: "Tasca (Baixa)", OrderPrice: "18.50", ItemName: "Bifana"},
		},
	}
	res := &pipeline.ReportResult{
		Report:     pipeline.Build(in, pipeline.Options{Location: time.UTC}),
		DataDir:    "/exports",
		TotalFiles: 2,
	}

	var m tea.Model = NewApp(Options{DataDir: "/exports"})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = m.Update(ReportLoadedMsg{Result: res, LoadTime: 20 * time.Millisecond})
	return m.(App)
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestLoadingView(t *testing.T) {
	var m tea.Model = NewApp(Options{DataDir: "/exports"})
	if m.View() != "" {
		t.Error("view before first resize should be empty")
	}
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = m.Update(ProgressMsg{Current: 1, Total: 4})
	if v := m.View(); !strings.Contains(v, "Parsing 1 of 4 files") {
		t.Errorf("loading view = %q", v)
	}
}

func TestYearNavigation(t *testing.T) {
	app := loadedApp(t)
	if !strings.Contains(app.View(), "All time") {
		t.Fatalf("initial view should show lifetime:\n%s", app.View())
	}

	m := press(app, "right")
	if got := m.(App).activeYear; got != 1 {
		t.Fatalf("activeYear after right = %d", got)
	}
	if !strings.Contains(m.View(), "2023") {
		t.Errorf("view after right missing 2023")
	}

	m = press(m, "right", "right", "right")
	if got := m.(App).activeYear; got != 2 {
		t.Errorf("activeYear clamped = %d, want 2", got)
	}

	m = press(m, "left", "left", "left")
	if got := m.(App).activeYear; got != 0 {
		t.Errorf("activeYear clamped low = %d, want 0", got)
	}
}

func TestSections(t *testing.T) {
	m := press(loadedApp(t), "r")
	if v := m.View(); !strings.Contains(v, "Top cities") || !strings.Contains(v, "UberXL") {
		t.Errorf("rides section missing content:\n%s", v)
	}

	m = press(m, "tab")
	if v := m.View(); !strings.Contains(v, "Top restaurants") || !strings.Contains(v, "Tasca") {
		t.Errorf("eats section missing content:\n%s", v)
	}

	m = press(m, "tab")
	if got := m.(App).section; got != sectionOverview {
		t.Errorf("tab did not wrap to overview: %d", got)
	}
}

func TestHelpAndQuit(t *testing.T) {
	m := press(loadedApp(t), "?")
	if !strings.Contains(m.View(), "previous / next year") {
		t.Error("help not shown")
	}
	m = press(m, "x")
	if m.(App).showHelp {
		t.Error("help not dismissed")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestLoadErrorView(t *testing.T) {
	var m tea.Model = NewApp(Options{DataDir: "/nowhere"})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = m.Update(ReportLoadedMsg{Err: errTest("export directory not found")})
	if v := m.View(); !strings.Contains(v, "export directory not found") {
		t.Errorf("error view = %q", v)
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	vals := SetupValuesFrom(cfg)
	vals.DataDir = "  /exports  "
	vals.TopN = 10
	vals.Theme = "terminal"
	vals.UseCache = false

	if err := vals.Apply(&cfg); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.General.DataDir != "/exports" || cfg.General.TopN != 10 || cfg.Appearance.Theme != "terminal" || cfg.Cache.Enabled {
		t.Errorf("cfg = %+v", cfg)
	}

	bad := vals
	bad.Theme = "neon"
	if err := bad.Apply(&cfg); err == nil {
		t.Error("invalid theme accepted")
	}
	if cfg.Appearance.Theme != "terminal" {
		t.Error("failed Apply modified cfg")
	}
}

func TestSetupValidators(t *testing.T) {
	if err := validateDataDir(t.TempDir()); err != nil {
		t.Errorf("temp dir rejected: %v", err)
	}
	if err := validateDataDir(""); err == nil {
		t.Error("empty dir accepted")
	}
	if err := validateTimezone(""); err != nil {
		t.Errorf("blank timezone rejected: %v", err)
	}
	if err := validateTimezone("Nowhere/Land"); err == nil {
		t.Error("bogus timezone accepted")
	}
	if NewSetupForm(&SetupValues{}) == nil {
		t.Error("NewSetupForm returned nil")
	}
}
