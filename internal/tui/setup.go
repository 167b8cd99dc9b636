package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/ridewrap/internal/config"
	"github.com/theirongolddev/ridewrap/internal/tui/theme"
)

// SetupValues are the fields edited by the setup form.
type SetupValues struct {
	DataDir  string
	Timezone string
	TopN     int
	Theme    string
	UseCache bool
}

// SetupValuesFrom seeds the form from an existing config.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		DataDir:  cfg.General.DataDir,
		Timezone: cfg.General.Timezone,
		TopN:     cfg.General.TopN,
		Theme:    cfg.Appearance.Theme,
		UseCache: cfg.Cache.Enabled,
	}
}

// Apply copies the values into cfg and validates the result.
func (v SetupValues) Apply(cfg *config.Config) error {
	next := *cfg
	next.General.DataDir = strings.TrimSpace(v.DataDir)
	next.General.Timezone = strings.TrimSpace(v.Timezone)
	next.General.TopN = v.TopN
	next.Appearance.Theme = v.Theme
	next.Cache.Enabled = v.UseCache

	if err := next.Validate(); err != nil {
		return err
	}
	*cfg = next
	return nil
}

var topNChoices = []int{3, 5, 10, 20}

// NewSetupForm builds the first-run form bound to vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	topN := make([]huh.Option[int], 0, len(topNChoices))
	for _, n := range topNChoices {
		topN = append(topN, huh.NewOption(fmt.Sprintf("Top %d", n), n))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to ridewrap").
				Description("A year-in-review of your ride and food-delivery export.\nSettings are saved to "+config.Path()),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Export directory").
				Description("The unzipped folder from your data download.").
				Value(&vals.DataDir).
				Validate(validateDataDir),
			huh.NewInput().
				Title("Timezone").
				Description("IANA name such as America/New_York. Leave blank for the system zone.").
				Value(&vals.Timezone).
				Validate(validateTimezone),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Ranked list length").
				Options(topN...).
				Value(&vals.TopN),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&vals.Theme),
			huh.NewConfirm().
				Title("Cache computed reports?").
				Affirmative("Yes").
				Negative("No").
				Value(&vals.UseCache),
		),
	).WithTheme(huh.ThemeDracula())
}

func validateDataDir(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("directory is required")
	}
	info, err := os.Stat(s)
	if err != nil {
		return fmt.Errorf("cannot open %s", s)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s)
	}
	return nil
}

func validateTimezone(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.LoadLocation(s); err != nil {
		return fmt.Errorf("unknown timezone %q", s)
	}
	return nil
}
