package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The board must stay readable on light and dark terminals, so colors are
// adaptive and faint text is only used on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted          = ac("240", "243")
	colorSurfaceFg      = ac("235", "252")
	colorControlBg      = ac("252", "236")
	colorSelectedBg     = ac("#e9e9e9", "#262626")
	colorSelectedFg     = ac("235", "255")
	colorSelectedBorder = ac("232", "255")
	colorCardBorder     = ac("250", "241")
	colorAccent         = ac("27", "62")
	colorAccentFg       = ac("255", "235")
	colorError          = ac("160", "203")
)

// Column header dots, one per default status.
var statusDotColors = map[string]lipgloss.TerminalColor{
	"todo":  ac("#2a7fff", "#49c4e5"),
	"doing": ac("#6d3fd1", "#8471f2"),
	"done":  ac("#1f9d55", "#67e2ae"),
}

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

// applyColorProfilePreference picks the lipgloss color profile. Only NO_COLOR
// disables color; CLICOLOR is left to non-interactive output.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

// themeOverride reads KANBAN_TUI_THEME. ok is false for "auto", unset, or an
// unknown value, in which case the stored light-theme flag decides.
func themeOverride() (light bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("KANBAN_TUI_THEME"))) {
	case "light":
		return true, true
	case "dark":
		return false, true
	}
	if v := strings.TrimSpace(os.Getenv("KANBAN_TUI_DARKBG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return !b, true
		}
	}
	return false, false
}

// applyTheme maps the light-theme preference onto lipgloss background
// detection. The environment wins over the stored flag.
func applyTheme(light bool) {
	if l, ok := themeOverride(); ok {
		light = l
	}
	lipgloss.SetHasDarkBackground(!light)
}
