package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestMarkdownStyle_FollowsBackground(t *testing.T) {
	t.Setenv("KANBAN_TUI_MD_STYLE", "")
	prev := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(prev) })

	lipgloss.SetHasDarkBackground(false)
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light; got %q", got)
	}
	lipgloss.SetHasDarkBackground(true)
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}

	t.Setenv("KANBAN_TUI_MD_STYLE", "light")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("override should win; got %q", got)
	}
}

func TestApplyTheme_EnvOverridesStoredFlag(t *testing.T) {
	prev := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(prev) })
	t.Setenv("KANBAN_TUI_DARKBG", "")

	t.Setenv("KANBAN_TUI_THEME", "dark")
	applyTheme(true)
	if !lipgloss.HasDarkBackground() {
		t.Fatalf("KANBAN_TUI_THEME=dark should win over the stored light flag")
	}

	t.Setenv("KANBAN_TUI_THEME", "auto")
	applyTheme(true)
	if lipgloss.HasDarkBackground() {
		t.Fatalf("with auto, the stored light flag should apply")
	}
}

func TestRenderMarkdown_RendersText(t *testing.T) {
	out := renderMarkdown("**Bold** move", 40)
	if !strings.Contains(out, "Bold") || strings.Contains(out, "**") {
		t.Fatalf("expected rendered markdown, got=%q", out)
	}
	if renderMarkdown("   ", 40) != "" {
		t.Fatalf("blank input should render empty")
	}
}
