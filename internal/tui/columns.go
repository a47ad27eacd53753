package tui

import (
	"fmt"
	"strings"

	"kanban-cli/internal/board"

	"github.com/charmbracelet/lipgloss"
)

// selection tracks the focused card. TaskID is preferred over the indexes so
// focus follows a card across re-renders and status changes.
type selection struct {
	Col    int
	Row    int
	TaskID int64
}

// clamp fits sel into v. Row is -1 when the focused column is empty.
func (sel selection) clamp(v board.View) selection {
	if len(v.Columns) == 0 {
		return selection{Row: -1}
	}
	if sel.TaskID != 0 {
		if ci, ri, ok := v.Locate(sel.TaskID); ok {
			sel.Col, sel.Row = ci, ri
			return sel
		}
		sel.TaskID = 0
	}
	sel.Col = min(max(sel.Col, 0), len(v.Columns)-1)
	n := len(v.Columns[sel.Col].Tasks)
	if n == 0 {
		sel.Row = -1
		return sel
	}
	sel.Row = min(max(sel.Row, 0), n-1)
	sel.TaskID = v.Columns[sel.Col].Tasks[sel.Row].ID
	return sel
}

func (sel selection) move(v board.View, dCol, dRow int) selection {
	sel.TaskID = 0
	sel.Col += dCol
	sel.Row += dRow
	if dCol != 0 {
		sel.Row = 0
	}
	return sel.clamp(v)
}

// renderColumns draws the status columns of v side by side.
func renderColumns(v board.View, sel selection, focused bool, width, height int) string {
	width = max(width, 0)
	height = max(height, 0)
	n := len(v.Columns)
	if n == 0 {
		return normalizePane("", width, height)
	}
	sel = sel.clamp(v)

	const gap = 2
	colW := max((width-gap*(n-1))/n, 10)
	innerW := max(colW-4, 1)

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
	cardStyle := lipgloss.NewStyle().
		Width(colW-2).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder)
	cardSelected := cardStyle.
		BorderForeground(colorSelectedBorder).
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)
	muted := styleMuted()

	rendered := make([]string, 0, n)
	for ci, col := range v.Columns {
		dot := "●"
		if c, ok := statusDotColors[col.Status]; ok {
			dot = lipgloss.NewStyle().Foreground(c).Render(dot)
		}
		hs := headerStyle
		if focused && ci == sel.Col {
			hs = hs.Underline(true)
		}
		header := dot + " " + hs.Render(fmt.Sprintf("%s (%d)", col.Label, len(col.Tasks)))

		var lines []string
		selTop, selBottom := -1, -1
		for ri, t := range col.Tasks {
			title := strings.TrimSpace(t.Title)
			if title == "" {
				title = "(untitled)"
			}
			body := wrapWords(title, innerW)
			if d := firstLine(t.Description); d != "" {
				body = append(body, muted.Render(fitWidth(d, innerW)))
			}
			st := cardStyle
			isSel := ri == sel.Row && ci == sel.Col
			if isSel {
				st = cardSelected
			}
			card := strings.Split(st.Render(strings.Join(body, "\n")), "\n")
			if isSel {
				selTop = len(lines)
				selBottom = len(lines) + len(card)
			}
			lines = append(lines, card...)
		}
		if len(col.Tasks) == 0 {
			lines = append(lines, muted.Render("(empty)"))
		}

		// Scroll so the selected card stays inside the pane.
		bodyH := max(height-2, 1)
		if selBottom > bodyH {
			off := min(selTop, selBottom-bodyH)
			lines = lines[off:]
		}

		pane := header + "\n\n" + strings.Join(lines, "\n")
		rendered = append(rendered, normalizePane(pane, colW, height))
	}

	spacer := normalizePane("", gap, height)
	parts := make([]string, 0, 2*n-1)
	for i, r := range rendered {
		if i > 0 {
			parts = append(parts, spacer)
		}
		parts = append(parts, r)
	}
	return normalizePane(lipgloss.JoinHorizontal(lipgloss.Top, parts...), width, height)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
