package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane pads or cuts s to exactly width columns and height lines so
// panes line up under lipgloss.JoinHorizontal. A height of 0 keeps the line
// count.
func normalizePane(s string, width, height int) string {
	width = max(width, 0)
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i, ln := range lines {
		lines[i] = fitWidth(ln, width)
	}
	return strings.Join(lines, "\n")
}

// fitWidth truncates with an ellipsis or right-pads ln to w cells.
func fitWidth(ln string, w int) string {
	cur := xansi.StringWidth(ln)
	switch {
	case cur == w:
		return ln
	case cur < w:
		return ln + strings.Repeat(" ", w-cur)
	case w <= 0:
		return ""
	case w == 1:
		return xansi.Cut(ln, 0, 1)
	default:
		ln = xansi.Cut(ln, 0, w-1) + "…"
		return ln + strings.Repeat(" ", max(0, w-xansi.StringWidth(ln)))
	}
}

// wrapWords wraps plain text to maxW cells, hard-cutting words that do not
// fit on a line of their own.
func wrapWords(s string, maxW int) []string {
	if maxW <= 0 {
		return []string{""}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur, curW := "", 0
	for _, w := range words {
		ww := xansi.StringWidth(w)
		if cur != "" && curW+1+ww <= maxW {
			cur += " " + w
			curW += 1 + ww
			continue
		}
		if cur != "" {
			lines = append(lines, cur)
		}
		for ww > maxW {
			lines = append(lines, xansi.Cut(w, 0, maxW))
			w = xansi.Cut(w, maxW, ww)
			ww = xansi.StringWidth(w)
		}
		cur, curW = w, ww
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

func placeCenter(width, height int, s string) string {
	if width <= 0 || height <= 0 {
		return s
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}
