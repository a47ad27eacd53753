package tui

import (
	"fmt"

	"kanban-cli/internal/app"
	"kanban-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

const sidebarWidth = 28

type boardItem struct {
	name  string
	count int
}

func (i boardItem) Title() string       { return i.name }
func (i boardItem) Description() string { return fmt.Sprintf("%d tasks", i.count) }
func (i boardItem) FilterValue() string { return i.name }

func newBoardList() list.Model {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(colorAccent).BorderForeground(colorAccent)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(colorAccent).BorderForeground(colorAccent)
	l := list.New(nil, d, 0, 0)
	l.Title = "ALL BOARDS"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	// q and esc belong to the app, not the list.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	return l
}

func boardItems(s app.State) []list.Item {
	counts := map[string]int{}
	for _, t := range s.Tasks {
		counts[t.Board]++
	}
	items := make([]list.Item, 0, len(s.Boards))
	for _, b := range s.Boards {
		items = append(items, boardItem{name: b, count: counts[b]})
	}
	return items
}

// syncBoardList reloads the list from s and moves the cursor to the active
// board.
func syncBoardList(l *list.Model, s app.State) {
	l.SetItems(boardItems(s))
	for i, b := range s.Boards {
		if b == s.ActiveBoard {
			l.Select(i)
			break
		}
	}
}

func selectedBoard(l list.Model) (string, bool) {
	it, ok := l.SelectedItem().(boardItem)
	if !ok {
		return "", false
	}
	return it.name, true
}

func renderSidebar(l list.Model, s app.State, focused bool, height int) string {
	head := lipgloss.NewStyle().Bold(true).Foreground(colorMuted).
		Render(fmt.Sprintf("ALL BOARDS (%d)", len(s.Boards)))
	if focused {
		head = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(fmt.Sprintf("ALL BOARDS (%d)", len(s.Boards)))
	}
	footer := styleMuted().Render(themeLabel(s.LightTheme))
	body := head + "\n\n" + l.View()
	pane := normalizePane(body, sidebarWidth-2, max(height-2, 1)) + "\n" + fitWidth(footer, sidebarWidth-2)
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(colorCardBorder).
		PaddingRight(1).
		Render(pane)
}

func themeLabel(light bool) string {
	if light {
		return "☀ light  (t)"
	}
	return "☾ dark  (t)"
}

func taskCountOnBoard(tasks []model.Task, boardName string) int {
	n := 0
	for _, t := range tasks {
		if t.Board == boardName {
			n++
		}
	}
	return n
}
