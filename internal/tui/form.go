package tui

import (
	"strings"

	"kanban-cli/internal/board"
	"kanban-cli/internal/model"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDesc
	fieldStatus
	fieldCount
)

// taskForm backs both the add and the edit modal. editID is 0 when adding.
type taskForm struct {
	editID    int64
	title     textinput.Model
	desc      textarea.Model
	columns   []board.Column
	statusIdx int
	focus     formField
}

func newTaskForm(cols []board.Column, status string) taskForm {
	ti := textinput.New()
	ti.Placeholder = "e.g. Take chilled break"
	ti.Prompt = ""
	ti.CharLimit = 200

	ta := textarea.New()
	ta.Placeholder = "e.g. It's always good to take a break. This 15 minute break will recharge the batteries a little."
	ta.ShowLineNumbers = false
	ta.SetHeight(4)

	f := taskForm{title: ti, desc: ta, columns: cols}
	for i, c := range cols {
		if c.Status == status {
			f.statusIdx = i
		}
	}
	f.focusField(fieldTitle)
	return f
}

func editTaskForm(cols []board.Column, t model.Task) taskForm {
	f := newTaskForm(cols, t.Status)
	f.editID = t.ID
	f.title.SetValue(t.Title)
	f.desc.SetValue(t.Description)
	if !board.HasStatus(cols, t.Status) {
		// Keep an off-column status selectable so saving does not rewrite it.
		f.columns = append(append([]board.Column{}, cols...), board.Column{Status: t.Status, Label: board.LabelFor(cols, t.Status)})
		f.statusIdx = len(f.columns) - 1
	}
	return f
}

func (f *taskForm) focusField(ff formField) {
	f.focus = ff
	f.title.Blur()
	f.desc.Blur()
	switch ff {
	case fieldTitle:
		f.title.Focus()
	case fieldDesc:
		f.desc.Focus()
	}
}

func (f taskForm) status() string {
	if len(f.columns) == 0 {
		return ""
	}
	return f.columns[f.statusIdx].Status
}

func (f taskForm) values() (title, desc, status string) {
	return f.title.Value(), f.desc.Value(), f.status()
}

func (f taskForm) update(msg tea.Msg, keys keyMap) (taskForm, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case matches(km, keys.Next):
			f.focusField((f.focus + 1) % fieldCount)
			return f, nil
		case matches(km, keys.Prev):
			f.focusField((f.focus + fieldCount - 1) % fieldCount)
			return f, nil
		}
		if f.focus == fieldStatus && len(f.columns) > 0 {
			switch km.String() {
			case "left", "h", "up", "k":
				f.statusIdx = (f.statusIdx + len(f.columns) - 1) % len(f.columns)
			case "right", "l", "down", "j", " ":
				f.statusIdx = (f.statusIdx + 1) % len(f.columns)
			}
			return f, nil
		}
	}
	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDesc:
		f.desc, cmd = f.desc.Update(msg)
	}
	return f, cmd
}

func (f taskForm) view(termW int) string {
	bodyW := modalBodyWidth(termW)
	f.title.Width = bodyW - 1
	f.desc.SetWidth(bodyW)

	label := func(s string, ff formField) string {
		st := lipgloss.NewStyle().Bold(true).Foreground(colorMuted)
		if f.focus == ff {
			st = st.Foreground(colorAccent)
		}
		return st.Render(s)
	}

	var statuses []string
	for i, c := range f.columns {
		st := lipgloss.NewStyle().Padding(0, 1).Background(colorControlBg).Foreground(colorSurfaceFg)
		if i == f.statusIdx {
			st = st.Background(colorSelectedBg).Foreground(colorSelectedFg).Bold(true)
		}
		statuses = append(statuses, st.Render(c.Label))
	}

	parts := []string{
		label("Title", fieldTitle),
		f.title.View(),
		"",
		label("Description", fieldDesc),
		f.desc.View(),
		"",
		label("Current Status", fieldStatus),
		strings.Join(statuses, " "),
	}
	if f.editID != 0 && f.focus != fieldDesc {
		if md := renderMarkdown(f.desc.Value(), bodyW); md != "" {
			parts = append(parts, "", label("Preview", fieldCount), md)
		}
	}
	return strings.Join(parts, "\n")
}
