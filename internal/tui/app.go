package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kanban-cli/internal/app"
	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"
	"kanban-cli/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

type pane int

const (
	paneBoard pane = iota
	paneSidebar
)

type modalKind int

const (
	modalNone modalKind = iota
	modalAdd
	modalEdit
	modalConfirmDelete
)

type appModel struct {
	ctx  context.Context
	ctrl *app.Controller
	dir  string
	log  logrus.FieldLogger

	state app.State

	width  int
	height int

	pane   pane
	sel    selection
	boards list.Model
	keys   keyMap
	help   help.Model

	modal        modalKind
	form         taskForm
	confirmFocus confirmModalFocus

	status    string
	statusErr bool

	editorPath   string
	editorBefore string
}

func newAppModel(ctx context.Context, ctrl *app.Controller, dir string, s app.State) appModel {
	m := appModel{
		ctx:    ctx,
		ctrl:   ctrl,
		dir:    dir,
		log:    ctrl.Log,
		width:  80,
		height: 24,
		keys:   defaultKeyMap(),
		help:   help.New(),
		boards: newBoardList(),
	}
	m.boards.SetSize(sidebarWidth-2, 16)
	m.setState(s)
	applyTheme(s.LightTheme)

	if ts, err := store.LoadTUIState(dir); err == nil {
		for i, c := range s.View.Columns {
			if c.Status == ts.FocusedStatus {
				m.sel.Col = i
			}
		}
		m.sel.TaskID = ts.SelectedTaskID
		if ts.Pane == "sidebar" && s.ShowSideBar {
			m.pane = paneSidebar
		}
	}
	m.sel = m.sel.clamp(s.View)
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m *appModel) setState(s app.State) {
	m.state = s
	syncBoardList(&m.boards, s)
	m.sel = m.sel.clamp(s.View)
	if !s.ShowSideBar && m.pane == paneSidebar {
		m.pane = paneBoard
	}
}

func (m *appModel) flash(msg string) {
	m.status, m.statusErr = msg, false
}

func (m *appModel) fail(err error) {
	m.status, m.statusErr = err.Error(), true
	m.log.WithError(err).Warn("tui action failed")
}

// apply installs the State returned by a controller call, or shows err.
func (m *appModel) apply(s app.State, err error) bool {
	if err != nil {
		m.fail(err)
		return false
	}
	m.setState(s)
	return true
}

func (m appModel) saveTUIState() {
	ts := &store.TUIState{SelectedTaskID: m.sel.TaskID, Pane: "board"}
	if m.sel.Col >= 0 && m.sel.Col < len(m.state.View.Columns) {
		ts.FocusedStatus = m.state.View.Columns[m.sel.Col].Status
	}
	if m.pane == paneSidebar {
		ts.Pane = "sidebar"
	}
	if err := store.SaveTUIState(m.dir, ts); err != nil {
		m.log.WithError(err).Debug("save tui state")
	}
}

func matches(msg tea.KeyMsg, b key.Binding) bool { return key.Matches(msg, b) }

func (m appModel) selectedTask() (model.Task, bool) {
	sel := m.sel.clamp(m.state.View)
	if sel.Row < 0 {
		return model.Task{}, false
	}
	return m.state.View.Columns[sel.Col].Tasks[sel.Row], true
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case externalEditorDoneMsg:
		m.applyDescriptionEditor(msg)
		return m, nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.boards.SetSize(sidebarWidth-2, max(m.height-8, 3))
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.saveTUIState()
			return m, tea.Quit
		}
		switch m.modal {
		case modalAdd, modalEdit:
			return m.updateForm(msg)
		case modalConfirmDelete:
			return m.updateConfirm(msg)
		}
		if m.pane == paneSidebar {
			return m.updateSidebar(msg)
		}
		return m.updateBoard(msg)
	}
	if m.modal == modalAdd || m.modal == modalEdit {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg, m.keys)
		return m, cmd
	}
	return m, nil
}

// updateGlobal handles keys shared by the board and sidebar panes.
func (m appModel) updateGlobal(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch {
	case matches(msg, m.keys.Quit):
		m.saveTUIState()
		return m, tea.Quit, true
	case matches(msg, m.keys.New):
		m.form = newTaskForm(m.ctrl.Columns, m.currentStatus())
		m.modal = modalAdd
		return m, textinput.Blink, true
	case matches(msg, m.keys.Sidebar):
		m.apply(m.ctrl.ToggleSidebar(m.ctx, !m.state.ShowSideBar))
		return m, nil, true
	case matches(msg, m.keys.Pane):
		if !m.state.ShowSideBar {
			m.apply(m.ctrl.ToggleSidebar(m.ctx, true))
		}
		if m.pane == paneSidebar {
			m.pane = paneBoard
		} else {
			m.pane = paneSidebar
		}
		return m, nil, true
	case matches(msg, m.keys.Theme):
		if m.apply(m.ctrl.ToggleTheme(m.ctx, !m.state.LightTheme)) {
			applyTheme(m.state.LightTheme)
		}
		return m, nil, true
	case matches(msg, m.keys.Reload):
		if m.apply(m.ctrl.Refresh(m.ctx)) {
			m.flash("reloaded")
		}
		return m, nil, true
	}
	return m, nil, false
}

func (m appModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if mm, cmd, ok := m.updateGlobal(msg); ok {
		return mm, cmd
	}
	v := m.state.View
	switch {
	case matches(msg, m.keys.Left):
		m.sel = m.sel.move(v, -1, 0)
	case matches(msg, m.keys.Right):
		m.sel = m.sel.move(v, 1, 0)
	case matches(msg, m.keys.Up):
		m.sel = m.sel.move(v, 0, -1)
	case matches(msg, m.keys.Down):
		m.sel = m.sel.move(v, 0, 1)
	case matches(msg, m.keys.Open):
		if t, ok := m.selectedTask(); ok {
			m.form = editTaskForm(m.ctrl.Columns, t)
			m.modal = modalEdit
			return m, textinput.Blink
		}
	case matches(msg, m.keys.Delete):
		if _, ok := m.selectedTask(); ok {
			m.form = taskForm{}
			m.modal = modalConfirmDelete
			m.confirmFocus = confirmFocusCancel
		}
	case matches(msg, m.keys.Copy):
		if t, ok := m.selectedTask(); ok {
			if err := copyToClipboard(t.Title); err != nil {
				m.fail(fmt.Errorf("copy: %w", err))
			} else {
				m.flash("copied: " + t.Title)
			}
		}
	}
	return m, nil
}

func (m appModel) updateSidebar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case matches(msg, m.keys.Cancel), matches(msg, m.keys.Right):
		m.pane = paneBoard
		return m, nil
	case matches(msg, m.keys.Open):
		if name, ok := selectedBoard(m.boards); ok {
			if m.apply(m.ctrl.SwitchBoard(m.ctx, name)) {
				m.sel = selection{}.clamp(m.state.View)
				m.pane = paneBoard
			}
		}
		return m, nil
	}
	if mm, cmd, ok := m.updateGlobal(msg); ok {
		return mm, cmd
	}
	var cmd tea.Cmd
	m.boards, cmd = m.boards.Update(msg)
	return m, cmd
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case matches(msg, m.keys.Cancel):
		m.modal = modalNone
		return m, nil
	case matches(msg, m.keys.Save), msg.Type == tea.KeyEnter && m.form.focus == fieldTitle:
		return m.submitForm()
	case matches(msg, m.keys.Editor):
		cmd, err := m.openDescriptionEditor()
		if err != nil {
			m.fail(err)
			return m, nil
		}
		return m, cmd
	case matches(msg, m.keys.Delete) && m.modal == modalEdit:
		m.modal = modalConfirmDelete
		m.confirmFocus = confirmFocusCancel
		return m, nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg, m.keys)
	return m, cmd
}

func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	title, desc, status := m.form.values()
	if m.modal == modalAdd {
		s, t, err := m.ctrl.AddTask(m.ctx, mutate.NewTask{Title: title, Description: desc, Status: status})
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.setState(s)
		m.sel = selection{TaskID: t.ID}.clamp(s.View)
		m.modal = modalNone
		m.flash("task added")
		return m, nil
	}
	id := m.form.editID
	s, err := m.ctrl.SaveTaskChanges(m.ctx, id, mutate.Edit{Title: title, Description: desc, Status: status})
	if errors.Is(err, mutate.ErrNotFound) {
		// Someone else removed it; drop the stale modal.
		m.modal = modalNone
		m.apply(m.ctrl.Refresh(m.ctx))
		m.fail(err)
		return m, nil
	}
	if !m.apply(s, err) {
		return m, nil
	}
	m.sel = selection{TaskID: id}.clamp(s.View)
	m.modal = modalNone
	m.flash("task saved")
	return m, nil
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case matches(msg, m.keys.Cancel):
		m.modal = modalNone
		return m, nil
	case matches(msg, m.keys.Next), matches(msg, m.keys.Prev), matches(msg, m.keys.Left), matches(msg, m.keys.Right):
		m.confirmFocus = m.confirmFocus.toggle()
		return m, nil
	case msg.String() == "y":
		m.confirmFocus = confirmFocusConfirm
		return m.confirmDelete()
	case msg.Type == tea.KeyEnter:
		if m.confirmFocus == confirmFocusConfirm {
			return m.confirmDelete()
		}
		m.modal = modalNone
	}
	return m, nil
}

func (m appModel) confirmDelete() (tea.Model, tea.Cmd) {
	id := m.form.editID
	if id == 0 {
		if t, ok := m.selectedTask(); ok {
			id = t.ID
		}
	}
	m.modal = modalNone
	s, removed, err := m.ctrl.DeleteTask(m.ctx, id)
	if !m.apply(s, err) {
		return m, nil
	}
	m.form = taskForm{}
	if removed {
		m.flash("task deleted")
	}
	return m, nil
}

func (m appModel) currentStatus() string {
	sel := m.sel.clamp(m.state.View)
	if len(m.state.View.Columns) == 0 {
		return model.StatusTodo
	}
	return m.state.View.Columns[sel.Col].Status
}

func (m appModel) View() string {
	if m.modal != modalNone {
		return placeCenter(m.width, m.height, m.modalView())
	}

	header := m.headerView()
	footer := m.footerView()
	bodyH := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 3)

	colsW := m.width
	var side string
	if m.state.ShowSideBar {
		side = renderSidebar(m.boards, m.state, m.pane == paneSidebar, bodyH)
		colsW -= lipgloss.Width(side) + 1
	}
	cols := renderColumns(m.state.View, m.sel, m.pane == paneBoard, colsW, bodyH)
	body := cols
	if side != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, side, " ", cols)
	}
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m appModel) headerView() string {
	name := m.state.ActiveBoard
	if name == "" {
		name = "(no boards)"
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Render(name)
	meta := styleMuted().Render(fmt.Sprintf("  %d tasks", taskCountOnBoard(m.state.Tasks, m.state.ActiveBoard)))
	if m.state.View.Hidden > 0 {
		meta += styleMuted().Render(fmt.Sprintf(" · %d outside columns", m.state.View.Hidden))
	}
	add := lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent).Padding(0, 1).Render("+ Add New Task (n)")
	left := "kanban  " + title + meta
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(add), 1)
	return left + strings.Repeat(" ", gap) + add + "\n"
}

func (m appModel) footerView() string {
	line := m.help.ShortHelpView(m.keys.boardHelp())
	if m.status != "" {
		st := styleMuted()
		if m.statusErr {
			st = lipgloss.NewStyle().Foreground(colorError)
		}
		line = st.Render(m.status) + "  " + line
	}
	return fitWidth(line, m.width)
}

func (m appModel) modalView() string {
	switch m.modal {
	case modalAdd:
		return renderModalBox(m.width, "Add New Task", m.form.view(m.width)+"\n\n"+m.help.ShortHelpView(m.keys.modalHelp()))
	case modalEdit:
		hb := append(m.keys.modalHelp(), m.keys.Delete)
		return renderModalBox(m.width, "Edit Task", m.form.view(m.width)+"\n\n"+m.help.ShortHelpView(hb))
	case modalConfirmDelete:
		title := ""
		if m.form.editID != 0 {
			title = m.form.title.Value()
		} else if t, ok := m.selectedTask(); ok {
			title = t.Title
		}
		body := fmt.Sprintf("Delete %q? This cannot be undone.", title)
		return renderConfirmModal(m.width, "Delete Task", body, "Delete", "Cancel", m.confirmFocus)
	}
	return ""
}
