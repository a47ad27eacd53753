package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kanban-cli/internal/app"
	"kanban-cli/internal/model"
	"kanban-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T) (appModel, *app.Controller) {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()
	kv, err := store.OpenSQLiteKV(ctx, store.SQLitePath(dir))
	if err != nil {
		t.Fatalf("OpenSQLiteKV: %v", err)
	}
	st := store.New(kv, nil)
	t.Cleanup(func() { _ = st.Close() })
	ctrl := app.NewController(st, nil)
	s, err := ctrl.Init(ctx)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	m := newAppModel(ctx, ctrl, dir, s)
	m = send(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})
	return m, ctrl
}

func send(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	mm, _ := m.Update(msg)
	out, ok := mm.(appModel)
	if !ok {
		t.Fatalf("unexpected model type %T", mm)
	}
	return out
}

func keys(t *testing.T, m appModel, s string) appModel {
	t.Helper()
	for _, r := range s {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestNewAppModel_RendersActiveBoardAndColumns(t *testing.T) {
	m, _ := newTestModel(t)

	out := m.View()
	if !strings.Contains(out, "Launch Career") {
		t.Fatalf("expected active board name in view, got=%q", out)
	}
	if !strings.Contains(out, "TODO (") {
		t.Fatalf("expected TODO column header, got=%q", out)
	}
	if !strings.Contains(out, "ALL BOARDS (2)") {
		t.Fatalf("expected sidebar with board count, got=%q", out)
	}
}

func TestAddTask_ViaModal(t *testing.T) {
	m, ctrl := newTestModel(t)

	m = keys(t, m, "n")
	if m.modal != modalAdd {
		t.Fatalf("expected add modal open")
	}
	m = keys(t, m, "Buy milk")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.modal != modalNone {
		t.Fatalf("expected modal closed after save")
	}

	tasks, err := ctrl.Store.LoadTasks(context.Background())
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	last := tasks[len(tasks)-1]
	if last.Title != "Buy milk" || last.Board != "Launch Career" || last.Status != model.StatusTodo {
		t.Fatalf("unexpected created task: %#v", last)
	}
	if got, ok := m.selectedTask(); !ok || got.ID != last.ID {
		t.Fatalf("expected focus on the new card; got %#v", got)
	}
	if !strings.Contains(m.View(), "Buy milk") {
		t.Fatalf("expected new card rendered")
	}
}

func TestEditTask_ChangesStatusColumn(t *testing.T) {
	m, ctrl := newTestModel(t)

	before, ok := m.selectedTask()
	if !ok {
		t.Fatalf("expected a focused card")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.modal != modalEdit {
		t.Fatalf("expected edit modal")
	}
	// Title -> description -> status, then one step right.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = keys(t, m, "l")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	s, err := ctrl.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	after, ok := s.Task(before.ID)
	if !ok {
		t.Fatalf("task vanished")
	}
	if after.Status == before.Status || after.Board != before.Board {
		t.Fatalf("expected status change only; before=%#v after=%#v", before, after)
	}
}

func TestDeleteTask_RequiresConfirmation(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctx := context.Background()

	target, _ := m.selectedTask()
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if m.modal != modalConfirmDelete {
		t.Fatalf("expected confirm modal")
	}
	// Default focus is Cancel.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if s, _ := ctrl.Refresh(ctx); func() bool { _, ok := s.Task(target.ID); return !ok }() {
		t.Fatalf("cancel must not delete")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	s, _ := ctrl.Refresh(ctx)
	if _, ok := s.Task(target.ID); ok {
		t.Fatalf("expected task %d deleted", target.ID)
	}
	if m.modal != modalNone {
		t.Fatalf("expected modal closed")
	}
}

func TestSidebarAndThemeToggles_Persist(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctx := context.Background()

	m = keys(t, m, "s")
	if m.state.ShowSideBar {
		t.Fatalf("expected sidebar hidden")
	}
	if strings.Contains(m.View(), "ALL BOARDS") {
		t.Fatalf("hidden sidebar should not render")
	}
	m = keys(t, m, "t")
	p, err := ctrl.Store.Preferences(ctx)
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if p.ShowSideBar || p.LightTheme != m.state.LightTheme || !p.LightTheme {
		t.Fatalf("unexpected prefs: %#v (state light=%v)", p, m.state.LightTheme)
	}
}

func TestSidebar_SwitchBoard(t *testing.T) {
	m, ctrl := newTestModel(t)

	m = keys(t, m, "b")
	if m.pane != paneSidebar {
		t.Fatalf("expected sidebar focus")
	}
	m = keys(t, m, "j")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state.ActiveBoard != "Roadmap" {
		t.Fatalf("expected Roadmap active; got %q", m.state.ActiveBoard)
	}
	if got, _ := ctrl.Store.ActiveBoard(context.Background()); got != "Roadmap" {
		t.Fatalf("expected Roadmap persisted; got %q", got)
	}
}

func TestCopyTitle_UsesClipboard(t *testing.T) {
	var got string
	old := writeClipboard
	writeClipboard = func(s string) error { got = s; return nil }
	t.Cleanup(func() { writeClipboard = old })

	m, _ := newTestModel(t)
	want, _ := m.selectedTask()
	m = keys(t, m, "y")
	if got != want.Title {
		t.Fatalf("expected %q copied; got %q", want.Title, got)
	}
	if !strings.Contains(m.status, "copied") {
		t.Fatalf("expected status line feedback; got %q", m.status)
	}
}

func TestQuit_SavesCursorState(t *testing.T) {
	m, _ := newTestModel(t)

	m = keys(t, m, "l")
	want, _ := m.selectedTask()
	mm, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	ts, err := store.LoadTUIState(mm.(appModel).dir)
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if ts.FocusedStatus != model.StatusDoing || ts.SelectedTaskID != want.ID {
		t.Fatalf("unexpected saved state: %#v", ts)
	}
}

func TestDescriptionEditor_ResultFillsForm(t *testing.T) {
	m, _ := newTestModel(t)
	m = keys(t, m, "n")

	path := filepath.Join(t.TempDir(), "desc.md")
	if err := os.WriteFile(path, []byte("# Plan\n\n- [ ] step one\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	m.editorPath = path
	m = send(t, m, externalEditorDoneMsg{})

	if got := m.form.desc.Value(); got != "# Plan\n\n- [ ] step one" {
		t.Fatalf("unexpected description: %q", got)
	}
	if m.editorPath != "" {
		t.Fatalf("expected editor path cleared")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected temp file removed; err=%v", err)
	}
	if m.modal != modalAdd {
		t.Fatalf("expected add modal to stay open")
	}
}
