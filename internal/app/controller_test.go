package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"
	"kanban-cli/internal/store"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func newController(t *testing.T, dir string) *Controller {
	t.Helper()
	kv, err := store.OpenSQLiteKV(context.Background(), store.SQLitePath(dir))
	if err != nil {
		t.Fatalf("OpenSQLiteKV: %v", err)
	}
	st := store.New(kv, nil)
	t.Cleanup(func() { _ = st.Close() })
	c := NewController(st, nil)
	ms := int64(1712345678000)
	c.Now = func() time.Time {
		ms++
		return time.UnixMilli(ms)
	}
	return c
}

func TestInit_SeedsEmptyStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newController(t, t.TempDir())

	s, err := c.Init(ctx)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if len(s.Tasks) != len(model.InitialData()) {
		t.Fatalf("expected seeded tasks; got %d", len(s.Tasks))
	}
	if !s.ShowSideBar {
		t.Fatalf("expected sidebar shown after seeding")
	}
	if len(s.Boards) == 0 || s.ActiveBoard != s.Boards[0] {
		t.Fatalf("expected first board active; boards=%v active=%q", s.Boards, s.ActiveBoard)
	}
	if s.View.Board != s.ActiveBoard || s.View.Len() == 0 {
		t.Fatalf("expected the active board projected; got %#v", s.View)
	}
}

func TestInit_DoesNotReseed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newController(t, t.TempDir())

	if err := c.Store.SaveTasks(ctx, []model.Task{{ID: 1, Title: "mine", Status: "todo", Board: "X"}}); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}
	s, err := c.Init(ctx)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if len(s.Tasks) != 1 || s.Tasks[0].Title != "mine" {
		t.Fatalf("existing data must be kept; got %#v", s.Tasks)
	}
	if s.ShowSideBar {
		t.Fatalf("sidebar flag should stay unset when nothing was seeded")
	}
}

func TestAddTask_GoesToActiveBoardAndShowsInColumn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newController(t, t.TempDir())

	_ = c.Store.SaveTasks(ctx, []model.Task{
		{ID: 1, Title: "y", Status: "todo", Board: "Y"},
		{ID: 2, Title: "x", Status: "done", Board: "X"},
	})
	if _, err := c.SwitchBoard(ctx, "X"); err != nil {
		t.Fatalf("SwitchBoard: %v", err)
	}
	before, _ := c.Refresh(ctx)

	s, created, err := c.AddTask(ctx, mutate.NewTask{Title: "A", Status: "todo"})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if created.Board != "X" || created.Status != "todo" {
		t.Fatalf("unexpected created task: %#v", created)
	}
	if len(s.Tasks) != len(before.Tasks)+1 || s.Tasks[len(s.Tasks)-1] != created {
		t.Fatalf("created task should be appended last; got %#v", s.Tasks)
	}
	col, ok := s.View.Column("todo")
	if !ok || len(col.Tasks) != 1 || col.Tasks[0].Title != "A" {
		t.Fatalf("expected A in X's todo column; got %#v", col)
	}
}

func TestAddTaskTo_EmptyStoreUsesDefaultBoard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newController(t, t.TempDir())
	_ = c.Store.SaveTasks(ctx, nil)

	s, created, err := c.AddTask(ctx, mutate.NewTask{Title: "first", Status: "todo"})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if created.Board != DefaultBoard || s.ActiveBoard != DefaultBoard {
		t.Fatalf("expected default board; created=%#v active=%q", created, s.ActiveBoard)
	}
}

func TestSaveTaskChanges_MovesColumnKeepsIdentity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newController(t, t.TempDir())
	_ = c.Store.SaveTasks(ctx, []model.Task{{ID: 1, Title: "a", Status: "todo", Board: "X"}})

	s, err := c.SaveTaskChanges(ctx, 1, mutate.Edit{Title: "a", Status: "done"})
	if err != nil {
		t.Fatalf("SaveTaskChanges: %v", err)
	}
	if todo, _ := s.View.Column("todo"); len(todo.Tasks) != 0 {
		t.Fatalf("task should have left todo; got %#v", todo.Tasks)
	}
	done, _ := s.View.Column("done")
	if len(done.Tasks) != 1 || done.Tasks[0].ID != 1 || done.Tasks[0].Board != "X" {
		t.Fatalf("task should be in done with id/board kept; got %#v", done.Tasks)
	}

	if _, err := c.SaveTaskChanges(ctx, 404, mutate.Edit{}); !errors.Is(err, mutate.ErrNotFound) {
		t.Fatalf("expected ErrNotFound; got %v", err)
	}
}

func TestDeleteTask_LastTaskOfBoardFallsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newController(t, t.TempDir())
	_ = c.Store.SaveTasks(ctx, []model.Task{
		{ID: 1, Title: "a", Status: "todo", Board: "A"},
		{ID: 2, Title: "b", Status: "todo", Board: "B"},
	})
	if _, err := c.SwitchBoard(ctx, "B"); err != nil {
		t.Fatalf("SwitchBoard: %v", err)
	}

	s, removed, err := c.DeleteTask(ctx, 2)
	if err != nil || !removed {
		t.Fatalf("DeleteTask: removed=%v err=%v", removed, err)
	}
	if s.ActiveBoard != "A" {
		t.Fatalf("active board should fall back to A once B is gone; got %q", s.ActiveBoard)
	}
	if _, removed, _ := c.DeleteTask(ctx, 2); removed {
		t.Fatalf("second delete should be a no-op")
	}
}

func TestRefresh_StaleActiveBoardLogsBelowInfo(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newController(t, t.TempDir())
	log, hook := logtest.NewNullLogger()
	c.Log = log

	if err := c.Store.SaveTasks(ctx, []model.Task{{ID: 1, Title: "a", Status: "todo", Board: "Kept"}}); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}
	if err := c.Store.SetActiveBoard(ctx, "Gone"); err != nil {
		t.Fatalf("SetActiveBoard: %v", err)
	}
	for i := 0; i < 3; i++ {
		s, err := c.Refresh(ctx)
		if err != nil {
			t.Fatalf("Refresh: %v", err)
		}
		if s.ActiveBoard != "Kept" {
			t.Fatalf("expected fallback to Kept; got %q", s.ActiveBoard)
		}
	}
	if n := len(hook.AllEntries()); n != 0 {
		t.Fatalf("expected no entries at info level; got %d", n)
	}

	log.SetLevel(logrus.DebugLevel)
	if _, err := c.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	e := hook.LastEntry()
	if e == nil || e.Level != logrus.DebugLevel || e.Data["persisted"] != "Gone" {
		t.Fatalf("expected a debug entry naming the stale board; got %#v", e)
	}
}

func TestSwitchBoard_PersistsAcrossReload(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	c := newController(t, dir)
	if _, err := c.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := c.SwitchBoard(ctx, "Roadmap"); err != nil {
		t.Fatalf("SwitchBoard: %v", err)
	}
	if err := c.Store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	c2 := newController(t, dir)
	s, err := c2.Init(ctx)
	if err != nil {
		t.Fatalf("Init after reload: %v", err)
	}
	if s.ActiveBoard != "Roadmap" {
		t.Fatalf("expected Roadmap after reload; got %q", s.ActiveBoard)
	}

	var ub UnknownBoardError
	if _, err := c2.SwitchBoard(ctx, "Nope"); !errors.As(err, &ub) {
		t.Fatalf("expected UnknownBoardError; got %v", err)
	}
}

func TestToggles_Persist(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newController(t, t.TempDir())
	if _, err := c.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	s, err := c.ToggleSidebar(ctx, false)
	if err != nil || s.ShowSideBar {
		t.Fatalf("ToggleSidebar(false): show=%v err=%v", s.ShowSideBar, err)
	}
	s, err = c.ToggleTheme(ctx, true)
	if err != nil || !s.LightTheme {
		t.Fatalf("ToggleTheme(true): light=%v err=%v", s.LightTheme, err)
	}
	p, err := c.Store.Preferences(ctx)
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if p.ShowSideBar || !p.LightTheme {
		t.Fatalf("unexpected persisted prefs: %#v", p)
	}
}
