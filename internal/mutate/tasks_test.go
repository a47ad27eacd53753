package mutate

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"kanban-cli/internal/model"
	"kanban-cli/internal/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	kv, err := store.OpenSQLiteKV(context.Background(), filepath.Join(t.TempDir(), "kanban.sqlite"))
	if err != nil {
		t.Fatalf("OpenSQLiteKV: %v", err)
	}
	st := store.New(kv, nil)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestCreate_AppendsWithTimestampIDAndBoard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t)

	if err := st.SaveTasks(ctx, []model.Task{{ID: 1, Title: "old", Status: "todo", Board: "X"}}); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}
	now := time.UnixMilli(1712345678901)
	got, err := Create(ctx, st, NewTask{Title: "Write tests", Description: "", Status: "doing"}, "X", now)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	want := model.Task{ID: 1712345678901, Title: "Write tests", Status: "doing", Board: "X"}
	if got != want {
		t.Fatalf("want %#v got %#v", want, got)
	}

	tasks, err := st.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(tasks) != 2 || tasks[1] != want {
		t.Fatalf("expected new task appended last; got %#v", tasks)
	}
}

func TestCreate_AcceptsEmptyTitle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t)

	got, err := Create(ctx, st, NewTask{Status: "todo"}, "X", time.UnixMilli(5))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.Title != "" || got.ID != 5 {
		t.Fatalf("unexpected task: %#v", got)
	}
}

func TestUpdate_OverwritesFieldsButNotBoard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t)

	seed := []model.Task{
		{ID: 1, Title: "a", Description: "d", Status: "todo", Board: "X"},
		{ID: 2, Title: "b", Status: "todo", Board: "X"},
	}
	if err := st.SaveTasks(ctx, seed); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}
	got, err := Update(ctx, st, 1, Edit{Title: "A", Description: "", Status: "done"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Board != "X" || got.Title != "A" || got.Description != "" || got.Status != "done" {
		t.Fatalf("unexpected updated task: %#v", got)
	}
	tasks, _ := st.LoadTasks(ctx)
	if tasks[0] != got || tasks[1] != seed[1] {
		t.Fatalf("only task 1 should change; got %#v", tasks)
	}
}

func TestUpdate_FirstMatchWinsOnDuplicateIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t)

	_ = st.SaveTasks(ctx, []model.Task{
		{ID: 7, Title: "first", Status: "todo", Board: "X"},
		{ID: 7, Title: "second", Status: "todo", Board: "X"},
	})
	if _, err := Update(ctx, st, 7, Edit{Title: "edited", Status: "todo"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	tasks, _ := st.LoadTasks(ctx)
	if tasks[0].Title != "edited" || tasks[1].Title != "second" {
		t.Fatalf("expected only first duplicate edited; got %#v", tasks)
	}
}

func TestUpdate_UnknownIDIsNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t)
	_ = st.SaveTasks(ctx, []model.Task{{ID: 1, Title: "a", Status: "todo", Board: "X"}})

	_, err := Update(ctx, st, 99, Edit{Title: "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound; got %v", err)
	}
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.ID != 99 || nf.Kind != "task" {
		t.Fatalf("expected NotFoundError{task,99}; got %#v", err)
	}
	tasks, _ := st.LoadTasks(ctx)
	if len(tasks) != 1 || tasks[0].Title != "a" {
		t.Fatalf("store should be untouched; got %#v", tasks)
	}
}

func TestDelete_RemovesOnlyThatTaskAndRepeatIsNoop(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t)

	_ = st.SaveTasks(ctx, []model.Task{
		{ID: 1, Title: "a", Status: "todo", Board: "X"},
		{ID: 2, Title: "b", Status: "todo", Board: "X"},
	})
	removed, err := Delete(ctx, st, 1)
	if err != nil || !removed {
		t.Fatalf("Delete: removed=%v err=%v", removed, err)
	}
	removed, err = Delete(ctx, st, 1)
	if err != nil || removed {
		t.Fatalf("repeat Delete should be a no-op: removed=%v err=%v", removed, err)
	}
	tasks, _ := st.LoadTasks(ctx)
	if len(tasks) != 1 || tasks[0].ID != 2 {
		t.Fatalf("expected only task 2 left; got %#v", tasks)
	}
}
