// Package mutate holds the read-modify-write flows over the stored task
// collection. Each call reloads the whole collection, changes it and writes it
// back; rendering is left to the caller.
package mutate

import (
	"context"
	"time"

	"kanban-cli/internal/model"
	"kanban-cli/internal/store"
)

// NewTask is what the add form collects. The board comes from the caller's
// active board.
type NewTask struct {
	Title       string
	Description string
	Status      string
}

// Edit is what the edit form collects. Board is not editable.
type Edit struct {
	Title       string
	Description string
	Status      string
}

// Create appends a task to board and persists the collection. The id is the
// creation time in milliseconds; nothing guards against a collision.
func Create(ctx context.Context, st *store.Store, in NewTask, board string, now time.Time) (model.Task, error) {
	tasks, err := st.LoadTasks(ctx)
	if err != nil {
		return model.Task{}, err
	}
	t := model.Task{
		ID:          now.UnixMilli(),
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Board:       board,
	}
	tasks = append(tasks, t)
	if err := st.SaveTasks(ctx, tasks); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// Update overwrites title, description and status of the first task with id.
func Update(ctx context.Context, st *store.Store, id int64, e Edit) (model.Task, error) {
	tasks, err := st.LoadTasks(ctx)
	if err != nil {
		return model.Task{}, err
	}
	i := model.FindTask(tasks, id)
	if i < 0 {
		return model.Task{}, NotFoundError{Kind: "task", ID: id}
	}
	tasks[i].Title = e.Title
	tasks[i].Description = e.Description
	tasks[i].Status = e.Status
	if err := st.SaveTasks(ctx, tasks); err != nil {
		return model.Task{}, err
	}
	return tasks[i], nil
}

// Delete removes the task with id. Deleting an id that is not stored is a
// no-op and reports false.
func Delete(ctx context.Context, st *store.Store, id int64) (bool, error) {
	return st.DeleteTask(ctx, id)
}
