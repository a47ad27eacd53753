package app

import (
	"context"
	"fmt"
	"time"

	"kanban-cli/internal/board"
	"kanban-cli/internal/logging"
	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"
	"kanban-cli/internal/store"

	"github.com/sirupsen/logrus"
)

// DefaultBoard receives new tasks when the store holds no board at all.
const DefaultBoard = "Main"

// UnknownBoardError is returned when switching to a board no task carries.
type UnknownBoardError struct {
	Name string
}

func (e UnknownBoardError) Error() string {
	return fmt.Sprintf("board not found: %q", e.Name)
}

// Controller runs every user action as load, mutate, persist, then rebuilds
// the State from storage.
type Controller struct {
	Store   *store.Store
	Columns []board.Column
	Now     func() time.Time
	Log     logrus.FieldLogger
}

func NewController(st *store.Store, log logrus.FieldLogger) *Controller {
	if log == nil {
		log = logging.Discard()
	}
	return &Controller{
		Store:   st,
		Columns: board.DefaultColumns,
		Now:     time.Now,
		Log:     log,
	}
}

// Init seeds an empty store and returns the first State.
func (c *Controller) Init(ctx context.Context) (State, error) {
	if _, err := c.Store.Seed(ctx); err != nil {
		return State{}, fmt.Errorf("seed: %w", err)
	}
	return c.Refresh(ctx)
}

// Refresh rebuilds the State from what is persisted.
func (c *Controller) Refresh(ctx context.Context) (State, error) {
	tasks, err := c.Store.LoadTasks(ctx)
	if err != nil {
		return State{}, err
	}
	prefs, err := c.Store.Preferences(ctx)
	if err != nil {
		return State{}, err
	}
	boards := board.Boards(tasks)
	active := board.ResolveActive(prefs.ActiveBoard, boards)
	if prefs.ActiveBoard != "" && active != prefs.ActiveBoard {
		c.Log.WithFields(logrus.Fields{"persisted": prefs.ActiveBoard, "active": active}).Debug("persisted board no longer exists")
	}
	return State{
		Tasks:       tasks,
		Boards:      boards,
		ActiveBoard: active,
		ShowSideBar: prefs.ShowSideBar,
		LightTheme:  prefs.LightTheme,
		View:        board.Project(tasks, active, c.columns(), c.Log),
	}, nil
}

// AddTask creates a task on the active board.
func (c *Controller) AddTask(ctx context.Context, in mutate.NewTask) (State, model.Task, error) {
	cur, err := c.Refresh(ctx)
	if err != nil {
		return State{}, model.Task{}, err
	}
	return c.AddTaskTo(ctx, cur.ActiveBoard, in)
}

// AddTaskTo creates a task on boardName, which need not exist yet.
func (c *Controller) AddTaskTo(ctx context.Context, boardName string, in mutate.NewTask) (State, model.Task, error) {
	if boardName == "" {
		boardName = DefaultBoard
	}
	if !board.HasStatus(c.columns(), in.Status) {
		c.Log.WithField("status", in.Status).Warn("task status matches no column; it will not be shown")
	}
	t, err := mutate.Create(ctx, c.Store, in, boardName, c.now())
	if err != nil {
		return State{}, model.Task{}, err
	}
	c.Log.WithFields(logrus.Fields{"task": t.ID, "board": t.Board}).Debug("task created")
	st, err := c.Refresh(ctx)
	return st, t, err
}

// SaveTaskChanges applies an edit to the task with id.
func (c *Controller) SaveTaskChanges(ctx context.Context, id int64, e mutate.Edit) (State, error) {
	t, err := mutate.Update(ctx, c.Store, id, e)
	if err != nil {
		return State{}, err
	}
	c.Log.WithFields(logrus.Fields{"task": t.ID, "status": t.Status}).Debug("task updated")
	return c.Refresh(ctx)
}

// DeleteTask removes the task with id and reports whether it existed.
func (c *Controller) DeleteTask(ctx context.Context, id int64) (State, bool, error) {
	removed, err := mutate.Delete(ctx, c.Store, id)
	if err != nil {
		return State{}, false, err
	}
	if !removed {
		c.Log.WithField("task", id).Debug("delete: no such task")
	}
	st, err := c.Refresh(ctx)
	return st, removed, err
}

// SwitchBoard persists name as the active board.
func (c *Controller) SwitchBoard(ctx context.Context, name string) (State, error) {
	cur, err := c.Refresh(ctx)
	if err != nil {
		return State{}, err
	}
	if !cur.HasBoard(name) {
		return State{}, UnknownBoardError{Name: name}
	}
	if err := c.Store.SetActiveBoard(ctx, name); err != nil {
		return State{}, err
	}
	return c.Refresh(ctx)
}

func (c *Controller) ToggleSidebar(ctx context.Context, show bool) (State, error) {
	if err := c.Store.SetShowSideBar(ctx, show); err != nil {
		return State{}, err
	}
	return c.Refresh(ctx)
}

func (c *Controller) ToggleTheme(ctx context.Context, light bool) (State, error) {
	if err := c.Store.SetLightTheme(ctx, light); err != nil {
		return State{}, err
	}
	return c.Refresh(ctx)
}

func (c *Controller) columns() []board.Column {
	if len(c.Columns) == 0 {
		return board.DefaultColumns
	}
	return c.Columns
}

func (c *Controller) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
