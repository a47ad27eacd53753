package store

import (
	"context"
	"encoding/json"
	"fmt"

	"kanban-cli/internal/logging"
	"kanban-cli/internal/model"

	"github.com/sirupsen/logrus"
)

// Persisted keys. These names are the integration contract with anything
// else reading the same store, so they never change.
const (
	KeyTasks       = "tasks"
	KeyActiveBoard = "activeBoard"
	KeyShowSideBar = "showSideBar"
	KeyLightTheme  = "light-theme"
)

const (
	themeEnabled  = "enabled"
	themeDisabled = "disabled"
)

// Store reads and writes the task collection and the UI preference flags.
//
// It performs no locking: every mutation is a read-modify-write of the whole
// collection, which is only safe while a single caller drives it.
type Store struct {
	kv  KV
	log logrus.FieldLogger
}

func New(kv KV, log logrus.FieldLogger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{kv: kv, log: log}
}

func (s *Store) Close() error { return s.kv.Close() }

// LoadTasks returns the persisted collection, or an empty slice when the key
// is absent. Malformed JSON is returned as an error.
func (s *Store) LoadTasks(ctx context.Context) ([]model.Task, error) {
	raw, ok, err := s.kv.Get(ctx, KeyTasks)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.Task{}, nil
	}
	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("store: decode tasks: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// GetTasks is the repository-facing name for LoadTasks.
func (s *Store) GetTasks(ctx context.Context) ([]model.Task, error) {
	return s.LoadTasks(ctx)
}

// SaveTasks overwrites the whole persisted collection.
func (s *Store) SaveTasks(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, KeyTasks, string(b))
}

// DeleteTask removes every task carrying id. It reports whether anything was
// removed and only writes when something was.
func (s *Store) DeleteTask(ctx context.Context, id int64) (bool, error) {
	tasks, err := s.LoadTasks(ctx)
	if err != nil {
		return false, err
	}
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		return false, nil
	}
	if err := s.SaveTasks(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

// Seed writes the initial dataset and shows the sidebar when no task
// collection exists yet. It reports whether it wrote anything.
func (s *Store) Seed(ctx context.Context) (bool, error) {
	_, ok, err := s.kv.Get(ctx, KeyTasks)
	if err != nil {
		return false, err
	}
	if ok {
		s.log.Debug("data already exists in store")
		return false, nil
	}
	if err := s.SaveTasks(ctx, model.InitialData()); err != nil {
		return false, err
	}
	if err := s.SetShowSideBar(ctx, true); err != nil {
		return false, err
	}
	s.log.WithField("tasks", len(model.InitialData())).Info("seeded store with initial data")
	return true, nil
}

// ActiveBoard returns the last selected board, or "" when none was saved.
func (s *Store) ActiveBoard(ctx context.Context) (string, error) {
	raw, ok, err := s.kv.Get(ctx, KeyActiveBoard)
	if err != nil || !ok {
		return "", err
	}
	var name *string
	if err := json.Unmarshal([]byte(raw), &name); err != nil {
		return "", fmt.Errorf("store: decode activeBoard: %w", err)
	}
	if name == nil {
		return "", nil
	}
	return *name, nil
}

func (s *Store) SetActiveBoard(ctx context.Context, name string) error {
	b, err := json.Marshal(name)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, KeyActiveBoard, string(b))
}

// ShowSideBar is true only when the stored flag is exactly "true".
func (s *Store) ShowSideBar(ctx context.Context) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, KeyShowSideBar)
	if err != nil || !ok {
		return false, err
	}
	return raw == "true", nil
}

func (s *Store) SetShowSideBar(ctx context.Context, show bool) error {
	v := "false"
	if show {
		v = "true"
	}
	return s.kv.Set(ctx, KeyShowSideBar, v)
}

// LightTheme is true only when the stored flag is "enabled".
func (s *Store) LightTheme(ctx context.Context) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, KeyLightTheme)
	if err != nil || !ok {
		return false, err
	}
	return raw == themeEnabled, nil
}

func (s *Store) SetLightTheme(ctx context.Context, light bool) error {
	v := themeDisabled
	if light {
		v = themeEnabled
	}
	return s.kv.Set(ctx, KeyLightTheme, v)
}

// Preferences reads all three preference flags.
func (s *Store) Preferences(ctx context.Context) (model.Preferences, error) {
	var p model.Preferences
	var err error
	if p.ActiveBoard, err = s.ActiveBoard(ctx); err != nil {
		return p, err
	}
	if p.ShowSideBar, err = s.ShowSideBar(ctx); err != nil {
		return p, err
	}
	if p.LightTheme, err = s.LightTheme(ctx); err != nil {
		return p, err
	}
	return p, nil
}
