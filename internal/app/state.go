// Package app owns the application state shared by every presentation.
//
// A State is a value rebuilt from the store after each change; renderers read
// it and never mutate the store themselves.
package app

import (
	"kanban-cli/internal/board"
	"kanban-cli/internal/model"
)

type State struct {
	Tasks       []model.Task `json:"tasks"`
	Boards      []string     `json:"boards"`
	ActiveBoard string       `json:"activeBoard"`
	ShowSideBar bool         `json:"showSideBar"`
	LightTheme  bool         `json:"lightTheme"`
	View        board.View   `json:"view"`
}

// Task looks up a task by id in the loaded collection.
func (s State) Task(id int64) (model.Task, bool) {
	i := model.FindTask(s.Tasks, id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.Tasks[i], true
}

// HasBoard reports whether name is one of the derived boards.
func (s State) HasBoard(name string) bool {
	for _, b := range s.Boards {
		if b == name {
			return true
		}
	}
	return false
}

func (s State) Preferences() model.Preferences {
	return model.Preferences{
		ActiveBoard: s.ActiveBoard,
		ShowSideBar: s.ShowSideBar,
		LightTheme:  s.LightTheme,
	}
}
