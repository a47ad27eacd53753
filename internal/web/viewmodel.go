package web

import (
	"kanban-cli/internal/app"
	"kanban-cli/internal/board"
	"kanban-cli/internal/model"
)

type statusOption struct {
	Value    string
	Label    string
	Selected bool
}

type taskVM struct {
	ID          int64
	Title       string
	Description string
	Status      string
	Board       string
}

type columnVM struct {
	Status string
	Label  string
	Count  int
	Tasks  []taskVM
}

type boardLinkVM struct {
	Name   string
	Active bool
}

type pageVM struct {
	DatastarURL string
	BoardName   string
	Boards      []boardLinkVM
	Columns     []columnVM
	Hidden      int
	ShowSideBar bool
	LightTheme  bool
	ShowNew     bool
	Edit        *taskVM
	Error       string
}

func taskVMFrom(t model.Task) *taskVM {
	return &taskVM{ID: t.ID, Title: t.Title, Description: t.Description, Status: t.Status, Board: t.Board}
}

func newPageVM(st app.State, datastarURL string) pageVM {
	vm := pageVM{
		DatastarURL: datastarURL,
		BoardName:   st.ActiveBoard,
		ShowSideBar: st.ShowSideBar,
		LightTheme:  st.LightTheme,
		Hidden:      st.View.Hidden,
	}
	for _, b := range st.Boards {
		vm.Boards = append(vm.Boards, boardLinkVM{Name: b, Active: b == st.ActiveBoard})
	}
	for _, c := range st.View.Columns {
		col := columnVM{Status: c.Status, Label: c.Label, Count: len(c.Tasks)}
		for _, t := range c.Tasks {
			col.Tasks = append(col.Tasks, *taskVMFrom(t))
		}
		vm.Columns = append(vm.Columns, col)
	}
	return vm
}

// StatusOptions lists the columns as <select> options with selected marked.
// A selected status outside the columns gets its own trailing option, so a
// form submitted unchanged keeps it.
func (vm pageVM) StatusOptions(selected string) []statusOption {
	out := make([]statusOption, 0, len(vm.Columns)+1)
	cols := make([]board.Column, 0, len(vm.Columns))
	for i, c := range vm.Columns {
		sel := c.Status == selected || (selected == "" && i == 0)
		out = append(out, statusOption{Value: c.Status, Label: c.Label, Selected: sel})
		cols = append(cols, board.Column{Status: c.Status, Label: c.Label})
	}
	if selected != "" && !board.HasStatus(cols, selected) {
		out = append(out, statusOption{Value: selected, Label: board.LabelFor(cols, selected), Selected: true})
	}
	return out
}
