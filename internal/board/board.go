// Package board derives boards and status columns from the flat task
// collection. Nothing here is stored: every View is rebuilt from the tasks it
// is given.
package board

import (
	"strings"

	"kanban-cli/internal/model"

	"github.com/sirupsen/logrus"
)

// Column is one status bucket. The column set belongs to the presentation,
// not to the data: a status no column claims is not shown.
type Column struct {
	Status string `json:"status"`
	Label  string `json:"label"`
}

// DefaultColumns is the column layout every UI renders.
var DefaultColumns = []Column{
	{Status: model.StatusTodo, Label: "TODO"},
	{Status: model.StatusDoing, Label: "DOING"},
	{Status: model.StatusDone, Label: "DONE"},
}

// Statuses lists the column statuses in display order.
func Statuses(cols []Column) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, c.Status)
	}
	return out
}

// HasStatus reports whether some column claims status.
func HasStatus(cols []Column, status string) bool {
	for _, c := range cols {
		if c.Status == status {
			return true
		}
	}
	return false
}

// Boards returns the distinct non-empty board names in first-seen order.
func Boards(tasks []model.Task) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, t := range tasks {
		if t.Board == "" || seen[t.Board] {
			continue
		}
		seen[t.Board] = true
		out = append(out, t.Board)
	}
	return out
}

// ResolveActive picks the board to render: the persisted choice when it still
// names a derived board, else the first derived board, else "".
func ResolveActive(persisted string, boards []string) string {
	if len(boards) == 0 {
		return ""
	}
	if persisted != "" {
		for _, b := range boards {
			if b == persisted {
				return persisted
			}
		}
	}
	return boards[0]
}

// ColumnView is one rendered column.
type ColumnView struct {
	Column
	Tasks []model.Task `json:"tasks"`
}

// View is the column projection of one board.
type View struct {
	Board   string       `json:"board"`
	Columns []ColumnView `json:"columns"`
	// Hidden counts tasks of the board whose status matches no column.
	Hidden int `json:"hidden"`
}

// Project partitions the tasks of boardName into cols, preserving storage
// order inside each column. Tasks whose status matches no column are skipped
// and logged.
func Project(tasks []model.Task, boardName string, cols []Column, log logrus.FieldLogger) View {
	v := View{Board: boardName, Columns: make([]ColumnView, len(cols))}
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		v.Columns[i] = ColumnView{Column: c, Tasks: []model.Task{}}
		if _, dup := idx[c.Status]; !dup {
			idx[c.Status] = i
		}
	}
	for _, t := range tasks {
		if t.Board != boardName {
			continue
		}
		i, ok := idx[t.Status]
		if !ok {
			v.Hidden++
			if log != nil {
				log.WithFields(logrus.Fields{"task": t.ID, "status": t.Status}).Warn("column not found for status")
			}
			continue
		}
		v.Columns[i].Tasks = append(v.Columns[i].Tasks, t)
	}
	return v
}

// Column returns the column for status.
func (v View) Column(status string) (ColumnView, bool) {
	for _, c := range v.Columns {
		if c.Status == status {
			return c, true
		}
	}
	return ColumnView{}, false
}

// Len is the number of visible tasks.
func (v View) Len() int {
	n := 0
	for _, c := range v.Columns {
		n += len(c.Tasks)
	}
	return n
}

// Locate returns the column and row of the task with id.
func (v View) Locate(id int64) (col, row int, ok bool) {
	for ci, c := range v.Columns {
		for ri, t := range c.Tasks {
			if t.ID == id {
				return ci, ri, true
			}
		}
	}
	return 0, 0, false
}

// LabelFor returns the column label for status, or the upper-cased status.
func LabelFor(cols []Column, status string) string {
	for _, c := range cols {
		if c.Status == status {
			return c.Label
		}
	}
	return strings.ToUpper(status)
}
