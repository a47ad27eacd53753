package model

// Task is one card on a board.
//
// ID is a unix-millisecond timestamp taken at creation. Board and Status are
// free-form and compared by equality; nothing enforces that they name an
// existing board or column.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Board       string `json:"board"`
}

// Preferences are the UI flags persisted next to the task collection.
type Preferences struct {
	ActiveBoard string `json:"activeBoard"`
	ShowSideBar bool   `json:"showSideBar"`
	LightTheme  bool   `json:"lightTheme"`
}

const (
	StatusTodo  = "todo"
	StatusDoing = "doing"
	StatusDone  = "done"
)

// FindTask returns the index of the first task with id, or -1.
func FindTask(tasks []Task, id int64) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
