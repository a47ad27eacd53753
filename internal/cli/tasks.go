package cli

import (
	"context"
	"strings"

	"kanban-cli/internal/app"
	"kanban-cli/internal/board"
	"kanban-cli/internal/format"
	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"
	"kanban-cli/internal/statusutil"

	"github.com/spf13/cobra"
)

func newTasksCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "List, add, edit and delete tasks",
	}
	cmd.AddCommand(newTasksListCmd(a))
	cmd.AddCommand(newTasksShowCmd(a))
	cmd.AddCommand(newTasksAddCmd(a))
	cmd.AddCommand(newTasksEditCmd(a))
	cmd.AddCommand(newTasksDeleteCmd(a))
	return cmd
}

// filterTasks keeps storage order. Empty filters match everything.
func filterTasks(tasks []model.Task, boardName, status string) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if boardName != "" && t.Board != boardName {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		out = append(out, t)
	}
	return out
}

func newTasksListCmd(a *App) *cobra.Command {
	var boardName, status string
	var active bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in storage order",
		Example: strings.TrimSpace(`
kanban tasks list
kanban tasks list --board Roadmap --status doing
kanban tasks list --active
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cmd, a, func(ctx context.Context, c *app.Controller, s app.State) error {
				b := strings.TrimSpace(boardName)
				if active {
					b = s.ActiveBoard
				}
				tasks := filterTasks(s.Tasks, b, strings.TrimSpace(status))
				return writeOut(cmd, a, format.Envelope{
					Data: tasks,
					Meta: map[string]any{"count": len(tasks)},
				})
			})
		},
	}
	cmd.Flags().StringVar(&boardName, "board", "", "Only tasks of this board")
	cmd.Flags().StringVar(&status, "status", "", "Only tasks with this status")
	cmd.Flags().BoolVar(&active, "active", false, "Only tasks of the active board")
	return cmd
}

func newTasksShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withController(cmd, a, func(ctx context.Context, c *app.Controller, s app.State) error {
				t, ok := s.Task(id)
				if !ok {
					return mutate.NotFoundError{Kind: "task", ID: id}
				}
				return writeOut(cmd, a, format.Envelope{Data: t})
			})
		},
	}
}

func newTasksAddCmd(a *App) *cobra.Command {
	var title, description, status, boardName string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to the active board (or --board)",
		Example: strings.TrimSpace(`
kanban tasks add --title "Write docs"
kanban tasks add --title "Ship it" --status doing --board Roadmap
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cmd, a, func(ctx context.Context, c *app.Controller, s app.State) error {
				st, err := statusutil.NormalizeStatus(c.Columns, status)
				if err != nil {
					return err
				}
				in := mutate.NewTask{Title: title, Description: description, Status: st}
				var t model.Task
				if b := strings.TrimSpace(boardName); b != "" {
					_, t, err = c.AddTaskTo(ctx, b, in)
				} else {
					_, t, err = c.AddTask(ctx, in)
				}
				if err != nil {
					return err
				}
				env := format.Envelope{Data: t}
				if !board.HasStatus(c.Columns, t.Status) {
					env.Hint = "status " + t.Status + " matches no column; the task is stored but not shown on the board"
				}
				return writeOut(cmd, a, env)
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description (markdown)")
	cmd.Flags().StringVar(&status, "status", model.StatusTodo, "Task status: todo|doing|done (column labels such as TODO also match)")
	cmd.Flags().StringVar(&boardName, "board", "", "Board name (default: active board)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTasksEditCmd(a *App) *cobra.Command {
	var title, description, status string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit title, description or status of a task",
		Example: strings.TrimSpace(`
kanban tasks edit 1712345678000 --status done
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withController(cmd, a, func(ctx context.Context, c *app.Controller, s app.State) error {
				cur, ok := s.Task(id)
				if !ok {
					return mutate.NotFoundError{Kind: "task", ID: id}
				}
				e := mutate.Edit{Title: cur.Title, Description: cur.Description, Status: cur.Status}
				if cmd.Flags().Changed("title") {
					e.Title = title
				}
				if cmd.Flags().Changed("description") {
					e.Description = description
				}
				if cmd.Flags().Changed("status") {
					st, err := statusutil.NormalizeStatus(c.Columns, status)
					if err != nil {
						return err
					}
					e.Status = st
				}
				next, err := c.SaveTaskChanges(ctx, id, e)
				if err != nil {
					return err
				}
				t, _ := next.Task(id)
				return writeOut(cmd, a, format.Envelope{Data: t})
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&status, "status", "", "New status")
	return cmd
}

func newTasksDeleteCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task (no-op if the id is not stored)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withController(cmd, a, func(ctx context.Context, c *app.Controller, s app.State) error {
				next, removed, err := c.DeleteTask(ctx, id)
				if err != nil {
					return err
				}
				return writeOut(cmd, a, format.Envelope{
					Data: map[string]any{"id": id, "deleted": removed},
					Meta: map[string]any{"activeBoard": next.ActiveBoard, "tasks": len(next.Tasks)},
				})
			})
		},
	}
}
