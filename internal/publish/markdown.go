package publish

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"kanban-cli/internal/board"
	"kanban-cli/internal/model"
	"kanban-cli/internal/statusutil"
)

// RenderTaskMarkdown renders one task as a standalone page.
func RenderTaskMarkdown(t model.Task, cols []board.Column) string {
	var b strings.Builder
	writeLn := func(s string) {
		b.WriteString(s)
		b.WriteString("\n")
	}

	title := strings.TrimSpace(t.Title)
	if title == "" {
		title = "(untitled)"
	}
	writeLn("# " + title)
	writeLn("")
	writeLn("## Meta")
	writeLn("")
	writeLn("- ID: " + strconv.FormatInt(t.ID, 10))
	writeLn("- Board: " + t.Board)
	writeLn("- Status: " + board.LabelFor(cols, t.Status))
	if statusutil.IsEndState(cols, t.Status) {
		writeLn("- Finished: true")
	}
	writeLn("- Created: " + time.UnixMilli(t.ID).UTC().Format(time.RFC3339))

	if desc := strings.TrimSpace(t.Description); desc != "" {
		writeLn("")
		writeLn("## Description")
		writeLn("")
		writeLn(desc)
	}
	return b.String()
}

// RenderBoardMarkdown renders the column projection as an index page. With
// links set, each task links to its page under tasks/.
func RenderBoardMarkdown(v board.View, links bool) string {
	var b strings.Builder
	writeLn := func(s string) {
		b.WriteString(s)
		b.WriteString("\n")
	}

	writeLn("# " + v.Board)
	writeLn("")
	pages := taskPages(v)
	for ci, c := range v.Columns {
		writeLn(fmt.Sprintf("## %s (%d)", c.Label, len(c.Tasks)))
		writeLn("")
		if len(c.Tasks) == 0 {
			writeLn("_(empty)_")
			writeLn("")
			continue
		}
		for ti, t := range c.Tasks {
			check := " "
			if statusutil.IsEndState(boardColumns(v), t.Status) {
				check = "x"
			}
			title := strings.TrimSpace(t.Title)
			if links {
				title = fmt.Sprintf("[%s](tasks/%s)", title, pages[ci][ti])
			}
			writeLn(fmt.Sprintf("- [%s] %s", check, title))
		}
		writeLn("")
	}
	if v.Hidden > 0 {
		writeLn(fmt.Sprintf("_%d task(s) with a status outside these columns are not listed._", v.Hidden))
	}
	return b.String()
}

func boardColumns(v board.View) []board.Column {
	cols := make([]board.Column, 0, len(v.Columns))
	for _, c := range v.Columns {
		cols = append(cols, c.Column)
	}
	return cols
}

// taskPages names each shown task's page, indexed like v.Columns[i].Tasks[j].
// The page is <id>.md; tasks sharing an id get <id>-2.md, <id>-3.md and so on.
func taskPages(v board.View) [][]string {
	seen := map[int64]int{}
	out := make([][]string, len(v.Columns))
	for i, c := range v.Columns {
		out[i] = make([]string, len(c.Tasks))
		for j, t := range c.Tasks {
			seen[t.ID]++
			name := strconv.FormatInt(t.ID, 10)
			if n := seen[t.ID]; n > 1 {
				name += "-" + strconv.Itoa(n)
			}
			out[i][j] = name + ".md"
		}
	}
	return out
}
