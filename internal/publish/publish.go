// Package publish exports a board as a tree of markdown files.
package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"kanban-cli/internal/board"
)

type WriteOptions struct {
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteBoard writes <toDir>/boards/<slug>/index.md and one page per shown
// task under tasks/. Tasks sharing an id get suffixed pages.
func WriteBoard(v board.View, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	if strings.TrimSpace(v.Board) == "" {
		return WriteResult{}, errors.New("missing board")
	}
	boardDir := filepath.Join(filepath.Clean(toDir), "boards", Slug(v.Board))
	tasksDir := filepath.Join(boardDir, "tasks")
	if err := os.MkdirAll(tasksDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	indexPath := filepath.Join(boardDir, "index.md")
	if err := writeFile(indexPath, []byte(RenderBoardMarkdown(v, true)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	written := []string{indexPath}

	cols := boardColumns(v)
	pages := taskPages(v)
	for ci, c := range v.Columns {
		for ti, t := range c.Tasks {
			p := filepath.Join(tasksDir, pages[ci][ti])
			if err := writeFile(p, []byte(RenderTaskMarkdown(t, cols)), opt.Overwrite); err != nil {
				return WriteResult{}, err
			}
			written = append(written, p)
		}
	}
	return WriteResult{Written: written}, nil
}

// Slug turns a board name into a path segment: lower case, runs of anything
// but letters and digits collapsed to "-".
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "board"
	}
	return s
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
