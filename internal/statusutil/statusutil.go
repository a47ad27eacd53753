// Package statusutil resolves user-typed statuses against the board columns.
package statusutil

import (
	"fmt"
	"strings"

	"kanban-cli/internal/board"
)

// NormalizeStatus maps s onto a column status, matching the status id or the
// column label case-insensitively ("TODO", "Doing" -> "todo", "doing").
// Statuses are free-form, so an unmatched value is kept trimmed.
func NormalizeStatus(cols []board.Column, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("invalid status: empty")
	}
	for _, c := range cols {
		if strings.EqualFold(s, c.Status) || strings.EqualFold(s, c.Label) {
			return c.Status, nil
		}
	}
	return s, nil
}

// IsEndState reports whether status is the last column, the one a task
// reaches when it is finished.
func IsEndState(cols []board.Column, status string) bool {
	if len(cols) == 0 {
		return strings.EqualFold(strings.TrimSpace(status), "done")
	}
	return cols[len(cols)-1].Status == strings.TrimSpace(status)
}
