package cli

import (
	"fmt"
	"strconv"
	"strings"
)

type invalidArgError struct {
	name  string
	value string
	want  string
}

func (e invalidArgError) Error() string {
	return fmt.Sprintf("invalid %s %q (want %s)", e.name, e.value, e.want)
}

func errInvalidArg(name, value, want string) error {
	return invalidArgError{name: name, value: value, want: want}
}

// parseTaskID parses a task id argument. Ids are creation timestamps in ms.
func parseTaskID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, errInvalidArg("task id", raw, "integer")
	}
	return id, nil
}
