package mutate

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every NotFoundError under errors.Is.
var ErrNotFound = errors.New("not found")

type NotFoundError struct {
	Kind string
	ID   int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Kind, e.ID)
}

func (e NotFoundError) Is(target error) bool { return target == ErrNotFound }
