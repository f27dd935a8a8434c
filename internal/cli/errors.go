package cli

import (
	"errors"
	"fmt"
)

var errNoDocument = errors.New("no current document; pass --doc or open one in the TUI first")

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}
