// Package widget provides the input controls of the wizard. Each widget owns
// its local state and hands finished values to a Commit callback, usually
// bound to the form controller's UpdateField.
package widget

import (
	"fmt"

	"apply-wizard/internal/common/errors"
)

// Commit receives a finished value from a widget.
type Commit func(value interface{}) error

var (
	ErrUnknownOption = errors.New("UNKNOWN_OPTION")
	ErrInvalidDate   = errors.New("INVALID_DATE")
	ErrInvalidPhone  = errors.New("INVALID_PHONE")
)

// Bind returns a Commit that writes to path through update.
func Bind(update func(path string, value interface{}) error, path string) Commit {
	return func(value interface{}) error {
		return update(path, value)
	}
}

func commit(c Commit, value interface{}) error {
	if c == nil {
		return nil
	}
	if err := c(value); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
