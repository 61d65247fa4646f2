// Package navigator tracks the active step of a fixed, linear route list.
package navigator

import (
	"fmt"

	"apply-wizard/internal/common/errors"
)

var ErrNoSuchStep = errors.New("STEP_NOT_FOUND")

type Step struct {
	Title string
	Route string
	// Key is the storage key of the step's form, empty for steps without one.
	Key string
}

// Navigator has no guards: any step can be selected at any time.
type Navigator struct {
	steps   []Step
	current int
}

func New(steps []Step) *Navigator {
	return &Navigator{steps: append([]Step(nil), steps...)}
}

func (n *Navigator) Current() int { return n.current }

func (n *Navigator) CurrentStep() Step { return n.steps[n.current] }

func (n *Navigator) Steps() []Step { return append([]Step(nil), n.steps...) }

func (n *Navigator) Len() int { return len(n.steps) }

func (n *Navigator) SelectStep(i int) error {
	if i < 0 || i >= len(n.steps) {
		return fmt.Errorf("%w: index %d of %d", ErrNoSuchStep, i, len(n.steps))
	}
	n.current = i
	return nil
}

func (n *Navigator) SelectRoute(route string) error {
	i, ok := n.IndexOf(route)
	if !ok {
		return fmt.Errorf("%w: route %q", ErrNoSuchStep, route)
	}
	n.current = i
	return nil
}

// IndexOf finds a step by route.
func (n *Navigator) IndexOf(route string) (int, bool) {
	for i, s := range n.steps {
		if s.Route == route {
			return i, true
		}
	}
	return -1, false
}

// Advance moves to the next step; it returns false on the last one.
func (n *Navigator) Advance() bool {
	if n.current >= len(n.steps)-1 {
		return false
	}
	n.current++
	return true
}

func (n *Navigator) IsActive(i int) bool { return i == n.current }

// Reached reports whether step i is at or before the active step.
func (n *Navigator) Reached(i int) bool { return i >= 0 && i <= n.current }
