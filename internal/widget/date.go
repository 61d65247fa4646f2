package widget

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the committed date format.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	"02/01/2006",
	time.RFC3339,
}

// NormalizeDate converts an accepted date representation to YYYY-MM-DD.
func NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(DateLayout), true
		}
	}
	return "", false
}

// DateInput accepts YYYY-MM-DD, DD/MM/YYYY or RFC3339 and commits ISO dates.
type DateInput struct {
	OnCommit Commit

	value string
}

func NewDateInput(onCommit Commit) *DateInput {
	return &DateInput{OnCommit: onCommit}
}

func (d *DateInput) Value() string { return d.value }

func (d *DateInput) Enter(s string) error {
	if strings.TrimSpace(s) == "" {
		d.value = ""
		return commit(d.OnCommit, "")
	}
	normalized, ok := NormalizeDate(s)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	d.value = normalized
	return commit(d.OnCommit, normalized)
}
