package widget

import "fmt"

// Select picks one value from a fixed option list. Choosing the placeholder
// clears the field.
type Select struct {
	Options     []string
	Placeholder string
	OnCommit    Commit

	value string
}

func NewSelect(options []string, placeholder string, onCommit Commit) *Select {
	return &Select{Options: options, Placeholder: placeholder, OnCommit: onCommit}
}

// Set shows an existing value without committing it, e.g. after a load.
func (s *Select) Set(v string) { s.value = v }

func (s *Select) Value() string { return s.value }

func (s *Select) Choose(v string) error {
	if v == s.Placeholder || v == "" {
		s.value = ""
		return commit(s.OnCommit, "")
	}
	if !contains(s.Options, v) {
		return fmt.Errorf("%w: %q", ErrUnknownOption, v)
	}
	s.value = v
	return commit(s.OnCommit, v)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
