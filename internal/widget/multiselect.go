package widget

import "fmt"

// MultiSelect keeps a set of checked options while its menu is open and
// commits them, in option order, on Close or Commit.
type MultiSelect struct {
	Options  []string
	OnCommit Commit

	open     bool
	selected map[string]bool
}

func NewMultiSelect(options []string, onCommit Commit) *MultiSelect {
	return &MultiSelect{Options: options, OnCommit: onCommit, selected: map[string]bool{}}
}

// Load replaces the selection with values already stored for the field.
// Unknown values are dropped.
func (m *MultiSelect) Load(values []interface{}) {
	m.selected = map[string]bool{}
	for _, v := range values {
		if s, ok := v.(string); ok && contains(m.Options, s) {
			m.selected[s] = true
		}
	}
}

func (m *MultiSelect) Open() { m.open = true }

func (m *MultiSelect) IsOpen() bool { return m.open }

// Close closes the menu and commits the selection.
func (m *MultiSelect) Close() error {
	m.open = false
	return m.Commit()
}

func (m *MultiSelect) Toggle(v string) error {
	if !contains(m.Options, v) {
		return fmt.Errorf("%w: %q", ErrUnknownOption, v)
	}
	m.selected[v] = !m.selected[v]
	return nil
}

func (m *MultiSelect) Clear() { m.selected = map[string]bool{} }

func (m *MultiSelect) Selected() []string {
	out := []string{}
	for _, opt := range m.Options {
		if m.selected[opt] {
			out = append(out, opt)
		}
	}
	return out
}

func (m *MultiSelect) Commit() error {
	selected := m.Selected()
	value := make([]interface{}, len(selected))
	for i, s := range selected {
		value[i] = s
	}
	return commit(m.OnCommit, value)
}
