// Package schema declares per-step validation rules, including fields whose
// presence depends on another field's value, and checks records against them.
package schema

import (
	"sort"
)

// Format is an extra string shape check applied after the length rule.
type Format int

const (
	FormatNone Format = iota
	FormatEmail
	FormatNumeric
)

// Kind selects how a field value is read.
type Kind int

const (
	KindString Kind = iota
	// KindStringList is an array of strings, each checked against Enum.
	KindStringList
)

type Field struct {
	Name      string
	Kind      Kind
	MinLength int
	Format    Format
	Enum      []string
	Optional  bool
}

// Conditional is a tagged variant: Discriminator must hold one of Values,
// and the value selects the fields that become required alongside it.
type Conditional struct {
	Discriminator string
	Values        []string
	Requires      map[string][]Field
}

// List is a repeated sub-record. When Gate names a boolean field, elements
// are validated only while that field is true.
type List struct {
	Name    string
	Gate    string
	Element []Field
}

type Schema struct {
	Step         string
	Fields       []Field
	Conditionals []Conditional
	Lists        []List
}

// Errors maps a field path to the first failing rule's message.
type Errors map[string]string

func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for path := range e {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

func (e Errors) Has(path string) bool {
	_, ok := e[path]
	return ok
}

func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// FindList looks up a list by name.
func (s *Schema) FindList(name string) (List, bool) {
	for _, l := range s.Lists {
		if l.Name == name {
			return l, true
		}
	}
	return List{}, false
}
