// Package steps holds the wizard's step catalog: the form definitions with
// their validation rules, defaults and input layout.
package steps

import (
	"strconv"
	"strings"

	"apply-wizard/internal/models"
	"apply-wizard/internal/schema"
)

// Storage keys of the steps that carry a form.
const (
	KeyPersonalInfo = "personalInfo"
	KeyHistory      = "historyInfo"
	KeySkills       = "skills"
)

// InputKind names the widget that edits a field.
type InputKind string

const (
	InputText        InputKind = "text"
	InputSelect      InputKind = "select"
	InputMultiSelect InputKind = "multiselect"
	InputDate        InputKind = "date"
	InputPhone       InputKind = "phone"
	InputToggle      InputKind = "toggle"
)

type Input struct {
	Path    string
	Label   string
	Kind    InputKind
	Options []string
	// ShowWhen, when set, shows the input only while the named field holds
	// the given value.
	ShowWhen *Condition
}

type Condition struct {
	Path  string
	Value interface{}
}

// ListLayout describes how elements of a repeated sub-record are edited.
type ListLayout struct {
	Name   string
	Label  string
	Inputs []Input
}

type Definition struct {
	Key    string
	Title  string
	Schema *schema.Schema
	Inputs []Input
	Lists  []ListLayout
	// DateFields are normalized to YYYY-MM-DD on load. A "*" segment
	// matches every list element.
	DateFields []string

	defaults func() models.Record
}

// Defaults returns a fresh copy of the step's default record.
func (d *Definition) Defaults() models.Record {
	if d.defaults == nil {
		return models.Record{}
	}
	return d.defaults()
}

// ListLayout looks up the layout of a repeated sub-record.
func (d *Definition) ListLayout(name string) (ListLayout, bool) {
	for _, l := range d.Lists {
		if l.Name == name {
			return l, true
		}
	}
	return ListLayout{}, false
}

// ExpandDateFields resolves wildcard date paths against rec.
func (d *Definition) ExpandDateFields(rec models.Record) []string {
	var out []string
	for _, pattern := range d.DateFields {
		out = append(out, expand(rec, models.SplitPath(pattern), "")...)
	}
	return out
}

func expand(rec models.Record, segments []string, prefix string) []string {
	if len(segments) == 0 {
		return []string{prefix}
	}
	seg := segments[0]
	if seg != "*" {
		return expand(rec, segments[1:], join(prefix, seg))
	}
	var out []string
	for i := range rec.List(prefix) {
		out = append(out, expand(rec, segments[1:], join(prefix, strconv.Itoa(i)))...)
	}
	return out
}

func join(prefix, seg string) string {
	if prefix == "" {
		return seg
	}
	return prefix + "." + seg
}

// Step is one entry of the navigator's fixed route list. Form is nil for
// steps without a form.
type Step struct {
	Title string
	Route string
	Form  *Definition
}

// Catalog returns the wizard's steps in navigation order.
func Catalog() []Step {
	return []Step{
		{Title: "Personal info", Route: "/apply/personal-info", Form: PersonalInfo()},
		{Title: "Additional info", Route: "/apply/additional-info"},
		{Title: "History", Route: "/apply/history", Form: History()},
		{Title: "Skills", Route: "/apply/skills", Form: Skills()},
		{Title: "Review", Route: "/apply/review"},
	}
}

// Definitions returns every step that carries a form.
func Definitions() []*Definition {
	return []*Definition{PersonalInfo(), History(), Skills()}
}

// Lookup finds a form definition by storage key, case-insensitively.
func Lookup(key string) (*Definition, bool) {
	for _, def := range Definitions() {
		if strings.EqualFold(def.Key, key) {
			return def, true
		}
	}
	return nil, false
}
