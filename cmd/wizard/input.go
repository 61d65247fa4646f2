// cmd/wizard/input.go
package main

import (
	"fmt"
	"strconv"
	"strings"

	"apply-wizard/internal/form"
	"apply-wizard/internal/models"
	"apply-wizard/internal/steps"
	"apply-wizard/internal/widget"
)

// inputFor finds the input that edits path, including list element paths
// such as previousEmployers.0.jobTitle.
func inputFor(def *steps.Definition, path string) (steps.Input, bool) {
	for _, in := range def.Inputs {
		if in.Path == path {
			return in, true
		}
	}
	segs := models.SplitPath(path)
	if len(segs) != 3 {
		return steps.Input{}, false
	}
	layout, ok := def.ListLayout(segs[0])
	if !ok {
		return steps.Input{}, false
	}
	for _, in := range layout.Inputs {
		if in.Path == segs[2] {
			in.Path = path
			return in, true
		}
	}
	return steps.Input{}, false
}

// applyInput sends raw through the widget of path's input. Paths without an
// input are written as text.
func applyInput(c *form.Controller, path, raw string) error {
	in, ok := inputFor(c.Step(), path)
	if !ok {
		in = steps.Input{Path: path, Kind: steps.InputText}
	}
	commit := widget.Bind(c.UpdateField, path)

	switch in.Kind {
	case steps.InputSelect:
		return widget.NewSelect(in.Options, "", commit).Choose(strings.TrimSpace(raw))
	case steps.InputMultiSelect:
		m := widget.NewMultiSelect(in.Options, commit)
		m.Open()
		for _, v := range splitValues(raw) {
			if err := m.Toggle(v); err != nil {
				return err
			}
		}
		return m.Close()
	case steps.InputDate:
		return widget.NewDateInput(commit).Enter(raw)
	case steps.InputPhone:
		return widget.NewPhoneInput(commit).Enter(raw)
	case steps.InputToggle:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%s: expected true or false", path)
		}
		return c.UpdateField(path, b)
	default:
		return c.UpdateField(path, raw)
	}
}

func splitValues(raw string) []string {
	seen := map[string]bool{}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// visible reports whether in should be shown for the live record.
func visible(c *form.Controller, in steps.Input) bool {
	if in.ShowWhen == nil {
		return true
	}
	v, _ := c.Value(in.ShowWhen.Path)
	return v == in.ShowWhen.Value
}

func display(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(val)
	}
}
