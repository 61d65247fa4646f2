// internal/models/record.go
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidPath = errors.New("INVALID_FIELD_PATH")
)

// Record is the per-step data collected from the applicant. Values follow
// JSON semantics: string, bool, float64, []interface{} and
// map[string]interface{}.
type Record map[string]interface{}

// SplitPath breaks a dotted field path ("previousEmployers.1.jobTitle") into
// its segments.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// JoinPath is the inverse of SplitPath.
func JoinPath(segments ...string) string {
	return strings.Join(segments, ".")
}

// Get resolves path against the record.
func (r Record) Get(path string) (interface{}, bool) {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return nil, false
	}

	var cur interface{} = map[string]interface{}(r)
	for _, seg := range segments {
		if list := AsList(cur); list != nil {
			cur = list
		}
		switch node := cur.(type) {
		case map[string]interface{}:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case Record:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []interface{}:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

// String returns the string at path, or "" when absent or not a string.
func (r Record) String(path string) string {
	v, ok := r.Get(path)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Bool returns the bool at path, or false when absent or not a bool.
func (r Record) Bool(path string) bool {
	v, ok := r.Get(path)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// List returns the sequence at path, or nil when absent or not a sequence.
func (r Record) List(path string) []interface{} {
	v, ok := r.Get(path)
	if !ok {
		return nil
	}
	return AsList(v)
}

// AsList normalizes the sequence shapes a record can carry after decoding or
// after being populated from Go code.
func AsList(v interface{}) []interface{} {
	switch list := v.(type) {
	case []interface{}:
		return list
	case []map[string]interface{}:
		out := make([]interface{}, len(list))
		for i, item := range list {
			out[i] = item
		}
		return out
	case []string:
		out := make([]interface{}, len(list))
		for i, item := range list {
			out[i] = item
		}
		return out
	default:
		return nil
	}
}

// Set writes value at path, creating intermediate objects. A list segment
// must address an existing element or the slot right after the last one.
func (r Record) Set(path string, value interface{}) error {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if r == nil {
		return fmt.Errorf("%w: nil record", ErrInvalidPath)
	}

	updated, err := setIn(map[string]interface{}(r), segments, value, path)
	if err != nil {
		return err
	}
	root := updated.(map[string]interface{})
	for k, v := range root {
		r[k] = v
	}
	return nil
}

func setIn(node interface{}, segments []string, value interface{}, path string) (interface{}, error) {
	seg := segments[0]
	last := len(segments) == 1

	switch n := node.(type) {
	case nil:
		if _, err := strconv.Atoi(seg); err == nil {
			return setIn([]interface{}{}, segments, value, path)
		}
		return setIn(map[string]interface{}{}, segments, value, path)
	case Record:
		return setIn(map[string]interface{}(n), segments, value, path)
	case map[string]interface{}:
		if last {
			n[seg] = value
			return n, nil
		}
		child, err := setIn(n[seg], segments[1:], value, path)
		if err != nil {
			return nil, err
		}
		n[seg] = child
		return n, nil
	case []interface{}:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx > len(n) {
			return nil, fmt.Errorf("%w: %q has no element %q", ErrInvalidPath, path, seg)
		}
		if idx == len(n) {
			n = append(n, nil)
		}
		if last {
			n[idx] = value
			return n, nil
		}
		child, err := setIn(n[idx], segments[1:], value, path)
		if err != nil {
			return nil, err
		}
		n[idx] = child
		return n, nil
	default:
		if list := AsList(node); list != nil {
			return setIn(list, segments, value, path)
		}
		return nil, fmt.Errorf("%w: %q crosses a %T value", ErrInvalidPath, path, node)
	}
}

// Clone deep-copies the record with JSON semantics.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case Record:
		return map[string]interface{}(val.Clone())
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []map[string]interface{}, []string:
		return cloneValue(AsList(val))
	default:
		return val
	}
}

// Decode parses the JSON object stored for a step. Empty input and "null"
// decode to an empty record.
func Decode(data []byte) (Record, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return Record{}, nil
	}
	var rec Record
	if err := json.Unmarshal([]byte(trimmed), &rec); err != nil {
		return nil, err
	}
	if rec == nil {
		rec = Record{}
	}
	return rec, nil
}

// Encode serializes the record; a nil record encodes as "{}".
func (r Record) Encode() ([]byte, error) {
	if r == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]interface{}(r))
}
