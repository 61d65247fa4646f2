package schema

import (
	"strconv"
	"unicode/utf8"

	"apply-wizard/internal/models"

	"github.com/asaskevich/govalidator"
)

// Validate checks rec against every rule and returns one message per
// failing path. An empty result means the record is valid. rec is not
// modified.
func (s *Schema) Validate(rec models.Record) Errors {
	errs := Errors{}

	for _, f := range s.Fields {
		s.checkInto(errs, rec, f.Name, f)
	}

	for _, c := range s.Conditionals {
		path := c.Discriminator
		if errs.Has(path) {
			continue
		}
		raw, ok := rec.Get(path)
		value, isString := raw.(string)
		if !ok || !isString {
			errs[path] = msgRequired
			continue
		}
		if !contains(c.Values, value) {
			errs[path] = msgInvalidEnum(c.Values)
			continue
		}
		for _, f := range c.Requires[value] {
			s.checkInto(errs, rec, f.Name, f)
		}
	}

	for _, l := range s.Lists {
		s.checkList(errs, rec, l)
	}

	return errs
}

// ValidateField reports the message for a single path, resolved against the
// whole record so conditional and gated rules apply.
func (s *Schema) ValidateField(rec models.Record, path string) (string, bool) {
	msg, ok := s.Validate(rec)[path]
	return msg, ok
}

func (s *Schema) checkInto(errs Errors, rec models.Record, path string, f Field) {
	if errs.Has(path) {
		return
	}
	raw, present := rec.Get(path)
	if msg, bad := checkField(f, raw, present); bad {
		errs[path] = msg
	}
}

func (s *Schema) checkList(errs Errors, rec models.Record, l List) {
	if l.Gate != "" {
		gate, present := rec.Get(l.Gate)
		if present && gate != nil {
			if _, isBool := gate.(bool); !isBool {
				errs[l.Gate] = msgExpectBool
				return
			}
		}
		if !rec.Bool(l.Gate) {
			return
		}
	}

	raw, present := rec.Get(l.Name)
	if !present || raw == nil {
		if l.Gate != "" {
			errs[l.Name] = msgRequired
		}
		return
	}
	items := models.AsList(raw)
	if items == nil {
		errs[l.Name] = msgExpectArray
		return
	}

	for i, item := range items {
		prefix := models.JoinPath(l.Name, strconv.Itoa(i))
		if _, isObject := item.(map[string]interface{}); !isObject {
			if _, isRecord := item.(models.Record); !isRecord {
				errs[prefix] = msgExpectObject
				continue
			}
		}
		for _, f := range l.Element {
			s.checkInto(errs, rec, models.JoinPath(prefix, f.Name), f)
		}
	}
}

func checkField(f Field, raw interface{}, present bool) (string, bool) {
	if !present || raw == nil {
		if f.Optional {
			return "", false
		}
		return msgRequired, true
	}

	if f.Kind == KindStringList {
		items := models.AsList(raw)
		if items == nil {
			return msgExpectArray, true
		}
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return msgRequired, true
			}
			if len(f.Enum) > 0 && !contains(f.Enum, s) {
				return msgInvalidEnum(f.Enum), true
			}
		}
		return "", false
	}

	value, ok := raw.(string)
	if !ok {
		return msgRequired, true
	}
	if f.Optional && value == "" {
		return "", false
	}
	if f.MinLength > 0 && utf8.RuneCountInString(value) < f.MinLength {
		return msgTooSmall(f.MinLength), true
	}
	if len(f.Enum) > 0 && !contains(f.Enum, value) {
		return msgInvalidEnum(f.Enum), true
	}
	switch f.Format {
	case FormatEmail:
		if !govalidator.IsEmail(value) {
			return msgInvalidEmail, true
		}
	case FormatNumeric:
		if !govalidator.IsNumeric(value) {
			return msgInvalidNumber, true
		}
	}
	return "", false
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
