package schema

import (
	"fmt"
	"sort"

	"apply-wizard/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

const draft07 = "http://json-schema.org/draft-07/schema#"

// JSONSchema exports the rules as a draft-07 document. Conditionals and
// list gates become if/then clauses.
func (s *Schema) JSONSchema() map[string]interface{} {
	properties := map[string]interface{}{}
	required := []string{}

	for _, f := range s.Fields {
		properties[f.Name] = fieldProperty(f)
		if !f.Optional {
			required = append(required, f.Name)
		}
	}

	var allOf []interface{}

	for _, c := range s.Conditionals {
		prop, ok := properties[c.Discriminator].(map[string]interface{})
		if !ok {
			prop = map[string]interface{}{"type": "string"}
			required = append(required, c.Discriminator)
		}
		prop["enum"] = stringsToAny(c.Values)
		properties[c.Discriminator] = prop

		for _, value := range sortedKeys(c.Requires) {
			thenProps, thenRequired := objectParts(c.Requires[value])
			allOf = append(allOf, map[string]interface{}{
				"if": map[string]interface{}{
					"properties": map[string]interface{}{
						c.Discriminator: map[string]interface{}{"const": value},
					},
					"required": []interface{}{c.Discriminator},
				},
				"then": objectSchema(thenProps, thenRequired),
			})
		}
	}

	for _, l := range s.Lists {
		itemProps, itemRequired := objectParts(l.Element)
		arrayProp := map[string]interface{}{
			"type": "array",
			"items": withType(objectSchema(itemProps, itemRequired), "object"),
		}
		if l.Gate == "" {
			properties[l.Name] = arrayProp
			continue
		}
		properties[l.Gate] = map[string]interface{}{"type": "boolean"}
		allOf = append(allOf, map[string]interface{}{
			"if": map[string]interface{}{
				"properties": map[string]interface{}{
					l.Gate: map[string]interface{}{"const": true},
				},
				"required": []interface{}{l.Gate},
			},
			"then": map[string]interface{}{
				"properties": map[string]interface{}{l.Name: arrayProp},
				"required":   []interface{}{l.Name},
			},
		})
	}

	doc := withType(objectSchema(properties, stringsToAny(required)), "object")
	doc["$schema"] = draft07
	doc["title"] = s.Step
	if len(allOf) > 0 {
		doc["allOf"] = allOf
	}
	return doc
}

// CheckDocument validates rec against the exported JSON schema and returns
// the violations as "field: description" strings.
func (s *Schema) CheckDocument(rec models.Record) (bool, []string, error) {
	if rec == nil {
		rec = models.Record{}
	}
	schemaLoader := gojsonschema.NewGoLoader(s.JSONSchema())
	documentLoader := gojsonschema.NewGoLoader(map[string]interface{}(rec))

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return false, nil, fmt.Errorf("validation error: %w", err)
	}
	if result.Valid() {
		return true, nil, nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		// if/then failures repeat the nested error as a summary line.
		if desc.Type() == "condition_then" || desc.Type() == "number_all_of" {
			continue
		}
		errs = append(errs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	sort.Strings(errs)
	return false, errs, nil
}

func fieldProperty(f Field) map[string]interface{} {
	if f.Kind == KindStringList {
		items := map[string]interface{}{"type": "string"}
		if len(f.Enum) > 0 {
			items["enum"] = stringsToAny(f.Enum)
		}
		return map[string]interface{}{"type": "array", "items": items}
	}

	prop := map[string]interface{}{"type": "string"}
	switch {
	case f.MinLength > 0 && f.Optional:
		// an optional field may be left blank
		prop["anyOf"] = []interface{}{
			map[string]interface{}{"maxLength": 0},
			map[string]interface{}{"minLength": f.MinLength},
		}
	case f.MinLength > 0:
		prop["minLength"] = f.MinLength
	}
	if len(f.Enum) > 0 {
		prop["enum"] = stringsToAny(f.Enum)
	}
	switch f.Format {
	case FormatEmail:
		prop["format"] = "email"
	case FormatNumeric:
		prop["pattern"] = "^[0-9]+$"
	}
	return prop
}

func objectParts(fields []Field) (map[string]interface{}, []interface{}) {
	props := map[string]interface{}{}
	required := []interface{}{}
	for _, f := range fields {
		props[f.Name] = fieldProperty(f)
		if !f.Optional {
			required = append(required, f.Name)
		}
	}
	return props, required
}

// objectSchema omits an empty required list.
func objectSchema(props map[string]interface{}, required []interface{}) map[string]interface{} {
	out := map[string]interface{}{"properties": props}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

func withType(m map[string]interface{}, typ string) map[string]interface{} {
	m["type"] = typ
	return m
}

func sortedKeys(m map[string][]Field) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func stringsToAny(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
