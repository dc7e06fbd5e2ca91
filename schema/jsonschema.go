// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// ToJSONSchema converts s into a JSON Schema document.
//
// The result is used to describe flows over HTTP and to instruct models that have no native
// response schema support.
func ToJSONSchema(s *Schema) map[string]any {
	if s == nil {
		return nil
	}

	js := map[string]any{}
	if s.Description != "" {
		js["description"] = s.Description
	}
	if s.Default != nil {
		js["default"] = copyValue(s.Default)
	}

	switch s.Kind {
	case KindString:
		js["type"] = "string"
		if s.MinLength != nil {
			js["minLength"] = *s.MinLength
		}
		if s.MaxLength != nil {
			js["maxLength"] = *s.MaxLength
		}
	case KindNumber, KindInteger, KindBoolean:
		js["type"] = string(s.Kind)
	case KindEnum:
		js["type"] = "string"
		enum := make([]any, len(s.Enum))
		for i, m := range s.Enum {
			enum[i] = m
		}
		js["enum"] = enum
	case KindArray:
		js["type"] = "array"
		if s.Items != nil {
			js["items"] = ToJSONSchema(s.Items)
		}
		if s.MinItems != nil {
			js["minItems"] = *s.MinItems
		}
	case KindObject:
		js["type"] = "object"
		props := make(map[string]any, len(s.Fields))
		var required []any
		for _, f := range s.Fields {
			props[f.Name] = ToJSONSchema(f.Schema)
			if !f.Schema.Optional {
				required = append(required, f.Name)
			}
		}
		js["properties"] = props
		if len(required) > 0 {
			js["required"] = required
		}
	}

	return js
}
