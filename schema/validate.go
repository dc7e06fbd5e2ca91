// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validate checks v against s and returns the coerced value.
//
// v is a JSON-model value: map[string]any, []any, string, a number, bool or nil (other maps with
// string keys and other slices are accepted too). Null is treated as absent. Fields not
// declared by s are passed through unchanged. Every violation is collected and returned as
// [ValidationErrors] in declaration order. v itself is never modified.
func Validate(s *Schema, v any) (any, error) {
	var errs ValidationErrors
	out := validate(s, v, "", &errs)
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// ValidateObject is like [Validate] for object schemas, returning the coerced map.
func ValidateObject(s *Schema, v any) (map[string]any, error) {
	out, err := Validate(s, v)
	if err != nil {
		return nil, err
	}
	m, _ := out.(map[string]any)
	return m, nil
}

func validate(s *Schema, v any, path string, errs *ValidationErrors) any {
	if v == nil {
		if s.Optional {
			return copyValue(s.Default)
		}
		errs.add(s, &ValidationError{
			Path:    path,
			Code:    CodeMissingField,
			Message: "is required",
		})
		return nil
	}

	switch s.Kind {
	case KindString:
		return validateString(s, v, path, errs)
	case KindNumber:
		switch n := v.(type) {
		case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return n
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
			if err == nil {
				return f
			}
		}
		errs.add(s, mismatch(path, KindNumber, v))
	case KindInteger:
		switch n := v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return n
		case float64:
			if n == math.Trunc(n) && !math.IsInf(n, 0) {
				return n
			}
		case float32:
			if float64(n) == math.Trunc(float64(n)) {
				return n
			}
		case string:
			i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
			if err == nil {
				return i
			}
		}
		errs.add(s, mismatch(path, KindInteger, v))
	case KindBoolean:
		switch b := v.(type) {
		case bool:
			return b
		case string:
			switch strings.TrimSpace(b) {
			case "true":
				return true
			case "false":
				return false
			}
		}
		errs.add(s, mismatch(path, KindBoolean, v))
	case KindEnum:
		str, ok := v.(string)
		if !ok {
			errs.add(s, mismatch(path, KindEnum, v))
			return nil
		}
		if !slices.Contains(s.Enum, str) {
			errs.add(s, &ValidationError{
				Path:    path,
				Code:    CodeInvalidEnumValue,
				Allowed: slices.Clone(s.Enum),
				Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(s.Enum, ", "), str),
			})
			return nil
		}
		return str
	case KindObject:
		m, ok := asMap(v)
		if !ok {
			errs.add(s, mismatch(path, KindObject, v))
			return nil
		}
		out := make(map[string]any, len(m))
		maps.Copy(out, m)
		for _, f := range s.Fields {
			fv, present := m[f.Name]
			if !present || fv == nil {
				if !f.Schema.Optional {
					errs.add(f.Schema, &ValidationError{
						Path:    join(path, f.Name),
						Code:    CodeMissingField,
						Message: "is required",
					})
					continue
				}
				if f.Schema.Default != nil {
					out[f.Name] = copyValue(f.Schema.Default)
				}
				continue
			}
			out[f.Name] = validate(f.Schema, fv, join(path, f.Name), errs)
		}
		return out
	case KindArray:
		items, ok := asSlice(v)
		if !ok {
			errs.add(s, mismatch(path, KindArray, v))
			return nil
		}
		if s.MinItems != nil && len(items) < *s.MinItems {
			errs.add(s, &ValidationError{
				Path:    path,
				Code:    CodeConstraintViolation,
				Message: fmt.Sprintf("must contain at least %d items", *s.MinItems),
			})
		}
		out := make([]any, len(items))
		for i, item := range items {
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			if item == nil && s.Items != nil && !s.Items.Optional {
				errs.add(s.Items, mismatch(itemPath, s.Items.Kind, nil))
				continue
			}
			if s.Items == nil {
				out[i] = item
				continue
			}
			out[i] = validate(s.Items, item, itemPath, errs)
		}
		return out
	default:
		return v
	}
	return nil
}

func validateString(s *Schema, v any, path string, errs *ValidationErrors) any {
	var str string
	switch x := v.(type) {
	case string:
		str = x
	case float64:
		str = strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		str = strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		str = strconv.Itoa(x)
	case int64:
		str = strconv.FormatInt(x, 10)
	case int32:
		str = strconv.FormatInt(int64(x), 10)
	case uint64:
		str = strconv.FormatUint(x, 10)
	case bool:
		str = strconv.FormatBool(x)
	default:
		errs.add(s, mismatch(path, KindString, v))
		return nil
	}

	n := utf8.RuneCountInString(str)
	if s.MinLength != nil && n < *s.MinLength {
		errs.add(s, &ValidationError{
			Path:    path,
			Code:    CodeConstraintViolation,
			Message: fmt.Sprintf("must be at least %d characters", *s.MinLength),
		})
	}
	if s.MaxLength != nil && n > *s.MaxLength {
		errs.add(s, &ValidationError{
			Path:    path,
			Code:    CodeConstraintViolation,
			Message: fmt.Sprintf("must be at most %d characters", *s.MaxLength),
		})
	}
	return str
}

// Normalize returns a copy of v with the defaults of optional fields resolved.
//
// A default replaces a field that is absent, null or a blank string. Values that do not match
// the shape of s are returned unchanged for [Validate] to report.
func Normalize(s *Schema, v any) any {
	if s == nil {
		return v
	}
	switch s.Kind {
	case KindObject:
		m, ok := asMap(v)
		if !ok {
			return v
		}
		out := make(map[string]any, len(m))
		maps.Copy(out, m)
		for _, f := range s.Fields {
			fv, present := m[f.Name]
			if f.Schema.Optional && f.Schema.Default != nil && (!present || isBlank(fv)) {
				out[f.Name] = copyValue(f.Schema.Default)
				continue
			}
			if present && fv != nil {
				out[f.Name] = Normalize(f.Schema, fv)
			}
		}
		return out
	case KindArray:
		items, ok := asSlice(v)
		if !ok {
			return v
		}
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = Normalize(s.Items, item)
		}
		return out
	}
	return v
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	str, ok := v.(string)
	return ok && strings.TrimSpace(str) == ""
}

func (e *ValidationErrors) add(s *Schema, ve *ValidationError) {
	if s != nil && s.Message != "" {
		ve.Message = s.Message
	}
	*e = append(*e, ve)
}

func mismatch(path string, want Kind, v any) *ValidationError {
	expected := string(want)
	if want == KindEnum {
		expected = string(KindString)
	}
	actual := kindName(v)
	return &ValidationError{
		Path:     path,
		Code:     CodeTypeMismatch,
		Expected: expected,
		Actual:   actual,
		Message:  fmt.Sprintf("expected %s, got %s", expected, actual),
	}
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func kindName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return string(KindString)
	case bool:
		return string(KindBoolean)
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return string(KindNumber)
	}
	if _, ok := asMap(v); ok {
		return string(KindObject)
	}
	if _, ok := asSlice(v); ok {
		return string(KindArray)
	}
	return fmt.Sprintf("%T", v)
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func asSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// copyValue deep-copies JSON-model containers so that defaults are never shared between calls.
func copyValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = copyValue(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = copyValue(e)
		}
		return out
	case []string:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out
	}
	return v
}
