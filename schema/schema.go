// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"slices"

	"github.com/tiendc/go-deepcopy"
)

// Kind is the kind of value a [Schema] node accepts.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindInteger Kind = "integer"
	KindBoolean Kind = "boolean"
	KindEnum    Kind = "enum"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
)

// Schema is a node of a declared value shape.
//
// Nodes are built with the constructor functions of this package and are treated as immutable
// once bound to a flow.
type Schema struct {
	Kind        Kind
	Description string

	// Optional reports whether the field holding this node may be absent.
	Optional bool
	// Default is used by [Normalize] when an optional field is absent, null or blank.
	Default any
	// Message replaces the generated message of any violation reported for this node.
	Message string

	// Enum lists the members of a [KindEnum] node.
	Enum []string

	MinLength *int
	MaxLength *int
	MinItems  *int

	// Items is the element schema of a [KindArray] node.
	Items *Schema
	// Fields are the ordered fields of a [KindObject] node.
	Fields []*Property
}

// Property is a named field of an object [Schema].
type Property struct {
	Name   string
	Schema *Schema
}

// Field returns a named field of an object [Schema].
func Field(name string, s *Schema) *Property {
	return &Property{Name: name, Schema: s}
}

// String returns a string [Schema].
func String() *Schema { return &Schema{Kind: KindString} }

// Number returns a floating point number [Schema].
func Number() *Schema { return &Schema{Kind: KindNumber} }

// Integer returns an integer [Schema].
func Integer() *Schema { return &Schema{Kind: KindInteger} }

// Boolean returns a boolean [Schema].
func Boolean() *Schema { return &Schema{Kind: KindBoolean} }

// Enum returns a [Schema] accepting one of members.
func Enum(members ...string) *Schema {
	return &Schema{Kind: KindEnum, Enum: slices.Clone(members)}
}

// Object returns an object [Schema] with the given ordered fields.
func Object(fields ...*Property) *Schema {
	return &Schema{Kind: KindObject, Fields: fields}
}

// Array returns an array [Schema] whose elements match items.
func Array(items *Schema) *Schema {
	return &Schema{Kind: KindArray, Items: items}
}

// Describe sets the description and returns s.
func (s *Schema) Describe(description string) *Schema {
	s.Description = description
	return s
}

// AsOptional marks s optional and returns s.
func (s *Schema) AsOptional() *Schema {
	s.Optional = true
	return s
}

// WithDefault marks s optional with a default value and returns s.
func (s *Schema) WithDefault(v any) *Schema {
	s.Optional = true
	s.Default = v
	return s
}

// WithMessage sets the violation message and returns s.
func (s *Schema) WithMessage(msg string) *Schema {
	s.Message = msg
	return s
}

// WithMinLength sets the minimum string length in characters and returns s.
func (s *Schema) WithMinLength(n int) *Schema {
	s.MinLength = &n
	return s
}

// WithMaxLength sets the maximum string length in characters and returns s.
func (s *Schema) WithMaxLength(n int) *Schema {
	s.MaxLength = &n
	return s
}

// WithMinItems sets the minimum number of array elements and returns s.
func (s *Schema) WithMinItems(n int) *Schema {
	s.MinItems = &n
	return s
}

// Lookup returns the field named name of an object [Schema].
func (s *Schema) Lookup(name string) (*Schema, bool) {
	if s == nil || s.Kind != KindObject {
		return nil, false
	}
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Schema, true
		}
	}
	return nil, false
}

// FieldNames returns the declared field names of an object [Schema] in order.
func (s *Schema) FieldNames() []string {
	if s == nil || s.Kind != KindObject {
		return nil
	}
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

// Clone returns a deep copy of s.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	var out *Schema
	if err := deepcopy.Copy(&out, s); err != nil {
		panic(fmt.Sprintf("schema: clone: %v", err))
	}
	return out
}
