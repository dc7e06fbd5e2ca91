// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"google.golang.org/genai"

	"github.com/go-a2a/talentflow/types"
)

// ToGenaiSchema converts s into the response schema understood by Gemini models.
//
// Field order is carried in PropertyOrdering so that the model emits fields in declaration order.
func ToGenaiSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	gs := &genai.Schema{
		Description: s.Description,
	}
	if s.Optional {
		gs.Nullable = types.ToPtr(true)
	}

	switch s.Kind {
	case KindString:
		gs.Type = genai.TypeString
		if s.MinLength != nil {
			gs.MinLength = types.ToPtr(int64(*s.MinLength))
		}
		if s.MaxLength != nil {
			gs.MaxLength = types.ToPtr(int64(*s.MaxLength))
		}
	case KindNumber:
		gs.Type = genai.TypeNumber
	case KindInteger:
		gs.Type = genai.TypeInteger
	case KindBoolean:
		gs.Type = genai.TypeBoolean
	case KindEnum:
		gs.Type = genai.TypeString
		gs.Format = "enum"
		gs.Enum = append([]string(nil), s.Enum...)
	case KindArray:
		gs.Type = genai.TypeArray
		gs.Items = ToGenaiSchema(s.Items)
		if s.MinItems != nil {
			gs.MinItems = types.ToPtr(int64(*s.MinItems))
		}
	case KindObject:
		gs.Type = genai.TypeObject
		gs.Properties = make(map[string]*genai.Schema, len(s.Fields))
		for _, f := range s.Fields {
			gs.Properties[f.Name] = ToGenaiSchema(f.Schema)
			gs.PropertyOrdering = append(gs.PropertyOrdering, f.Name)
			if !f.Schema.Optional {
				gs.Required = append(gs.Required, f.Name)
			}
		}
	}

	return gs
}
