// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"google.golang.org/genai"
)

// Role represents the role of a participant in a conversation.
type Role = string

const (
	// RoleSystem is the role of the system instruction.
	RoleSystem Role = "system"

	// RoleUser is the role of the user.
	RoleUser Role = genai.RoleUser

	// RoleModel is the role of the model.
	RoleModel Role = genai.RoleModel
)

// Turn is a single message of a caller-owned conversation.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// UserTurn returns a [Turn] authored by the user.
func UserTurn(text string) Turn {
	return Turn{Role: RoleUser, Text: text}
}

// ModelTurn returns a [Turn] authored by the model.
func ModelTurn(text string) Turn {
	return Turn{Role: RoleModel, Text: text}
}

// Content converts t into a [*genai.Content].
func (t Turn) Content() *genai.Content {
	return &genai.Content{
		Role:  t.Role,
		Parts: []*genai.Part{genai.NewPartFromText(t.Text)},
	}
}
