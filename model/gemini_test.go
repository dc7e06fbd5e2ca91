// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/go-a2a/talentflow/schema"
)

func TestGeminiResponse(t *testing.T) {
	tests := []struct {
		name      string
		resp      *genai.GenerateContentResponse
		want      *Response
		wantEmpty bool
	}{
		{
			name: "text_parts_joined",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{
						{Text: "thinking...", Thought: true},
						{Text: `{"response": `},
						{Text: `"TalentFlow AI helps with IDPs."}`},
					}},
					FinishReason: genai.FinishReasonStop,
				}},
			},
			want: &Response{Text: `{"response": "TalentFlow AI helps with IDPs."}`, FinishReason: "STOP"},
		},
		{
			name: "no_text_is_not_an_error_here",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonMaxTokens}},
			},
			want: &Response{Text: "", FinishReason: "MAX_TOKENS"},
		},
		{
			name:      "nil_response",
			resp:      nil,
			wantEmpty: true,
		},
		{
			name:      "no_candidates",
			resp:      &genai.GenerateContentResponse{},
			wantEmpty: true,
		},
		{
			name: "prompt_blocked",
			resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
			},
			wantEmpty: true,
		},
		{
			name: "safety_finish",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			},
			wantEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := geminiResponse(tt.resp)
			if tt.wantEmpty {
				if !IsRefusedOrEmpty(err) {
					t.Fatalf("geminiResponse() error = %v, want ErrRefusedOrEmpty", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("geminiResponse() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("geminiResponse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGeminiConfig(t *testing.T) {
	out := schema.Object(schema.Field("idp", schema.String()))
	cfg := newConfig(WithTemperature(0.2), WithMaxOutputTokens(2048))

	got := geminiConfig(&Request{System: "You are TalentFlow AI.", OutputSchema: out}, cfg)

	if got.ResponseMIMEType != "application/json" {
		t.Errorf("ResponseMIMEType = %q, want application/json", got.ResponseMIMEType)
	}
	if diff := cmp.Diff(schema.ToGenaiSchema(out), got.ResponseSchema); diff != "" {
		t.Errorf("ResponseSchema mismatch (-want +got):\n%s", diff)
	}
	if got.Temperature == nil || *got.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", got.Temperature)
	}
	if got.MaxOutputTokens != 2048 {
		t.Errorf("MaxOutputTokens = %d, want 2048", got.MaxOutputTokens)
	}
	if diff := cmp.Diff(genai.NewContentFromText("You are TalentFlow AI.", genai.RoleUser), got.SystemInstruction); diff != "" {
		t.Errorf("SystemInstruction mismatch (-want +got):\n%s", diff)
	}

	plain := geminiConfig(&Request{}, newConfig())
	if plain.ResponseSchema != nil || plain.SystemInstruction != nil {
		t.Errorf("geminiConfig() without schema or system = %+v", plain)
	}
}

func TestAppendUserContent(t *testing.T) {
	if got := appendUserContent(nil); len(got) != 1 || got[0].Role != genai.RoleUser {
		t.Errorf("appendUserContent(nil) = %v, want one user content", got)
	}

	history := []*genai.Content{
		genai.NewContentFromText("hi", genai.RoleUser),
		genai.NewContentFromText("Hello!", genai.RoleModel),
	}
	if got := appendUserContent(history); len(got) != 3 || got[2].Role != genai.RoleUser {
		t.Errorf("appendUserContent(history ending with model) = %v, want a trailing user turn", got)
	}

	ask := []*genai.Content{genai.NewContentFromText("What is TalentFlow?", genai.RoleUser)}
	if got := appendUserContent(ask); len(got) != 1 {
		t.Errorf("appendUserContent(user turn) len = %d, want 1", len(got))
	}
}
