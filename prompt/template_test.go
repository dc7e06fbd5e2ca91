// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/talentflow/schema"
)

const resumeTemplate = `You are an expert resume parser.

Resume: {{media url=resumeDataUri}}`

func TestTemplate_Placeholders(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []Placeholder
	}{
		{
			name:     "triple_stash",
			template: "Role: {{{employeeRole}}}\nGoals: {{{careerAspirations}}}",
			want:     []Placeholder{{Name: "employeeRole"}, {Name: "careerAspirations"}},
		},
		{
			name:     "double_stash_and_duplicates",
			template: "{{teamDescription}} then {{ futureGoals }} and {{teamDescription}} again",
			want:     []Placeholder{{Name: "teamDescription"}, {Name: "futureGoals"}},
		},
		{
			name:     "media_helper",
			template: resumeTemplate,
			want:     []Placeholder{{Name: "resumeDataUri", Media: true}},
		},
		{
			name:     "media_after_text_field",
			template: "Employee {{{name}}}: {{media url=doc contentType=\"application/pdf\"}}",
			want:     []Placeholder{{Name: "name"}, {Name: "doc", Media: true}},
		},
		{
			name:     "block_helpers_ignored",
			template: "{{#if managerFeedback}}Feedback given{{else}}None{{/if}}",
			want:     nil,
		},
		{
			name:     "no_placeholders",
			template: "Hello world!",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Compile(tt.name, tt.template)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, tmpl.Placeholders()); diff != "" {
				t.Errorf("Placeholders() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTemplate_Verify(t *testing.T) {
	in := schema.Object(
		schema.Field("teamDescription", schema.String()),
		schema.Field("futureGoals", schema.String()),
		schema.Field("resumeDataUri", schema.String()),
		schema.Field("coverLetterDataUri", schema.String()),
	)

	tests := []struct {
		name      string
		template  string
		wantErr   bool
		wantCheck func(error) bool
	}{
		{
			name:     "declared_fields",
			template: "Team: {{{teamDescription}}}. Goals: {{{futureGoals}}}.",
		},
		{
			name:      "undeclared_field",
			template:  "Team: {{{teamDescription}}}. Gaps: {{{skillGaps}}}.",
			wantErr:   true,
			wantCheck: IsUnknownPlaceholder,
		},
		{
			name:     "single_media",
			template: resumeTemplate,
		},
		{
			name:     "two_media",
			template: "{{media url=resumeDataUri}} {{media url=coverLetterDataUri}}",
			wantErr:  true,
			wantCheck: func(err error) bool {
				return strings.Contains(err.Error(), "TOO_MANY_MEDIA")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := MustCompile(tt.name, tt.template)
			err := tmpl.Verify(in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantCheck != nil && !tt.wantCheck(err) {
				t.Errorf("Verify() error = %v did not match the expected kind", err)
			}
		})
	}
}

func TestTemplate_Render(t *testing.T) {
	tmpl := MustCompile("idp", "Role: {{{employeeRole}}}\nFeedback: {{{managerFeedback}}}")
	input := map[string]any{
		"employeeRole":    "Software Engineer",
		"managerFeedback": "Owns <b>on-call</b> & reviews",
	}

	first, err := tmpl.Render(input)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	text := first.Text()
	for _, want := range []string{"Role: Software Engineer", "Feedback: Owns <b>on-call</b> & reviews"} {
		if !strings.Contains(text, want) {
			t.Errorf("Render() text = %q, want it to contain %q", text, want)
		}
	}

	second, err := tmpl.Render(input)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Render() is not deterministic (-first +second):\n%s", diff)
	}
}

func TestTemplate_RenderMedia(t *testing.T) {
	tmpl := MustCompile("resume", resumeTemplate)
	uri := "data:application/pdf;base64,JVBERi0xLjQK"

	r, err := tmpl.Render(map[string]any{"resumeDataUri": uri})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var media []*Media
	for _, m := range r.Messages {
		if m.Media != nil {
			media = append(media, m.Media)
		}
	}
	want := []*Media{{URL: uri, ContentType: "application/pdf"}}
	if diff := cmp.Diff(want, media); diff != "" {
		t.Errorf("rendered media mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(r.Text(), "expert resume parser") {
		t.Errorf("Render() text = %q, want the instruction text", r.Text())
	}
}
