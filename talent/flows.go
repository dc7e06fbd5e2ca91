// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package talent

import (
	"fmt"

	"github.com/go-a2a/talentflow/flow"
	"github.com/go-a2a/talentflow/prompt"
	"github.com/go-a2a/talentflow/schema"
	"github.com/go-a2a/talentflow/types"
)

// Flow names.
const (
	IdpFlow       = "generatePersonalizedIdpFlow"
	SkillGapFlow  = "analyzeTeamSkillGapsFlow"
	ResumeFlow    = "extractResumeDetailsFlow"
	AssistantFlow = "assistantFlow"
)

// NotAvailable is the value of optional IDP inputs the caller leaves blank.
const NotAvailable = "N/A"

// IdpDefinition returns the definition of the IDP generation flow.
func IdpDefinition() *flow.Definition {
	return &flow.Definition{
		Name:        IdpFlow,
		Description: "Generates a personalized Individual Development Plan for an employee.",
		InputSchema: schema.Object(
			schema.Field("employeeRole", schema.String().Describe("The current role of the employee.")),
			schema.Field("performanceData", schema.String().Describe("The performance data of the employee.")),
			schema.Field("careerAspirations", schema.String().Describe("The career aspirations of the employee.")),
			schema.Field("managerFeedback", schema.String().
				Describe("The feedback from the employee's manager.").
				AsOptional().WithDefault(NotAvailable)),
			schema.Field("skillGapAnalysis", schema.String().
				Describe("The skill gap analysis of the employee.").
				AsOptional().WithDefault(NotAvailable)),
		),
		OutputSchema: schema.Object(
			schema.Field("idp", schema.String().Describe("The generated personalized Individual Development Plan.")),
		),
		Template: prompt.MustCompile("generatePersonalizedIdpPrompt", idpTemplate),
	}
}

// SkillGapDefinition returns the definition of the team skill gap analysis flow.
func SkillGapDefinition() *flow.Definition {
	return &flow.Definition{
		Name:        SkillGapFlow,
		Description: "Analyzes skill gaps within a team and recommends how to address them.",
		InputSchema: schema.Object(
			schema.Field("teamDescription", schema.String().
				Describe("A description of the team, its members, and their current skill sets.")),
			schema.Field("futureGoals", schema.String().Describe("The future goals and challenges of the team.")),
		),
		OutputSchema: schema.Object(
			schema.Field("skillGaps", schema.String().Describe("The identified skill gaps within the team.")),
			schema.Field("recommendations", schema.String().
				Describe("Recommendations for addressing the skill gaps through training or development plans.")),
		),
		Template: prompt.MustCompile("analyzeTeamSkillGapsPrompt", skillGapTemplate),
	}
}

// ResumeDefinition returns the definition of the resume extraction flow.
func ResumeDefinition() *flow.Definition {
	return &flow.Definition{
		Name:        ResumeFlow,
		Description: "Extracts development plan details from a PDF resume.",
		InputSchema: schema.Object(
			schema.Field("resumeDataUri", schema.String().Describe(
				"A PDF resume, as a data URI that must include a MIME type and use Base64 encoding. " +
					"Expected format: 'data:application/pdf;base64,<encoded_data>'.")),
		),
		OutputSchema: schema.Object(
			schema.Field("careerGoal", schema.String().
				Describe("The primary career goal or objective stated or inferred from the resume.")),
			schema.Field("summary", schema.String().
				Describe("A brief summary for a development plan based on the resume's content.")),
			schema.Field("currentSkills", schema.String().
				Describe("A comma-separated list of the candidate's current skills.")),
			schema.Field("skillsToDevelop", schema.String().
				Describe("A comma-separated list of skills the candidate should focus on developing.")),
			schema.Field("experienceSummary", schema.String().
				Describe("A summary of the candidate's professional experience.")),
		),
		Template: prompt.MustCompile("extractResumeDetailsPrompt", resumeTemplate),
	}
}

// AssistantDefinition returns the definition of the conversational assistant flow.
func AssistantDefinition() *flow.Definition {
	turn := schema.Object(
		schema.Field("role", schema.Enum(types.RoleUser, types.RoleModel)),
		schema.Field("text", schema.String()),
	)
	return &flow.Definition{
		Name:        AssistantFlow,
		Description: "Answers questions about TalentFlow AI.",
		InputSchema: schema.Object(
			schema.Field("history", schema.Array(turn).
				Describe("The conversation history.").
				AsOptional().WithDefault([]any{})),
			schema.Field("prompt", schema.String().Describe("The user's latest message.")),
		),
		OutputSchema: schema.Object(
			schema.Field("response", schema.String().Describe("The AI's response.")),
		),
		Render: renderAssistant,
	}
}

// renderAssistant builds the persona, then the history in order, then the new question.
func renderAssistant(input map[string]any) (*prompt.Rendered, error) {
	r := prompt.NewRendered(&prompt.Message{Role: prompt.RoleSystem, Text: AssistantPersona})

	history, _ := input["history"].([]any)
	for i, item := range history {
		turn, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("history[%d]: unexpected %T", i, item)
		}
		role, _ := turn["role"].(string)
		text, _ := turn["text"].(string)
		r.Messages = append(r.Messages, &prompt.Message{Role: role, Text: text})
	}

	question, _ := input["prompt"].(string)
	r.Messages = append(r.Messages, &prompt.Message{Role: prompt.RoleUser, Text: userQuestionPrefix + question})
	return r, nil
}

// Definitions returns fresh definitions of all TalentFlow flows.
func Definitions() []*flow.Definition {
	return []*flow.Definition{
		IdpDefinition(),
		SkillGapDefinition(),
		ResumeDefinition(),
		AssistantDefinition(),
	}
}

// Register adds every TalentFlow flow to reg.
func Register(reg *flow.Registry) error {
	for _, def := range Definitions() {
		if err := reg.Register(def); err != nil {
			return err
		}
	}
	return nil
}
