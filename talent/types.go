// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package talent

import (
	"strings"

	"github.com/go-a2a/talentflow/types"
)

// IdpInput is the input of the IDP generation flow.
// Blank ManagerFeedback and SkillGapAnalysis become [NotAvailable].
type IdpInput struct {
	EmployeeRole      string `json:"employeeRole"`
	PerformanceData   string `json:"performanceData"`
	CareerAspirations string `json:"careerAspirations"`
	ManagerFeedback   string `json:"managerFeedback,omitempty"`
	SkillGapAnalysis  string `json:"skillGapAnalysis,omitempty"`
}

// IdpOutput is the output of the IDP generation flow.
type IdpOutput struct {
	Idp string `json:"idp"`
}

// SkillGapInput is the input of the skill gap analysis flow.
type SkillGapInput struct {
	TeamDescription string `json:"teamDescription"`
	FutureGoals     string `json:"futureGoals"`
}

// SkillGapOutput is the output of the skill gap analysis flow.
type SkillGapOutput struct {
	SkillGaps       string `json:"skillGaps"`
	Recommendations string `json:"recommendations"`
}

// ResumeInput is the input of the resume extraction flow.
type ResumeInput struct {
	// ResumeDataURI is a base64 data URI such as "data:application/pdf;base64,...".
	ResumeDataURI string `json:"resumeDataUri"`
}

// ResumeDetails is the output of the resume extraction flow.
//
// CurrentSkills and SkillsToDevelop are comma-joined lists; see [SplitSkills].
type ResumeDetails struct {
	CareerGoal        string `json:"careerGoal"`
	Summary           string `json:"summary"`
	CurrentSkills     string `json:"currentSkills"`
	SkillsToDevelop   string `json:"skillsToDevelop"`
	ExperienceSummary string `json:"experienceSummary"`
}

// AssistantInput is the input of the assistant flow. History is owned by the caller and is
// never retained between calls.
type AssistantInput struct {
	History []types.Turn `json:"history,omitempty"`
	Prompt  string       `json:"prompt"`
}

// AssistantOutput is the output of the assistant flow.
type AssistantOutput struct {
	Response string `json:"response"`
}

// SplitSkills splits a comma-joined skill list, dropping blank entries.
func SplitSkills(s string) []string {
	var skills []string
	for skill := range strings.SplitSeq(s, ",") {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}
