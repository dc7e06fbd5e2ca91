// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"errors"
	"strings"
	"time"

	"github.com/go-a2a/talentflow/schema"
)

const endDateMessage = "A target completion date is required."

// PlanFormSchema validates the create-plan form.
var PlanFormSchema = schema.Object(
	schema.Field("title", schema.String().WithMinLength(3).
		WithMessage("Title must be at least 3 characters long.")),
	schema.Field("description", schema.String().WithMinLength(10).
		WithMessage("Description must be at least 10 characters long.")),
	schema.Field("careerGoal", schema.String().WithMinLength(3).
		WithMessage("Career Goal must be at least 3 characters long.")),
	schema.Field("targetRole", schema.String().WithMinLength(3).
		WithMessage("Target Role must be at least 3 characters long.")),
	schema.Field("endDate", schema.String().WithMinLength(1).WithMessage(endDateMessage)),
	schema.Field("currentSkills", schema.String().AsOptional().WithDefault("")),
	schema.Field("skillsToDevelop", schema.String().AsOptional().WithDefault("")),
	schema.Field("experienceSummary", schema.String().AsOptional().WithDefault("")),
)

// PlanForm is the create-plan form. EndDate is an RFC 3339 timestamp or a YYYY-MM-DD date.
type PlanForm struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	CareerGoal        string `json:"careerGoal"`
	TargetRole        string `json:"targetRole"`
	EndDate           string `json:"endDate"`
	CurrentSkills     string `json:"currentSkills,omitempty"`
	SkillsToDevelop   string `json:"skillsToDevelop,omitempty"`
	ExperienceSummary string `json:"experienceSummary,omitempty"`
}

func (f PlanForm) values() map[string]any {
	return map[string]any{
		"title":             f.Title,
		"description":       f.Description,
		"careerGoal":        f.CareerGoal,
		"targetRole":        f.TargetRole,
		"endDate":           f.EndDate,
		"currentSkills":     f.CurrentSkills,
		"skillsToDevelop":   f.SkillsToDevelop,
		"experienceSummary": f.ExperienceSummary,
	}
}

// ErrMissingEmployee is returned for a plan without an owner.
var ErrMissingEmployee = errors.New("employee id is required")

// NewPlanFromForm validates form and returns a new plan owned by employeeID.
//
// The plan starts at now, has the career goal as its only goal and is not started.
// Validation failures are returned as [schema.ValidationErrors].
func NewPlanFromForm(employeeID string, form PlanForm, now time.Time) (*Plan, error) {
	if strings.TrimSpace(employeeID) == "" {
		return nil, ErrMissingEmployee
	}

	if _, err := schema.ValidateObject(PlanFormSchema, form.values()); err != nil {
		return nil, err
	}
	end, err := parseDate(form.EndDate)
	if err != nil {
		return nil, schema.ValidationErrors{{
			Path:     "endDate",
			Code:     schema.CodeTypeMismatch,
			Expected: "date",
			Actual:   "string",
			Message:  endDateMessage,
		}}
	}

	return &Plan{
		EmployeeID:        employeeID,
		Title:             form.Title,
		Description:       form.Description,
		CareerGoal:        form.CareerGoal,
		TargetRole:        form.TargetRole,
		CurrentSkills:     form.CurrentSkills,
		SkillsToDevelop:   form.SkillsToDevelop,
		ExperienceSummary: form.ExperienceSummary,
		Goals:             []string{form.CareerGoal},
		StartDate:         now.UTC(),
		EndDate:           end.UTC(),
		Status:            StatusNotStarted,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
