// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status is the progress of a [Plan].
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Statuses lists the valid statuses.
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted}

// ParseStatus returns the [Status] named s.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown plan status %q", s)
}

// Plan is an Individual Development Plan.
type Plan struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID string    `gorm:"column:employee_id;not null;index" json:"employeeId"`

	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	CareerGoal  string `json:"careerGoal"`
	TargetRole  string `json:"targetRole"`

	// comma-joined lists, as produced by resume extraction
	CurrentSkills     string `json:"currentSkills"`
	SkillsToDevelop   string `json:"skillsToDevelop"`
	ExperienceSummary string `json:"experienceSummary"`

	Goals datatypes.JSONSlice[string] `json:"goals"`

	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	Status Status `gorm:"column:status;not null;index" json:"status"`

	ManagerFeedback  string `json:"managerFeedback,omitempty"`
	SkillGapAnalysis string `json:"skillGapAnalysis,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Plan) TableName() string { return "individual_development_plans" }

// BeforeCreate assigns an ID and the initial status.
func (p *Plan) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = StatusNotStarted
	}
	return nil
}
