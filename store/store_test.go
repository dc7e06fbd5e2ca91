// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-a2a/talentflow/schema"
)

func newTestStore(t *testing.T) PlanStore {
	t.Helper()
	db, err := Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewPlanStore(db)
}

var now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func validForm() PlanForm {
	return PlanForm{
		Title:       "Path to Staff Engineer",
		Description: "Grow system design and mentoring skills.",
		CareerGoal:  "Staff Engineer",
		TargetRole:  "Staff Engineer",
		EndDate:     "2025-12-31",
	}
}

func TestNewPlanFromForm(t *testing.T) {
	plan, err := NewPlanFromForm("emp-1", validForm(), now)
	require.NoError(t, err)

	assert.Equal(t, "emp-1", plan.EmployeeID)
	assert.Equal(t, []string{"Staff Engineer"}, []string(plan.Goals))
	assert.Equal(t, StatusNotStarted, plan.Status)
	assert.Equal(t, now, plan.StartDate)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), plan.EndDate)
}

func TestNewPlanFromForm_Invalid(t *testing.T) {
	tests := map[string]struct {
		modify func(*PlanForm)
		want   []string
	}{
		"short title": {
			modify: func(f *PlanForm) { f.Title = "Go" },
			want:   []string{"Title must be at least 3 characters long."},
		},
		"several fields": {
			modify: func(f *PlanForm) {
				f.Description = "short"
				f.TargetRole = ""
			},
			want: []string{
				"Description must be at least 10 characters long.",
				"Target Role must be at least 3 characters long.",
			},
		},
		"missing end date": {
			modify: func(f *PlanForm) { f.EndDate = "" },
			want:   []string{"A target completion date is required."},
		},
		"unparsable end date": {
			modify: func(f *PlanForm) { f.EndDate = "next spring" },
			want:   []string{"A target completion date is required."},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			form := validForm()
			tt.modify(&form)

			_, err := NewPlanFromForm("emp-1", form, now)

			ves, ok := schema.AsValidationErrors(err)
			require.True(t, ok, "error %v is not a validation error", err)
			assert.Equal(t, tt.want, ves.Messages())
		})
	}

	_, err := NewPlanFromForm(" ", validForm(), now)
	require.ErrorIs(t, err, ErrMissingEmployee)
}

func TestPlanStore(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	plan, err := NewPlanFromForm("emp-1", validForm(), now)
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, plan))
	require.NotEqual(t, uuid.Nil, plan.ID)

	other, err := NewPlanFromForm("emp-2", validForm(), now)
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, other))

	got, err := s.Get(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.Title, got.Title)
	assert.Equal(t, []string{"Staff Engineer"}, []string(got.Goals))
	assert.Equal(t, StatusNotStarted, got.Status)

	plans, err := s.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, plan.ID, plans[0].ID)

	plans, err = s.ListByEmployee(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, plans)

	updated, err := s.UpdateStatus(ctx, plan.ID, StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, updated.Status)

	_, err = s.UpdateStatus(ctx, plan.ID, Status("Abandoned"))
	require.Error(t, err)

	_, err = s.UpdateStatus(ctx, uuid.New(), StatusCompleted)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get(ctx, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("mysql", "dsn")
	require.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("Completed")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, st)

	_, err = ParseStatus("completed")
	require.Error(t, err)
}
