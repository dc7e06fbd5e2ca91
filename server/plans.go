// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/go-a2a/talentflow/schema"
	"github.com/go-a2a/talentflow/store"
)

// PlanHandler serves plan records.
type PlanHandler struct {
	plans store.PlanStore
	now   func() time.Time
}

// NewPlanHandler returns a [PlanHandler].
func NewPlanHandler(plans store.PlanStore) *PlanHandler {
	return &PlanHandler{plans: plans, now: time.Now}
}

type createPlanRequest struct {
	EmployeeID string `json:"employeeId"`
	store.PlanForm
}

// Create validates the create-plan form and stores a new plan.
func (h *PlanHandler) Create(c *gin.Context) {
	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeInvalidJSON, err)
		return
	}

	plan, err := store.NewPlanFromForm(req.EmployeeID, req.PlanForm, h.now())
	if err != nil {
		respondFormError(c, err)
		return
	}
	if err := h.plans.Create(c.Request.Context(), plan); err != nil {
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// Get returns one plan.
func (h *PlanHandler) Get(c *gin.Context) {
	id, ok := planID(c)
	if !ok {
		return
	}
	plan, err := h.plans.Get(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	RespondOK(c, plan)
}

// ListByEmployee lists the plans of an employee, newest first.
func (h *PlanHandler) ListByEmployee(c *gin.Context) {
	plans, err := h.plans.ListByEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	RespondOK(c, gin.H{"plans": plans})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus changes the status of a plan.
func (h *PlanHandler) UpdateStatus(c *gin.Context) {
	id, ok := planID(c)
	if !ok {
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeInvalidJSON, err)
		return
	}
	status, err := store.ParseStatus(req.Status)
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeInvalidParam, err)
		return
	}

	plan, err := h.plans.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	RespondOK(c, plan)
}

func planID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeInvalidParam, err)
		return uuid.Nil, false
	}
	return id, true
}

func respondFormError(c *gin.Context, err error) {
	if ves, ok := schema.AsValidationErrors(err); ok {
		c.JSON(http.StatusBadRequest, ErrorEnvelope{
			Error: APIError{
				Message: strings.Join(ves.Messages(), ", "),
				Code:    CodeInvalidForm,
				Field:   ves.First().Path,
			},
		})
		return
	}
	RespondError(c, http.StatusBadRequest, CodeInvalidForm, err)
}

func respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		RespondError(c, http.StatusNotFound, CodeNotFound, err)
		return
	}
	RespondError(c, http.StatusInternalServerError, CodeInternal, err)
}
