// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/go-a2a/talentflow/flow"
	"github.com/go-a2a/talentflow/pkg/logging"
	"github.com/go-a2a/talentflow/schema"
	"github.com/go-a2a/talentflow/talent"
)

// Form action messages.
const (
	MessageIdpGenerated    = "IDP generated successfully."
	MessageIdpModelFailure = "Failed to generate IDP from AI model."
	MessageUnexpected      = "An unexpected error occurred. Please try again."
)

// idpFormSchema is stricter than the flow input schema.
var idpFormSchema = schema.Object(
	schema.Field("employeeRole", schema.String().WithMinLength(3).
		WithMessage("Role must be at least 3 characters.")),
	schema.Field("performanceData", schema.String().WithMinLength(10).
		WithMessage("Performance data must be at least 10 characters.")),
	schema.Field("careerAspirations", schema.String().WithMinLength(10).
		WithMessage("Career aspirations must be at least 10 characters.")),
	schema.Field("managerFeedback", schema.String().AsOptional().WithDefault(talent.NotAvailable)),
	schema.Field("skillGapAnalysis", schema.String().AsOptional().WithDefault(talent.NotAvailable)),
)

// IdpForm is the IDP generation form, accepted as JSON or as form fields.
type IdpForm struct {
	EmployeeRole      string `form:"employeeRole" json:"employeeRole"`
	PerformanceData   string `form:"performanceData" json:"performanceData"`
	CareerAspirations string `form:"careerAspirations" json:"careerAspirations"`
	ManagerFeedback   string `form:"managerFeedback" json:"managerFeedback"`
	SkillGapAnalysis  string `form:"skillGapAnalysis" json:"skillGapAnalysis"`
}

// IdpState is the outcome of the form action.
type IdpState struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    *talent.IdpOutput `json:"data,omitempty"`
}

// IdpHandler serves the IDP form action.
type IdpHandler struct {
	client *talent.Client
}

// NewIdpHandler returns an [IdpHandler].
func NewIdpHandler(client *talent.Client) *IdpHandler {
	return &IdpHandler{client: client}
}

// Generate validates the form and generates an IDP.
func (h *IdpHandler) Generate(c *gin.Context) {
	var form IdpForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, IdpState{Message: err.Error()})
		return
	}

	in, err := validateIdpForm(form)
	if err != nil {
		c.JSON(http.StatusBadRequest, IdpState{Message: err.Error()})
		return
	}

	ctx := c.Request.Context()
	out, err := h.client.GenerateIdp(ctx, in)
	switch {
	case err == nil && strings.TrimSpace(out.Idp) != "":
		c.JSON(http.StatusOK, IdpState{Success: true, Message: MessageIdpGenerated, Data: &out})
	case err == nil, flow.KindOf(err) == flow.KindEmptyModelOutput:
		c.JSON(http.StatusBadGateway, IdpState{Message: MessageIdpModelFailure})
	default:
		logging.FromContext(ctx).ErrorContext(ctx, "generate idp", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, IdpState{Message: MessageUnexpected})
	}
}

type formError struct{ messages []string }

func (e *formError) Error() string { return strings.Join(e.messages, ", ") }

func validateIdpForm(form IdpForm) (talent.IdpInput, error) {
	values := map[string]any{
		"employeeRole":      form.EmployeeRole,
		"performanceData":   form.PerformanceData,
		"careerAspirations": form.CareerAspirations,
		"managerFeedback":   form.ManagerFeedback,
		"skillGapAnalysis":  form.SkillGapAnalysis,
	}
	out, err := schema.ValidateObject(idpFormSchema, schema.Normalize(idpFormSchema, values))
	if err != nil {
		if ves, ok := schema.AsValidationErrors(err); ok {
			return talent.IdpInput{}, &formError{messages: ves.Messages()}
		}
		return talent.IdpInput{}, err
	}
	return flow.FromMap[talent.IdpInput](out)
}
