// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/go-a2a/talentflow/flow"
	"github.com/go-a2a/talentflow/retry"
)

// FlowHandler serves the generic flow endpoints.
type FlowHandler struct {
	catalog *flow.Catalog
	retry   *retry.Config
}

// NewFlowHandler returns a [FlowHandler]. A nil retry policy invokes each flow once.
func NewFlowHandler(catalog *flow.Catalog, policy *retry.Config) *FlowHandler {
	return &FlowHandler{catalog: catalog, retry: policy}
}

// ListFlows lists the registered flows with their schemas.
func (h *FlowHandler) ListFlows(c *gin.Context) {
	RespondOK(c, gin.H{"flows": h.catalog.Registry().Describe()})
}

// InvokeFlow runs the flow named by the path with the JSON body as input.
func (h *FlowHandler) InvokeFlow(c *gin.Context) {
	f, err := h.catalog.Flow(c.Param("name"))
	if err != nil {
		RespondFlowError(c, err)
		return
	}

	var input map[string]any
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, CodeInvalidJSON, err)
		return
	}

	var res *flow.Result
	if h.retry != nil {
		res = retry.Invoke(c.Request.Context(), *h.retry, f, input)
	} else {
		res = f.Invoke(c.Request.Context(), input)
	}

	c.Header("X-Invocation-Id", res.InvocationID)
	if res.Err != nil {
		RespondFlowError(c, res.Err)
		return
	}
	RespondOK(c, gin.H{"output": res.Output})
}
