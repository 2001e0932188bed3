package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"workflow-config-api/internal/dto"
	"workflow-config-api/internal/response"
	"workflow-config-api/internal/service"
)

type WorkflowHandler struct {
	workflowService    service.WorkflowService
	statusOrderService service.StatusOrderService
}

func NewWorkflowHandler(workflowService service.WorkflowService, statusOrderService service.StatusOrderService) *WorkflowHandler {
	return &WorkflowHandler{
		workflowService:    workflowService,
		statusOrderService: statusOrderService,
	}
}

// GetTransitions lists every transition edge
func (h *WorkflowHandler) GetTransitions(c *gin.Context) {
	transitions, err := h.workflowService.ListTransitions(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, transitions)
}

// GetTransition returns a single transition edge
func (h *WorkflowHandler) GetTransition(c *gin.Context) {
	workflowID, err := uuid.Parse(c.Param("workflowId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid workflow ID")
		return
	}

	transition, err := h.workflowService.GetTransition(c.Request.Context(), workflowID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, transition)
}

// CreateTransition creates a transition edge with its issue type scoping
func (h *WorkflowHandler) CreateTransition(c *gin.Context) {
	var req dto.CreateTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	transition, err := h.workflowService.CreateTransition(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, transition)
}

// UpdateTransition replaces the edge's attributes and scoping set
func (h *WorkflowHandler) UpdateTransition(c *gin.Context) {
	workflowID, err := uuid.Parse(c.Param("workflowId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid workflow ID")
		return
	}

	var req dto.UpdateTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	transition, err := h.workflowService.UpdateTransition(c.Request.Context(), workflowID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, transition)
}

// DeleteTransition deletes a transition edge. Optional fromStatusId and
// toStatusId query parameters assert which endpoints the caller believes the
// edge has; a mismatch is treated as not found.
func (h *WorkflowHandler) DeleteTransition(c *gin.Context) {
	workflowID, err := uuid.Parse(c.Param("workflowId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid workflow ID")
		return
	}

	var fromStatusID, toStatusID *uuid.UUID
	if raw := c.Query("fromStatusId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid fromStatusId")
			return
		}
		fromStatusID = &id
	}
	if raw := c.Query("toStatusId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid toStatusId")
			return
		}
		toStatusID = &id
	}

	if err := h.workflowService.DeleteTransition(c.Request.Context(), workflowID, fromStatusID, toStatusID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}

// GetGraphByIssueType returns the derived workflow graph for an issue type
func (h *WorkflowHandler) GetGraphByIssueType(c *gin.Context) {
	issueTypeID, err := uuid.Parse(c.Param("issueTypeId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid issue type ID")
		return
	}

	graph, err := h.workflowService.GraphForIssueType(c.Request.Context(), issueTypeID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, graph)
}

// GetOrderedStatuses returns the workflow's status linearization
func (h *WorkflowHandler) GetOrderedStatuses(c *gin.Context) {
	workflowID, err := uuid.Parse(c.Param("workflowId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid workflow ID")
		return
	}

	statuses, err := h.statusOrderService.GetOrderedStatuses(c.Request.Context(), workflowID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, statuses)
}

// SetStatusOrder replaces the workflow's status linearization
func (h *WorkflowHandler) SetStatusOrder(c *gin.Context) {
	workflowID, err := uuid.Parse(c.Param("workflowId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid workflow ID")
		return
	}

	var req dto.SetStatusOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	statuses, err := h.statusOrderService.SetOrder(c.Request.Context(), workflowID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, statuses)
}
