package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"workflow-config-api/internal/dto"
	"workflow-config-api/internal/response"
	"workflow-config-api/internal/service"
)

type BindingHandler struct {
	bindingService service.FieldBindingService
}

func NewBindingHandler(bindingService service.FieldBindingService) *BindingHandler {
	return &BindingHandler{
		bindingService: bindingService,
	}
}

// GetBindings lists the issue type's field bindings in display order
func (h *BindingHandler) GetBindings(c *gin.Context) {
	issueTypeID, err := uuid.Parse(c.Param("issueTypeId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid issue type ID")
		return
	}

	bindings, err := h.bindingService.ListBindings(c.Request.Context(), issueTypeID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, bindings)
}

// ReplaceBindings replaces the issue type's complete binding set
func (h *BindingHandler) ReplaceBindings(c *gin.Context) {
	issueTypeID, err := uuid.Parse(c.Param("issueTypeId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid issue type ID")
		return
	}

	var req dto.ReplaceBindingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	bindings, err := h.bindingService.ReplaceBindings(c.Request.Context(), issueTypeID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, bindings)
}

// GetUnboundFields lists the project's fields not yet bound to the issue type
func (h *BindingHandler) GetUnboundFields(c *gin.Context) {
	issueTypeID, err := uuid.Parse(c.Param("issueTypeId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid issue type ID")
		return
	}

	projectID, err := uuid.Parse(c.Query("projectId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "projectId query parameter is required")
		return
	}

	fields, err := h.bindingService.ListUnboundFields(c.Request.Context(), issueTypeID, projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, fields)
}
