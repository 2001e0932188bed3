package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"workflow-config-api/internal/dto"
	"workflow-config-api/internal/response"
	"workflow-config-api/internal/service"
)

type CustomFieldHandler struct {
	fieldService service.CustomFieldService
}

func NewCustomFieldHandler(fieldService service.CustomFieldService) *CustomFieldHandler {
	return &CustomFieldHandler{
		fieldService: fieldService,
	}
}

// GetCustomFields lists custom fields, optionally filtered by projectId query
func (h *CustomFieldHandler) GetCustomFields(c *gin.Context) {
	var projectID *uuid.UUID
	if raw := c.Query("projectId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid project ID")
			return
		}
		projectID = &id
	}

	fields, err := h.fieldService.GetCustomFields(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, fields)
}

// GetCustomField returns a single field definition
func (h *CustomFieldHandler) GetCustomField(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid field ID")
		return
	}

	field, err := h.fieldService.GetCustomField(c.Request.Context(), fieldID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, field)
}

// CreateCustomField creates a new field definition
func (h *CustomFieldHandler) CreateCustomField(c *gin.Context) {
	var req dto.CreateCustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	field, err := h.fieldService.CreateCustomField(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, field)
}

// UpdateCustomField updates a field definition
func (h *CustomFieldHandler) UpdateCustomField(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid field ID")
		return
	}

	var req dto.UpdateCustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	field, err := h.fieldService.UpdateCustomField(c.Request.Context(), fieldID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, field)
}

// DeleteCustomField deletes a field definition unless it is still bound
func (h *CustomFieldHandler) DeleteCustomField(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid field ID")
		return
	}

	if err := h.fieldService.DeleteCustomField(c.Request.Context(), fieldID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}
