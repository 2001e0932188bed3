package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"workflow-config-api/internal/dto"
	"workflow-config-api/internal/response"
	"workflow-config-api/internal/service"
)

type IssueTypeHandler struct {
	issueTypeService service.IssueTypeService
}

func NewIssueTypeHandler(issueTypeService service.IssueTypeService) *IssueTypeHandler {
	return &IssueTypeHandler{
		issueTypeService: issueTypeService,
	}
}

// GetIssueTypes lists issue types, optionally filtered by projectId query
func (h *IssueTypeHandler) GetIssueTypes(c *gin.Context) {
	var projectID *uuid.UUID
	if raw := c.Query("projectId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid project ID")
			return
		}
		projectID = &id
	}

	issueTypes, err := h.issueTypeService.GetIssueTypes(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, issueTypes)
}

// GetIssueType returns a single issue type
func (h *IssueTypeHandler) GetIssueType(c *gin.Context) {
	issueTypeID, err := uuid.Parse(c.Param("issueTypeId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid issue type ID")
		return
	}

	issueType, err := h.issueTypeService.GetIssueType(c.Request.Context(), issueTypeID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, issueType)
}

// CreateIssueType creates a new issue type
func (h *IssueTypeHandler) CreateIssueType(c *gin.Context) {
	var req dto.CreateIssueTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	issueType, err := h.issueTypeService.CreateIssueType(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, issueType)
}

// UpdateIssueType updates an issue type
func (h *IssueTypeHandler) UpdateIssueType(c *gin.Context) {
	issueTypeID, err := uuid.Parse(c.Param("issueTypeId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid issue type ID")
		return
	}

	var req dto.UpdateIssueTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	issueType, err := h.issueTypeService.UpdateIssueType(c.Request.Context(), issueTypeID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, issueType)
}

// DeleteIssueType deletes an issue type with its bindings and scoping rows
func (h *IssueTypeHandler) DeleteIssueType(c *gin.Context) {
	issueTypeID, err := uuid.Parse(c.Param("issueTypeId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid issue type ID")
		return
	}

	if err := h.issueTypeService.DeleteIssueType(c.Request.Context(), issueTypeID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}
