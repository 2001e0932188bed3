package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"workflow-config-api/internal/dto"
	"workflow-config-api/internal/response"
	"workflow-config-api/internal/service"
)

type IssueStatusHandler struct {
	statusService service.IssueStatusService
}

func NewIssueStatusHandler(statusService service.IssueStatusService) *IssueStatusHandler {
	return &IssueStatusHandler{
		statusService: statusService,
	}
}

// GetIssueStatuses lists all statuses in display order
func (h *IssueStatusHandler) GetIssueStatuses(c *gin.Context) {
	statuses, err := h.statusService.GetIssueStatuses(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, statuses)
}

// GetIssueStatus returns a single status
func (h *IssueStatusHandler) GetIssueStatus(c *gin.Context) {
	statusID, err := uuid.Parse(c.Param("statusId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid status ID")
		return
	}

	status, err := h.statusService.GetIssueStatus(c.Request.Context(), statusID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, status)
}

// CreateIssueStatus creates a new status
func (h *IssueStatusHandler) CreateIssueStatus(c *gin.Context) {
	var req dto.CreateIssueStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	status, err := h.statusService.CreateIssueStatus(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, status)
}

// UpdateIssueStatus updates a status
func (h *IssueStatusHandler) UpdateIssueStatus(c *gin.Context) {
	statusID, err := uuid.Parse(c.Param("statusId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid status ID")
		return
	}

	var req dto.UpdateIssueStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	status, err := h.statusService.UpdateIssueStatus(c.Request.Context(), statusID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, status)
}

// DeleteIssueStatus deletes a status unless something still references it
func (h *IssueStatusHandler) DeleteIssueStatus(c *gin.Context) {
	statusID, err := uuid.Parse(c.Param("statusId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid status ID")
		return
	}

	if err := h.statusService.DeleteIssueStatus(c.Request.Context(), statusID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}
