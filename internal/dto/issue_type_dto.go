package dto

import (
	"time"

	"github.com/google/uuid"
)

// IssueTypeResponse represents the issue type response
type IssueTypeResponse struct {
	IssueTypeID uuid.UUID `json:"issueTypeId"`
	ProjectID   uuid.UUID `json:"projectId"`
	Name        string    `json:"name"`
	ColorTag    string    `json:"colorTag"`
	IconTag     string    `json:"iconTag"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateIssueTypeRequest represents the request to create a new issue type
type CreateIssueTypeRequest struct {
	ProjectID   uuid.UUID `json:"projectId" binding:"required"`
	Name        string    `json:"name" binding:"required,max=100"`
	ColorTag    string    `json:"colorTag" binding:"omitempty,max=20"`
	IconTag     string    `json:"iconTag" binding:"omitempty,max=50"`
	Description string    `json:"description"`
}

// UpdateIssueTypeRequest represents the request to update an issue type
type UpdateIssueTypeRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	ColorTag    *string `json:"colorTag" binding:"omitempty,max=20"`
	IconTag     *string `json:"iconTag" binding:"omitempty,max=50"`
	Description *string `json:"description"`
}
