package dto

import (
	"time"

	"github.com/google/uuid"
)

// IssueStatusResponse represents the issue status response
type IssueStatusResponse struct {
	StatusID    uuid.UUID `json:"statusId"`
	Name        string    `json:"name"`
	Order       int       `json:"order"`
	ColorTag    string    `json:"colorTag"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateIssueStatusRequest represents the request to create a new issue status
type CreateIssueStatusRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Order       int    `json:"order"`
	ColorTag    string `json:"colorTag" binding:"omitempty,max=20"`
	Description string `json:"description"`
}

// UpdateIssueStatusRequest represents the request to update an issue status
type UpdateIssueStatusRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Order       *int    `json:"order"`
	ColorTag    *string `json:"colorTag" binding:"omitempty,max=20"`
	Description *string `json:"description"`
}
