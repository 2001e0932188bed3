package dto

import (
	"time"

	"github.com/google/uuid"
)

// TransitionResponse represents one directed transition edge
type TransitionResponse struct {
	WorkflowID   uuid.UUID   `json:"workflowId"`
	FromStatusID uuid.UUID   `json:"fromStatusId"`
	ToStatusID   uuid.UUID   `json:"toStatusId"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	IssueTypeIDs []uuid.UUID `json:"issueTypeIds"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// CreateTransitionRequest represents the request to create a transition edge
type CreateTransitionRequest struct {
	FromStatusID uuid.UUID   `json:"fromStatusId" binding:"required"`
	ToStatusID   uuid.UUID   `json:"toStatusId" binding:"required"`
	Name         string      `json:"name" binding:"required,max=100"`
	Description  string      `json:"description"`
	IssueTypeIDs []uuid.UUID `json:"issueTypeIds" binding:"required"`
}

// UpdateTransitionRequest replaces edge attributes and the full scoping set
type UpdateTransitionRequest struct {
	FromStatusID uuid.UUID   `json:"fromStatusId" binding:"required"`
	ToStatusID   uuid.UUID   `json:"toStatusId" binding:"required"`
	Name         string      `json:"name" binding:"required,max=100"`
	Description  string      `json:"description"`
	IssueTypeIDs []uuid.UUID `json:"issueTypeIds" binding:"required"`
}

// WorkflowGraphResponse is the derived graph for one issue type. Nodes are
// ordered by the diagram layout rule; edges keep insertion order.
type WorkflowGraphResponse struct {
	IssueTypeID uuid.UUID             `json:"issueTypeId"`
	Nodes       []IssueStatusResponse `json:"nodes"`
	Edges       []TransitionResponse  `json:"edges"`
}

// OrderedStatusResponse is one entry of a workflow's linearization
type OrderedStatusResponse struct {
	StatusID uuid.UUID            `json:"statusId"`
	Order    int                  `json:"order"`
	Status   *IssueStatusResponse `json:"status,omitempty"`
}

// SetStatusOrderRequest carries the complete reordered status id list
type SetStatusOrderRequest struct {
	OrderedStatusIDs []uuid.UUID `json:"orderedStatusIds" binding:"required"`
}
