package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workflow-config-api/internal/domain"
	"workflow-config-api/internal/dto"
	"workflow-config-api/internal/events"
	"workflow-config-api/internal/repository"
	"workflow-config-api/internal/response"
)

// StatusOrderService defines the interface for workflow status ordering
type StatusOrderService interface {
	GetOrderedStatuses(ctx context.Context, workflowID uuid.UUID) ([]*dto.OrderedStatusResponse, error)
	// SetOrder replaces the workflow's linearization. The submitted id list
	// must contain exactly the workflow's statuses, no more, no less, no
	// duplicates.
	SetOrder(ctx context.Context, workflowID uuid.UUID, req *dto.SetStatusOrderRequest) ([]*dto.OrderedStatusResponse, error)
}

// statusOrderServiceImpl is the implementation of StatusOrderService
type statusOrderServiceImpl struct {
	workflowRepo       repository.WorkflowRepository
	workflowStatusRepo repository.WorkflowStatusRepository
	publisher          events.Publisher
}

// NewStatusOrderService creates a new instance of StatusOrderService
func NewStatusOrderService(
	workflowRepo repository.WorkflowRepository,
	workflowStatusRepo repository.WorkflowStatusRepository,
	publisher events.Publisher,
) StatusOrderService {
	return &statusOrderServiceImpl{
		workflowRepo:       workflowRepo,
		workflowStatusRepo: workflowStatusRepo,
		publisher:          publisher,
	}
}

// GetOrderedStatuses returns the workflow's linearization, position ascending
func (s *statusOrderServiceImpl) GetOrderedStatuses(ctx context.Context, workflowID uuid.UUID) ([]*dto.OrderedStatusResponse, error) {
	if _, err := s.workflowRepo.FindByID(ctx, workflowID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Workflow not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch workflow", err.Error())
	}

	rows, err := s.workflowStatusRepo.FindByWorkflowID(ctx, workflowID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch status ordering", err.Error())
	}
	return toOrderedStatusResponses(rows), nil
}

// SetOrder rewrites the workflow's linearization to the submitted sequence.
// Any deviation from the stored status set fails with an order mismatch and
// leaves the stored ordering untouched.
func (s *statusOrderServiceImpl) SetOrder(ctx context.Context, workflowID uuid.UUID, req *dto.SetStatusOrderRequest) ([]*dto.OrderedStatusResponse, error) {
	if _, err := s.workflowRepo.FindByID(ctx, workflowID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Workflow not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch workflow", err.Error())
	}

	rows, err := s.workflowStatusRepo.FindByWorkflowID(ctx, workflowID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch status ordering", err.Error())
	}

	stored := make(map[uuid.UUID]bool, len(rows))
	for _, row := range rows {
		stored[row.StatusID] = true
	}

	submitted := make(map[uuid.UUID]bool, len(req.OrderedStatusIDs))
	for _, id := range req.OrderedStatusIDs {
		if submitted[id] {
			return nil, response.NewOrderMismatchError(
				fmt.Sprintf("Status %s appears more than once", id), "")
		}
		submitted[id] = true
		if !stored[id] {
			return nil, response.NewOrderMismatchError(
				fmt.Sprintf("Status %s is not part of the workflow", id), "")
		}
	}
	if len(req.OrderedStatusIDs) != len(rows) {
		return nil, response.NewOrderMismatchError(
			fmt.Sprintf("Expected %d statuses, got %d", len(rows), len(req.OrderedStatusIDs)), "")
	}

	if err := s.workflowStatusRepo.ReplaceOrder(ctx, workflowID, req.OrderedStatusIDs); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to replace status ordering", err.Error())
	}

	if s.publisher != nil {
		s.publisher.Publish(ctx, "workflow_status_order", events.ActionUpdated, workflowID)
	}

	updated, err := s.workflowStatusRepo.FindByWorkflowID(ctx, workflowID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch status ordering", err.Error())
	}
	return toOrderedStatusResponses(updated), nil
}

func toOrderedStatusResponses(rows []*domain.WorkflowStatus) []*dto.OrderedStatusResponse {
	responses := make([]*dto.OrderedStatusResponse, len(rows))
	for i, row := range rows {
		resp := &dto.OrderedStatusResponse{
			StatusID: row.StatusID,
			Order:    row.Order,
		}
		if row.Status.ID != uuid.Nil {
			resp.Status = toIssueStatusResponse(&row.Status)
		}
		responses[i] = resp
	}
	return responses
}
