package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workflow-config-api/internal/domain"
	"workflow-config-api/internal/dto"
	"workflow-config-api/internal/events"
	"workflow-config-api/internal/repository"
	"workflow-config-api/internal/response"
)

// IssueStatusService defines the interface for issue status business logic
type IssueStatusService interface {
	GetIssueStatuses(ctx context.Context) ([]*dto.IssueStatusResponse, error)
	GetIssueStatus(ctx context.Context, statusID uuid.UUID) (*dto.IssueStatusResponse, error)
	CreateIssueStatus(ctx context.Context, req *dto.CreateIssueStatusRequest) (*dto.IssueStatusResponse, error)
	UpdateIssueStatus(ctx context.Context, statusID uuid.UUID, req *dto.UpdateIssueStatusRequest) (*dto.IssueStatusResponse, error)
	DeleteIssueStatus(ctx context.Context, statusID uuid.UUID) error
}

// issueStatusServiceImpl is the implementation of IssueStatusService
type issueStatusServiceImpl struct {
	statusRepo repository.IssueStatusRepository
	publisher  events.Publisher
}

// NewIssueStatusService creates a new instance of IssueStatusService
func NewIssueStatusService(statusRepo repository.IssueStatusRepository, publisher events.Publisher) IssueStatusService {
	return &issueStatusServiceImpl{
		statusRepo: statusRepo,
		publisher:  publisher,
	}
}

// GetIssueStatuses retrieves all statuses ordered by display order
func (s *issueStatusServiceImpl) GetIssueStatuses(ctx context.Context) ([]*dto.IssueStatusResponse, error) {
	statuses, err := s.statusRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch issue statuses", err.Error())
	}

	responses := make([]*dto.IssueStatusResponse, len(statuses))
	for i, status := range statuses {
		responses[i] = toIssueStatusResponse(status)
	}
	return responses, nil
}

// GetIssueStatus retrieves a single status by ID
func (s *issueStatusServiceImpl) GetIssueStatus(ctx context.Context, statusID uuid.UUID) (*dto.IssueStatusResponse, error) {
	status, err := s.statusRepo.FindByID(ctx, statusID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Issue status not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch issue status", err.Error())
	}
	return toIssueStatusResponse(status), nil
}

// CreateIssueStatus creates a new issue status
func (s *issueStatusServiceImpl) CreateIssueStatus(ctx context.Context, req *dto.CreateIssueStatusRequest) (*dto.IssueStatusResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewValidationError("Status name must not be empty", "")
	}

	status := &domain.IssueStatus{
		Name:        name,
		Order:       req.Order,
		ColorTag:    req.ColorTag,
		Description: req.Description,
	}

	if err := s.statusRepo.Create(ctx, status); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create issue status", err.Error())
	}

	if s.publisher != nil {
		s.publisher.Publish(ctx, "issue_status", events.ActionCreated, status.ID)
	}
	return toIssueStatusResponse(status), nil
}

// UpdateIssueStatus updates an existing issue status
func (s *issueStatusServiceImpl) UpdateIssueStatus(ctx context.Context, statusID uuid.UUID, req *dto.UpdateIssueStatusRequest) (*dto.IssueStatusResponse, error) {
	status, err := s.statusRepo.FindByID(ctx, statusID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Issue status not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch issue status", err.Error())
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, response.NewValidationError("Status name must not be empty", "")
		}
		status.Name = name
	}
	if req.Order != nil {
		status.Order = *req.Order
	}
	if req.ColorTag != nil {
		status.ColorTag = *req.ColorTag
	}
	if req.Description != nil {
		status.Description = *req.Description
	}

	if err := s.statusRepo.Update(ctx, status); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update issue status", err.Error())
	}

	if s.publisher != nil {
		s.publisher.Publish(ctx, "issue_status", events.ActionUpdated, status.ID)
	}
	return toIssueStatusResponse(status), nil
}

// DeleteIssueStatus deletes a status. Deletion is blocked while any workflow
// edge, workflow ordering row, or issue still references the status.
func (s *issueStatusServiceImpl) DeleteIssueStatus(ctx context.Context, statusID uuid.UUID) error {
	if _, err := s.statusRepo.FindByID(ctx, statusID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Issue status not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch issue status", err.Error())
	}

	deps, err := s.statusRepo.CountDependents(ctx, statusID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to check status references", err.Error())
	}
	if deps.Total() > 0 {
		return response.NewReferentialIntegrityError(
			"Status is still referenced and cannot be deleted",
			fmt.Sprintf("workflow edges: %d, workflow orderings: %d, issues: %d",
				deps.WorkflowEdges, deps.WorkflowStatuses, deps.Issues),
		)
	}

	if err := s.statusRepo.Delete(ctx, statusID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete issue status", err.Error())
	}

	if s.publisher != nil {
		s.publisher.Publish(ctx, "issue_status", events.ActionDeleted, statusID)
	}
	return nil
}

func toIssueStatusResponse(status *domain.IssueStatus) *dto.IssueStatusResponse {
	return &dto.IssueStatusResponse{
		StatusID:    status.ID,
		Name:        status.Name,
		Order:       status.Order,
		ColorTag:    status.ColorTag,
		Description: status.Description,
		CreatedAt:   status.CreatedAt,
		UpdatedAt:   status.UpdatedAt,
	}
}
