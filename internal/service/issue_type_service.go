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

// IssueTypeService defines the interface for issue type business logic
type IssueTypeService interface {
	GetIssueTypes(ctx context.Context, projectID *uuid.UUID) ([]*dto.IssueTypeResponse, error)
	GetIssueType(ctx context.Context, issueTypeID uuid.UUID) (*dto.IssueTypeResponse, error)
	CreateIssueType(ctx context.Context, req *dto.CreateIssueTypeRequest) (*dto.IssueTypeResponse, error)
	UpdateIssueType(ctx context.Context, issueTypeID uuid.UUID, req *dto.UpdateIssueTypeRequest) (*dto.IssueTypeResponse, error)
	DeleteIssueType(ctx context.Context, issueTypeID uuid.UUID) error
}

// issueTypeServiceImpl is the implementation of IssueTypeService
type issueTypeServiceImpl struct {
	issueTypeRepo repository.IssueTypeRepository
	projectRepo   repository.ProjectRepository
	publisher     events.Publisher
}

// NewIssueTypeService creates a new instance of IssueTypeService
func NewIssueTypeService(issueTypeRepo repository.IssueTypeRepository, projectRepo repository.ProjectRepository, publisher events.Publisher) IssueTypeService {
	return &issueTypeServiceImpl{
		issueTypeRepo: issueTypeRepo,
		projectRepo:   projectRepo,
		publisher:     publisher,
	}
}

// GetIssueTypes lists issue types, optionally filtered by project
func (s *issueTypeServiceImpl) GetIssueTypes(ctx context.Context, projectID *uuid.UUID) ([]*dto.IssueTypeResponse, error) {
	var (
		issueTypes []*domain.IssueType
		err        error
	)
	if projectID != nil {
		issueTypes, err = s.issueTypeRepo.FindByProjectID(ctx, *projectID)
	} else {
		issueTypes, err = s.issueTypeRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch issue types", err.Error())
	}

	responses := make([]*dto.IssueTypeResponse, len(issueTypes))
	for i, issueType := range issueTypes {
		responses[i] = toIssueTypeResponse(issueType)
	}
	return responses, nil
}

// GetIssueType retrieves a single issue type by ID
func (s *issueTypeServiceImpl) GetIssueType(ctx context.Context, issueTypeID uuid.UUID) (*dto.IssueTypeResponse, error) {
	issueType, err := s.issueTypeRepo.FindByID(ctx, issueTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Issue type not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch issue type", err.Error())
	}
	return toIssueTypeResponse(issueType), nil
}

// CreateIssueType creates a new issue type inside an existing project
func (s *issueTypeServiceImpl) CreateIssueType(ctx context.Context, req *dto.CreateIssueTypeRequest) (*dto.IssueTypeResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewValidationError("Issue type name must not be empty", "")
	}

	exists, err := s.projectRepo.Exists(ctx, req.ProjectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify project", err.Error())
	}
	if !exists {
		return nil, response.NewInvalidReferenceError(fmt.Sprintf("Project %s does not exist", req.ProjectID), "")
	}

	issueType := &domain.IssueType{
		ProjectID:   req.ProjectID,
		Name:        name,
		ColorTag:    req.ColorTag,
		IconTag:     req.IconTag,
		Description: req.Description,
	}

	if err := s.issueTypeRepo.Create(ctx, issueType); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create issue type", err.Error())
	}

	if s.publisher != nil {
		s.publisher.Publish(ctx, "issue_type", events.ActionCreated, issueType.ID)
	}
	return toIssueTypeResponse(issueType), nil
}

// UpdateIssueType updates an existing issue type
func (s *issueTypeServiceImpl) UpdateIssueType(ctx context.Context, issueTypeID uuid.UUID, req *dto.UpdateIssueTypeRequest) (*dto.IssueTypeResponse, error) {
	issueType, err := s.issueTypeRepo.FindByID(ctx, issueTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Issue type not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch issue type", err.Error())
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, response.NewValidationError("Issue type name must not be empty", "")
		}
		issueType.Name = name
	}
	if req.ColorTag != nil {
		issueType.ColorTag = *req.ColorTag
	}
	if req.IconTag != nil {
		issueType.IconTag = *req.IconTag
	}
	if req.Description != nil {
		issueType.Description = *req.Description
	}

	if err := s.issueTypeRepo.Update(ctx, issueType); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update issue type", err.Error())
	}

	if s.publisher != nil {
		s.publisher.Publish(ctx, "issue_type", events.ActionUpdated, issueType.ID)
	}
	return toIssueTypeResponse(issueType), nil
}

// DeleteIssueType deletes an issue type together with its workflow scoping
// rows and field bindings. Deletion is blocked while issues still use the
// type.
func (s *issueTypeServiceImpl) DeleteIssueType(ctx context.Context, issueTypeID uuid.UUID) error {
	if _, err := s.issueTypeRepo.FindByID(ctx, issueTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Issue type not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch issue type", err.Error())
	}

	issueCount, err := s.issueTypeRepo.CountIssues(ctx, issueTypeID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to check issue references", err.Error())
	}
	if issueCount > 0 {
		return response.NewReferentialIntegrityError(
			"Issue type is still used by issues and cannot be deleted",
			fmt.Sprintf("issues: %d", issueCount),
		)
	}

	if err := s.issueTypeRepo.Delete(ctx, issueTypeID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete issue type", err.Error())
	}

	if s.publisher != nil {
		s.publisher.Publish(ctx, "issue_type", events.ActionDeleted, issueTypeID)
	}
	return nil
}

func toIssueTypeResponse(issueType *domain.IssueType) *dto.IssueTypeResponse {
	return &dto.IssueTypeResponse{
		IssueTypeID: issueType.ID,
		ProjectID:   issueType.ProjectID,
		Name:        issueType.Name,
		ColorTag:    issueType.ColorTag,
		IconTag:     issueType.IconTag,
		Description: issueType.Description,
		CreatedAt:   issueType.CreatedAt,
		UpdatedAt:   issueType.UpdatedAt,
	}
}
