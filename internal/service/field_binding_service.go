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
	"workflow-config-api/internal/metrics"
	"workflow-config-api/internal/repository"
	"workflow-config-api/internal/response"
)

// FieldBindingService defines the interface for issue type / custom field
// binding business logic. Bindings are always replaced as a full set: the
// admin screen submits the complete form, never a diff.
type FieldBindingService interface {
	ListBindings(ctx context.Context, issueTypeID uuid.UUID) ([]*dto.BindingResponse, error)
	ReplaceBindings(ctx context.Context, issueTypeID uuid.UUID, req *dto.ReplaceBindingsRequest) ([]*dto.BindingResponse, error)
	ListUnboundFields(ctx context.Context, issueTypeID, projectID uuid.UUID) ([]*dto.CustomFieldResponse, error)
}

// fieldBindingServiceImpl is the implementation of FieldBindingService
type fieldBindingServiceImpl struct {
	bindingRepo   repository.BindingRepository
	issueTypeRepo repository.IssueTypeRepository
	fieldRepo     repository.CustomFieldRepository
	publisher     events.Publisher
	metrics       *metrics.Metrics
}

// NewFieldBindingService creates a new instance of FieldBindingService
func NewFieldBindingService(
	bindingRepo repository.BindingRepository,
	issueTypeRepo repository.IssueTypeRepository,
	fieldRepo repository.CustomFieldRepository,
	publisher events.Publisher,
	m *metrics.Metrics,
) FieldBindingService {
	return &fieldBindingServiceImpl{
		bindingRepo:   bindingRepo,
		issueTypeRepo: issueTypeRepo,
		fieldRepo:     fieldRepo,
		publisher:     publisher,
		metrics:       m,
	}
}

// ListBindings returns the issue type's bindings ordered by display order
func (s *fieldBindingServiceImpl) ListBindings(ctx context.Context, issueTypeID uuid.UUID) ([]*dto.BindingResponse, error) {
	if _, err := s.issueTypeRepo.FindByID(ctx, issueTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Issue type not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch issue type", err.Error())
	}

	bindings, err := s.bindingRepo.FindByIssueTypeID(ctx, issueTypeID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field bindings", err.Error())
	}

	responses := make([]*dto.BindingResponse, len(bindings))
	for i, binding := range bindings {
		responses[i] = toBindingResponse(binding)
	}
	return responses, nil
}

// ReplaceBindings swaps the issue type's complete binding set in one
// transaction. Duplicate customFieldIds in the payload collapse to a single
// binding carrying the attributes of the last occurrence. Every referenced
// field must exist and belong to the issue type's project.
func (s *fieldBindingServiceImpl) ReplaceBindings(ctx context.Context, issueTypeID uuid.UUID, req *dto.ReplaceBindingsRequest) ([]*dto.BindingResponse, error) {
	issueType, err := s.issueTypeRepo.FindByID(ctx, issueTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Issue type not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch issue type", err.Error())
	}

	deduped := dedupeBindings(req.Bindings)

	if len(deduped) > 0 {
		fieldIDs := make([]uuid.UUID, len(deduped))
		for i, input := range deduped {
			fieldIDs[i] = input.CustomFieldID
		}

		fields, err := s.fieldRepo.FindByIDs(ctx, fieldIDs)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch custom fields", err.Error())
		}

		found := make(map[uuid.UUID]*domain.CustomField, len(fields))
		for _, field := range fields {
			found[field.ID] = field
		}
		for _, id := range fieldIDs {
			field, ok := found[id]
			if !ok {
				return nil, response.NewInvalidReferenceError(fmt.Sprintf("Custom field %s does not exist", id), "")
			}
			if field.ProjectID != issueType.ProjectID {
				return nil, response.NewInvalidReferenceError(
					fmt.Sprintf("Custom field %s belongs to a different project", id), "")
			}
		}
	}

	desired := make([]domain.IssueTypeCustomField, len(deduped))
	for i, input := range deduped {
		desired[i] = domain.IssueTypeCustomField{
			IssueTypeID:   issueTypeID,
			CustomFieldID: input.CustomFieldID,
			IsRequired:    input.IsRequired,
			DisplayOrder:  input.DisplayOrder,
		}
	}

	if err := s.bindingRepo.ReplaceForIssueType(ctx, issueTypeID, desired); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to replace field bindings", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementBindingsReplaced()
	}
	if s.publisher != nil {
		s.publisher.Publish(ctx, "field_binding", events.ActionUpdated, issueTypeID)
	}

	return s.ListBindings(ctx, issueTypeID)
}

// ListUnboundFields returns the project's fields that the issue type has not
// bound yet, for the admin picker.
func (s *fieldBindingServiceImpl) ListUnboundFields(ctx context.Context, issueTypeID, projectID uuid.UUID) ([]*dto.CustomFieldResponse, error) {
	if _, err := s.issueTypeRepo.FindByID(ctx, issueTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Issue type not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch issue type", err.Error())
	}

	fields, err := s.fieldRepo.FindUnbound(ctx, issueTypeID, projectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch unbound fields", err.Error())
	}

	responses := make([]*dto.CustomFieldResponse, len(fields))
	for i, field := range fields {
		responses[i] = toCustomFieldResponse(field)
	}
	return responses, nil
}

// dedupeBindings collapses duplicate customFieldIds. The last occurrence wins
// so a re-submitted form row overrides an earlier one.
func dedupeBindings(inputs []dto.BindingInput) []dto.BindingInput {
	deduped := make([]dto.BindingInput, 0, len(inputs))
	index := make(map[uuid.UUID]int, len(inputs))
	for _, input := range inputs {
		if i, ok := index[input.CustomFieldID]; ok {
			deduped[i] = input
			continue
		}
		index[input.CustomFieldID] = len(deduped)
		deduped = append(deduped, input)
	}
	return deduped
}

func toBindingResponse(binding *domain.IssueTypeCustomField) *dto.BindingResponse {
	return &dto.BindingResponse{
		BindingID:    binding.ID,
		IssueTypeID:  binding.IssueTypeID,
		CustomField:  *toCustomFieldResponse(&binding.CustomField),
		IsRequired:   binding.IsRequired,
		DisplayOrder: binding.DisplayOrder,
	}
}
