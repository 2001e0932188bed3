package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"workflow-config-api/internal/domain"
	"workflow-config-api/internal/dto"
	"workflow-config-api/internal/events"
	"workflow-config-api/internal/metrics"
	"workflow-config-api/internal/repository"
	"workflow-config-api/internal/response"
)

// CustomFieldService defines the interface for custom field business logic
type CustomFieldService interface {
	GetCustomFields(ctx context.Context, projectID *uuid.UUID) ([]*dto.CustomFieldResponse, error)
	GetCustomField(ctx context.Context, fieldID uuid.UUID) (*dto.CustomFieldResponse, error)
	CreateCustomField(ctx context.Context, req *dto.CreateCustomFieldRequest) (*dto.CustomFieldResponse, error)
	UpdateCustomField(ctx context.Context, fieldID uuid.UUID, req *dto.UpdateCustomFieldRequest) (*dto.CustomFieldResponse, error)
	DeleteCustomField(ctx context.Context, fieldID uuid.UUID) error
}

// customFieldServiceImpl is the implementation of CustomFieldService
type customFieldServiceImpl struct {
	fieldRepo   repository.CustomFieldRepository
	projectRepo repository.ProjectRepository
	publisher   events.Publisher
	metrics     *metrics.Metrics
}

// NewCustomFieldService creates a new instance of CustomFieldService
func NewCustomFieldService(fieldRepo repository.CustomFieldRepository, projectRepo repository.ProjectRepository, publisher events.Publisher, m *metrics.Metrics) CustomFieldService {
	return &customFieldServiceImpl{
		fieldRepo:   fieldRepo,
		projectRepo: projectRepo,
		publisher:   publisher,
		metrics:     m,
	}
}

// GetCustomFields lists custom fields, optionally filtered by project
func (s *customFieldServiceImpl) GetCustomFields(ctx context.Context, projectID *uuid.UUID) ([]*dto.CustomFieldResponse, error) {
	var (
		fields []*domain.CustomField
		err    error
	)
	if projectID != nil {
		fields, err = s.fieldRepo.FindByProjectID(ctx, *projectID)
	} else {
		fields, err = s.fieldRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch custom fields", err.Error())
	}

	responses := make([]*dto.CustomFieldResponse, len(fields))
	for i, field := range fields {
		responses[i] = toCustomFieldResponse(field)
	}
	return responses, nil
}

// GetCustomField retrieves a single custom field by ID
func (s *customFieldServiceImpl) GetCustomField(ctx context.Context, fieldID uuid.UUID) (*dto.CustomFieldResponse, error) {
	field, err := s.fieldRepo.FindByID(ctx, fieldID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Custom field not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch custom field", err.Error())
	}
	return toCustomFieldResponse(field), nil
}

// CreateCustomField creates a new field definition. Option lists are only
// accepted for select, multiselect and radio field types.
func (s *customFieldServiceImpl) CreateCustomField(ctx context.Context, req *dto.CreateCustomFieldRequest) (*dto.CustomFieldResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewValidationError("Field name must not be empty", "")
	}

	fieldType := domain.FieldType(req.FieldType)
	if !domain.ValidFieldType(fieldType) {
		return nil, response.NewValidationError(fmt.Sprintf("Invalid field type: %s", req.FieldType), "")
	}
	if len(req.Options) > 0 && !fieldType.HasOptions() {
		return nil, response.NewValidationError(fmt.Sprintf("Field type '%s' does not accept options", req.FieldType), "")
	}

	exists, err := s.projectRepo.Exists(ctx, req.ProjectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify project", err.Error())
	}
	if !exists {
		return nil, response.NewInvalidReferenceError(fmt.Sprintf("Project %s does not exist", req.ProjectID), "")
	}

	options, err := marshalOptions(req.Options)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode field options", err.Error())
	}

	field := &domain.CustomField{
		ProjectID:    req.ProjectID,
		Name:         name,
		FieldType:    fieldType,
		Description:  req.Description,
		Required:     req.Required,
		Searchable:   req.Searchable,
		Options:      options,
		DefaultValue: req.DefaultValue,
	}

	if err := s.fieldRepo.Create(ctx, field); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create custom field", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementCustomFieldCreated()
	}
	if s.publisher != nil {
		s.publisher.Publish(ctx, "custom_field", events.ActionCreated, field.ID)
	}
	return toCustomFieldResponse(field), nil
}

// UpdateCustomField updates a field definition. The field type itself is
// immutable; changing it would invalidate values already stored on issues.
func (s *customFieldServiceImpl) UpdateCustomField(ctx context.Context, fieldID uuid.UUID, req *dto.UpdateCustomFieldRequest) (*dto.CustomFieldResponse, error) {
	field, err := s.fieldRepo.FindByID(ctx, fieldID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Custom field not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch custom field", err.Error())
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, response.NewValidationError("Field name must not be empty", "")
		}
		field.Name = name
	}
	if req.Description != nil {
		field.Description = *req.Description
	}
	if req.Required != nil {
		field.Required = *req.Required
	}
	if req.Searchable != nil {
		field.Searchable = *req.Searchable
	}
	if req.Options != nil {
		if len(*req.Options) > 0 && !field.FieldType.HasOptions() {
			return nil, response.NewValidationError(fmt.Sprintf("Field type '%s' does not accept options", field.FieldType), "")
		}
		options, err := marshalOptions(*req.Options)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode field options", err.Error())
		}
		field.Options = options
	}
	if req.DefaultValue != nil {
		field.DefaultValue = *req.DefaultValue
	}

	if err := s.fieldRepo.Update(ctx, field); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update custom field", err.Error())
	}

	if s.publisher != nil {
		s.publisher.Publish(ctx, "custom_field", events.ActionUpdated, field.ID)
	}
	return toCustomFieldResponse(field), nil
}

// DeleteCustomField deletes a field definition. Deletion is blocked while
// bindings to any issue type remain.
func (s *customFieldServiceImpl) DeleteCustomField(ctx context.Context, fieldID uuid.UUID) error {
	if _, err := s.fieldRepo.FindByID(ctx, fieldID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Custom field not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch custom field", err.Error())
	}

	bindingCount, err := s.fieldRepo.CountBindings(ctx, fieldID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to check field bindings", err.Error())
	}
	if bindingCount > 0 {
		return response.NewReferentialIntegrityError(
			"Custom field is still bound to issue types and cannot be deleted",
			fmt.Sprintf("bindings: %d", bindingCount),
		)
	}

	if err := s.fieldRepo.Delete(ctx, fieldID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete custom field", err.Error())
	}

	if s.publisher != nil {
		s.publisher.Publish(ctx, "custom_field", events.ActionDeleted, fieldID)
	}
	return nil
}

func marshalOptions(options []string) (datatypes.JSON, error) {
	if len(options) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(options)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func toCustomFieldResponse(field *domain.CustomField) *dto.CustomFieldResponse {
	var options []string
	if len(field.Options) > 0 {
		// A corrupt options column should not make the whole listing fail
		_ = json.Unmarshal(field.Options, &options)
	}

	return &dto.CustomFieldResponse{
		FieldID:      field.ID,
		ProjectID:    field.ProjectID,
		Name:         field.Name,
		FieldType:    string(field.FieldType),
		Description:  field.Description,
		Required:     field.Required,
		Searchable:   field.Searchable,
		Options:      options,
		DefaultValue: field.DefaultValue,
		UsageCount:   field.UsageCount,
		CreatedAt:    field.CreatedAt,
		UpdatedAt:    field.UpdatedAt,
	}
}
