package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"workflow-config-api/internal/domain"
	"workflow-config-api/internal/dto"
	"workflow-config-api/internal/response"
)

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *response.AppError
	require.True(t, errors.As(err, &appErr), "expected *response.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func TestReplaceBindings_IssueTypeNotFound(t *testing.T) {
	issueTypeRepo := &MockIssueTypeRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.IssueType, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewFieldBindingService(&MockBindingRepository{}, issueTypeRepo, &MockCustomFieldRepository{}, nil, nil)

	_, err := svc.ReplaceBindings(context.Background(), uuid.New(), &dto.ReplaceBindingsRequest{})

	assertAppErrorCode(t, err, response.ErrCodeNotFound)
}

func TestReplaceBindings_UnknownFieldRejected(t *testing.T) {
	projectID := uuid.New()
	issueTypeID := uuid.New()
	knownFieldID := uuid.New()
	unknownFieldID := uuid.New()

	issueTypeRepo := &MockIssueTypeRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.IssueType, error) {
			return &domain.IssueType{BaseModel: domain.BaseModel{ID: issueTypeID}, ProjectID: projectID}, nil
		},
	}
	fieldRepo := &MockCustomFieldRepository{
		FindByIDsFunc: func(ctx context.Context, ids []uuid.UUID) ([]*domain.CustomField, error) {
			return []*domain.CustomField{
				{BaseModel: domain.BaseModel{ID: knownFieldID}, ProjectID: projectID},
			}, nil
		},
	}
	replaceCalled := false
	bindingRepo := &MockBindingRepository{
		ReplaceForIssueTypeFunc: func(ctx context.Context, id uuid.UUID, desired []domain.IssueTypeCustomField) error {
			replaceCalled = true
			return nil
		},
	}
	svc := NewFieldBindingService(bindingRepo, issueTypeRepo, fieldRepo, nil, nil)

	_, err := svc.ReplaceBindings(context.Background(), issueTypeID, &dto.ReplaceBindingsRequest{
		Bindings: []dto.BindingInput{
			{CustomFieldID: knownFieldID},
			{CustomFieldID: unknownFieldID},
		},
	})

	assertAppErrorCode(t, err, response.ErrCodeInvalidReference)
	assert.False(t, replaceCalled, "binding set must not change when a reference is invalid")
}

func TestReplaceBindings_CrossProjectFieldRejected(t *testing.T) {
	issueTypeID := uuid.New()
	fieldID := uuid.New()

	issueTypeRepo := &MockIssueTypeRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.IssueType, error) {
			return &domain.IssueType{BaseModel: domain.BaseModel{ID: issueTypeID}, ProjectID: uuid.New()}, nil
		},
	}
	fieldRepo := &MockCustomFieldRepository{
		FindByIDsFunc: func(ctx context.Context, ids []uuid.UUID) ([]*domain.CustomField, error) {
			return []*domain.CustomField{
				{BaseModel: domain.BaseModel{ID: fieldID}, ProjectID: uuid.New()},
			}, nil
		},
	}
	svc := NewFieldBindingService(&MockBindingRepository{}, issueTypeRepo, fieldRepo, nil, nil)

	_, err := svc.ReplaceBindings(context.Background(), issueTypeID, &dto.ReplaceBindingsRequest{
		Bindings: []dto.BindingInput{{CustomFieldID: fieldID}},
	})

	assertAppErrorCode(t, err, response.ErrCodeInvalidReference)
}

func TestReplaceBindings_DuplicateFieldLastWins(t *testing.T) {
	projectID := uuid.New()
	issueTypeID := uuid.New()
	fieldID := uuid.New()
	otherFieldID := uuid.New()

	issueTypeRepo := &MockIssueTypeRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.IssueType, error) {
			return &domain.IssueType{BaseModel: domain.BaseModel{ID: issueTypeID}, ProjectID: projectID}, nil
		},
	}
	fieldRepo := &MockCustomFieldRepository{
		FindByIDsFunc: func(ctx context.Context, ids []uuid.UUID) ([]*domain.CustomField, error) {
			return []*domain.CustomField{
				{BaseModel: domain.BaseModel{ID: fieldID}, ProjectID: projectID},
				{BaseModel: domain.BaseModel{ID: otherFieldID}, ProjectID: projectID},
			}, nil
		},
	}

	var replaced []domain.IssueTypeCustomField
	bindingRepo := &MockBindingRepository{
		ReplaceForIssueTypeFunc: func(ctx context.Context, id uuid.UUID, desired []domain.IssueTypeCustomField) error {
			replaced = desired
			return nil
		},
		FindByIssueTypeIDFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.IssueTypeCustomField, error) {
			return nil, nil
		},
	}
	svc := NewFieldBindingService(bindingRepo, issueTypeRepo, fieldRepo, nil, nil)

	_, err := svc.ReplaceBindings(context.Background(), issueTypeID, &dto.ReplaceBindingsRequest{
		Bindings: []dto.BindingInput{
			{CustomFieldID: fieldID, IsRequired: false, DisplayOrder: 1},
			{CustomFieldID: otherFieldID, IsRequired: true, DisplayOrder: 2},
			{CustomFieldID: fieldID, IsRequired: true, DisplayOrder: 7},
		},
	})

	require.NoError(t, err)
	require.Len(t, replaced, 2)
	// the duplicate keeps its first position but the last occurrence's attributes
	assert.Equal(t, fieldID, replaced[0].CustomFieldID)
	assert.True(t, replaced[0].IsRequired)
	assert.Equal(t, 7, replaced[0].DisplayOrder)
	assert.Equal(t, otherFieldID, replaced[1].CustomFieldID)
}

func TestReplaceBindings_EmptySetClearsBindings(t *testing.T) {
	projectID := uuid.New()
	issueTypeID := uuid.New()

	issueTypeRepo := &MockIssueTypeRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.IssueType, error) {
			return &domain.IssueType{BaseModel: domain.BaseModel{ID: issueTypeID}, ProjectID: projectID}, nil
		},
	}
	var replaced []domain.IssueTypeCustomField
	replaceCalled := false
	bindingRepo := &MockBindingRepository{
		ReplaceForIssueTypeFunc: func(ctx context.Context, id uuid.UUID, desired []domain.IssueTypeCustomField) error {
			replaceCalled = true
			replaced = desired
			return nil
		},
	}
	publisher := &MockPublisher{}
	svc := NewFieldBindingService(bindingRepo, issueTypeRepo, &MockCustomFieldRepository{}, publisher, nil)

	result, err := svc.ReplaceBindings(context.Background(), issueTypeID, &dto.ReplaceBindingsRequest{})

	require.NoError(t, err)
	assert.True(t, replaceCalled)
	assert.Empty(t, replaced)
	assert.Empty(t, result)
	require.Len(t, publisher.Events, 1)
	assert.Equal(t, "field_binding", publisher.Events[0].Entity)
}

func TestListBindings_ReturnsFieldDefinitions(t *testing.T) {
	issueTypeID := uuid.New()
	fieldID := uuid.New()

	issueTypeRepo := &MockIssueTypeRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.IssueType, error) {
			return &domain.IssueType{BaseModel: domain.BaseModel{ID: issueTypeID}}, nil
		},
	}
	bindingRepo := &MockBindingRepository{
		FindByIssueTypeIDFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.IssueTypeCustomField, error) {
			return []*domain.IssueTypeCustomField{
				{
					BaseModel:     domain.BaseModel{ID: uuid.New()},
					IssueTypeID:   issueTypeID,
					CustomFieldID: fieldID,
					IsRequired:    true,
					DisplayOrder:  1,
					CustomField: domain.CustomField{
						BaseModel: domain.BaseModel{ID: fieldID},
						Name:      "Severity",
						FieldType: domain.FieldTypeSelect,
					},
				},
			}, nil
		},
	}
	svc := NewFieldBindingService(bindingRepo, issueTypeRepo, &MockCustomFieldRepository{}, nil, nil)

	bindings, err := svc.ListBindings(context.Background(), issueTypeID)

	require.NoError(t, err)
	require.Len(t, bindings, 1)
	assert.Equal(t, issueTypeID, bindings[0].IssueTypeID)
	assert.True(t, bindings[0].IsRequired)
	assert.Equal(t, "Severity", bindings[0].CustomField.Name)
}

func TestListUnboundFields_IssueTypeNotFound(t *testing.T) {
	issueTypeRepo := &MockIssueTypeRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.IssueType, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewFieldBindingService(&MockBindingRepository{}, issueTypeRepo, &MockCustomFieldRepository{}, nil, nil)

	_, err := svc.ListUnboundFields(context.Background(), uuid.New(), uuid.New())

	assertAppErrorCode(t, err, response.ErrCodeNotFound)
}
