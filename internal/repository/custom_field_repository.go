package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workflow-config-api/internal/domain"
)

// CustomFieldRepository defines the interface for custom field data access
type CustomFieldRepository interface {
	Create(ctx context.Context, field *domain.CustomField) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.CustomField, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.CustomField, error)
	FindAll(ctx context.Context) ([]*domain.CustomField, error)
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.CustomField, error)
	// FindUnbound returns the project's fields not yet bound to the issue type
	FindUnbound(ctx context.Context, issueTypeID, projectID uuid.UUID) ([]*domain.CustomField, error)
	Update(ctx context.Context, field *domain.CustomField) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountBindings(ctx context.Context, id uuid.UUID) (int64, error)
}

type customFieldRepositoryImpl struct {
	db *gorm.DB
}

// NewCustomFieldRepository creates a new instance of CustomFieldRepository
func NewCustomFieldRepository(db *gorm.DB) CustomFieldRepository {
	return &customFieldRepositoryImpl{db: db}
}

func (r *customFieldRepositoryImpl) Create(ctx context.Context, field *domain.CustomField) error {
	return r.db.WithContext(ctx).Create(field).Error
}

func (r *customFieldRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.CustomField, error) {
	var field domain.CustomField
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&field).Error; err != nil {
		return nil, err
	}
	return &field, nil
}

func (r *customFieldRepositoryImpl) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.CustomField, error) {
	if len(ids) == 0 {
		return []*domain.CustomField{}, nil
	}
	var fields []*domain.CustomField
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *customFieldRepositoryImpl) FindAll(ctx context.Context) ([]*domain.CustomField, error) {
	var fields []*domain.CustomField
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *customFieldRepositoryImpl) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.CustomField, error) {
	var fields []*domain.CustomField
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *customFieldRepositoryImpl) FindUnbound(ctx context.Context, issueTypeID, projectID uuid.UUID) ([]*domain.CustomField, error) {
	var fields []*domain.CustomField
	subquery := r.db.
		Model(&domain.IssueTypeCustomField{}).
		Select("custom_field_id").
		Where("issue_type_id = ?", issueTypeID)

	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND id NOT IN (?)", projectID, subquery).
		Order("created_at ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *customFieldRepositoryImpl) Update(ctx context.Context, field *domain.CustomField) error {
	return r.db.WithContext(ctx).Save(field).Error
}

func (r *customFieldRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.CustomField{}, id).Error
}

func (r *customFieldRepositoryImpl) CountBindings(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.IssueTypeCustomField{}).
		Where("custom_field_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
