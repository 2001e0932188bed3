package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workflow-config-api/internal/domain"
)

// IssueTypeRepository defines the interface for issue type data access
type IssueTypeRepository interface {
	Create(ctx context.Context, issueType *domain.IssueType) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.IssueType, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.IssueType, error)
	FindAll(ctx context.Context) ([]*domain.IssueType, error)
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.IssueType, error)
	Update(ctx context.Context, issueType *domain.IssueType) error
	// Delete removes the issue type together with its workflow scoping rows
	// and field bindings in one transaction. Bound fields get their usage
	// counts decremented.
	Delete(ctx context.Context, id uuid.UUID) error
	CountIssues(ctx context.Context, id uuid.UUID) (int64, error)
}

type issueTypeRepositoryImpl struct {
	db *gorm.DB
}

// NewIssueTypeRepository creates a new instance of IssueTypeRepository
func NewIssueTypeRepository(db *gorm.DB) IssueTypeRepository {
	return &issueTypeRepositoryImpl{db: db}
}

func (r *issueTypeRepositoryImpl) Create(ctx context.Context, issueType *domain.IssueType) error {
	return r.db.WithContext(ctx).Create(issueType).Error
}

func (r *issueTypeRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.IssueType, error) {
	var issueType domain.IssueType
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&issueType).Error; err != nil {
		return nil, err
	}
	return &issueType, nil
}

func (r *issueTypeRepositoryImpl) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.IssueType, error) {
	if len(ids) == 0 {
		return []*domain.IssueType{}, nil
	}
	var issueTypes []*domain.IssueType
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&issueTypes).Error; err != nil {
		return nil, err
	}
	return issueTypes, nil
}

func (r *issueTypeRepositoryImpl) FindAll(ctx context.Context) ([]*domain.IssueType, error) {
	var issueTypes []*domain.IssueType
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&issueTypes).Error; err != nil {
		return nil, err
	}
	return issueTypes, nil
}

func (r *issueTypeRepositoryImpl) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.IssueType, error) {
	var issueTypes []*domain.IssueType
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&issueTypes).Error; err != nil {
		return nil, err
	}
	return issueTypes, nil
}

func (r *issueTypeRepositoryImpl) Update(ctx context.Context, issueType *domain.IssueType) error {
	return r.db.WithContext(ctx).Save(issueType).Error
}

func (r *issueTypeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Cascade workflow scoping rows for this type. Join rows are hard
		// deleted so the composite unique indexes never hold a dead row.
		if err := tx.Unscoped().Where("issue_type_id = ?", id).
			Delete(&domain.WorkflowIssueType{}).Error; err != nil {
			return err
		}

		// Cascade field bindings, keeping usage counts in step
		var bindings []domain.IssueTypeCustomField
		if err := tx.Where("issue_type_id = ?", id).
			Find(&bindings).Error; err != nil {
			return err
		}
		for _, b := range bindings {
			if err := tx.Model(&domain.CustomField{}).
				Where("id = ? AND usage_count > 0", b.CustomFieldID).
				UpdateColumn("usage_count", gorm.Expr("usage_count - 1")).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("issue_type_id = ?", id).
			Delete(&domain.IssueTypeCustomField{}).Error; err != nil {
			return err
		}

		return tx.Delete(&domain.IssueType{}, id).Error
	})
}

func (r *issueTypeRepositoryImpl) CountIssues(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Issue{}).
		Where("issue_type_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
