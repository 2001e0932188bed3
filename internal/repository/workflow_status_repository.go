package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workflow-config-api/internal/domain"
)

// WorkflowStatusRepository defines the interface for workflow linearization
// data access
type WorkflowStatusRepository interface {
	// FindByWorkflowID returns the workflow's ordering rows with the status
	// preloaded, sorted by position with insertion-time tie-breaks.
	FindByWorkflowID(ctx context.Context, workflowID uuid.UUID) ([]*domain.WorkflowStatus, error)
	FindAll(ctx context.Context) ([]*domain.WorkflowStatus, error)
	// ReplaceOrder rewrites every row's position to its 1-based index in
	// orderedStatusIDs, in one transaction. Callers must have verified that
	// the id set matches the stored rows exactly.
	ReplaceOrder(ctx context.Context, workflowID uuid.UUID, orderedStatusIDs []uuid.UUID) error
}

type workflowStatusRepositoryImpl struct {
	db *gorm.DB
}

// NewWorkflowStatusRepository creates a new instance of WorkflowStatusRepository
func NewWorkflowStatusRepository(db *gorm.DB) WorkflowStatusRepository {
	return &workflowStatusRepositoryImpl{db: db}
}

func (r *workflowStatusRepositoryImpl) FindByWorkflowID(ctx context.Context, workflowID uuid.UUID) ([]*domain.WorkflowStatus, error) {
	var rows []*domain.WorkflowStatus
	if err := r.db.WithContext(ctx).
		Preload("Status").
		Where("workflow_id = ?", workflowID).
		Order("position ASC, created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *workflowStatusRepositoryImpl) FindAll(ctx context.Context) ([]*domain.WorkflowStatus, error) {
	var rows []*domain.WorkflowStatus
	if err := r.db.WithContext(ctx).
		Order("workflow_id ASC, position ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *workflowStatusRepositoryImpl) ReplaceOrder(ctx context.Context, workflowID uuid.UUID, orderedStatusIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, statusID := range orderedStatusIDs {
			result := tx.Model(&domain.WorkflowStatus{}).
				Where("workflow_id = ? AND status_id = ?", workflowID, statusID).
				UpdateColumn("position", i+1)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}
