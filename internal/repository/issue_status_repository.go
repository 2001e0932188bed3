package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workflow-config-api/internal/domain"
)

// StatusDependents summarizes what still references an issue status
type StatusDependents struct {
	WorkflowEdges    int64
	WorkflowStatuses int64
	Issues           int64
}

// Total returns the combined dependent count
func (d StatusDependents) Total() int64 {
	return d.WorkflowEdges + d.WorkflowStatuses + d.Issues
}

// IssueStatusRepository defines the interface for issue status data access
type IssueStatusRepository interface {
	Create(ctx context.Context, status *domain.IssueStatus) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.IssueStatus, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.IssueStatus, error)
	FindAll(ctx context.Context) ([]*domain.IssueStatus, error)
	Update(ctx context.Context, status *domain.IssueStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountDependents(ctx context.Context, id uuid.UUID) (StatusDependents, error)
}

type issueStatusRepositoryImpl struct {
	db *gorm.DB
}

// NewIssueStatusRepository creates a new instance of IssueStatusRepository
func NewIssueStatusRepository(db *gorm.DB) IssueStatusRepository {
	return &issueStatusRepositoryImpl{db: db}
}

func (r *issueStatusRepositoryImpl) Create(ctx context.Context, status *domain.IssueStatus) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *issueStatusRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.IssueStatus, error) {
	var status domain.IssueStatus
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *issueStatusRepositoryImpl) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.IssueStatus, error) {
	if len(ids) == 0 {
		return []*domain.IssueStatus{}, nil
	}
	var statuses []*domain.IssueStatus
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *issueStatusRepositoryImpl) FindAll(ctx context.Context) ([]*domain.IssueStatus, error) {
	var statuses []*domain.IssueStatus
	if err := r.db.WithContext(ctx).
		Order("display_order ASC, created_at ASC").
		Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *issueStatusRepositoryImpl) Update(ctx context.Context, status *domain.IssueStatus) error {
	return r.db.WithContext(ctx).Save(status).Error
}

func (r *issueStatusRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.IssueStatus{}, id).Error
}

// CountDependents counts everything that blocks deletion of a status: edges
// touching it, ordering rows referencing it, and issues currently in it.
func (r *issueStatusRepositoryImpl) CountDependents(ctx context.Context, id uuid.UUID) (StatusDependents, error) {
	var deps StatusDependents

	if err := r.db.WithContext(ctx).
		Model(&domain.Workflow{}).
		Where("from_status_id = ? OR to_status_id = ?", id, id).
		Count(&deps.WorkflowEdges).Error; err != nil {
		return deps, err
	}
	if err := r.db.WithContext(ctx).
		Model(&domain.WorkflowStatus{}).
		Where("status_id = ?", id).
		Count(&deps.WorkflowStatuses).Error; err != nil {
		return deps, err
	}
	if err := r.db.WithContext(ctx).
		Model(&domain.Issue{}).
		Where("status_id = ?", id).
		Count(&deps.Issues).Error; err != nil {
		return deps, err
	}

	return deps, nil
}
