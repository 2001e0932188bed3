package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workflow-config-api/internal/domain"
)

// ProjectRepository defines the interface for project data access. Projects
// are owned by another service; this repository only resolves references.
type ProjectRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type projectRepositoryImpl struct {
	db *gorm.DB
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

func (r *projectRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepositoryImpl) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
