package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workflow-config-api/internal/domain"
)

// WorkflowRepository defines the interface for transition edge data access.
// Cascades are explicit rules here rather than database-engine configuration
// so the behavior is identical on every backend.
type WorkflowRepository interface {
	// Create persists the edge, its scoping rows and its seed ordering
	// [from(1), to(2)] in one transaction.
	Create(ctx context.Context, edge *domain.Workflow, issueTypeIDs []uuid.UUID) error
	// Update saves edge attributes and replaces the full scoping set in one
	// transaction.
	Update(ctx context.Context, edge *domain.Workflow, issueTypeIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Workflow, error)
	FindAll(ctx context.Context) ([]*domain.Workflow, error)
	// FindByIssueTypeID returns the edges scoped to the issue type in
	// insertion order.
	FindByIssueTypeID(ctx context.Context, issueTypeID uuid.UUID) ([]*domain.Workflow, error)
	FindScopingIssueTypeIDs(ctx context.Context, workflowID uuid.UUID) ([]uuid.UUID, error)
	FindAllScopings(ctx context.Context) ([]*domain.WorkflowIssueType, error)
	// DeleteTransition removes the edge with its scoping and ordering rows,
	// then repairs the linearization of every remaining workflow whose
	// current ordering contains (from, to) as an adjacent pair. All in one
	// transaction.
	DeleteTransition(ctx context.Context, workflowID, fromStatusID, toStatusID uuid.UUID) error
}

type workflowRepositoryImpl struct {
	db *gorm.DB
}

// NewWorkflowRepository creates a new instance of WorkflowRepository
func NewWorkflowRepository(db *gorm.DB) WorkflowRepository {
	return &workflowRepositoryImpl{db: db}
}

func (r *workflowRepositoryImpl) Create(ctx context.Context, edge *domain.Workflow, issueTypeIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(edge).Error; err != nil {
			return err
		}
		for _, typeID := range issueTypeIDs {
			scoping := domain.WorkflowIssueType{
				WorkflowID:  edge.ID,
				IssueTypeID: typeID,
			}
			if err := tx.Create(&scoping).Error; err != nil {
				return err
			}
		}

		// Seed the edge's own linearization so ordered-status reads always
		// have rows to work with.
		seed := []domain.WorkflowStatus{
			{WorkflowID: edge.ID, StatusID: edge.FromStatusID, Order: 1},
			{WorkflowID: edge.ID, StatusID: edge.ToStatusID, Order: 2},
		}
		for i := range seed {
			if err := tx.Create(&seed[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *workflowRepositoryImpl) Update(ctx context.Context, edge *domain.Workflow, issueTypeIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(edge).Error; err != nil {
			return err
		}

		var existing []domain.WorkflowIssueType
		if err := tx.Where("workflow_id = ?", edge.ID).
			Find(&existing).Error; err != nil {
			return err
		}

		desired := make(map[uuid.UUID]bool, len(issueTypeIDs))
		for _, id := range issueTypeIDs {
			desired[id] = true
		}
		present := make(map[uuid.UUID]bool, len(existing))
		for _, s := range existing {
			present[s.IssueTypeID] = true
			if !desired[s.IssueTypeID] {
				// Hard delete: a soft-deleted scoping row would still occupy
				// the (workflow_id, issue_type_id) unique index and block
				// re-scoping the edge to this type later.
				if err := tx.Unscoped().Delete(&domain.WorkflowIssueType{}, s.ID).Error; err != nil {
					return err
				}
			}
		}
		for _, typeID := range issueTypeIDs {
			if present[typeID] {
				continue
			}
			scoping := domain.WorkflowIssueType{
				WorkflowID:  edge.ID,
				IssueTypeID: typeID,
			}
			if err := tx.Create(&scoping).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *workflowRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Workflow, error) {
	var edge domain.Workflow
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&edge).Error; err != nil {
		return nil, err
	}
	return &edge, nil
}

func (r *workflowRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Workflow, error) {
	var edges []*domain.Workflow
	if err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}

func (r *workflowRepositoryImpl) FindByIssueTypeID(ctx context.Context, issueTypeID uuid.UUID) ([]*domain.Workflow, error) {
	var edges []*domain.Workflow
	subquery := r.db.
		Model(&domain.WorkflowIssueType{}).
		Select("workflow_id").
		Where("issue_type_id = ?", issueTypeID)

	if err := r.db.WithContext(ctx).
		Where("id IN (?)", subquery).
		Order("created_at ASC, id ASC").
		Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}

func (r *workflowRepositoryImpl) FindScopingIssueTypeIDs(ctx context.Context, workflowID uuid.UUID) ([]uuid.UUID, error) {
	var scopings []domain.WorkflowIssueType
	if err := r.db.WithContext(ctx).
		Where("workflow_id = ?", workflowID).
		Order("created_at ASC").
		Find(&scopings).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(scopings))
	for i, s := range scopings {
		ids[i] = s.IssueTypeID
	}
	return ids, nil
}

func (r *workflowRepositoryImpl) FindAllScopings(ctx context.Context) ([]*domain.WorkflowIssueType, error) {
	var scopings []*domain.WorkflowIssueType
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&scopings).Error; err != nil {
		return nil, err
	}
	return scopings, nil
}

func (r *workflowRepositoryImpl) DeleteTransition(ctx context.Context, workflowID, fromStatusID, toStatusID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Explicit cascade: scoping and ordering rows go with the edge. Join
		// rows are hard deleted so their composite unique indexes never hold
		// a dead row; the edge itself stays soft deleted for the retention
		// job.
		if err := tx.Unscoped().Where("workflow_id = ?", workflowID).
			Delete(&domain.WorkflowIssueType{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("workflow_id = ?", workflowID).
			Delete(&domain.WorkflowStatus{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.Workflow{}, workflowID).Error; err != nil {
			return err
		}

		// Repair every remaining workflow whose linearization contains the
		// deleted pair adjacently.
		var candidates []uuid.UUID
		if err := tx.Model(&domain.WorkflowStatus{}).
			Distinct("workflow_id").
			Where("status_id = ?", fromStatusID).
			Pluck("workflow_id", &candidates).Error; err != nil {
			return err
		}

		for _, wfID := range candidates {
			if err := repairWorkflowOrder(tx, wfID, fromStatusID, toStatusID); err != nil {
				return err
			}
		}
		return nil
	})
}

// repairWorkflowOrder applies the delete-reordering rule to one workflow's
// linearization and rewrites 1-based positions when something moved.
func repairWorkflowOrder(tx *gorm.DB, workflowID, fromStatusID, toStatusID uuid.UUID) error {
	var rows []domain.WorkflowStatus
	if err := tx.Where("workflow_id = ?", workflowID).
		Order("position ASC, created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return err
	}

	ordered := make([]uuid.UUID, len(rows))
	rowByStatus := make(map[uuid.UUID]domain.WorkflowStatus, len(rows))
	for i, row := range rows {
		ordered[i] = row.StatusID
		rowByStatus[row.StatusID] = row
	}

	repaired, changed := domain.RepairLinearization(ordered, fromStatusID, toStatusID)
	if !changed {
		return nil
	}

	for i, statusID := range repaired {
		row := rowByStatus[statusID]
		if err := tx.Model(&domain.WorkflowStatus{}).
			Where("id = ?", row.ID).
			UpdateColumn("position", i+1).Error; err != nil {
			return err
		}
	}
	return nil
}
