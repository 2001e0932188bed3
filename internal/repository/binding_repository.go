package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workflow-config-api/internal/domain"
)

// BindingRepository defines the interface for issue type / custom field
// binding data access
type BindingRepository interface {
	// FindByIssueTypeID returns bindings with the custom field preloaded,
	// ordered by display order then custom field id.
	FindByIssueTypeID(ctx context.Context, issueTypeID uuid.UUID) ([]*domain.IssueTypeCustomField, error)
	FindAll(ctx context.Context) ([]*domain.IssueTypeCustomField, error)
	// ReplaceForIssueType swaps the issue type's full binding set in one
	// transaction: bindings absent from the desired set are removed, the rest
	// are upserted, and usage counts of every touched field are recomputed.
	// The desired slice must already be deduplicated by custom field id.
	ReplaceForIssueType(ctx context.Context, issueTypeID uuid.UUID, desired []domain.IssueTypeCustomField) error
}

type bindingRepositoryImpl struct {
	db *gorm.DB
}

// NewBindingRepository creates a new instance of BindingRepository
func NewBindingRepository(db *gorm.DB) BindingRepository {
	return &bindingRepositoryImpl{db: db}
}

func (r *bindingRepositoryImpl) FindByIssueTypeID(ctx context.Context, issueTypeID uuid.UUID) ([]*domain.IssueTypeCustomField, error) {
	var bindings []*domain.IssueTypeCustomField
	if err := r.db.WithContext(ctx).
		Preload("CustomField").
		Where("issue_type_id = ?", issueTypeID).
		Order("display_order ASC, custom_field_id ASC").
		Find(&bindings).Error; err != nil {
		return nil, err
	}
	return bindings, nil
}

func (r *bindingRepositoryImpl) FindAll(ctx context.Context) ([]*domain.IssueTypeCustomField, error) {
	var bindings []*domain.IssueTypeCustomField
	if err := r.db.WithContext(ctx).
		Order("issue_type_id ASC, display_order ASC").
		Find(&bindings).Error; err != nil {
		return nil, err
	}
	return bindings, nil
}

func (r *bindingRepositoryImpl) ReplaceForIssueType(ctx context.Context, issueTypeID uuid.UUID, desired []domain.IssueTypeCustomField) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []domain.IssueTypeCustomField
		if err := tx.Where("issue_type_id = ?", issueTypeID).
			Find(&existing).Error; err != nil {
			return err
		}

		existingByField := make(map[uuid.UUID]domain.IssueTypeCustomField, len(existing))
		for _, b := range existing {
			existingByField[b.CustomFieldID] = b
		}
		desiredFields := make(map[uuid.UUID]bool, len(desired))
		for _, b := range desired {
			desiredFields[b.CustomFieldID] = true
		}

		// Remove bindings not present in the desired set. Join rows are
		// removed for real: a soft-deleted row would still occupy the
		// (issue_type_id, custom_field_id) unique index and block rebinding.
		for _, b := range existing {
			if desiredFields[b.CustomFieldID] {
				continue
			}
			if err := tx.Unscoped().Delete(&domain.IssueTypeCustomField{}, b.ID).Error; err != nil {
				return err
			}
			if err := adjustUsageCount(tx, b.CustomFieldID, -1); err != nil {
				return err
			}
		}

		// Upsert the desired set
		for _, b := range desired {
			if current, ok := existingByField[b.CustomFieldID]; ok {
				current.IsRequired = b.IsRequired
				current.DisplayOrder = b.DisplayOrder
				if err := tx.Save(&current).Error; err != nil {
					return err
				}
				continue
			}
			row := domain.IssueTypeCustomField{
				IssueTypeID:   issueTypeID,
				CustomFieldID: b.CustomFieldID,
				IsRequired:    b.IsRequired,
				DisplayOrder:  b.DisplayOrder,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			if err := adjustUsageCount(tx, b.CustomFieldID, 1); err != nil {
				return err
			}
		}

		return nil
	})
}

// adjustUsageCount shifts a custom field's usage count, clamping at zero
func adjustUsageCount(tx *gorm.DB, fieldID uuid.UUID, delta int) error {
	query := tx.Model(&domain.CustomField{}).Where("id = ?", fieldID)
	if delta < 0 {
		query = query.Where("usage_count > 0")
	}
	return query.UpdateColumn("usage_count", gorm.Expr("usage_count + ?", delta)).Error
}
