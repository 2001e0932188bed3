package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"workflow-config-api/internal/domain"
)

// AutoMigrate runs GORM auto-migration for all configuration models.
// Migration order matters: referenced tables first so foreign keys resolve.
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&domain.Project{},
		&domain.IssueStatus{},
		&domain.IssueType{},
		&domain.CustomField{},
		&domain.IssueTypeCustomField{},
		&domain.Workflow{},
		&domain.WorkflowIssueType{},
		&domain.WorkflowStatus{},
		&domain.Issue{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	return nil
}

// SafeAutoMigrate migrates one model at a time, logging table creation versus
// in-place schema updates. Useful against databases that already have data.
func SafeAutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()

	models := []struct {
		model     interface{}
		tableName string
	}{
		{&domain.Project{}, "projects"},
		{&domain.IssueStatus{}, "issue_statuses"},
		{&domain.IssueType{}, "issue_types"},
		{&domain.CustomField{}, "custom_fields"},
		{&domain.IssueTypeCustomField{}, "issue_type_custom_fields"},
		{&domain.Workflow{}, "workflows"},
		{&domain.WorkflowIssueType{}, "workflow_issue_types"},
		{&domain.WorkflowStatus{}, "workflow_statuses"},
		{&domain.Issue{}, "issues"},
	}

	for _, m := range models {
		existed := migrator.HasTable(m.model)

		if err := db.AutoMigrate(m.model); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("table", m.tableName),
				zap.Bool("table_existed", existed),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate table %s: %w", m.tableName, err)
		}

		logger.Info("Migrated table",
			zap.String("table", m.tableName),
			zap.Bool("was_existing", existed),
		)
	}

	return nil
}
