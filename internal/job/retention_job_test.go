package job

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"workflow-config-api/internal/domain"
)

func setupRetentionTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	db.Exec(`CREATE TABLE issue_statuses (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		name TEXT NOT NULL,
		display_order INTEGER NOT NULL DEFAULT 0,
		color_tag TEXT,
		description TEXT
	)`)
	db.Exec(`CREATE TABLE custom_fields (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		project_id TEXT NOT NULL,
		name TEXT NOT NULL,
		field_type TEXT NOT NULL,
		description TEXT,
		required INTEGER NOT NULL DEFAULT 0,
		searchable INTEGER NOT NULL DEFAULT 0,
		options TEXT,
		default_value TEXT,
		usage_count INTEGER NOT NULL DEFAULT 0
	)`)
	db.Exec(`CREATE TABLE issue_types (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		project_id TEXT NOT NULL,
		name TEXT NOT NULL,
		color_tag TEXT,
		icon_tag TEXT,
		description TEXT
	)`)
	db.Exec(`CREATE TABLE workflows (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		from_status_id TEXT NOT NULL,
		to_status_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT
	)`)
	db.Exec(`CREATE TABLE workflow_issue_types (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		workflow_id TEXT NOT NULL,
		issue_type_id TEXT NOT NULL
	)`)
	db.Exec(`CREATE TABLE workflow_statuses (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		workflow_id TEXT NOT NULL,
		status_id TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0
	)`)
	db.Exec(`CREATE TABLE issue_type_custom_fields (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		issue_type_id TEXT NOT NULL,
		custom_field_id TEXT NOT NULL,
		is_required INTEGER NOT NULL DEFAULT 0,
		display_order INTEGER NOT NULL DEFAULT 0
	)`)

	return db
}

func softDeleteAt(t *testing.T, db *gorm.DB, model interface{}, id uuid.UUID, deletedAt time.Time) {
	require.NoError(t, db.Model(model).
		Where("id = ?", id).
		UpdateColumn("deleted_at", deletedAt).Error)
}

func TestRetentionJob_PurgesExpiredRows(t *testing.T) {
	db := setupRetentionTestDB(t)
	job := NewRetentionJob(db, zap.NewNop(), 30*24*time.Hour)

	expired := &domain.IssueStatus{BaseModel: domain.BaseModel{ID: uuid.New()}, Name: "Archived"}
	recent := &domain.IssueStatus{BaseModel: domain.BaseModel{ID: uuid.New()}, Name: "Removed"}
	live := &domain.IssueStatus{BaseModel: domain.BaseModel{ID: uuid.New()}, Name: "Open"}
	require.NoError(t, db.Create(expired).Error)
	require.NoError(t, db.Create(recent).Error)
	require.NoError(t, db.Create(live).Error)

	softDeleteAt(t, db, &domain.IssueStatus{}, expired.ID, time.Now().Add(-60*24*time.Hour))
	softDeleteAt(t, db, &domain.IssueStatus{}, recent.ID, time.Now().Add(-time.Hour))

	job.Run()

	var count int64
	require.NoError(t, db.Unscoped().Model(&domain.IssueStatus{}).
		Where("id = ?", expired.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count, "rows past the retention window are hard deleted")

	require.NoError(t, db.Unscoped().Model(&domain.IssueStatus{}).
		Where("id = ?", recent.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "recently deleted rows stay until the window passes")

	require.NoError(t, db.Model(&domain.IssueStatus{}).
		Where("id = ?", live.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRetentionJob_PurgesAllConfigurationTables(t *testing.T) {
	db := setupRetentionTestDB(t)
	job := NewRetentionJob(db, zap.NewNop(), 24*time.Hour)

	old := time.Now().Add(-48 * time.Hour)

	workflow := &domain.Workflow{BaseModel: domain.BaseModel{ID: uuid.New()}, FromStatusID: uuid.New(), ToStatusID: uuid.New(), Name: "Start"}
	scoping := &domain.WorkflowIssueType{BaseModel: domain.BaseModel{ID: uuid.New()}, WorkflowID: workflow.ID, IssueTypeID: uuid.New()}
	ordering := &domain.WorkflowStatus{BaseModel: domain.BaseModel{ID: uuid.New()}, WorkflowID: workflow.ID, StatusID: uuid.New(), Order: 1}
	require.NoError(t, db.Create(workflow).Error)
	require.NoError(t, db.Create(scoping).Error)
	require.NoError(t, db.Create(ordering).Error)

	softDeleteAt(t, db, &domain.Workflow{}, workflow.ID, old)
	softDeleteAt(t, db, &domain.WorkflowIssueType{}, scoping.ID, old)
	softDeleteAt(t, db, &domain.WorkflowStatus{}, ordering.ID, old)

	job.Run()

	var count int64
	require.NoError(t, db.Unscoped().Model(&domain.Workflow{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	require.NoError(t, db.Unscoped().Model(&domain.WorkflowIssueType{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	require.NoError(t, db.Unscoped().Model(&domain.WorkflowStatus{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRetentionJob_InvalidScheduleRejected(t *testing.T) {
	db := setupRetentionTestDB(t)
	job := NewRetentionJob(db, zap.NewNop(), 24*time.Hour)

	err := job.Start("not a cron spec")

	assert.Error(t, err)
}
