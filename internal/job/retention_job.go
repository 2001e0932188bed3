package job

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workflow-config-api/internal/domain"
)

// RetentionJob purges soft-deleted configuration rows once they are older
// than the retention window. Runs on a cron schedule.
type RetentionJob struct {
	db     *gorm.DB
	logger *zap.Logger
	maxAge time.Duration
	cron   *cron.Cron
}

// NewRetentionJob creates a retention job
func NewRetentionJob(db *gorm.DB, logger *zap.Logger, maxAge time.Duration) *RetentionJob {
	return &RetentionJob{
		db:     db,
		logger: logger,
		maxAge: maxAge,
		cron:   cron.New(),
	}
}

// Start schedules the purge. Returns an error for an invalid cron spec.
func (j *RetentionJob) Start(schedule string) error {
	if _, err := j.cron.AddFunc(schedule, j.Run); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("retention job scheduled",
		zap.String("schedule", schedule),
		zap.Duration("max_age", j.maxAge),
	)
	return nil
}

// Stop halts the scheduler and waits for a running purge to finish
func (j *RetentionJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

// Run purges expired soft-deleted rows across all configuration tables.
// Dependent rows go first so restrict constraints never fire.
func (j *RetentionJob) Run() {
	cutoff := time.Now().Add(-j.maxAge)

	models := []interface{}{
		&domain.WorkflowStatus{},
		&domain.WorkflowIssueType{},
		&domain.Workflow{},
		&domain.IssueTypeCustomField{},
		&domain.CustomField{},
		&domain.IssueType{},
		&domain.IssueStatus{},
	}

	var total int64
	for _, model := range models {
		result := j.db.Unscoped().
			Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
			Delete(model)
		if result.Error != nil {
			j.logger.Error("retention purge failed",
				zap.Any("model", model),
				zap.Error(result.Error),
			)
			continue
		}
		total += result.RowsAffected
	}

	if total > 0 {
		j.logger.Info("retention purge completed",
			zap.Int64("rows_purged", total),
			zap.Time("cutoff", cutoff),
		)
	}
}
