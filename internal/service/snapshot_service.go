package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"workflow-config-api/internal/client"
	"workflow-config-api/internal/domain"
	"workflow-config-api/internal/dto"
	"workflow-config-api/internal/metrics"
	"workflow-config-api/internal/repository"
	"workflow-config-api/internal/response"
)

// ConfigSnapshot is the JSON document uploaded to object storage. It carries
// the complete configuration so a consumer can rebuild its view without
// calling back into the API.
type ConfigSnapshot struct {
	GeneratedAt    time.Time                      `json:"generatedAt"`
	IssueTypes     []*domain.IssueType            `json:"issueTypes"`
	IssueStatuses  []*domain.IssueStatus          `json:"issueStatuses"`
	CustomFields   []*domain.CustomField          `json:"customFields"`
	FieldBindings  []*domain.IssueTypeCustomField `json:"fieldBindings"`
	Transitions    []*domain.Workflow             `json:"transitions"`
	Scopings       []*domain.WorkflowIssueType    `json:"scopings"`
	StatusOrdering []*domain.WorkflowStatus       `json:"statusOrdering"`
}

// SnapshotService exports configuration snapshots to object storage
type SnapshotService interface {
	ExportSnapshot(ctx context.Context) (*dto.SnapshotResponse, error)
}

// snapshotServiceImpl is the implementation of SnapshotService
type snapshotServiceImpl struct {
	issueTypeRepo      repository.IssueTypeRepository
	statusRepo         repository.IssueStatusRepository
	fieldRepo          repository.CustomFieldRepository
	bindingRepo        repository.BindingRepository
	workflowRepo       repository.WorkflowRepository
	workflowStatusRepo repository.WorkflowStatusRepository
	s3Client           client.S3ClientInterface
	metrics            *metrics.Metrics
	logger             *zap.Logger
}

// NewSnapshotService creates a new instance of SnapshotService. s3Client may
// be nil when object storage is not configured; exports then fail with a
// storage unavailable error instead of a panic.
func NewSnapshotService(
	issueTypeRepo repository.IssueTypeRepository,
	statusRepo repository.IssueStatusRepository,
	fieldRepo repository.CustomFieldRepository,
	bindingRepo repository.BindingRepository,
	workflowRepo repository.WorkflowRepository,
	workflowStatusRepo repository.WorkflowStatusRepository,
	s3Client client.S3ClientInterface,
	m *metrics.Metrics,
	logger *zap.Logger,
) SnapshotService {
	return &snapshotServiceImpl{
		issueTypeRepo:      issueTypeRepo,
		statusRepo:         statusRepo,
		fieldRepo:          fieldRepo,
		bindingRepo:        bindingRepo,
		workflowRepo:       workflowRepo,
		workflowStatusRepo: workflowStatusRepo,
		s3Client:           s3Client,
		metrics:            m,
		logger:             logger,
	}
}

// ExportSnapshot assembles the full configuration and uploads it as a JSON
// document under a timestamped key.
func (s *snapshotServiceImpl) ExportSnapshot(ctx context.Context) (*dto.SnapshotResponse, error) {
	if s.s3Client == nil {
		return nil, response.NewStorageUnavailableError("Snapshot storage is not configured", "")
	}

	snapshot := &ConfigSnapshot{GeneratedAt: time.Now().UTC()}

	var err error
	if snapshot.IssueTypes, err = s.issueTypeRepo.FindAll(ctx); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to collect issue types", err.Error())
	}
	if snapshot.IssueStatuses, err = s.statusRepo.FindAll(ctx); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to collect issue statuses", err.Error())
	}
	if snapshot.CustomFields, err = s.fieldRepo.FindAll(ctx); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to collect custom fields", err.Error())
	}
	if snapshot.FieldBindings, err = s.bindingRepo.FindAll(ctx); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to collect field bindings", err.Error())
	}
	if snapshot.Transitions, err = s.workflowRepo.FindAll(ctx); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to collect transitions", err.Error())
	}
	if snapshot.Scopings, err = s.workflowRepo.FindAllScopings(ctx); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to collect transition scopings", err.Error())
	}
	if snapshot.StatusOrdering, err = s.workflowStatusRepo.FindAll(ctx); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to collect status orderings", err.Error())
	}

	body, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode snapshot", err.Error())
	}

	key := s.s3Client.GenerateSnapshotKey(snapshot.GeneratedAt)
	uploadStart := time.Now()
	url, err := s.s3Client.UploadJSON(ctx, key, body)
	if s.metrics != nil {
		s.metrics.RecordSnapshotUpload(time.Since(uploadStart), err)
	}
	if err != nil {
		s.logger.Error("snapshot upload failed", zap.String("key", key), zap.Error(err))
		return nil, response.NewStorageUnavailableError("Failed to upload snapshot", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementSnapshotExported()
	}
	s.logger.Info("configuration snapshot exported", zap.String("key", key))

	return &dto.SnapshotResponse{
		Key:         key,
		URL:         url,
		GeneratedAt: snapshot.GeneratedAt,
	}, nil
}
