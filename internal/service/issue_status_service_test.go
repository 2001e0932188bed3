package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"workflow-config-api/internal/domain"
	"workflow-config-api/internal/dto"
	"workflow-config-api/internal/repository"
	"workflow-config-api/internal/response"
)

func TestCreateIssueStatus_BlankNameRejected(t *testing.T) {
	svc := NewIssueStatusService(&MockIssueStatusRepository{}, nil)

	_, err := svc.CreateIssueStatus(context.Background(), &dto.CreateIssueStatusRequest{Name: "  "})

	assertAppErrorCode(t, err, response.ErrCodeValidation)
}

func TestCreateIssueStatus_TrimsName(t *testing.T) {
	statusRepo := &MockIssueStatusRepository{
		CreateFunc: func(ctx context.Context, status *domain.IssueStatus) error {
			status.ID = uuid.New()
			return nil
		},
	}
	publisher := &MockPublisher{}
	svc := NewIssueStatusService(statusRepo, publisher)

	resp, err := svc.CreateIssueStatus(context.Background(), &dto.CreateIssueStatusRequest{
		Name:     "  In Review  ",
		Order:    3,
		ColorTag: "#fca311",
	})

	require.NoError(t, err)
	assert.Equal(t, "In Review", resp.Name)
	assert.Equal(t, 3, resp.Order)
	require.Len(t, publisher.Events, 1)
	assert.Equal(t, "issue_status", publisher.Events[0].Entity)
	assert.Equal(t, "created", publisher.Events[0].Action)
}

func TestDeleteIssueStatus_BlockedWhileReferenced(t *testing.T) {
	statusID := uuid.New()
	deleteCalled := false
	statusRepo := &MockIssueStatusRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.IssueStatus, error) {
			return &domain.IssueStatus{BaseModel: domain.BaseModel{ID: statusID}}, nil
		},
		CountDependentsFunc: func(ctx context.Context, id uuid.UUID) (repository.StatusDependents, error) {
			return repository.StatusDependents{WorkflowEdges: 2, WorkflowStatuses: 1}, nil
		},
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			deleteCalled = true
			return nil
		},
	}
	svc := NewIssueStatusService(statusRepo, nil)

	err := svc.DeleteIssueStatus(context.Background(), statusID)

	assertAppErrorCode(t, err, response.ErrCodeReferentialIntegrity)
	assert.False(t, deleteCalled)
}

func TestDeleteIssueStatus_BlockedByIssuesAlone(t *testing.T) {
	statusID := uuid.New()
	statusRepo := &MockIssueStatusRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.IssueStatus, error) {
			return &domain.IssueStatus{BaseModel: domain.BaseModel{ID: statusID}}, nil
		},
		CountDependentsFunc: func(ctx context.Context, id uuid.UUID) (repository.StatusDependents, error) {
			return repository.StatusDependents{Issues: 4}, nil
		},
	}
	svc := NewIssueStatusService(statusRepo, nil)

	err := svc.DeleteIssueStatus(context.Background(), statusID)

	assertAppErrorCode(t, err, response.ErrCodeReferentialIntegrity)
}

func TestDeleteIssueStatus_Unreferenced(t *testing.T) {
	statusID := uuid.New()
	deleteCalled := false
	statusRepo := &MockIssueStatusRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.IssueStatus, error) {
			return &domain.IssueStatus{BaseModel: domain.BaseModel{ID: statusID}}, nil
		},
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			deleteCalled = true
			return nil
		},
	}
	publisher := &MockPublisher{}
	svc := NewIssueStatusService(statusRepo, publisher)

	err := svc.DeleteIssueStatus(context.Background(), statusID)

	require.NoError(t, err)
	assert.True(t, deleteCalled)
	require.Len(t, publisher.Events, 1)
	assert.Equal(t, "deleted", publisher.Events[0].Action)
}

func TestDeleteIssueStatus_NotFound(t *testing.T) {
	statusRepo := &MockIssueStatusRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.IssueStatus, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewIssueStatusService(statusRepo, nil)

	err := svc.DeleteIssueStatus(context.Background(), uuid.New())

	assertAppErrorCode(t, err, response.ErrCodeNotFound)
}

func TestUpdateIssueStatus_PartialUpdate(t *testing.T) {
	statusID := uuid.New()
	var updated *domain.IssueStatus
	statusRepo := &MockIssueStatusRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.IssueStatus, error) {
			return &domain.IssueStatus{
				BaseModel:   domain.BaseModel{ID: statusID},
				Name:        "Open",
				Order:       1,
				ColorTag:    "#999999",
				Description: "initial",
			}, nil
		},
		UpdateFunc: func(ctx context.Context, status *domain.IssueStatus) error {
			updated = status
			return nil
		},
	}
	svc := NewIssueStatusService(statusRepo, nil)

	newName := "Reopened"
	_, err := svc.UpdateIssueStatus(context.Background(), statusID, &dto.UpdateIssueStatusRequest{Name: &newName})

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Reopened", updated.Name)
	// untouched fields survive
	assert.Equal(t, 1, updated.Order)
	assert.Equal(t, "#999999", updated.ColorTag)
}
