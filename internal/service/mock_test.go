package service

import (
	"context"

	"github.com/google/uuid"

	"workflow-config-api/internal/domain"
	"workflow-config-api/internal/repository"
)

// MockProjectRepository is a mock implementation of ProjectRepository
type MockProjectRepository struct {
	FindByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	ExistsFunc   func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProjectRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return true, nil
}

// MockIssueTypeRepository is a mock implementation of IssueTypeRepository
type MockIssueTypeRepository struct {
	CreateFunc          func(ctx context.Context, issueType *domain.IssueType) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.IssueType, error)
	FindByIDsFunc       func(ctx context.Context, ids []uuid.UUID) ([]*domain.IssueType, error)
	FindAllFunc         func(ctx context.Context) ([]*domain.IssueType, error)
	FindByProjectIDFunc func(ctx context.Context, projectID uuid.UUID) ([]*domain.IssueType, error)
	UpdateFunc          func(ctx context.Context, issueType *domain.IssueType) error
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
	CountIssuesFunc     func(ctx context.Context, id uuid.UUID) (int64, error)
}

func (m *MockIssueTypeRepository) Create(ctx context.Context, issueType *domain.IssueType) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, issueType)
	}
	return nil
}

func (m *MockIssueTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.IssueType, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockIssueTypeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.IssueType, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockIssueTypeRepository) FindAll(ctx context.Context) ([]*domain.IssueType, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockIssueTypeRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.IssueType, error) {
	if m.FindByProjectIDFunc != nil {
		return m.FindByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockIssueTypeRepository) Update(ctx context.Context, issueType *domain.IssueType) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, issueType)
	}
	return nil
}

func (m *MockIssueTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockIssueTypeRepository) CountIssues(ctx context.Context, id uuid.UUID) (int64, error) {
	if m.CountIssuesFunc != nil {
		return m.CountIssuesFunc(ctx, id)
	}
	return 0, nil
}

// MockIssueStatusRepository is a mock implementation of IssueStatusRepository
type MockIssueStatusRepository struct {
	CreateFunc          func(ctx context.Context, status *domain.IssueStatus) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.IssueStatus, error)
	FindByIDsFunc       func(ctx context.Context, ids []uuid.UUID) ([]*domain.IssueStatus, error)
	FindAllFunc         func(ctx context.Context) ([]*domain.IssueStatus, error)
	UpdateFunc          func(ctx context.Context, status *domain.IssueStatus) error
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
	CountDependentsFunc func(ctx context.Context, id uuid.UUID) (repository.StatusDependents, error)
}

func (m *MockIssueStatusRepository) Create(ctx context.Context, status *domain.IssueStatus) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, status)
	}
	return nil
}

func (m *MockIssueStatusRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.IssueStatus, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockIssueStatusRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.IssueStatus, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockIssueStatusRepository) FindAll(ctx context.Context) ([]*domain.IssueStatus, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockIssueStatusRepository) Update(ctx context.Context, status *domain.IssueStatus) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, status)
	}
	return nil
}

func (m *MockIssueStatusRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockIssueStatusRepository) CountDependents(ctx context.Context, id uuid.UUID) (repository.StatusDependents, error) {
	if m.CountDependentsFunc != nil {
		return m.CountDependentsFunc(ctx, id)
	}
	return repository.StatusDependents{}, nil
}

// MockCustomFieldRepository is a mock implementation of CustomFieldRepository
type MockCustomFieldRepository struct {
	CreateFunc          func(ctx context.Context, field *domain.CustomField) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.CustomField, error)
	FindByIDsFunc       func(ctx context.Context, ids []uuid.UUID) ([]*domain.CustomField, error)
	FindAllFunc         func(ctx context.Context) ([]*domain.CustomField, error)
	FindByProjectIDFunc func(ctx context.Context, projectID uuid.UUID) ([]*domain.CustomField, error)
	FindUnboundFunc     func(ctx context.Context, issueTypeID, projectID uuid.UUID) ([]*domain.CustomField, error)
	UpdateFunc          func(ctx context.Context, field *domain.CustomField) error
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
	CountBindingsFunc   func(ctx context.Context, id uuid.UUID) (int64, error)
}

func (m *MockCustomFieldRepository) Create(ctx context.Context, field *domain.CustomField) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, field)
	}
	return nil
}

func (m *MockCustomFieldRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.CustomField, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCustomFieldRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.CustomField, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockCustomFieldRepository) FindAll(ctx context.Context) ([]*domain.CustomField, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockCustomFieldRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.CustomField, error) {
	if m.FindByProjectIDFunc != nil {
		return m.FindByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockCustomFieldRepository) FindUnbound(ctx context.Context, issueTypeID, projectID uuid.UUID) ([]*domain.CustomField, error) {
	if m.FindUnboundFunc != nil {
		return m.FindUnboundFunc(ctx, issueTypeID, projectID)
	}
	return nil, nil
}

func (m *MockCustomFieldRepository) Update(ctx context.Context, field *domain.CustomField) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, field)
	}
	return nil
}

func (m *MockCustomFieldRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockCustomFieldRepository) CountBindings(ctx context.Context, id uuid.UUID) (int64, error) {
	if m.CountBindingsFunc != nil {
		return m.CountBindingsFunc(ctx, id)
	}
	return 0, nil
}

// MockBindingRepository is a mock implementation of BindingRepository
type MockBindingRepository struct {
	FindByIssueTypeIDFunc   func(ctx context.Context, issueTypeID uuid.UUID) ([]*domain.IssueTypeCustomField, error)
	FindAllFunc             func(ctx context.Context) ([]*domain.IssueTypeCustomField, error)
	ReplaceForIssueTypeFunc func(ctx context.Context, issueTypeID uuid.UUID, desired []domain.IssueTypeCustomField) error
}

func (m *MockBindingRepository) FindByIssueTypeID(ctx context.Context, issueTypeID uuid.UUID) ([]*domain.IssueTypeCustomField, error) {
	if m.FindByIssueTypeIDFunc != nil {
		return m.FindByIssueTypeIDFunc(ctx, issueTypeID)
	}
	return nil, nil
}

func (m *MockBindingRepository) FindAll(ctx context.Context) ([]*domain.IssueTypeCustomField, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockBindingRepository) ReplaceForIssueType(ctx context.Context, issueTypeID uuid.UUID, desired []domain.IssueTypeCustomField) error {
	if m.ReplaceForIssueTypeFunc != nil {
		return m.ReplaceForIssueTypeFunc(ctx, issueTypeID, desired)
	}
	return nil
}

// MockWorkflowRepository is a mock implementation of WorkflowRepository
type MockWorkflowRepository struct {
	CreateFunc                  func(ctx context.Context, edge *domain.Workflow, issueTypeIDs []uuid.UUID) error
	UpdateFunc                  func(ctx context.Context, edge *domain.Workflow, issueTypeIDs []uuid.UUID) error
	FindByIDFunc                func(ctx context.Context, id uuid.UUID) (*domain.Workflow, error)
	FindAllFunc                 func(ctx context.Context) ([]*domain.Workflow, error)
	FindByIssueTypeIDFunc       func(ctx context.Context, issueTypeID uuid.UUID) ([]*domain.Workflow, error)
	FindScopingIssueTypeIDsFunc func(ctx context.Context, workflowID uuid.UUID) ([]uuid.UUID, error)
	FindAllScopingsFunc         func(ctx context.Context) ([]*domain.WorkflowIssueType, error)
	DeleteTransitionFunc        func(ctx context.Context, workflowID, fromStatusID, toStatusID uuid.UUID) error
}

func (m *MockWorkflowRepository) Create(ctx context.Context, edge *domain.Workflow, issueTypeIDs []uuid.UUID) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, edge, issueTypeIDs)
	}
	return nil
}

func (m *MockWorkflowRepository) Update(ctx context.Context, edge *domain.Workflow, issueTypeIDs []uuid.UUID) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, edge, issueTypeIDs)
	}
	return nil
}

func (m *MockWorkflowRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Workflow, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockWorkflowRepository) FindAll(ctx context.Context) ([]*domain.Workflow, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockWorkflowRepository) FindByIssueTypeID(ctx context.Context, issueTypeID uuid.UUID) ([]*domain.Workflow, error) {
	if m.FindByIssueTypeIDFunc != nil {
		return m.FindByIssueTypeIDFunc(ctx, issueTypeID)
	}
	return nil, nil
}

func (m *MockWorkflowRepository) FindScopingIssueTypeIDs(ctx context.Context, workflowID uuid.UUID) ([]uuid.UUID, error) {
	if m.FindScopingIssueTypeIDsFunc != nil {
		return m.FindScopingIssueTypeIDsFunc(ctx, workflowID)
	}
	return nil, nil
}

func (m *MockWorkflowRepository) FindAllScopings(ctx context.Context) ([]*domain.WorkflowIssueType, error) {
	if m.FindAllScopingsFunc != nil {
		return m.FindAllScopingsFunc(ctx)
	}
	return nil, nil
}

func (m *MockWorkflowRepository) DeleteTransition(ctx context.Context, workflowID, fromStatusID, toStatusID uuid.UUID) error {
	if m.DeleteTransitionFunc != nil {
		return m.DeleteTransitionFunc(ctx, workflowID, fromStatusID, toStatusID)
	}
	return nil
}

// MockWorkflowStatusRepository is a mock implementation of WorkflowStatusRepository
type MockWorkflowStatusRepository struct {
	FindByWorkflowIDFunc func(ctx context.Context, workflowID uuid.UUID) ([]*domain.WorkflowStatus, error)
	FindAllFunc          func(ctx context.Context) ([]*domain.WorkflowStatus, error)
	ReplaceOrderFunc     func(ctx context.Context, workflowID uuid.UUID, orderedStatusIDs []uuid.UUID) error
}

func (m *MockWorkflowStatusRepository) FindByWorkflowID(ctx context.Context, workflowID uuid.UUID) ([]*domain.WorkflowStatus, error) {
	if m.FindByWorkflowIDFunc != nil {
		return m.FindByWorkflowIDFunc(ctx, workflowID)
	}
	return nil, nil
}

func (m *MockWorkflowStatusRepository) FindAll(ctx context.Context) ([]*domain.WorkflowStatus, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockWorkflowStatusRepository) ReplaceOrder(ctx context.Context, workflowID uuid.UUID, orderedStatusIDs []uuid.UUID) error {
	if m.ReplaceOrderFunc != nil {
		return m.ReplaceOrderFunc(ctx, workflowID, orderedStatusIDs)
	}
	return nil
}

// MockPublisher records published events for assertions
type MockPublisher struct {
	Events []PublishedEvent
}

// PublishedEvent is one recorded Publish call
type PublishedEvent struct {
	Entity   string
	Action   string
	EntityID uuid.UUID
}

func (m *MockPublisher) Publish(ctx context.Context, entity, action string, entityID uuid.UUID) {
	m.Events = append(m.Events, PublishedEvent{Entity: entity, Action: action, EntityID: entityID})
}
