package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workflow-config-api/internal/domain"
	"workflow-config-api/internal/dto"
	"workflow-config-api/internal/events"
	"workflow-config-api/internal/metrics"
	"workflow-config-api/internal/repository"
	"workflow-config-api/internal/response"
)

// WorkflowService defines the interface for transition edge business logic
type WorkflowService interface {
	ListTransitions(ctx context.Context) ([]*dto.TransitionResponse, error)
	GetTransition(ctx context.Context, workflowID uuid.UUID) (*dto.TransitionResponse, error)
	CreateTransition(ctx context.Context, req *dto.CreateTransitionRequest) (*dto.TransitionResponse, error)
	UpdateTransition(ctx context.Context, workflowID uuid.UUID, req *dto.UpdateTransitionRequest) (*dto.TransitionResponse, error)
	// DeleteTransition removes an edge. When fromStatusID or toStatusID are
	// given they must match the stored edge, otherwise the edge is treated
	// as not found.
	DeleteTransition(ctx context.Context, workflowID uuid.UUID, fromStatusID, toStatusID *uuid.UUID) error
	GraphForIssueType(ctx context.Context, issueTypeID uuid.UUID) (*dto.WorkflowGraphResponse, error)
}

// workflowServiceImpl is the implementation of WorkflowService
type workflowServiceImpl struct {
	workflowRepo  repository.WorkflowRepository
	statusRepo    repository.IssueStatusRepository
	issueTypeRepo repository.IssueTypeRepository
	publisher     events.Publisher
	metrics       *metrics.Metrics
}

// NewWorkflowService creates a new instance of WorkflowService
func NewWorkflowService(
	workflowRepo repository.WorkflowRepository,
	statusRepo repository.IssueStatusRepository,
	issueTypeRepo repository.IssueTypeRepository,
	publisher events.Publisher,
	m *metrics.Metrics,
) WorkflowService {
	return &workflowServiceImpl{
		workflowRepo:  workflowRepo,
		statusRepo:    statusRepo,
		issueTypeRepo: issueTypeRepo,
		publisher:     publisher,
		metrics:       m,
	}
}

// ListTransitions returns every transition edge with its scoping issue types
func (s *workflowServiceImpl) ListTransitions(ctx context.Context) ([]*dto.TransitionResponse, error) {
	edges, err := s.workflowRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch transitions", err.Error())
	}

	scopings, err := s.workflowRepo.FindAllScopings(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch transition scopings", err.Error())
	}
	scopedTypes := groupScopings(scopings)

	responses := make([]*dto.TransitionResponse, len(edges))
	for i, edge := range edges {
		responses[i] = toTransitionResponse(edge, scopedTypes[edge.ID])
	}
	return responses, nil
}

// GetTransition retrieves a single transition edge by ID
func (s *workflowServiceImpl) GetTransition(ctx context.Context, workflowID uuid.UUID) (*dto.TransitionResponse, error) {
	edge, err := s.workflowRepo.FindByID(ctx, workflowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Transition not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch transition", err.Error())
	}

	issueTypeIDs, err := s.workflowRepo.FindScopingIssueTypeIDs(ctx, workflowID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch transition scopings", err.Error())
	}
	return toTransitionResponse(edge, issueTypeIDs), nil
}

// CreateTransition creates a transition edge, its issue type scoping rows and
// the seed two-status ordering [from, to] in one transaction.
func (s *workflowServiceImpl) CreateTransition(ctx context.Context, req *dto.CreateTransitionRequest) (*dto.TransitionResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewValidationError("Transition name must not be empty", "")
	}

	issueTypeIDs, err := s.validateTransitionRefs(ctx, req.FromStatusID, req.ToStatusID, req.IssueTypeIDs)
	if err != nil {
		return nil, err
	}

	edge := &domain.Workflow{
		FromStatusID: req.FromStatusID,
		ToStatusID:   req.ToStatusID,
		Name:         name,
		Description:  req.Description,
	}

	if err := s.workflowRepo.Create(ctx, edge, issueTypeIDs); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create transition", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementTransitionCreated()
	}
	if s.publisher != nil {
		s.publisher.Publish(ctx, "workflow", events.ActionCreated, edge.ID)
	}
	return toTransitionResponse(edge, issueTypeIDs), nil
}

// UpdateTransition replaces the edge's attributes and its complete scoping
// set. Scoping follows the same replace-set semantics as field bindings.
func (s *workflowServiceImpl) UpdateTransition(ctx context.Context, workflowID uuid.UUID, req *dto.UpdateTransitionRequest) (*dto.TransitionResponse, error) {
	edge, err := s.workflowRepo.FindByID(ctx, workflowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Transition not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch transition", err.Error())
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewValidationError("Transition name must not be empty", "")
	}

	issueTypeIDs, err := s.validateTransitionRefs(ctx, req.FromStatusID, req.ToStatusID, req.IssueTypeIDs)
	if err != nil {
		return nil, err
	}

	edge.FromStatusID = req.FromStatusID
	edge.ToStatusID = req.ToStatusID
	edge.Name = name
	edge.Description = req.Description

	if err := s.workflowRepo.Update(ctx, edge, issueTypeIDs); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update transition", err.Error())
	}

	if s.publisher != nil {
		s.publisher.Publish(ctx, "workflow", events.ActionUpdated, edge.ID)
	}
	return toTransitionResponse(edge, issueTypeIDs), nil
}

// DeleteTransition removes the edge with its scoping and ordering rows, then
// repairs the linearization of every remaining workflow where the deleted
// pair sat adjacently.
func (s *workflowServiceImpl) DeleteTransition(ctx context.Context, workflowID uuid.UUID, fromStatusID, toStatusID *uuid.UUID) error {
	edge, err := s.workflowRepo.FindByID(ctx, workflowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Transition not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch transition", err.Error())
	}

	if fromStatusID != nil && *fromStatusID != edge.FromStatusID {
		return response.NewNotFoundError("Transition with the given endpoints not found", "")
	}
	if toStatusID != nil && *toStatusID != edge.ToStatusID {
		return response.NewNotFoundError("Transition with the given endpoints not found", "")
	}

	if err := s.workflowRepo.DeleteTransition(ctx, workflowID, edge.FromStatusID, edge.ToStatusID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete transition", err.Error())
	}

	if s.publisher != nil {
		s.publisher.Publish(ctx, "workflow", events.ActionDeleted, workflowID)
	}
	return nil
}

// GraphForIssueType derives the issue type's workflow graph: its scoped edges
// in insertion order and the deduplicated endpoint statuses as nodes, sorted
// by the diagram layout rule.
func (s *workflowServiceImpl) GraphForIssueType(ctx context.Context, issueTypeID uuid.UUID) (*dto.WorkflowGraphResponse, error) {
	if _, err := s.issueTypeRepo.FindByID(ctx, issueTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Issue type not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch issue type", err.Error())
	}

	edges, err := s.workflowRepo.FindByIssueTypeID(ctx, issueTypeID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch transitions", err.Error())
	}

	statusIDs := make([]uuid.UUID, 0, len(edges)*2)
	seen := make(map[uuid.UUID]bool, len(edges)*2)
	for _, edge := range edges {
		for _, id := range []uuid.UUID{edge.FromStatusID, edge.ToStatusID} {
			if !seen[id] {
				seen[id] = true
				statusIDs = append(statusIDs, id)
			}
		}
	}

	var statuses []*domain.IssueStatus
	if len(statusIDs) > 0 {
		statuses, err = s.statusRepo.FindByIDs(ctx, statusIDs)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch statuses", err.Error())
		}
	}

	scopings, err := s.workflowRepo.FindAllScopings(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch transition scopings", err.Error())
	}
	scopedTypes := groupScopings(scopings)

	nodes := OrderStatusNodes(statuses, edges)
	graph := &dto.WorkflowGraphResponse{
		IssueTypeID: issueTypeID,
		Nodes:       make([]dto.IssueStatusResponse, len(nodes)),
		Edges:       make([]dto.TransitionResponse, len(edges)),
	}
	for i, node := range nodes {
		graph.Nodes[i] = *toIssueStatusResponse(node)
	}
	for i, edge := range edges {
		graph.Edges[i] = *toTransitionResponse(edge, scopedTypes[edge.ID])
	}
	return graph, nil
}

// validateTransitionRefs rejects self loops and empty scoping sets, then
// verifies both endpoint statuses and every scoped issue type exist. Returns
// the deduplicated issue type id list.
func (s *workflowServiceImpl) validateTransitionRefs(ctx context.Context, fromStatusID, toStatusID uuid.UUID, issueTypeIDs []uuid.UUID) ([]uuid.UUID, error) {
	if fromStatusID == toStatusID {
		return nil, response.NewValidationError("Transition source and target status must differ", "")
	}

	deduped := make([]uuid.UUID, 0, len(issueTypeIDs))
	seen := make(map[uuid.UUID]bool, len(issueTypeIDs))
	for _, id := range issueTypeIDs {
		if !seen[id] {
			seen[id] = true
			deduped = append(deduped, id)
		}
	}
	if len(deduped) == 0 {
		return nil, response.NewValidationError("Transition must be scoped to at least one issue type", "")
	}

	statuses, err := s.statusRepo.FindByIDs(ctx, []uuid.UUID{fromStatusID, toStatusID})
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch statuses", err.Error())
	}
	foundStatuses := make(map[uuid.UUID]bool, len(statuses))
	for _, status := range statuses {
		foundStatuses[status.ID] = true
	}
	for _, id := range []uuid.UUID{fromStatusID, toStatusID} {
		if !foundStatuses[id] {
			return nil, response.NewInvalidReferenceError(fmt.Sprintf("Status %s does not exist", id), "")
		}
	}

	issueTypes, err := s.issueTypeRepo.FindByIDs(ctx, deduped)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch issue types", err.Error())
	}
	foundTypes := make(map[uuid.UUID]bool, len(issueTypes))
	for _, issueType := range issueTypes {
		foundTypes[issueType.ID] = true
	}
	for _, id := range deduped {
		if !foundTypes[id] {
			return nil, response.NewInvalidReferenceError(fmt.Sprintf("Issue type %s does not exist", id), "")
		}
	}

	return deduped, nil
}

func groupScopings(scopings []*domain.WorkflowIssueType) map[uuid.UUID][]uuid.UUID {
	grouped := make(map[uuid.UUID][]uuid.UUID, len(scopings))
	for _, scoping := range scopings {
		grouped[scoping.WorkflowID] = append(grouped[scoping.WorkflowID], scoping.IssueTypeID)
	}
	return grouped
}

func toTransitionResponse(edge *domain.Workflow, issueTypeIDs []uuid.UUID) *dto.TransitionResponse {
	if issueTypeIDs == nil {
		issueTypeIDs = []uuid.UUID{}
	}
	return &dto.TransitionResponse{
		WorkflowID:   edge.ID,
		FromStatusID: edge.FromStatusID,
		ToStatusID:   edge.ToStatusID,
		Name:         edge.Name,
		Description:  edge.Description,
		IssueTypeIDs: issueTypeIDs,
		CreatedAt:    edge.CreatedAt,
		UpdatedAt:    edge.UpdatedAt,
	}
}
