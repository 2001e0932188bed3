package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workflow-config-api/internal/domain"
)

func edgeFixture(from, to uuid.UUID) *domain.Workflow {
	return &domain.Workflow{
		BaseModel:    domain.BaseModel{ID: uuid.New()},
		FromStatusID: from,
		ToStatusID:   to,
	}
}

func TestOrderStatusNodes_ThreeBands(t *testing.T) {
	open := statusFixture(uuid.New(), "Open")
	doing := statusFixture(uuid.New(), "Doing")
	done := statusFixture(uuid.New(), "Done")

	edges := []*domain.Workflow{
		edgeFixture(open.ID, doing.ID),
		edgeFixture(doing.ID, done.ID),
	}

	ordered := OrderStatusNodes([]*domain.IssueStatus{done, doing, open}, edges)

	require.Len(t, ordered, 3)
	assert.Equal(t, open.ID, ordered[0].ID)
	assert.Equal(t, doing.ID, ordered[1].ID)
	assert.Equal(t, done.ID, ordered[2].ID)
}

func TestOrderStatusNodes_NameTieBreakIsCaseInsensitive(t *testing.T) {
	review := statusFixture(uuid.New(), "REVIEW")
	backlog := statusFixture(uuid.New(), "backlog")
	done := statusFixture(uuid.New(), "Done")

	// no edges, everything is interior
	ordered := OrderStatusNodes([]*domain.IssueStatus{review, done, backlog}, nil)

	require.Len(t, ordered, 3)
	assert.Equal(t, "backlog", ordered[0].Name)
	assert.Equal(t, "Done", ordered[1].Name)
	assert.Equal(t, "REVIEW", ordered[2].Name)
}

func TestOrderStatusNodes_EqualNamesFallBackToID(t *testing.T) {
	a := statusFixture(uuid.New(), "Todo")
	b := statusFixture(uuid.New(), "todo")

	ordered := OrderStatusNodes([]*domain.IssueStatus{a, b}, nil)

	require.Len(t, ordered, 2)
	assert.Less(t, ordered[0].ID.String(), ordered[1].ID.String())
}

func TestOrderStatusNodes_CycleStaysInterior(t *testing.T) {
	open := statusFixture(uuid.New(), "Open")
	doing := statusFixture(uuid.New(), "Doing")

	edges := []*domain.Workflow{
		edgeFixture(open.ID, doing.ID),
		edgeFixture(doing.ID, open.ID),
	}

	ordered := OrderStatusNodes([]*domain.IssueStatus{open, doing}, edges)

	require.Len(t, ordered, 2)
	// both have in and out edges, so pure name order decides
	assert.Equal(t, doing.ID, ordered[0].ID)
	assert.Equal(t, open.ID, ordered[1].ID)
}

func TestOrderStatusNodes_DoesNotMutateInput(t *testing.T) {
	first := statusFixture(uuid.New(), "zzz")
	second := statusFixture(uuid.New(), "aaa")
	input := []*domain.IssueStatus{first, second}

	OrderStatusNodes(input, nil)

	assert.Equal(t, first.ID, input[0].ID)
	assert.Equal(t, second.ID, input[1].ID)
}

// For any workflow graph, the node layout depends only on which edges exist,
// never on the order edges are listed in
func TestProperty_LayoutIsEdgeOrderInvariant(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Node layout is invariant under edge permutation", prop.ForAll(
		func(statusCount, edgeCount, seed int) bool {
			statuses := make([]*domain.IssueStatus, statusCount)
			for i := range statuses {
				statuses[i] = statusFixture(uuid.New(), "Status")
			}

			edges := make([]*domain.Workflow, edgeCount)
			for i := range edges {
				from := statuses[(i*7+seed)%statusCount]
				to := statuses[(i*13+seed+1)%statusCount]
				edges[i] = edgeFixture(from.ID, to.ID)
			}

			baseline := OrderStatusNodes(statuses, edges)

			// deterministic permutation of the edge list
			shuffled := make([]*domain.Workflow, len(edges))
			copy(shuffled, edges)
			for i := range shuffled {
				j := (i*seed + seed) % len(shuffled)
				if j < 0 {
					j = -j
				}
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			}

			permuted := OrderStatusNodes(statuses, shuffled)

			if len(baseline) != len(permuted) {
				return false
			}
			for i := range baseline {
				if baseline[i].ID != permuted[i].ID {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 12),
		gen.IntRange(0, 20),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}

// Adding an unrelated edge between two fresh statuses never reorders the
// statuses already present relative to each other within their bands
func TestProperty_RepairKeepsRelativeOrderOfUntouchedEntries(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Repairing a linearization preserves the relative order of unmoved statuses", prop.ForAll(
		func(size, fromIdx int) bool {
			if size < 2 {
				return true
			}
			order := make([]uuid.UUID, size)
			for i := range order {
				order[i] = uuid.New()
			}
			fromIdx = fromIdx % (size - 1)
			from, to := order[fromIdx], order[fromIdx+1]

			repaired, changed := domain.RepairLinearization(order, from, to)
			if !changed {
				return false
			}
			if len(repaired) != size {
				return false
			}
			// the moved status must now be last
			if repaired[size-1] != to {
				return false
			}
			// everyone else keeps their relative order
			rest := 0
			for _, id := range order {
				if id == to {
					continue
				}
				if repaired[rest] != id {
					return false
				}
				rest++
			}
			return true
		},
		gen.IntRange(2, 30),
		gen.IntRange(0, 28),
	))

	properties.TestingRun(t)
}
