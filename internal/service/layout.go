package service

import (
	"sort"
	"strings"

	"workflow-config-api/internal/domain"
)

// Node ranks for the workflow diagram. Statuses that only ever appear as a
// transition source come first, sinks last, everything else in between.
const (
	rankSource   = 0
	rankInterior = 1
	rankSink     = 2
)

// OrderStatusNodes sorts the graph's status nodes for display: source-only
// statuses, then interior ones, then sink-only ones, with ties broken by
// case-insensitive name. This is a fixed three-band layout, not a topological
// sort; cycles are fine. The result only depends on the edge SET, never on
// edge order, and the input slice is left untouched.
func OrderStatusNodes(statuses []*domain.IssueStatus, edges []*domain.Workflow) []*domain.IssueStatus {
	hasOut := make(map[string]bool, len(statuses))
	hasIn := make(map[string]bool, len(statuses))
	for _, edge := range edges {
		hasOut[edge.FromStatusID.String()] = true
		hasIn[edge.ToStatusID.String()] = true
	}

	rank := func(status *domain.IssueStatus) int {
		id := status.ID.String()
		switch {
		case hasOut[id] && !hasIn[id]:
			return rankSource
		case hasIn[id] && !hasOut[id]:
			return rankSink
		default:
			return rankInterior
		}
	}

	ordered := make([]*domain.IssueStatus, len(statuses))
	copy(ordered, statuses)
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, rj := rank(ordered[i]), rank(ordered[j])
		if ri != rj {
			return ri < rj
		}
		ni, nj := strings.ToLower(ordered[i].Name), strings.ToLower(ordered[j].Name)
		if ni != nj {
			return ni < nj
		}
		return ordered[i].ID.String() < ordered[j].ID.String()
	})
	return ordered
}
