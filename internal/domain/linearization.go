package domain

import "github.com/google/uuid"

// RepairLinearization applies the transition-delete ordering rule to a
// sequence of status ids sorted by their current order. It scans for the
// first adjacent pair (from, to); if found, the `to` element is removed from
// its position and appended to the end. Returns the repaired sequence and
// whether anything moved. The rule is deliberately a local repair, not a
// topological sort: it keeps trailing statuses trailing without solving the
// whole graph.
func RepairLinearization(ordered []uuid.UUID, from, to uuid.UUID) ([]uuid.UUID, bool) {
	for i := 0; i+1 < len(ordered); i++ {
		if ordered[i] == from && ordered[i+1] == to {
			repaired := make([]uuid.UUID, 0, len(ordered))
			repaired = append(repaired, ordered[:i+1]...)
			repaired = append(repaired, ordered[i+2:]...)
			repaired = append(repaired, to)
			return repaired, true
		}
	}
	return ordered, false
}
