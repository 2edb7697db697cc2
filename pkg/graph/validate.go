package graph

import "fmt"

// Issue describes one integrity problem found by [Graph.Validate].
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Message string    `json:"message"`
}

// IssueKind classifies validation findings.
type IssueKind string

const (
	IssueEmptyID          IssueKind = "empty_id"
	IssueDuplicateID      IssueKind = "duplicate_id"
	IssueDanglingSource   IssueKind = "dangling_source"
	IssueDanglingTarget   IssueKind = "dangling_target"
	IssueSelfLoop         IssueKind = "self_loop"
	IssueInvalidDirection IssueKind = "invalid_direction"
)

// Validate scans the current sequences and reports every invariant the
// mutation operations would have enforced. It is advisory: import accepts
// inconsistent documents as-is, and this is how a loaded document is
// inspected after the fact. An empty result means the graph is consistent.
func (g *Graph) Validate() []Issue {
	var issues []Issue

	seen := make(map[string]bool, len(g.nodes))
	for i, n := range g.nodes {
		if n.ID == "" {
			issues = append(issues, Issue{
				Kind:    IssueEmptyID,
				Message: fmt.Sprintf("node at index %d has an empty id", i),
			})
			continue
		}
		if seen[n.ID] {
			issues = append(issues, Issue{
				Kind:    IssueDuplicateID,
				Message: fmt.Sprintf("node id %q appears more than once", n.ID),
			})
		}
		seen[n.ID] = true
	}

	for _, e := range g.edges {
		if !seen[e.Source] {
			issues = append(issues, Issue{
				Kind:    IssueDanglingSource,
				Message: fmt.Sprintf("edge %s→%s references unknown source %q", e.Source, e.Target, e.Source),
			})
		}
		if !seen[e.Target] {
			issues = append(issues, Issue{
				Kind:    IssueDanglingTarget,
				Message: fmt.Sprintf("edge %s→%s references unknown target %q", e.Source, e.Target, e.Target),
			})
		}
		if e.Source == e.Target {
			issues = append(issues, Issue{
				Kind:    IssueSelfLoop,
				Message: fmt.Sprintf("edge %s→%s is a self-loop", e.Source, e.Target),
			})
		}
		if !e.Direction.Valid() {
			issues = append(issues, Issue{
				Kind:    IssueInvalidDirection,
				Message: fmt.Sprintf("edge %s→%s has unknown direction %q", e.Source, e.Target, e.Direction),
			})
		}
	}

	return issues
}
