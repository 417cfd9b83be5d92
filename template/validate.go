package template

import (
	"errors"
	"fmt"
)

// ErrInvalidTemplate is matched by every ValidationError.
var ErrInvalidTemplate = errors.New("template: invalid template")

// ValidationError describes why a template was rejected.
type ValidationError struct {
	Template string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("template: %s: %s", e.Template, e.Reason)
}

// Unwrap returns ErrInvalidTemplate.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidTemplate
}

// Validate checks the structural constraints of a template: node IDs are
// unique, edges reference declared nodes and never loop onto one node, ranges
// are ordered, every node is reachable from the first, and the node roles
// include a baseline and an x-height reference.
func Validate(t *Template) error {
	fail := func(format string, args ...any) error {
		return &ValidationError{Template: t.ID, Reason: fmt.Sprintf(format, args...)}
	}

	if t.ID == "" {
		return &ValidationError{Template: "<unnamed>", Reason: "empty id"}
	}
	if len(t.Nodes) < 2 {
		return fail("needs at least two nodes, has %d", len(t.Nodes))
	}
	if len(t.Edges) == 0 {
		return fail("has no edges")
	}

	index := make(map[string]int, len(t.Nodes))
	var hasBaseline, hasXHeight bool
	for i, n := range t.Nodes {
		if n.ID == "" {
			return fail("node %d has an empty id", i)
		}
		if _, dup := index[n.ID]; dup {
			return fail("duplicate node %q", n.ID)
		}
		index[n.ID] = i
		if n.X.Min > n.X.Max || n.Y.Min > n.Y.Max {
			return fail("node %q has an inverted range", n.ID)
		}
		switch n.Role {
		case RoleBaseline:
			hasBaseline = true
		case RoleXHeight:
			hasXHeight = true
		}
	}
	if !hasBaseline || !hasXHeight {
		return fail("roles must include a baseline and an x-height node")
	}

	adj := make([][]int, len(t.Nodes))
	for i, e := range t.Edges {
		from, okFrom := index[e.From]
		to, okTo := index[e.To]
		if !okFrom || !okTo {
			return fail("edge %d (%s-%s) references an undeclared node", i, e.From, e.To)
		}
		if from == to {
			return fail("edge %d loops on node %q", i, e.From)
		}
		if e.Curvature.Min > e.Curvature.Max {
			return fail("edge %d (%s-%s) has inverted curvature bounds", i, e.From, e.To)
		}
		adj[from] = append(adj[from], to)
		adj[to] = append(adj[to], from)
	}

	if n := reachable(adj); n != len(t.Nodes) {
		return fail("only %d of %d nodes reachable", n, len(t.Nodes))
	}
	return nil
}

// reachable counts nodes reachable from node 0 with a breadth-first walk.
func reachable(adj [][]int) int {
	seen := make([]bool, len(adj))
	seen[0] = true
	queue := []int{0}
	count := 1
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range adj[u] {
			if !seen[v] {
				seen[v] = true
				count++
				queue = append(queue, v)
			}
		}
	}
	return count
}
