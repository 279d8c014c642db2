package dag

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	// All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrGraphHasCycle is matched by every [CycleError] via errors.Is.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// CycleError reports a directed cycle. Path lists the nodes along the cycle
// and repeats the first node at the end, e.g. [a b c a].
type CycleError struct {
	Path []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Path, " -> "))
}

// Is makes errors.Is(err, ErrGraphHasCycle) true for any CycleError.
func (e *CycleError) Is(target error) bool { return target == ErrGraphHasCycle }

// DAG is a directed graph where an edge From -> To means "From requires To".
//
// The zero value is not usable - use New to create a valid DAG instance.
// DAG is not safe for concurrent use without external synchronization.
type DAG struct {
	nodes    []string
	index    map[string]int
	outgoing map[string][]string // nodeID -> prerequisite IDs
	edges    int
}

// New creates an empty DAG.
func New() *DAG {
	return &DAG{
		index:    make(map[string]int),
		outgoing: make(map[string][]string),
	}
}

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the ID is empty, or ErrDuplicateNodeID if a node
// with the same ID already exists.
func (d *DAG) AddNode(id string) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.index[id]; exists {
		return ErrDuplicateNodeID
	}
	d.index[id] = len(d.nodes)
	d.nodes = append(d.nodes, id)
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode if from doesn't exist, or ErrUnknownTargetNode
// if to doesn't exist. Adding the same edge twice is a no-op.
func (d *DAG) AddEdge(from, to string) error {
	if _, ok := d.index[from]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.index[to]; !ok {
		return ErrUnknownTargetNode
	}
	if slices.Contains(d.outgoing[from], to) {
		return nil
	}
	d.outgoing[from] = append(d.outgoing[from], to)
	d.edges++
	return nil
}

// Nodes returns all node IDs in insertion order.
func (d *DAG) Nodes() []string { return slices.Clone(d.nodes) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return d.edges }

// Children returns the prerequisites of the node in declaration order.
// The returned slice should not be modified.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Position returns the insertion index of the node, or -1 if it is unknown.
func (d *DAG) Position(id string) int {
	if i, ok := d.index[id]; ok {
		return i
	}
	return -1
}

// Validate returns a *CycleError if the graph contains a directed cycle.
//
// Cycle detection runs in O(N+E) time using depth-first search with
// white/gray/black coloring, visiting nodes in insertion order so the
// reported path is deterministic.
func (d *DAG) Validate() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	var stack []string
	var cycle []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, child := range d.outgoing[id] {
			switch color[child] {
			case white:
				if dfs(child) {
					return true
				}
			case gray:
				start := slices.Index(stack, child)
				cycle = append(slices.Clone(stack[start:]), child)
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, id := range d.nodes {
		if color[id] == white && dfs(id) {
			return &CycleError{Path: cycle}
		}
	}
	return nil
}
