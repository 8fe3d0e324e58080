package graph

import (
	"fmt"
	"slices"
	"sync"
)

// DependencyGraph manages the dependency relationships between bindings.
// Nodes are identified by string IDs. Edges point from a node to the nodes it
// depends on; edges to unknown IDs are kept but ignored by sorting and cycle
// detection, since those dependencies are satisfied elsewhere.
type DependencyGraph struct {
	mu    sync.RWMutex
	nodes map[string]*Node
	edges map[string][]string

	sorted      []string
	sortedDirty bool
}

// Node represents a binding in the dependency graph.
type Node struct {
	ID    string
	Label string

	Dependencies []string // nodes this node depends on
	Dependents   []string // nodes that depend on this node
	Depth        int      // longest dependency chain below this node
}

// NewDependencyGraph creates a new dependency graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes:       make(map[string]*Node),
		edges:       make(map[string][]string),
		sortedDirty: true,
	}
}

// AddNode adds or replaces a node and its outgoing edges.
func (g *DependencyGraph) AddNode(id, label string, dependencies []string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if label == "" {
		label = id
	}

	deps := make([]string, 0, len(dependencies))
	for _, d := range dependencies {
		if !slices.Contains(deps, d) {
			deps = append(deps, d)
		}
	}

	g.nodes[id] = &Node{ID: id, Label: label}
	g.edges[id] = deps
	g.sortedDirty = true
	g.updateNodes()
}

// RemoveNode removes a node and its outgoing edges.
func (g *DependencyGraph) RemoveNode(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.nodes, id)
	delete(g.edges, id)
	g.sortedDirty = true
	g.updateNodes()
}

// updateNodes recomputes dependency and dependent lists. Callers hold the lock.
func (g *DependencyGraph) updateNodes() {
	for _, node := range g.nodes {
		node.Dependencies = node.Dependencies[:0]
		node.Dependents = node.Dependents[:0]
	}

	for _, from := range g.sortedIDs() {
		for _, to := range g.edges[from] {
			toNode, ok := g.nodes[to]
			if !ok {
				continue
			}

			g.nodes[from].Dependencies = append(g.nodes[from].Dependencies, to)
			toNode.Dependents = append(toNode.Dependents, from)
		}
	}
}

// sortedIDs returns node IDs in lexical order so traversals are stable.
func (g *DependencyGraph) sortedIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// TopologicalSort returns node IDs in dependency order (dependencies first).
func (g *DependencyGraph) TopologicalSort() ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.sortedDirty {
		return slices.Clone(g.sorted), nil
	}

	// Kahn's algorithm over known dependencies.
	pending := make(map[string]int, len(g.nodes))
	queue := make([]string, 0)
	for _, id := range g.sortedIDs() {
		pending[id] = len(g.nodes[id].Dependencies)
		if pending[id] == 0 {
			queue = append(queue, id)
		}
	}

	result := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)

		for _, dependent := range g.nodes[current].Dependents {
			pending[dependent]--
			if pending[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(g.nodes) {
		if err := g.detectCycles(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("graph contains %d nodes but only %d could be sorted", len(g.nodes), len(result))
	}

	g.sorted = result
	g.sortedDirty = false

	return slices.Clone(result), nil
}

// DetectCycles returns a *CircularDependencyError for the first cycle found.
func (g *DependencyGraph) DetectCycles() error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.detectCycles()
}

func (g *DependencyGraph) detectCycles() error {
	const (
		unvisited = iota
		visiting
		done
	)

	state := make(map[string]int, len(g.nodes))
	var path []string

	var visit func(id string) []string
	visit = func(id string) []string {
		state[id] = visiting
		path = append(path, id)

		for _, dep := range g.nodes[id].Dependencies {
			switch state[dep] {
			case visiting:
				start := slices.Index(path, dep)
				return slices.Clone(path[start:])
			case unvisited:
				if cycle := visit(dep); cycle != nil {
					return cycle
				}
			}
		}

		path = path[:len(path)-1]
		state[id] = done
		return nil
	}

	for _, id := range g.sortedIDs() {
		if state[id] != unvisited {
			continue
		}

		if cycle := visit(id); cycle != nil {
			return &CircularDependencyError{Path: cycle, labels: g.labels(cycle)}
		}
	}

	return nil
}

func (g *DependencyGraph) labels(ids []string) []string {
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = g.nodes[id].Label
	}
	return labels
}

// IsAcyclic reports whether the graph has no cycles.
func (g *DependencyGraph) IsAcyclic() bool {
	return g.DetectCycles() == nil
}

// GetDependencies returns the known dependencies of id.
func (g *DependencyGraph) GetDependencies(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if node, ok := g.nodes[id]; ok {
		return slices.Clone(node.Dependencies)
	}
	return nil
}

// GetDependents returns the nodes that depend on id.
func (g *DependencyGraph) GetDependents(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if node, ok := g.nodes[id]; ok {
		return slices.Clone(node.Dependents)
	}
	return nil
}

// GetTransitiveDependencies returns every node reachable from id, nearest first.
func (g *DependencyGraph) GetTransitiveDependencies(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	node, ok := g.nodes[id]
	if !ok {
		return nil
	}

	seen := map[string]bool{id: true}
	result := make([]string, 0)
	queue := slices.Clone(node.Dependencies)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if seen[current] {
			continue
		}

		seen[current] = true
		result = append(result, current)
		queue = append(queue, g.nodes[current].Dependencies...)
	}

	return result
}

// HasNode reports whether id is in the graph.
func (g *DependencyGraph) HasNode(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.nodes[id]
	return ok
}

// Size returns the number of nodes.
func (g *DependencyGraph) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.nodes)
}

// Clear removes all nodes.
func (g *DependencyGraph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nodes = make(map[string]*Node)
	g.edges = make(map[string][]string)
	g.sorted = nil
	g.sortedDirty = true
}

// CalculateDepths sets Depth on every node of an acyclic graph.
func (g *DependencyGraph) CalculateDepths() error {
	order, err := g.TopologicalSort()
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, id := range order {
		node := g.nodes[id]
		node.Depth = 0
		for _, dep := range node.Dependencies {
			if d := g.nodes[dep].Depth + 1; d > node.Depth {
				node.Depth = d
			}
		}
	}

	return nil
}

func (n *Node) String() string {
	return fmt.Sprintf("%s (deps: %d, dependents: %d)", n.Label, len(n.Dependencies), len(n.Dependents))
}
