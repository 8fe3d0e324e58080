package graph

import (
	"fmt"
	"io"
	"strconv"
)

// WriteDOT writes the graph in Graphviz DOT format. Nodes appear in lexical
// ID order so the output is stable.
func (g *DependencyGraph) WriteDOT(w io.Writer) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, err := fmt.Fprintln(w, "digraph dependencies {\n  rankdir=LR;\n  node [shape=box];"); err != nil {
		return err
	}

	ids := g.sortedIDs()
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
		if _, err := fmt.Fprintf(w, "  n%d [label=%s];\n", i, strconv.Quote(g.nodes[id].Label)); err != nil {
			return err
		}
	}

	for _, id := range ids {
		for _, dep := range g.nodes[id].Dependencies {
			if _, err := fmt.Fprintf(w, "  n%d -> n%d;\n", index[id], index[dep]); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}
