package graph

import (
	"strings"
)

// CircularDependencyError reports a cycle. Path lists node IDs from the first
// node of the cycle to the node that depends on it again.
type CircularDependencyError struct {
	Path   []string
	labels []string
}

func (e *CircularDependencyError) Error() string {
	names := e.labels
	if len(names) != len(e.Path) {
		names = e.Path
	}

	var b strings.Builder
	b.WriteString("circular dependency detected: ")
	for _, name := range names {
		b.WriteString(name)
		b.WriteString(" -> ")
	}
	if len(names) > 0 {
		b.WriteString(names[0])
	}

	return b.String()
}
