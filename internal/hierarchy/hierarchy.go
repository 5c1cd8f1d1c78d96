package hierarchy

import (
	"sort"
	"strings"

	"groupscope/internal/groups"
)

// Node is one node in the derived functionality tree. Nodes have no
// identity beyond their path; the forest is rebuilt from a record snapshot
// on each query.
type Node struct {
	FullPath string           `json:"fullPath"`
	Children map[string]*Node `json:"children,omitempty"`
	Groups   []groups.Record  `json:"groups,omitempty"`
}

// Forest is the derived tree representation keyed by top-level segment.
// Segment keys are case-sensitive: "Auth" and "auth" build separate nodes
// even though functionality lookup elsewhere is case-insensitive.
type Forest map[string]*Node

// Build converts a flat record snapshot into a forest. For a record at
// "A > B > C" the forest contains nodes "A", "A > B" and "A > B > C", with
// the record attached to the terminal node's Groups. Records with an empty
// functionality never reach this stage (filtered at the index boundary).
func Build(records []groups.Record) Forest {
	forest := make(Forest)

	for _, rec := range records {
		segments := SplitPath(rec.Functionality)
		if len(segments) == 0 {
			continue
		}

		var current *Node
		for i, segment := range segments {
			fullPath := strings.Join(segments[:i+1], groups.PathSeparator)

			var children map[string]*Node
			if current == nil {
				// Top level: the forest map itself.
				child, ok := forest[segment]
				if !ok {
					child = &Node{FullPath: fullPath}
					forest[segment] = child
				}
				current = child
				continue
			}
			if current.Children == nil {
				current.Children = make(map[string]*Node)
			}
			children = current.Children
			child, ok := children[segment]
			if !ok {
				child = &Node{FullPath: fullPath}
				children[segment] = child
			}
			current = child
		}

		current.Groups = append(current.Groups, rec)
	}

	return forest
}

// SplitPath splits a functionality path on the " > " separator and trims
// whitespace around each segment. Empty segments are dropped.
func SplitPath(functionality string) []string {
	parts := strings.Split(functionality, groups.PathSeparator)
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// SortedChildren returns a node's child segment names in sorted order, for
// deterministic rendering and JSON walks.
func (n *Node) SortedChildren() []string {
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Roots returns the forest's top-level segment names in sorted order.
func (f Forest) Roots() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CountNodes returns the total number of nodes in the forest.
func (f Forest) CountNodes() int {
	total := 0
	for _, root := range f {
		total += countNodes(root)
	}
	return total
}

func countNodes(n *Node) int {
	total := 1
	for _, child := range n.Children {
		total += countNodes(child)
	}
	return total
}
