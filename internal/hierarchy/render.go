package hierarchy

import (
	"fmt"

	"github.com/disiqueira/gotree/v3"
)

// Render produces a printable text tree of the forest. Each node label
// carries the segment name plus the number of records attached at exactly
// that path; favorited paths are marked with a star.
func Render(forest Forest, isFavorite func(path string) bool) string {
	root := gotree.New("groups")
	for _, name := range forest.Roots() {
		addNode(root, name, forest[name], isFavorite)
	}
	return root.Print()
}

func addNode(parent gotree.Tree, segment string, node *Node, isFavorite func(path string) bool) {
	label := segment
	if len(node.Groups) > 0 {
		label = fmt.Sprintf("%s (%d)", label, len(node.Groups))
	}
	if isFavorite != nil && isFavorite(node.FullPath) {
		label = "★ " + label
	}
	branch := parent.Add(label)
	for _, childName := range node.SortedChildren() {
		addNode(branch, childName, node.Children[childName], isFavorite)
	}
}
