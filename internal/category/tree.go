package category

import (
	"cmp"
	"slices"
)

// Node is a category with its children, as rendered by the tree endpoint.
type Node struct {
	*AccountCategory
	Children []*Node
}

// BuildTree assembles the flat category list into a forest. Categories whose
// parent is not in cats become roots. Siblings are ordered by SortOrder, then
// Code.
func BuildTree(cats []*AccountCategory) []*Node {
	nodes := make(map[int64]*Node, len(cats))
	for _, c := range cats {
		nodes[c.ID] = &Node{AccountCategory: c, Children: []*Node{}}
	}

	children := make(map[int64][]int64, len(cats))

	var roots []*Node

	for _, c := range cats {
		if c.ParentID != nil {
			if _, ok := nodes[*c.ParentID]; ok && *c.ParentID != c.ID {
				children[*c.ParentID] = append(children[*c.ParentID], c.ID)
				continue
			}
		}

		roots = append(roots, nodes[c.ID])
	}

	for parentID, ids := range children {
		parent := nodes[parentID]
		for _, id := range ids {
			parent.Children = append(parent.Children, nodes[id])
		}

		sortNodes(parent.Children)
	}

	sortNodes(roots)

	if roots == nil {
		roots = []*Node{}
	}

	return roots
}

func sortNodes(nodes []*Node) {
	slices.SortFunc(nodes, func(a, b *Node) int {
		return cmp.Or(cmp.Compare(a.SortOrder, b.SortOrder), cmp.Compare(a.Code, b.Code))
	})
}
