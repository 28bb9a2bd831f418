package domain

// TreeNode is a note positioned in a tab's note forest, used for rendering
type TreeNode struct {
	Note       Note
	Children   []*TreeNode
	IsExpanded bool
	Parent     *TreeNode
}

// BuildForest assembles the top-level notes of a tab and their children into
// tree nodes, taking expansion from open. Children filed under another tab
// are left out.
func BuildForest(h *Hierarchy, tabID int64, open OpenStates) []*TreeNode {
	top := h.TopLevel(tabID)
	forest := make([]*TreeNode, 0, len(top))
	for _, n := range top {
		node := &TreeNode{Note: n, IsExpanded: open.Get(tabID, n.ID)}
		for _, c := range h.Siblings(NoteScope(tabID, &n.ID)) {
			node.Children = append(node.Children, &TreeNode{
				Note:       c,
				IsExpanded: open.Get(tabID, c.ID),
				Parent:     node,
			})
		}
		forest = append(forest, node)
	}
	return forest
}

// FlattenForest returns all visible nodes of a forest in display order
func FlattenForest(forest []*TreeNode) []*TreeNode {
	var result []*TreeNode
	for _, n := range forest {
		n.flattenRecursive(&result)
	}
	return result
}

// Flatten returns the node and its visible descendants (for list rendering)
func (n *TreeNode) Flatten() []*TreeNode {
	var result []*TreeNode
	n.flattenRecursive(&result)
	return result
}

func (n *TreeNode) flattenRecursive(result *[]*TreeNode) {
	*result = append(*result, n)
	if n.IsExpanded {
		for _, child := range n.Children {
			child.flattenRecursive(result)
		}
	}
}

// Depth returns the depth of this node in the tree
func (n *TreeNode) Depth() int {
	depth := 0
	current := n.Parent
	for current != nil {
		depth++
		current = current.Parent
	}
	return depth
}

// Toggle expands or collapses the node
func (n *TreeNode) Toggle() {
	n.IsExpanded = !n.IsExpanded
}
