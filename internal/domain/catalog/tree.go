package catalog

import (
	"sort"

	"github.com/google/uuid"
)

// CategoryTreeNode is a category placed in the tree with its direct children
type CategoryTreeNode struct {
	Category    *ProductCategory
	ChildCount  int
	HasChildren bool
	Children    []*CategoryTreeNode
}

// BuildCategoryTree nests a flat category list under rootID, or under the
// top-level categories when rootID is nil.
//
// Children are grouped in one pass over the list. Siblings are ordered by
// SortOrder then Name. A node is placed at most once, so a malformed parent
// chain cannot loop; categories whose parent is absent from the list are left out.
func BuildCategoryTree(flat []*ProductCategory, rootID *uuid.UUID) []*CategoryTreeNode {
	byParent := make(map[uuid.UUID][]*ProductCategory, len(flat))
	for _, c := range flat {
		if c == nil {
			continue
		}
		parent := uuid.Nil
		if c.ParentID != nil {
			parent = *c.ParentID
		}
		byParent[parent] = append(byParent[parent], c)
	}
	for _, siblings := range byParent {
		sortSiblings(siblings)
	}

	start := uuid.Nil
	if rootID != nil {
		start = *rootID
	}
	placed := map[uuid.UUID]bool{start: true}
	return buildLevel(byParent, start, placed)
}

func buildLevel(byParent map[uuid.UUID][]*ProductCategory, parent uuid.UUID, placed map[uuid.UUID]bool) []*CategoryTreeNode {
	siblings := byParent[parent]
	nodes := make([]*CategoryTreeNode, 0, len(siblings))
	for _, c := range siblings {
		if placed[c.ID] {
			continue
		}
		placed[c.ID] = true
		nodes = append(nodes, &CategoryTreeNode{Category: c})
	}
	for _, n := range nodes {
		children := buildLevel(byParent, n.Category.ID, placed)
		n.ChildCount = len(children)
		n.HasChildren = n.ChildCount > 0
		if n.HasChildren {
			n.Children = children
		}
	}
	return nodes
}

func sortSiblings(s []*ProductCategory) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].SortOrder != s[j].SortOrder {
			return s[i].SortOrder < s[j].SortOrder
		}
		return s[i].Name < s[j].Name
	})
}

// WouldCreateCycle reports whether placing category id under newParentID would make
// the category its own ancestor.
func WouldCreateCycle(all []*ProductCategory, id, newParentID uuid.UUID) bool {
	if id == newParentID {
		return true
	}
	parents := make(map[uuid.UUID]*uuid.UUID, len(all))
	for _, c := range all {
		if c != nil {
			parents[c.ID] = c.ParentID
		}
	}
	seen := make(map[uuid.UUID]bool)
	current := newParentID
	for !seen[current] {
		if current == id {
			return true
		}
		seen[current] = true
		next, ok := parents[current]
		if !ok || next == nil {
			return false
		}
		current = *next
	}
	return false
}

// DescendantIDs returns the ids of every category below id
func DescendantIDs(all []*ProductCategory, id uuid.UUID) []uuid.UUID {
	var out []uuid.UUID
	for _, n := range BuildCategoryTree(all, &id) {
		out = appendSubtree(out, n)
	}
	return out
}

func appendSubtree(out []uuid.UUID, n *CategoryTreeNode) []uuid.UUID {
	out = append(out, n.Category.ID)
	for _, c := range n.Children {
		out = appendSubtree(out, c)
	}
	return out
}
