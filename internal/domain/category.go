package domain

import (
	"sort"

	"github.com/google/uuid"
)

// Category is a node of the book classification tree.
type Category struct {
	ID       uuid.UUID
	Name     string
	ParentID *uuid.UUID
	Sort     int
	Audit
}

// CategoryNode is a category with its children, sorted by Sort then Name.
type CategoryNode struct {
	Category Category
	Children []*CategoryNode
}

// CategoryTree indexes categories by id and resolves their roots.
type CategoryTree struct {
	Roots []*CategoryNode
	byID  map[uuid.UUID]*CategoryNode
	index map[uuid.UUID]Category
}

// BuildCategoryTree arranges categories into a forest. A category whose parent
// is missing from the input becomes a root.
func BuildCategoryTree(categories []Category) *CategoryTree {
	t := &CategoryTree{
		byID:  make(map[uuid.UUID]*CategoryNode, len(categories)),
		index: make(map[uuid.UUID]Category, len(categories)),
	}
	for _, c := range categories {
		t.byID[c.ID] = &CategoryNode{Category: c}
		t.index[c.ID] = c
	}
	for _, c := range categories {
		node := t.byID[c.ID]
		if c.ParentID != nil {
			if parent, ok := t.byID[*c.ParentID]; ok && *c.ParentID != c.ID {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		t.Roots = append(t.Roots, node)
	}
	sortNodes(t.Roots)
	return t
}

// RootOf returns the top-level ancestor of id. Cycles stop at the first
// repeated node. The second result is false when id is unknown.
func (t *CategoryTree) RootOf(id uuid.UUID) (Category, bool) {
	c, ok := t.index[id]
	if !ok {
		return Category{}, false
	}
	seen := map[uuid.UUID]bool{c.ID: true}
	for c.ParentID != nil {
		parent, ok := t.index[*c.ParentID]
		if !ok || seen[parent.ID] {
			break
		}
		seen[parent.ID] = true
		c = parent
	}
	return c, true
}

func sortNodes(nodes []*CategoryNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i].Category, nodes[j].Category
		if a.Sort != b.Sort {
			return a.Sort < b.Sort
		}
		return a.Name < b.Name
	})
	for _, n := range nodes {
		sortNodes(n.Children)
	}
}
