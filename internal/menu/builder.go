package menu

import (
	"strings"

	"liquorhole/internal/domain"
)

// Build links a flat parent-referencing list into a rooted forest. Each input
// row is cloned into a fresh node, so callers may reuse the slice. A row whose
// parent id does not resolve, points at itself, or sits on a parent chain that
// never terminates is demoted to a root instead of being dropped or looping.
func Build(items []domain.MenuItem) []*domain.MenuNode {
	index := make(map[int64]*domain.MenuNode, len(items))
	for _, it := range items {
		index[it.ID] = &domain.MenuNode{
			ID:       it.ID,
			Name:     it.Name,
			URL:      it.URL,
			ParentID: it.ParentID,
			Children: []*domain.MenuNode{},
		}
	}

	parents := make(map[int64]*int64, len(items))
	for _, it := range items {
		parents[it.ID] = it.ParentID
	}

	var roots []*domain.MenuNode
	for _, it := range items {
		node := index[it.ID]
		if it.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := index[*it.ParentID]
		if !ok || *it.ParentID == it.ID || !chainTerminates(parents, it.ID) {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}

// chainTerminates walks the ancestor chain of id and reports whether it
// reaches a row without a parent (or with a parent outside the set) before
// revisiting any row.
func chainTerminates(parents map[int64]*int64, id int64) bool {
	seen := map[int64]bool{id: true}
	cur := id
	for {
		pid, ok := parents[cur]
		if !ok || pid == nil {
			return true
		}
		if seen[*pid] {
			return false
		}
		seen[*pid] = true
		cur = *pid
	}
}

// CollectDescendantIDs returns node.ID followed by the ids of every
// descendant in depth-first pre-order.
func CollectDescendantIDs(node *domain.MenuNode) []int64 {
	if node == nil {
		return nil
	}
	ids := []int64{node.ID}
	for _, child := range node.Children {
		ids = append(ids, CollectDescendantIDs(child)...)
	}
	return ids
}

// ResolveNodeByURL returns the first node, in pre-order across the forest,
// whose normalized url equals the normalized target or ends with it. Both
// sides are lower-cased with trailing slashes stripped. Returns nil when no
// node matches; callers fall back to name matching and then a free-text
// product type search, in that order.
func ResolveNodeByURL(roots []*domain.MenuNode, targetURL string) *domain.MenuNode {
	target := normalizeURL(targetURL)
	if target == "" {
		return nil
	}
	return findNode(roots, func(n *domain.MenuNode) bool {
		u := normalizeURL(n.URL)
		return u != "" && (u == target || strings.HasSuffix(u, target))
	})
}

// ResolveNodeByName returns the first node whose name equals name
// case-insensitively, or nil.
func ResolveNodeByName(roots []*domain.MenuNode, name string) *domain.MenuNode {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return nil
	}
	return findNode(roots, func(n *domain.MenuNode) bool {
		return strings.ToLower(strings.TrimSpace(n.Name)) == want
	})
}

func findNode(nodes []*domain.MenuNode, match func(*domain.MenuNode) bool) *domain.MenuNode {
	for _, n := range nodes {
		if match(n) {
			return n
		}
		if found := findNode(n.Children, match); found != nil {
			return found
		}
	}
	return nil
}

func normalizeURL(u string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(u), "/"))
}
