package internal

// Root is the history index of the initial state. It never refers to an entry.
const Root = 0

type entry[A any] struct {
	parent int
	action A
}

// History is an append-only arena of (parent, action) links.
// Indices handed out by Push start at 1 so that Root can act as the sentinel.
type History[A any] struct {
	entries []entry[A]
}

// Push records that action was taken from the node at parent and returns the
// index of the new node.
func (h *History[A]) Push(parent int, action A) int {
	h.entries = append(h.entries, entry[A]{parent: parent, action: action})
	return len(h.entries)
}

// Len returns the number of recorded links.
func (h *History[A]) Len() int { return len(h.entries) }

// Reconstruct rebuilds the action sequence leading to the node at index and
// appends last, in start to goal order.
//
// Entries on the walked chain are swap-removed, so Reconstruct must be called
// at most once per History. A parent always has a smaller index than its
// children, which keeps every index still to be visited intact.
func (h *History[A]) Reconstruct(index int, last A) []A {
	path := []A{last}
	for index != Root {
		position := index - 1
		link := h.entries[position]
		end := len(h.entries) - 1
		h.entries[position] = h.entries[end]
		h.entries = h.entries[:end]

		path = append(path, link.action)
		index = link.parent
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
