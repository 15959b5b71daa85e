// Package reorder implements pointer-driven drag reordering of a list and the
// persistence of the resulting order.
//
// The gesture controller never looks at a concrete widget tree. It asks a
// HitTester which sortable item, if any, sits under a point. Layout is the
// geometric HitTester the terminal views publish after every render.
package reorder

// Rect is a cell-addressed rectangle. X and Y are the top-left cell.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Node is one rendered element. Sortable nodes carry the item id as their ID.
// Interactive nodes (buttons, inputs, excluded handles) never start a drag,
// and neither does anything nested inside them.
type Node struct {
	ID          string
	Parent      string
	Rect        Rect
	Sortable    bool
	Interactive bool
	// Action names what an interactive node does when clicked, e.g. "delete".
	Action string
	// Group scopes sortable nodes: an item can only be dropped onto an item of
	// the same group.
	Group string
}

// HitTester answers point queries against the current render.
type HitTester interface {
	SortableAt(x, y int, exclude string) (Node, bool)
	InteractiveAt(x, y int) (Node, bool)
}

// Layout is a paint-ordered list of nodes. Nodes added later are on top.
type Layout struct {
	nodes []Node
	index map[string]int
}

func NewLayout() *Layout {
	return &Layout{index: make(map[string]int)}
}

func (l *Layout) Add(n Node) {
	if l.index == nil {
		l.index = make(map[string]int)
	}
	l.index[n.ID] = len(l.nodes)
	l.nodes = append(l.nodes, n)
}

func (l *Layout) Len() int {
	if l == nil {
		return 0
	}
	return len(l.nodes)
}

func (l *Layout) Node(id string) (Node, bool) {
	if l == nil {
		return Node{}, false
	}
	i, ok := l.index[id]
	if !ok {
		return Node{}, false
	}
	return l.nodes[i], true
}

// Translate returns a copy of the layout shifted by dx, dy.
func (l *Layout) Translate(dx, dy int) *Layout {
	out := NewLayout()
	if l == nil {
		return out
	}
	for _, n := range l.nodes {
		n.Rect.X += dx
		n.Rect.Y += dy
		out.Add(n)
	}
	return out
}

// SortableAt finds the topmost node under the point, skipping the node whose
// ID equals exclude, then walks up its ancestors to the nearest sortable node.
func (l *Layout) SortableAt(x, y int, exclude string) (Node, bool) {
	return l.ClosestAt(x, y, exclude, func(n Node) bool { return n.Sortable })
}

// InteractiveAt reports the interactive control under the point, if the
// topmost node or any of its ancestors is one.
func (l *Layout) InteractiveAt(x, y int) (Node, bool) {
	return l.ClosestAt(x, y, "", func(n Node) bool { return n.Interactive })
}

// ClosestAt walks up from the topmost node under the point to the first node
// accepted by match.
func (l *Layout) ClosestAt(x, y int, exclude string, match func(Node) bool) (Node, bool) {
	top, ok := l.topmost(x, y, exclude)
	if !ok {
		return Node{}, false
	}
	return l.closest(top, match)
}

func (l *Layout) topmost(x, y int, exclude string) (Node, bool) {
	if l == nil {
		return Node{}, false
	}
	for i := len(l.nodes) - 1; i >= 0; i-- {
		n := l.nodes[i]
		if exclude != "" && n.ID == exclude {
			continue
		}
		if n.Rect.Contains(x, y) {
			return n, true
		}
	}
	return Node{}, false
}

func (l *Layout) closest(start Node, match func(Node) bool) (Node, bool) {
	cur := start
	// bounded walk so a malformed parent cycle cannot spin forever
	for steps := 0; steps <= len(l.nodes); steps++ {
		if match(cur) {
			return cur, true
		}
		if cur.Parent == "" {
			return Node{}, false
		}
		next, ok := l.Node(cur.Parent)
		if !ok {
			return Node{}, false
		}
		cur = next
	}
	return Node{}, false
}
