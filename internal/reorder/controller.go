package reorder

// Decoration is the visual state of one row during a gesture.
type Decoration int

const (
	DecorationNone Decoration = iota
	DecorationDragging
	DecorationDropTarget
)

// ReorderFunc receives the new visible sequence and the moved item's id.
type ReorderFunc func(seq []string, movedID string)

// Controller tracks one pointer gesture at a time. Its zero value is disabled;
// use NewController.
//
// The drop target is sticky: moving over empty space, a non-sortable node, an
// item of another group or the dragged item itself keeps the last target.
type Controller struct {
	hit       HitTester
	enabled   bool
	onReorder ReorderFunc

	dragged     string
	draggedNode Node
	target      string
}

func NewController(hit HitTester, onReorder ReorderFunc) Controller {
	return Controller{hit: hit, enabled: true, onReorder: onReorder}
}

// SetHitTester swaps the hit tester after a re-render. An active gesture
// survives the swap.
func (c *Controller) SetHitTester(hit HitTester) {
	c.hit = hit
}

// SetEnabled toggles reordering. Disabling cancels any active gesture.
func (c *Controller) SetEnabled(enabled bool) {
	c.enabled = enabled
	if !enabled {
		c.reset()
	}
}

func (c *Controller) Enabled() bool   { return c.enabled }
func (c *Controller) Active() bool    { return c.dragged != "" }
func (c *Controller) Dragged() string { return c.dragged }
func (c *Controller) Target() string  { return c.target }

// BeginDrag starts a gesture at the point. It refuses when disabled, when a
// gesture is already active, when the point is on an interactive control, or
// when no sortable item is under it.
func (c *Controller) BeginDrag(x, y int) bool {
	if !c.enabled || c.Active() || c.hit == nil {
		return false
	}
	if _, ok := c.hit.InteractiveAt(x, y); ok {
		return false
	}
	node, ok := c.hit.SortableAt(x, y, "")
	if !ok {
		return false
	}
	c.dragged = node.ID
	c.draggedNode = node
	c.target = ""
	return true
}

// UpdateDrag resolves the sortable item under the point and reports whether
// the drop target changed.
func (c *Controller) UpdateDrag(x, y int) bool {
	if !c.Active() || c.hit == nil {
		return false
	}
	node, ok := c.hit.SortableAt(x, y, c.dragged)
	if !ok || node.ID == c.dragged {
		return false
	}
	if node.Group != c.draggedNode.Group {
		return false
	}
	changed := c.target != node.ID
	c.target = node.ID
	return changed
}

// EndDrag finishes the gesture against the visible sequence. When a target
// is set and differs from the dragged item, the reordered sequence is
// returned and passed to the reorder callback. Gesture state is cleared on
// every path.
func (c *Controller) EndDrag(visible []string) ([]string, bool) {
	dragged, target := c.dragged, c.target
	c.reset()
	if dragged == "" || target == "" || dragged == target {
		return nil, false
	}
	seq, ok := Move(visible, dragged, target)
	if !ok {
		return nil, false
	}
	if c.onReorder != nil {
		c.onReorder(seq, dragged)
	}
	return seq, true
}

// Cancel abandons the gesture without reordering.
func (c *Controller) Cancel() {
	c.reset()
}

func (c *Controller) Decoration(id string) Decoration {
	switch {
	case id == "" || !c.Active():
		return DecorationNone
	case id == c.dragged:
		return DecorationDragging
	case id == c.target:
		return DecorationDropTarget
	default:
		return DecorationNone
	}
}

func (c *Controller) reset() {
	c.dragged = ""
	c.draggedNode = Node{}
	c.target = ""
}
