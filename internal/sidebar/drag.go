// Package sidebar holds the tree navigation state: which folders are
// expanded, and the manual drag gesture that reparents documents on drop.
package sidebar

import (
	"context"
	"errors"
)

// ErrMoveFailed is returned when the pointer is released with no valid
// drop target under it; nothing is mutated.
var ErrMoveFailed = errors.New("no drop target under cursor")

type dropKind int

const (
	dropNone dropKind = iota
	dropOutside
	dropNode
)

// DropTarget is what sits under the pointer during a drag: nothing valid,
// the empty area outside every node (drop to root), or a concrete node.
type DropTarget struct {
	kind dropKind
	id   string
}

func NoTarget() DropTarget {
	return DropTarget{kind: dropNone}
}

// OutsideTarget is the root-level empty area below the tree.
func OutsideTarget() DropTarget {
	return DropTarget{kind: dropOutside}
}

func NodeTarget(id string) DropTarget {
	return DropTarget{kind: dropNode, id: id}
}

func (t DropTarget) Node() (string, bool) {
	return t.id, t.kind == dropNode
}

func (t DropTarget) IsOutside() bool {
	return t.kind == dropOutside
}

func (t DropTarget) IsNone() bool {
	return t.kind == dropNone
}

// Mover performs the reparenting on drop.
type Mover interface {
	MoveFile(ctx context.Context, id string, newParentID *string) error
}

// MoverFunc adapts a plain function to Mover, binding the document service's
// move operation to one owner:
//
//	sidebar.MoverFunc(func(ctx context.Context, id string, parentID *string) error {
//		_, err := docSvc.MoveFile(ctx, ownerID, id, parentID)
//		return err
//	})
type MoverFunc func(ctx context.Context, id string, newParentID *string) error

func (f MoverFunc) MoveFile(ctx context.Context, id string, newParentID *string) error {
	return f(ctx, id, newParentID)
}

type Point struct {
	X int
	Y int
}

// Rect is the scrollable container's viewport in the same coordinate space
// as the pointer.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Edges are the four auto-scroll proximity flags.
type Edges struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

const (
	// EdgeThreshold is the pointer distance from a viewport edge at which
	// auto-scroll engages.
	EdgeThreshold = 40
	// ScrollStepPx is the scroll applied per animation frame while an edge
	// flag is set.
	ScrollStepPx = 8
)

// Coordinator is the single drag state machine shared by every tree node.
// One gesture can be in flight at a time: PointerDown while dragging is
// ignored. It is handed to nodes by reference, never global.
type Coordinator struct {
	mover Mover

	dragging   bool
	clickID    string
	activeID   string
	hover      DropTarget
	dragTitle  string
	cursor     Point
	autoScroll Edges
}

func NewCoordinator(mover Mover) *Coordinator {
	return &Coordinator{mover: mover}
}

func (c *Coordinator) IsDragging() bool  { return c.dragging }
func (c *Coordinator) ClickID() string   { return c.clickID }
func (c *Coordinator) ActiveID() string  { return c.activeID }
func (c *Coordinator) Hover() DropTarget { return c.hover }
func (c *Coordinator) DragTitle() string { return c.dragTitle }
func (c *Coordinator) Cursor() Point     { return c.cursor }
func (c *Coordinator) AutoScroll() Edges { return c.autoScroll }

// PointerDown begins a drag gesture on the given node.
func (c *Coordinator) PointerDown(id, title string) {
	if c.dragging {
		return
	}
	c.dragging = true
	c.clickID = id
	c.activeID = id
	c.dragTitle = title
	c.hover = NodeTarget(id)
}

// PointerMove tracks the cursor while dragging: it updates the hover
// target and recomputes the auto-scroll edge flags against the viewport.
func (c *Coordinator) PointerMove(cursor Point, target DropTarget, viewport Rect) {
	if !c.dragging {
		return
	}
	c.cursor = cursor
	c.hover = target
	c.autoScroll = Edges{
		Up:    cursor.Y-viewport.Top < EdgeThreshold,
		Down:  viewport.Bottom-cursor.Y < EdgeThreshold,
		Left:  cursor.X-viewport.Left < EdgeThreshold,
		Right: viewport.Right-cursor.X < EdgeThreshold,
	}
}

// ScrollStep yields the per-frame scroll delta. Zero when not dragging or
// no edge flag is set.
func (c *Coordinator) ScrollStep() (dx, dy int) {
	if !c.dragging {
		return 0, 0
	}
	switch {
	case c.autoScroll.Up:
		dy = -ScrollStepPx
	case c.autoScroll.Down:
		dy = ScrollStepPx
	}
	switch {
	case c.autoScroll.Left:
		dx = -ScrollStepPx
	case c.autoScroll.Right:
		dx = ScrollStepPx
	}
	return dx, dy
}

// PointerUp resolves the drop and returns to idle. The outside area moves
// the node to root; no target fails without mutating; a node target becomes
// the move destination. The hover is left on the dragged node as a
// highlight hint.
func (c *Coordinator) PointerUp(ctx context.Context) error {
	if !c.dragging {
		return nil
	}

	clickID := c.clickID
	hover := c.hover

	c.dragging = false
	c.clickID = ""
	c.dragTitle = ""
	c.autoScroll = Edges{}
	c.hover = NodeTarget(clickID)

	switch hover.kind {
	case dropNone:
		return ErrMoveFailed
	case dropOutside:
		return c.mover.MoveFile(ctx, clickID, nil)
	default:
		if hover.id == clickID {
			return nil
		}
		dest := hover.id
		return c.mover.MoveFile(ctx, clickID, &dest)
	}
}
