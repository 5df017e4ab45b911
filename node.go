package lumen

import (
	"cmp"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// HitShape overrides a node's box for hit testing. Coordinates are local.
type HitShape interface {
	Contains(x, y float64) bool
}

// PointerContext describes a pointer event delivered to a node. Global
// coordinates are in the space of the node's root: page space for the world
// root, screen space for the overlay.
type PointerContext struct {
	Node     *Node
	UserData any
	GlobalX  float64
	GlobalY  float64
	LocalX   float64
	LocalY   float64
	Button   MouseButton
}

// ClickContext describes a completed press and release on the same node.
type ClickContext = PointerContext

// Node is an element of the page. Every kind of node shares this struct;
// Type selects how it draws.
type Node struct {
	Name string
	Type NodeType

	Parent   *Node
	children []*Node
	scene    *Scene // set on scene roots only

	// Local transform. Rotation and skew are in radians.
	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64
	SkewX, SkewY   float64
	PivotX, PivotY float64

	// Box size in local units. Rect and image nodes draw into it; every node
	// with a non-zero box is hit-testable and measurable.
	Width, Height float64

	Alpha float64
	Color Color

	Visible      bool
	Renderable   bool
	Interactable bool

	// ZIndex orders siblings; RenderLayer orders whole passes.
	ZIndex      int
	RenderLayer uint8

	// Clip restricts this node and its subtree to a local-space rectangle.
	// Only axis-aligned clipping is supported; rotated clips use their AABB.
	Clip *Rect

	UserData  any
	TextBlock *TextBlock
	HitShape  HitShape

	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)
	OnPointerMove  func(PointerContext)
	OnPointerDown  func(PointerContext)
	OnPointerUp    func(PointerContext)
	OnClick        func(ClickContext)

	// OnUpdate runs once per Scene.Update with the frame delta in seconds.
	OnUpdate func(dt float64)

	image *ebiten.Image

	worldTransform affine
	worldAlpha     float64
	transformDirty bool

	ordered    []*Node // children by ZIndex, valid unless orderDirty
	orderDirty bool

	disposed bool
}

func newNode(name string, typ NodeType) *Node {
	return &Node{
		Name:           name,
		Type:           typ,
		ScaleX:         1,
		ScaleY:         1,
		Alpha:          1,
		Color:          ColorWhite,
		Visible:        true,
		Renderable:     true,
		Interactable:   true,
		worldTransform: identity,
		worldAlpha:     1,
		transformDirty: true,
	}
}

// NewContainer creates a node that only groups its children.
func NewContainer(name string) *Node {
	return newNode(name, NodeTypeContainer)
}

// NewRect creates a solid rectangle.
func NewRect(name string, w, h float64, c Color) *Node {
	n := newNode(name, NodeTypeRect)
	n.Width, n.Height = w, h
	n.Color = c
	return n
}

// NewImage creates a node that stretches img over a w x h box.
func NewImage(name string, img *ebiten.Image, w, h float64) *Node {
	n := newNode(name, NodeTypeImage)
	n.Width, n.Height = w, h
	n.image = img
	return n
}

// NewText creates a text node. Its box follows the measured text.
func NewText(name string, content string, font *Font) *Node {
	n := newNode(name, NodeTypeText)
	n.TextBlock = &TextBlock{
		Content:     content,
		Font:        font,
		Color:       ColorWhite,
		layoutDirty: true,
	}
	n.syncTextSize()
	return n
}

// SetSize resizes the node's box.
func (n *Node) SetSize(w, h float64) {
	n.Width, n.Height = w, h
	n.MarkDirty()
}

// AddChild appends child, moving it from its previous parent if it has one.
// It panics on a nil child or when child is n or one of n's ancestors.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("lumen: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	for p := n; p != nil; p = p.Parent {
		if p == child {
			panic("lumen: adding child would create a cycle")
		}
	}
	if child.Parent != nil {
		child.Parent.detach(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.orderDirty = true
	dirtySubtree(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child. It panics when child belongs to another node.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("lumen: child's parent is not this node")
	}
	n.detach(child)
	child.Parent = nil
	dirtySubtree(child)
}

// RemoveFromParent detaches n from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func (n *Node) detach(child *Node) {
	if i := slices.Index(n.children, child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
		n.orderDirty = true
	}
}

// Children returns the children in insertion order. Callers must not modify
// the slice.
func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) NumChildren() int {
	return len(n.children)
}

// SetZIndex changes where n draws and hit-tests among its siblings. Higher
// values are on top; ties keep insertion order.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.orderDirty = true
	}
}

// drawOrder returns the children sorted by ZIndex.
func (n *Node) drawOrder() []*Node {
	if n.orderDirty {
		n.ordered = append(n.ordered[:0], n.children...)
		slices.SortStableFunc(n.ordered, func(a, b *Node) int {
			return cmp.Compare(a.ZIndex, b.ZIndex)
		})
		n.orderDirty = false
	}
	return n.ordered
}

func (n *Node) root() *Node {
	p := n
	for p.Parent != nil {
		p = p.Parent
	}
	return p
}

// Scene returns the scene n belongs to, or nil while n is detached (not
// mounted) or disposed.
func (n *Node) Scene() *Scene {
	if n.disposed {
		return nil
	}
	return n.root().scene
}

// Attached reports whether n is part of a scene tree.
func (n *Node) Attached() bool {
	return n.Scene() != nil
}

// inOverlay reports whether n lives under the scene's screen-space root.
func (n *Node) inOverlay() bool {
	r := n.root()
	return r.scene != nil && r == r.scene.overlay
}

// Dispose detaches n and releases it and its whole subtree. Disposed nodes
// drop their callbacks and content and are skipped by update, drawing, hit
// testing and observers.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.release()
}

func (n *Node) release() {
	for _, child := range n.children {
		child.Parent = nil
		child.release()
	}
	*n = Node{Name: n.Name, Type: n.Type, disposed: true}
}

// IsDisposed reports whether Dispose has been called on n or an ancestor.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

func dirtySubtree(n *Node) {
	n.transformDirty = true
	for _, child := range n.children {
		dirtySubtree(child)
	}
}

// updateNodes runs OnUpdate depth-first on every visible node.
func updateNodes(n *Node, dt float64) {
	if !n.Visible || n.disposed {
		return
	}
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	// OnUpdate may add or remove children.
	for i := 0; i < len(n.children); i++ {
		updateNodes(n.children[i], dt)
	}
}
