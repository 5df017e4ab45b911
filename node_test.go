package lumen

import (
	"strings"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		node  *Node
		typ   NodeType
		w, h  float64
		color Color
	}{
		{NewContainer("c"), NodeTypeContainer, 0, 0, ColorWhite},
		{NewRect("r", 40, 30, RGB(0x2563eb)), NodeTypeRect, 40, 30, RGB(0x2563eb)},
		{NewImage("i", nil, 8, 9), NodeTypeImage, 8, 9, ColorWhite},
		{NewText("t", "", nil), NodeTypeText, 0, 0, ColorWhite},
	}
	for _, tt := range tests {
		n := tt.node
		t.Run(n.Name, func(t *testing.T) {
			if n.Type != tt.typ {
				t.Errorf("Type = %v, want %v", n.Type, tt.typ)
			}
			if n.Width != tt.w || n.Height != tt.h {
				t.Errorf("size = %vx%v, want %vx%v", n.Width, n.Height, tt.w, tt.h)
			}
			if n.Color != tt.color {
				t.Errorf("Color = %v, want %v", n.Color, tt.color)
			}
			if n.ScaleX != 1 || n.ScaleY != 1 || n.Alpha != 1 {
				t.Error("scale and alpha should start at 1")
			}
			if !n.Visible || !n.Renderable || !n.Interactable {
				t.Error("new nodes should be visible, renderable and interactable")
			}
			if !n.transformDirty {
				t.Error("new nodes need a first transform pass")
			}
			if n.Parent != nil || n.NumChildren() != 0 || n.Attached() {
				t.Error("new nodes should be detached and empty")
			}
		})
	}

	if NewText("t", "x", nil).TextBlock == nil {
		t.Error("text node without a TextBlock")
	}
}

func TestAddChild(t *testing.T) {
	first := NewContainer("first")
	second := NewContainer("second")
	child := NewContainer("child")

	first.AddChild(child)
	if child.Parent != first || first.NumChildren() != 1 {
		t.Fatal("child not added")
	}

	second.AddChild(child)
	if child.Parent != second {
		t.Error("AddChild should reparent")
	}
	if first.NumChildren() != 0 || second.NumChildren() != 1 {
		t.Errorf("children = %d, %d, want 0, 1", first.NumChildren(), second.NumChildren())
	}
}

func TestAddChildPanics(t *testing.T) {
	grandparent := NewContainer("grandparent")
	parent := NewContainer("parent")
	grandparent.AddChild(parent)

	tests := []struct {
		name   string
		add    func()
		expect string
	}{
		{"nil", func() { parent.AddChild(nil) }, "nil child"},
		{"self", func() { parent.AddChild(parent) }, "cycle"},
		{"ancestor", func() { parent.AddChild(grandparent) }, "cycle"},
		{"wrong parent", func() { grandparent.RemoveChild(NewContainer("x")) }, "parent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				msg, _ := r.(string)
				if !strings.Contains(msg, tt.expect) {
					t.Errorf("panic = %v, want one mentioning %q", r, tt.expect)
				}
			}()
			tt.add()
		})
	}
}

func TestRemoveChild(t *testing.T) {
	parent := NewContainer("parent")
	a, b, c := NewContainer("a"), NewContainer("b"), NewContainer("c")
	parent.AddChild(a)
	parent.AddChild(b)
	parent.AddChild(c)

	parent.RemoveChild(b)
	if b.Parent != nil {
		t.Error("removed child keeps its parent")
	}
	kids := parent.Children()
	if len(kids) != 2 || kids[0] != a || kids[1] != c {
		t.Errorf("children after removal = %v", names(kids))
	}

	c.RemoveFromParent()
	c.RemoveFromParent()
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
}

func TestAttached(t *testing.T) {
	s := NewScene(Rect{Width: 800, Height: 600})
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	if child.Attached() {
		t.Error("child of a detached parent should not be attached")
	}
	s.Root().AddChild(parent)
	if !child.Attached() || child.Scene() != s {
		t.Error("child should be attached to s")
	}
	if child.inOverlay() {
		t.Error("page node should not report overlay")
	}

	s.Overlay().AddChild(parent)
	if !child.inOverlay() {
		t.Error("node moved under the overlay should report overlay")
	}

	parent.RemoveFromParent()
	if child.Attached() {
		t.Error("child should be detached after parent removal")
	}
}

func TestDrawOrder(t *testing.T) {
	parent := NewContainer("parent")
	a, b, c := NewContainer("a"), NewContainer("b"), NewContainer("c")
	parent.AddChild(a)
	parent.AddChild(b)
	parent.AddChild(c)

	if got := names(parent.drawOrder()); got != "a b c" {
		t.Errorf("default order = %s", got)
	}

	a.SetZIndex(2)
	c.SetZIndex(-1)
	if got := names(parent.drawOrder()); got != "c b a" {
		t.Errorf("order after SetZIndex = %s, want c b a", got)
	}

	// Ties keep insertion order.
	d := NewContainer("d")
	d.ZIndex = 2
	parent.AddChild(d)
	if got := names(parent.drawOrder()); got != "c b a d" {
		t.Errorf("order after AddChild = %s, want c b a d", got)
	}

	parent.RemoveChild(b)
	if got := names(parent.drawOrder()); got != "c a d" {
		t.Errorf("order after RemoveChild = %s, want c a d", got)
	}
	if got := names(parent.Children()); got != "a c d" {
		t.Errorf("Children = %s, insertion order should be untouched", got)
	}
}

func TestUpdateNodes(t *testing.T) {
	root := NewContainer("root")
	shown := NewContainer("shown")
	hidden := NewContainer("hidden")
	late := NewContainer("late")
	root.AddChild(shown)
	root.AddChild(hidden)
	hidden.Visible = false

	var got []string
	shown.OnUpdate = func(float64) {
		got = append(got, "shown")
		root.AddChild(late)
	}
	hidden.OnUpdate = func(float64) { got = append(got, "hidden") }
	late.OnUpdate = func(float64) { got = append(got, "late") }

	updateNodes(root, 1.0/60)
	if strings.Join(got, " ") != "shown late" {
		t.Errorf("updated = %v, want [shown late]", got)
	}
}

func TestDispose(t *testing.T) {
	s := NewScene(Rect{Width: 100, Height: 100})
	parent := NewRect("parent", 10, 10, ColorWhite)
	child := NewContainer("child")
	grandchild := NewText("grandchild", "hi", nil)
	parent.AddChild(child)
	child.AddChild(grandchild)
	s.Root().AddChild(parent)
	parent.OnClick = func(ClickContext) {}

	parent.Dispose()
	parent.Dispose()

	if s.Root().NumChildren() != 0 {
		t.Error("disposed node still in the tree")
	}
	for _, n := range []*Node{parent, child, grandchild} {
		if !n.IsDisposed() {
			t.Errorf("%s not disposed", n.Name)
		}
		if n.Attached() || n.Parent != nil || n.NumChildren() != 0 {
			t.Errorf("%s still linked", n.Name)
		}
	}
	if parent.OnClick != nil || grandchild.TextBlock != nil {
		t.Error("dispose should drop callbacks and content")
	}
	if parent.Name != "parent" {
		t.Error("dispose should keep the name for diagnostics")
	}
}

func TestDebugAddChildDisposedPanics(t *testing.T) {
	s := NewScene(Rect{Width: 100, Height: 100})
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	child := NewContainer("child")
	child.Dispose()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic adding a disposed node in debug mode")
		}
	}()
	s.Root().AddChild(child)
}

func TestTreeChangesMarkSubtreeDirty(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	grandchild := NewContainer("grandchild")
	child.AddChild(grandchild)

	child.transformDirty = false
	grandchild.transformDirty = false
	parent.AddChild(child)
	if !child.transformDirty || !grandchild.transformDirty {
		t.Error("AddChild should dirty the whole subtree")
	}

	child.transformDirty = false
	grandchild.transformDirty = false
	parent.RemoveChild(child)
	if !child.transformDirty || !grandchild.transformDirty {
		t.Error("RemoveChild should dirty the whole subtree")
	}
}

func names(nodes []*Node) string {
	s := make([]string, len(nodes))
	for i, n := range nodes {
		s[i] = n.Name
	}
	return strings.Join(s, " ")
}
