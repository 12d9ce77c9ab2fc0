package dom

import (
	"testing"

	"github.com/go-sable/sable/pkg/events"
	"github.com/go-sable/sable/pkg/refdata"
)

type nodeState struct {
	Value int
}

func TestAppendOrdering(t *testing.T) {
	a := Text("a")
	b := Text("b")
	tree := Body().Append(Text("existing"))

	combined := tree.Append(a).Append(b)

	children := combined.Children()
	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}
	if children[1] != a || children[2] != b {
		t.Error("append did not preserve [..existing.., a, b] order")
	}
}

func TestAppendEmptyIsNoOp(t *testing.T) {
	tree := Body().Append(Text("child"))

	tree.Append(Default())
	tree.Append(nil)

	if len(tree.Children()) != 1 {
		t.Errorf("appending empty subtrees changed the tree: %d children", len(tree.Children()))
	}
}

func TestNodeCount(t *testing.T) {
	tree := Body().
		Append(Div().Append(Text("x")).Append(Text("y"))).
		Append(Text("z"))

	if got := tree.NodeCount(); got != 5 {
		t.Errorf("expected 5 nodes, got %d", got)
	}
}

func TestWalkPreorderIDs(t *testing.T) {
	// body(0) -> div(1) -> text(2), text(3); text(4)
	tree := Body().
		Append(Div().Append(Text("x")).Append(Text("y"))).
		Append(Text("z"))

	var order []NodeID
	var types []NodeType
	tree.Walk(func(id NodeID, node *NodeData, depth int) bool {
		order = append(order, id)
		types = append(types, node.Type())
		return true
	})

	for i, id := range order {
		if id != NodeID(i) {
			t.Fatalf("expected sequential preorder ids, got %v", order)
		}
	}
	want := []NodeType{TypeBody, TypeDiv, TypeText, TypeText, TypeText}
	for i, typ := range want {
		if types[i] != typ {
			t.Errorf("node %d: expected %v, got %v", i, typ, types[i])
		}
	}
}

func TestNodeLookup(t *testing.T) {
	tree := Body().Append(Div()).Append(Text("z"))

	if node := tree.Node(1); node == nil || node.Type() != TypeDiv {
		t.Error("Node(1) did not resolve the div")
	}
	if node := tree.Node(99); node != nil {
		t.Error("out-of-range id should resolve to nil")
	}
}

func TestReleaseDropsDatasetAndCallbackHandles(t *testing.T) {
	destroyed := 0
	dataset := refdata.PackWithDestructor(nodeState{Value: 1}, func(*nodeState) { destroyed++ })
	captured := refdata.PackWithDestructor(nodeState{Value: 2}, func(*nodeState) { destroyed++ })

	cb := func(ctx *CallbackContext) events.Update { return events.DoNothing }
	tree := Body().
		Append(Div().WithDataset(dataset)).
		Append(Div().WithCallback(events.KindMouseDown, cb, captured))

	tree.Release()

	if destroyed != 2 {
		t.Errorf("expected both handles destroyed on release, got %d", destroyed)
	}
}

func TestReleaseSharedHandleSurvives(t *testing.T) {
	destroyed := 0
	shared := refdata.PackWithDestructor(nodeState{}, func(*nodeState) { destroyed++ })

	tree := Body().Append(Div().WithDataset(shared.Clone()))
	tree.Release()

	// The application still holds a clone; the dataset drop must not
	// destroy the value.
	if destroyed != 0 {
		t.Fatal("release destroyed a handle the application still holds")
	}
	shared.Drop()
	if destroyed != 1 {
		t.Errorf("expected destructor after final drop, ran %d times", destroyed)
	}
}

func TestBuilderAttachments(t *testing.T) {
	data := refdata.Pack(nodeState{})
	cb := func(ctx *CallbackContext) events.Update { return events.RefreshPaint }

	tree := Div().
		WithStyle("width", "100px").
		WithStyle("color", "red").
		WithCallback(events.KindMouseOver, cb, data)

	root := tree.Root()
	if len(root.Styles()) != 2 {
		t.Errorf("expected 2 styles, got %d", len(root.Styles()))
	}
	if len(root.Callbacks()) != 1 {
		t.Fatalf("expected 1 callback, got %d", len(root.Callbacks()))
	}
	if root.Callbacks()[0].Event != events.KindMouseOver {
		t.Error("callback registered for wrong event kind")
	}
}

func TestIsEmpty(t *testing.T) {
	if !Default().IsEmpty() {
		t.Error("Default() should be empty")
	}
	if Body().IsEmpty() {
		t.Error("Body() should not be empty")
	}
	if Default().Append(Text("x")).IsEmpty() {
		t.Error("tree with children should not be empty")
	}
	if Default().WithStyle("color", "red").IsEmpty() {
		t.Error("styled node should not be empty")
	}
}

func TestAppendKeepsDecoratedPlaceholder(t *testing.T) {
	tree := Body().Append(Default().WithStyle("width", "1px"))
	if len(tree.Children()) != 1 {
		t.Fatalf("styled placeholder was discarded: %d children", len(tree.Children()))
	}
	if len(tree.Children()[0].Root().Styles()) != 1 {
		t.Error("appended placeholder lost its style")
	}
}
