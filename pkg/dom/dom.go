// Package dom implements the retained document tree: an ordered tree of
// nodes carrying opaque structural and style descriptors, optional
// node-local dataset handles, and callback attachments.
//
// Trees are produced wholesale by a render function, persist across frames
// until a callback signals regeneration, and are then replaced in full. No
// diffing contract exists: node identity is stable within one built tree and
// deliberately not across regenerations.
package dom

import (
	"github.com/go-sable/sable/pkg/events"
	"github.com/go-sable/sable/pkg/refdata"
)

// Dom is a document subtree: one node plus its ordered children. Subtrees
// are always freshly built values, never references back into an existing
// tree, so the structure is acyclic by construction.
type Dom struct {
	root     NodeData
	children []*Dom
}

// NewDom creates a single-node tree of the given type.
func NewDom(t NodeType) *Dom {
	return &Dom{root: NodeData{nodeType: t}}
}

// Default returns the empty tree.
func Default() *Dom {
	return NewDom(TypeNone)
}

// Body creates a document root node.
func Body() *Dom {
	return NewDom(TypeBody)
}

// Div creates a generic container node.
func Div() *Dom {
	return NewDom(TypeDiv)
}

// Text creates a text node with the given content.
func Text(content string) *Dom {
	d := NewDom(TypeText)
	d.root.content = content
	return d
}

// Image creates an image node with the given source descriptor.
func Image(source string) *Dom {
	d := NewDom(TypeImage)
	d.root.content = source
	return d
}

// IsEmpty reports whether the tree carries nothing: no structure, no
// content, no styles, no dataset, no callbacks, no children. A decorated
// TypeNone node is not empty; Append keeps it.
func (d *Dom) IsEmpty() bool {
	return d == nil || (d.root.nodeType == TypeNone &&
		d.root.content == "" &&
		len(d.root.styles) == 0 &&
		d.root.dataset == nil &&
		len(d.root.callbacks) == 0 &&
		len(d.children) == 0)
}

// Append adds subtree as the new last child of the tree's root and returns
// the combined tree. Appending an empty subtree is a no-op. Child order is
// preserved: d.Append(a).Append(b) has children [..d's children.., a, b].
func (d *Dom) Append(subtree *Dom) *Dom {
	if subtree.IsEmpty() {
		return d
	}
	d.children = append(d.children, subtree)
	return d
}

// WithChild is Append under the builder-style name.
func (d *Dom) WithChild(subtree *Dom) *Dom {
	return d.Append(subtree)
}

// WithChildren appends each subtree in order.
func (d *Dom) WithChildren(subtrees ...*Dom) *Dom {
	for _, subtree := range subtrees {
		d.Append(subtree)
	}
	return d
}

// WithDataset sets the root node's persistent data slot. The tree takes
// ownership of the handle and drops it when the tree is released.
func (d *Dom) WithDataset(data *refdata.RefData) *Dom {
	d.root.dataset = data
	return d
}

// WithStyle attaches an opaque style property to the root node.
func (d *Dom) WithStyle(key, value string) *Dom {
	d.root.styles = append(d.root.styles, StyleProperty{Key: key, Value: value})
	return d
}

// WithCallback attaches an event callback to the root node. The tree takes
// ownership of the captured handle and drops it when the tree is released.
func (d *Dom) WithCallback(kind events.Kind, fn Callback, data *refdata.RefData) *Dom {
	d.root.callbacks = append(d.root.callbacks, CallbackSpec{Event: kind, Fn: fn, Data: data})
	return d
}

// Root returns the root node's data.
func (d *Dom) Root() *NodeData {
	return &d.root
}

// Children returns the ordered child subtrees.
func (d *Dom) Children() []*Dom {
	return d.children
}

// NodeCount returns the number of nodes in the tree.
func (d *Dom) NodeCount() int {
	if d == nil {
		return 0
	}
	count := 1
	for _, child := range d.children {
		count += child.NodeCount()
	}
	return count
}

// Walk visits every node in depth-first preorder. The id passed to visit is
// the node's stable identity within this tree (root is 0); depth is the
// distance from the root. Returning false stops the walk.
func (d *Dom) Walk(visit func(id NodeID, node *NodeData, depth int) bool) {
	if d == nil {
		return
	}
	next := NodeID(0)
	d.walk(visit, &next, 0)
}

func (d *Dom) walk(visit func(NodeID, *NodeData, int) bool, next *NodeID, depth int) bool {
	id := *next
	*next = id + 1
	if !visit(id, &d.root, depth) {
		return false
	}
	for _, child := range d.children {
		if !child.walk(visit, next, depth+1) {
			return false
		}
	}
	return true
}

// Node returns the node with the given id, or nil if the id is out of range.
func (d *Dom) Node(id NodeID) *NodeData {
	var found *NodeData
	d.Walk(func(nid NodeID, node *NodeData, _ int) bool {
		if nid == id {
			found = node
			return false
		}
		return true
	})
	return found
}

// Release drops every dataset and callback handle the tree uniquely holds.
// Called by the controller when the tree is superseded.
func (d *Dom) Release() {
	if d == nil {
		return
	}
	d.root.release()
	for _, child := range d.children {
		child.Release()
	}
	d.children = nil
}
