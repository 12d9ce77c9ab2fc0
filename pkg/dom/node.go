package dom

import (
	"github.com/go-sable/sable/pkg/refdata"
)

// NodeType is the structural descriptor of a node. The core never interprets
// it; the rendering collaborator maps it to layout boxes.
type NodeType int

const (
	// TypeNone marks an empty placeholder node.
	TypeNone NodeType = iota
	// TypeBody is the root node of a document.
	TypeBody
	// TypeDiv is a generic container node.
	TypeDiv
	// TypeText is a text-bearing node.
	TypeText
	// TypeImage is an image-bearing node.
	TypeImage
)

func (t NodeType) String() string {
	switch t {
	case TypeBody:
		return "body"
	case TypeDiv:
		return "div"
	case TypeText:
		return "text"
	case TypeImage:
		return "image"
	default:
		return "none"
	}
}

// StyleProperty is an opaque style descriptor attached to a node. The CSS
// cascade is resolved by the rendering collaborator; the core only carries
// the key/value pairs along.
type StyleProperty struct {
	Key   string
	Value string
}

// NodeID identifies a node within one built document tree. IDs are assigned
// by depth-first preorder when the tree is indexed and are stable for the
// lifetime of that tree only; a regenerated tree numbers its nodes afresh.
type NodeID int

// NodeIDNone marks the absence of a node.
const NodeIDNone NodeID = -1

// NodeData is the per-node payload: structural type, opaque content and
// style descriptors, the optional persistent dataset slot, and the callback
// attachments created while the tree was built.
type NodeData struct {
	nodeType  NodeType
	content   string
	styles    []StyleProperty
	dataset   *refdata.RefData
	callbacks []CallbackSpec
}

// Type returns the node's structural descriptor.
func (n *NodeData) Type() NodeType {
	return n.nodeType
}

// Content returns the node's opaque content string (text, image source).
func (n *NodeData) Content() string {
	return n.content
}

// Styles returns the node's style descriptors.
func (n *NodeData) Styles() []StyleProperty {
	return n.styles
}

// Dataset returns the node-local persistent data slot, or nil. The slot
// exists so widget-level code can stash per-instance state that survives
// redraw-only passes.
func (n *NodeData) Dataset() *refdata.RefData {
	return n.dataset
}

// Callbacks returns the callback attachments for this node.
func (n *NodeData) Callbacks() []CallbackSpec {
	return n.callbacks
}

// release drops every handle this node uniquely holds.
func (n *NodeData) release() {
	if n.dataset != nil {
		n.dataset.Drop()
		n.dataset = nil
	}
	for i := range n.callbacks {
		if n.callbacks[i].Data != nil {
			n.callbacks[i].Data.Drop()
			n.callbacks[i].Data = nil
		}
	}
	n.callbacks = nil
}
