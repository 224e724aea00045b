// Package tree holds the editable tree representation of a case document.
//
// Nodes live in an arena owned by Model and are addressed by NodeID. Parent
// and child relationships are index links, so detaching a node never
// invalidates the IDs of other nodes.
package tree

import (
	"iter"
	"slices"

	"github.com/colonyops/caseedit/internal/core/value"
)

// NodeID is a stable handle to a node within one Model.
type NodeID int

// Root is the invisible container holding the top-level keys. It is always
// interior and never appears in walks or selections.
const Root NodeID = 0

const noParent NodeID = -1

type node struct {
	key      string
	text     string // display text, leaves only
	interior bool
	parent   NodeID
	children []NodeID
	selected bool
	expanded bool
}

// Model is the in-memory tree of one document.
type Model struct {
	nodes []node
}

// New returns an empty tree.
func New() *Model {
	return &Model{
		nodes: []node{{interior: true, parent: noParent, expanded: true}},
	}
}

// Build constructs a tree from root. Objects become interior nodes, every
// other value becomes a leaf holding its encoded display text. Key order is
// preserved and every node starts expanded and unselected.
func Build(root *value.Object) *Model {
	m := New()
	m.build(Root, root)
	return m
}

func (m *Model) build(parent NodeID, obj *value.Object) {
	for key, v := range obj.All() {
		if v.IsObject() {
			id := m.add(parent, key, "", true)
			m.build(id, v.Object())
			continue
		}
		m.add(parent, key, value.Encode(v), false)
	}
}

func (m *Model) add(parent NodeID, key, text string, interior bool) NodeID {
	id := NodeID(len(m.nodes))
	m.nodes = append(m.nodes, node{
		key:      key,
		text:     text,
		interior: interior,
		parent:   parent,
		expanded: true,
	})
	m.nodes[parent].children = append(m.nodes[parent].children, id)
	return id
}

// Flatten converts the tree back into an Object. Leaf text is decoded with
// value.Decode; interior nodes recurse. When two siblings share a key the
// later one wins and the first position is kept.
func (m *Model) Flatten() *value.Object {
	return m.flatten(Root)
}

func (m *Model) flatten(id NodeID) *value.Object {
	obj := value.NewObject()
	for _, child := range m.nodes[id].children {
		n := m.nodes[child]
		if n.interior {
			obj.Set(n.key, value.FromObject(m.flatten(child)))
			continue
		}
		obj.Set(n.key, value.Decode(n.text))
	}
	return obj
}

// Empty reports whether the tree has no top-level nodes.
func (m *Model) Empty() bool {
	return len(m.nodes[Root].children) == 0
}

// Len returns the number of nodes reachable from the root.
func (m *Model) Len() int {
	n := 0
	for range m.All() {
		n++
	}
	return n
}

// All yields every reachable node in pre-order.
func (m *Model) All() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		m.walk(Root, false, yield)
	}
}

// Visible yields reachable nodes in pre-order, skipping the descendants of
// collapsed nodes.
func (m *Model) Visible() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		m.walk(Root, true, yield)
	}
}

func (m *Model) walk(id NodeID, skipCollapsed bool, yield func(NodeID) bool) bool {
	for _, child := range m.nodes[id].children {
		if !yield(child) {
			return false
		}
		if skipCollapsed && !m.nodes[child].expanded {
			continue
		}
		if !m.walk(child, skipCollapsed, yield) {
			return false
		}
	}
	return true
}

// SelectedNodes returns every reachable node flagged selected, in pre-order.
// Selection is not inherited: a selected parent does not select its children.
func (m *Model) SelectedNodes() []NodeID {
	var out []NodeID
	for id := range m.All() {
		if m.nodes[id].selected {
			out = append(out, id)
		}
	}
	return out
}

// SetSelectedAll sets the selected flag on every reachable node.
func (m *Model) SetSelectedAll(flag bool) {
	for id := range m.All() {
		m.nodes[id].selected = flag
	}
}

// SetExpandedAll sets the expanded flag on every reachable node.
func (m *Model) SetExpandedAll(flag bool) {
	for id := range m.All() {
		m.nodes[id].expanded = flag
	}
}

func (m *Model) valid(id NodeID) bool {
	return id > Root && int(id) < len(m.nodes)
}

// Attached reports whether id is still reachable from the root.
func (m *Model) Attached(id NodeID) bool {
	if !m.valid(id) {
		return false
	}
	for cur := id; cur != Root; {
		p := m.nodes[cur].parent
		if p == noParent {
			return false
		}
		cur = p
	}
	return true
}

// Detach removes id from its parent's child list. The node and its subtree
// become unreachable. Returns false if id was already detached from its parent.
func (m *Model) Detach(id NodeID) bool {
	if !m.valid(id) {
		return false
	}
	p := m.nodes[id].parent
	if p == noParent {
		return false
	}

	siblings := m.nodes[p].children
	idx := slices.Index(siblings, id)
	if idx < 0 {
		return false
	}
	m.nodes[p].children = slices.Delete(siblings, idx, idx+1)
	m.nodes[id].parent = noParent
	return true
}

// AppendLeaf adds a leaf child under parent. A leaf parent drops its text
// and becomes interior.
func (m *Model) AppendLeaf(parent NodeID, key, text string) NodeID {
	p := &m.nodes[parent]
	if !p.interior {
		p.interior = true
		p.text = ""
	}
	return m.add(parent, key, text, false)
}

// Parent returns the parent of id. The second result is false for top-level
// and detached nodes.
func (m *Model) Parent(id NodeID) (NodeID, bool) {
	p := m.nodes[id].parent
	if p == noParent || p == Root {
		return p, false
	}
	return p, true
}

// Children returns the direct children of id.
func (m *Model) Children(id NodeID) []NodeID {
	return slices.Clone(m.nodes[id].children)
}

// Depth returns the number of ancestors of id below the root.
func (m *Model) Depth(id NodeID) int {
	d := 0
	for p := m.nodes[id].parent; p != Root && p != noParent; p = m.nodes[p].parent {
		d++
	}
	return d
}

func (m *Model) Key(id NodeID) string         { return m.nodes[id].key }
func (m *Model) SetKey(id NodeID, key string) { m.nodes[id].key = key }
func (m *Model) IsLeaf(id NodeID) bool        { return !m.nodes[id].interior }
func (m *Model) Selected(id NodeID) bool      { return m.nodes[id].selected }
func (m *Model) Expanded(id NodeID) bool      { return m.nodes[id].expanded }

// Text returns the display text of a leaf, or "" for interior nodes.
func (m *Model) Text(id NodeID) string { return m.nodes[id].text }

// SetText replaces the display text of a leaf. Interior nodes have no text
// and are left unchanged; the result reports whether the text was set.
func (m *Model) SetText(id NodeID, text string) bool {
	if m.nodes[id].interior {
		return false
	}
	m.nodes[id].text = text
	return true
}

func (m *Model) SetSelected(id NodeID, flag bool) { m.nodes[id].selected = flag }
func (m *Model) SetExpanded(id NodeID, flag bool) { m.nodes[id].expanded = flag }
