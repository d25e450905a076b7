package axtree

// NodeData is the plain data form of one accessibility node. Snapshot files,
// the dump parser, and test fixtures build trees out of NodeData values;
// NewStatic adapts them to the Node interface.
type NodeData struct {
	Role       string     `json:"r"`             // role, e.g. "AXButton"
	Identifier string     `json:"id,omitempty"`  // accessibility identifier
	ClassName  string     `json:"cls,omitempty"` // implementing UI class
	Label      string     `json:"lbl,omitempty"` // visible label / title
	Children   []NodeData `json:"ch,omitempty"`  // children in native order
}

// staticNode adapts a NodeData tree to the Node interface. Its accessors
// never fail.
type staticNode struct {
	d *NodeData
}

// NewStatic wraps a NodeData tree in the Node interface.
func NewStatic(root *NodeData) Node {
	return &staticNode{d: root}
}

func (n *staticNode) Role() (string, error)       { return n.d.Role, nil }
func (n *staticNode) Identifier() (string, error) { return n.d.Identifier, nil }
func (n *staticNode) ClassName() (string, error)  { return n.d.ClassName, nil }
func (n *staticNode) Label() (string, error)      { return n.d.Label, nil }

func (n *staticNode) Children() ([]Node, error) {
	out := make([]Node, len(n.d.Children))
	for i := range n.d.Children {
		out[i] = &staticNode{d: &n.d.Children[i]}
	}
	return out, nil
}
