package axtree

// NodeInfo is a flattened description of a single node, for command results
// and tool output. Unlike NodeData it carries no subtree, only the child
// count, and its tags are full words rather than the snapshot short forms.
type NodeInfo struct {
	Role       string `json:"role"                 yaml:"role"`
	Identifier string `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	ClassName  string `json:"class,omitempty"      yaml:"class,omitempty"`
	Label      string `json:"label,omitempty"      yaml:"label,omitempty"`
	Children   int    `json:"children"             yaml:"children"`
}

// Describe reads every attribute of node into a NodeInfo.
func Describe(node Node) (NodeInfo, error) {
	role, err := node.Role()
	if err != nil {
		return NodeInfo{}, err
	}
	identifier, err := node.Identifier()
	if err != nil {
		return NodeInfo{}, err
	}
	className, err := node.ClassName()
	if err != nil {
		return NodeInfo{}, err
	}
	label, err := node.Label()
	if err != nil {
		return NodeInfo{}, err
	}
	children, err := node.Children()
	if err != nil {
		return NodeInfo{}, err
	}
	return NodeInfo{
		Role:       role,
		Identifier: identifier,
		ClassName:  className,
		Label:      label,
		Children:   len(children),
	}, nil
}
