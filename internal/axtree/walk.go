package axtree

import (
	"errors"
	"fmt"
)

// DefaultMaxDepth caps recursion over accessibility trees. Tree shape is
// untrusted input from another process; walks refuse to follow it past this
// many levels unless configured otherwise.
const DefaultMaxDepth = 128

// ErrTreeTooDeep reports a walk that exceeded its depth cap.
var ErrTreeTooDeep = errors.New("tree too deep")

// Capture copies the tree rooted at node into plain NodeData, reading every
// attribute and child list exactly once. Live node handles are only valid
// for a single call, so capturing is how a live tree becomes a snapshot the
// engine and the dump can revisit. maxDepth bounds recursion; a value <= 0
// selects DefaultMaxDepth.
func Capture(node Node, maxDepth int) (*NodeData, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return capture(node, 0, maxDepth)
}

func capture(node Node, depth, maxDepth int) (*NodeData, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("capture depth exceeds %d: %w", maxDepth, ErrTreeTooDeep)
	}

	role, err := node.Role()
	if err != nil {
		return nil, err
	}
	identifier, err := node.Identifier()
	if err != nil {
		return nil, err
	}
	className, err := node.ClassName()
	if err != nil {
		return nil, err
	}
	label, err := node.Label()
	if err != nil {
		return nil, err
	}

	data := &NodeData{
		Role:       role,
		Identifier: identifier,
		ClassName:  className,
		Label:      label,
	}

	children, err := node.Children()
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		cd, err := capture(c, depth+1, maxDepth)
		if err != nil {
			return nil, err
		}
		data.Children = append(data.Children, *cd)
	}
	return data, nil
}
