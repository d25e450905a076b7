// Package dump renders accessibility trees as indented, human-diffable text
// and re-parses that text into static trees. The dump is an authoring aid:
// capture a tree, read off roles and attributes, then write locator patterns
// against what is actually there. It never special-cases any app.
package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/axlocate/axlocate/internal/axtree"
)

// indentWidth is the number of spaces per depth level. Parse relies on it.
const indentWidth = 2

// Dump writes the tree rooted at root as indented text, one node per line,
// children in native order. maxDepth bounds recursion; <= 0 selects
// axtree.DefaultMaxDepth. Exceeding the bound fails with
// axtree.ErrTreeTooDeep.
func Dump(w io.Writer, root axtree.Node, maxDepth int) error {
	if maxDepth <= 0 {
		maxDepth = axtree.DefaultMaxDepth
	}
	return writeNode(w, root, 0, maxDepth)
}

// String renders the tree to a string. Convenience wrapper over Dump.
func String(root axtree.Node, maxDepth int) (string, error) {
	var b strings.Builder
	if err := Dump(&b, root, maxDepth); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Line renders just the given node, without its children, in the same
// one-line form Dump uses. Results and diagnostics use it to show a single
// resolved node compactly.
func Line(node axtree.Node) (string, error) {
	role, err := node.Role()
	if err != nil {
		return "", err
	}
	identifier, err := node.Identifier()
	if err != nil {
		return "", err
	}
	className, err := node.ClassName()
	if err != nil {
		return "", err
	}
	label, err := node.Label()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(role)
	if identifier != "" {
		fmt.Fprintf(&b, " identifier=%q", identifier)
	}
	if className != "" {
		fmt.Fprintf(&b, " class=%q", className)
	}
	if label != "" {
		fmt.Fprintf(&b, " label=%q", label)
	}
	return b.String(), nil
}

// writeNode emits one line for node and recurses over its children. A line
// is the role followed by the present attributes, each quoted:
//
//	AXTextField identifier="search" class="UISearchField" label="Search"
//
// Absent attributes are omitted entirely, so a leaf with only a role is a
// bare role token and a childless node contributes no further lines.
func writeNode(w io.Writer, node axtree.Node, depth, maxDepth int) error {
	if depth > maxDepth {
		return fmt.Errorf("dump depth exceeds %d: %w", maxDepth, axtree.ErrTreeTooDeep)
	}

	line, err := Line(node)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", depth*indentWidth), line); err != nil {
		return err
	}

	children, err := node.Children()
	if err != nil {
		return err
	}
	for _, c := range children {
		if err := writeNode(w, c, depth+1, maxDepth); err != nil {
			return err
		}
	}
	return nil
}
