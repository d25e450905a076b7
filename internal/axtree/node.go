// Package axtree defines the accessibility-tree access contract: an opaque
// node handle exposing a role, a few string attributes, and ordered children,
// where every read may fail with a platform status. Live platform backends
// register through the Source hook; snapshot files provide static trees for
// authoring, testing, and offline queries.
package axtree

// Node is one node of an accessibility tree. Implementations wrap either a
// live platform handle or static snapshot data. Every accessor may fail,
// since live reads cross a process boundary; platform failures carry an
// *AccessError.
//
// Node handles are ephemeral: they are valid only for the duration of a
// single query and must not be retained across calls.
type Node interface {
	// Role returns the node's role, e.g. "AXButton". Roles are a closed
	// platform taxonomy, never free text.
	Role() (string, error)

	// Identifier returns the accessibility identifier, or "" when the node
	// has none.
	Identifier() (string, error)

	// ClassName returns the implementing UI class, or "".
	ClassName() (string, error)

	// Label returns the visible label or title, or "".
	Label() (string, error)

	// Children returns the node's children in native order. The slice is
	// empty for leaf nodes.
	Children() ([]Node, error)
}
