package locator

import (
	"fmt"

	"github.com/axlocate/axlocate/internal/axtree"
)

// Engine resolves logical element names to concrete accessibility nodes.
//
// The engine is synchronous and reentrant. It holds no locks and no mutable
// state beyond the registry handle, so queries against different roots may
// run concurrently with no coordination. Serializing reads of one live tree,
// and any timeout or cancellation around a blocking platform read, are the
// caller's responsibility.
type Engine struct {
	registry *Registry
	maxDepth int
}

// NewEngine builds an engine over the given registry. maxDepth bounds tree
// recursion; a value <= 0 selects axtree.DefaultMaxDepth.
func NewEngine(registry *Registry, maxDepth int) *Engine {
	if maxDepth <= 0 {
		maxDepth = axtree.DefaultMaxDepth
	}
	return &Engine{registry: registry, maxDepth: maxDepth}
}

// Resolve finds the configured element of app under root.
//
// A nil node with a nil error means the pattern is well formed but nothing
// in the tree matches; that is an expected outcome (the control may not
// exist in this app version yet), not a failure. Errors are classified:
// ErrAppConfigNotFound, ErrElementPathNotFound, ErrIndexOutOfRange,
// axtree.ErrTreeTooDeep, or a platform *axtree.AccessError passed through
// unchanged. The engine never retries; retry policy belongs to the caller.
//
// The search starts at root's children: the root itself is never a
// candidate.
func (e *Engine) Resolve(app, element string, root axtree.Node) (axtree.Node, error) {
	pattern, err := e.registry.Current().Pattern(app, element)
	if err != nil {
		return nil, err
	}
	candidates, err := e.search(pattern, root, 0)
	if err != nil {
		return nil, err
	}
	return pickCandidate(pattern, candidates, element)
}

// ResolveAll returns every node matching the configured element, in
// document order, before index selection. Authoring and validation tooling
// uses it to show which occurrence an index would pick.
func (e *Engine) ResolveAll(app, element string, root axtree.Node) ([]axtree.Node, error) {
	pattern, err := e.registry.Current().Pattern(app, element)
	if err != nil {
		return nil, err
	}
	return e.search(pattern, root, 0)
}

// ResolvePattern runs an ad-hoc pattern that is not registered in the
// model. The pattern must have been validated.
func (e *Engine) ResolvePattern(pattern *Pattern, root axtree.Node) (axtree.Node, error) {
	candidates, err := e.search(pattern, root, 0)
	if err != nil {
		return nil, err
	}
	return pickCandidate(pattern, candidates, pattern.Role)
}

// pickCandidate applies the pattern's index rule to the ordered candidate
// list. No index means first-or-nothing; an explicit index out of range is
// an error even when the list is empty, distinguishing a structural absence
// from an out-of-bounds request.
func pickCandidate(pattern *Pattern, candidates []axtree.Node, element string) (axtree.Node, error) {
	if pattern.Index == nil {
		if len(candidates) == 0 {
			return nil, nil
		}
		return candidates[0], nil
	}
	idx := *pattern.Index
	if idx < 0 {
		idx += len(candidates)
	}
	if idx < 0 || idx >= len(candidates) {
		return nil, fmt.Errorf("element %q: index %d with %d candidates: %w",
			element, *pattern.Index, len(candidates), ErrIndexOutOfRange)
	}
	return candidates[idx], nil
}

// search collects, in document order, every node below node that satisfies
// pattern.
//
// The walk is deliberately not pruned at a match: after a node matches, its
// subtree is still searched for deeper occurrences of the same pattern, so
// an index can address the deepest or rightmost occurrence in UI trees
// whose nesting shifts across app versions. The cost is revisiting subtrees,
// which can approach quadratic on pathological trees; that is an accepted
// limit of the design, not something to optimize away.
//
// When pattern has nested children, a structurally matching node is only
// provisional: the node itself is never appended, and each child pattern
// contributes the first node it resolves to within the matched subtree.
func (e *Engine) search(pattern *Pattern, node axtree.Node, depth int) ([]axtree.Node, error) {
	// Same fencepost as Capture and the dump: a node at exactly maxDepth is
	// still visited, so one configured cap admits the same trees everywhere.
	if depth > e.maxDepth {
		return nil, fmt.Errorf("search depth exceeds %d: %w", e.maxDepth, axtree.ErrTreeTooDeep)
	}

	children, err := node.Children()
	if err != nil {
		return nil, err
	}

	var candidates []axtree.Node
	for _, c := range children {
		ok, err := pattern.matches(c)
		if err != nil {
			return nil, err
		}
		if ok {
			if len(pattern.Children) == 0 {
				candidates = append(candidates, c)
			} else {
				for _, sub := range pattern.Children {
					found, err := e.search(sub, c, depth+1)
					if err != nil {
						return nil, err
					}
					if len(found) > 0 {
						candidates = append(candidates, found[0])
					}
				}
			}
		}

		deeper, err := e.search(pattern, c, depth+1)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, deeper...)
	}
	return candidates, nil
}
