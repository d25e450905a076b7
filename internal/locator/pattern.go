// Package locator implements the declarative UI-element locator engine: a
// configuration model mapping app names to named locator patterns, and a
// recursive search that resolves a pattern to a concrete node in an
// accessibility tree.
package locator

import (
	"errors"
	"fmt"
	"regexp"
)

// Pattern describes what one logical UI element looks like. A pattern is
// data, not state: build it, Validate it once, then treat it as immutable.
// Nested Children turn a pattern into a composite query ("the first search
// result row, then within it the play button").
type Pattern struct {
	// Role is required and always compared by exact equality against the
	// node's role. Roles are a closed platform taxonomy, not free text, so
	// MatchType never applies to them.
	Role string

	// Identifier, ClassName, and Label are optional constraints. An empty
	// field imposes none; a present field must match the node's attribute
	// under Match.
	Identifier string
	ClassName  string
	Label      string

	// Match applies uniformly to Identifier, ClassName, and Label. The
	// zero value behaves as MatchContains.
	Match MatchType

	// Index selects one candidate from the ordered match list: >= 0 counts
	// from the front, < 0 from the back (-1 is the last). nil means "first
	// match", which unlike an explicit 0 is not an error when the list is
	// empty. Only the pattern the query names consults Index; a nested
	// child pattern always contributes its first result.
	Index *int

	// Children are nested sub-patterns. When present, a node matching this
	// pattern is never itself a result; instead each child pattern is
	// resolved within the matched node's subtree and those results become
	// the candidates.
	Children []*Pattern

	reIdentifier *regexp.Regexp
	reClassName  *regexp.Regexp
	reLabel      *regexp.Regexp
}

// Validate checks the pattern tree rooted here, fills in the default
// MatchType, and compiles regexes. It is part of construction: the model
// refuses patterns that fail it, and matching assumes it has run.
func (p *Pattern) Validate() error {
	if p.Role == "" {
		return errors.New("pattern role is required")
	}
	if p.Match == "" {
		p.Match = MatchContains
	}
	switch p.Match {
	case MatchExact, MatchContains, MatchStartsWith, MatchEndsWith, MatchRegex:
	default:
		return fmt.Errorf("unknown match type %q", p.Match)
	}

	if p.Match == MatchRegex {
		var err error
		if p.Identifier != "" {
			if p.reIdentifier, err = regexp.Compile(p.Identifier); err != nil {
				return fmt.Errorf("identifier regex %q: %w", p.Identifier, err)
			}
		}
		if p.ClassName != "" {
			if p.reClassName, err = regexp.Compile(p.ClassName); err != nil {
				return fmt.Errorf("class regex %q: %w", p.ClassName, err)
			}
		}
		if p.Label != "" {
			if p.reLabel, err = regexp.Compile(p.Label); err != nil {
				return fmt.Errorf("label regex %q: %w", p.Label, err)
			}
		}
	}

	for i, child := range p.Children {
		if child == nil {
			return fmt.Errorf("child pattern %d is nil", i)
		}
		if err := child.Validate(); err != nil {
			return fmt.Errorf("child pattern %d (%s): %w", i, child.Role, err)
		}
	}
	return nil
}

// String renders a compact single-line summary, used in listings and
// diagnostics.
func (p *Pattern) String() string {
	s := p.Role
	if p.Identifier != "" {
		s += fmt.Sprintf(" identifier~%q", p.Identifier)
	}
	if p.ClassName != "" {
		s += fmt.Sprintf(" class~%q", p.ClassName)
	}
	if p.Label != "" {
		s += fmt.Sprintf(" label~%q", p.Label)
	}
	if p.Match != "" && p.Match != MatchContains {
		s += fmt.Sprintf(" (%s)", p.Match)
	}
	if p.Index != nil {
		s += fmt.Sprintf(" [%d]", *p.Index)
	}
	if len(p.Children) > 0 {
		s += fmt.Sprintf(" +%d nested", len(p.Children))
	}
	return s
}
