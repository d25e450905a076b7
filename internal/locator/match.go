package locator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/axlocate/axlocate/internal/axtree"
)

// MatchType selects how a pattern's optional string fields are compared
// against node attributes. Roles are exempt: a role is always compared by
// exact equality, whatever the pattern's MatchType.
type MatchType string

const (
	// MatchExact accepts only full-string equality.
	MatchExact MatchType = "exact"
	// MatchContains accepts any substring occurrence. This is the default.
	MatchContains MatchType = "contains"
	// MatchStartsWith accepts a prefix occurrence.
	MatchStartsWith MatchType = "startswith"
	// MatchEndsWith accepts a suffix occurrence.
	MatchEndsWith MatchType = "endswith"
	// MatchRegex compiles the pattern field and searches the attribute for
	// a match anywhere (a substring search, not a full match).
	MatchRegex MatchType = "regex"
)

// ParseMatchType maps a config string to a MatchType, case-insensitively.
// Empty input selects the default, MatchContains.
func ParseMatchType(s string) (MatchType, error) {
	switch strings.ToLower(s) {
	case "":
		return MatchContains, nil
	case "exact":
		return MatchExact, nil
	case "contains":
		return MatchContains, nil
	case "startswith":
		return MatchStartsWith, nil
	case "endswith":
		return MatchEndsWith, nil
	case "regex":
		return MatchRegex, nil
	default:
		return "", fmt.Errorf("unknown match type %q (want exact, contains, startswith, endswith, or regex)", s)
	}
}

// matches reports whether node satisfies the pattern's structural
// constraints: role equality plus every present optional field compared
// under the pattern's MatchType. A node lacking an attribute a present
// field constrains is a non-match, not an error; only platform read
// failures surface as errors.
func (p *Pattern) matches(node axtree.Node) (bool, error) {
	role, err := node.Role()
	if err != nil {
		return false, err
	}
	if role != p.Role {
		return false, nil
	}

	if p.Identifier != "" {
		value, err := node.Identifier()
		if err != nil {
			return false, err
		}
		ok, err := p.matchValue(p.Identifier, value, p.reIdentifier)
		if err != nil || !ok {
			return false, err
		}
	}
	if p.ClassName != "" {
		value, err := node.ClassName()
		if err != nil {
			return false, err
		}
		ok, err := p.matchValue(p.ClassName, value, p.reClassName)
		if err != nil || !ok {
			return false, err
		}
	}
	if p.Label != "" {
		value, err := node.Label()
		if err != nil {
			return false, err
		}
		ok, err := p.matchValue(p.Label, value, p.reLabel)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// matchValue compares one attribute value against one pattern field. An
// empty value means the node lacks the attribute, which never satisfies a
// present constraint (so a regex like "x*" cannot match an absent field).
func (p *Pattern) matchValue(want, value string, re *regexp.Regexp) (bool, error) {
	if value == "" {
		return false, nil
	}
	switch p.Match {
	case MatchExact:
		return value == want, nil
	case MatchContains, "":
		return strings.Contains(value, want), nil
	case MatchStartsWith:
		return strings.HasPrefix(value, want), nil
	case MatchEndsWith:
		return strings.HasSuffix(value, want), nil
	case MatchRegex:
		if re == nil {
			// Hand-built pattern that skipped Validate; compile on the spot.
			var err error
			re, err = regexp.Compile(want)
			if err != nil {
				return false, fmt.Errorf("compile regex %q: %w", want, err)
			}
		}
		return re.MatchString(value), nil
	default:
		return false, fmt.Errorf("unknown match type %q", p.Match)
	}
}
