package dump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/axlocate/axlocate/internal/axtree"
)

// parsedLine is one dump line reduced to its depth and attributes.
type parsedLine struct {
	depth int
	data  axtree.NodeData
}

// Parse reads text produced by Dump back into a static tree. It is an
// informal parser for authoring round trips, not a general format: two
// spaces per level, one node per line, blank lines ignored.
func Parse(r io.Reader) (*axtree.NodeData, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errors.New("empty dump")
	}
	if lines[0].depth != 0 {
		return nil, errors.New("first node must not be indented")
	}

	root := lines[0].data
	children, next, err := buildNodes(lines, 1, 1)
	if err != nil {
		return nil, err
	}
	if next != len(lines) {
		return nil, fmt.Errorf("node %d: second root node; a dump has exactly one", next+1)
	}
	root.Children = children
	return &root, nil
}

// ParseString parses a dump held in a string.
func ParseString(s string) (*axtree.NodeData, error) {
	return Parse(strings.NewReader(s))
}

func readLines(r io.Reader) ([]parsedLine, error) {
	var lines []parsedLine
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		indent := len(raw) - len(strings.TrimLeft(raw, " "))
		if indent%indentWidth != 0 {
			return nil, fmt.Errorf("line %d: indentation must be a multiple of %d spaces", lineNo, indentWidth)
		}
		data, err := parseLine(strings.TrimLeft(raw, " "))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		lines = append(lines, parsedLine{depth: indent / indentWidth, data: data})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}
	return lines, nil
}

// buildNodes consumes consecutive lines at exactly depth, attaching each
// line's deeper successors as its children, and returns the resulting
// sibling list along with the position of the first unconsumed line.
func buildNodes(lines []parsedLine, pos, depth int) ([]axtree.NodeData, int, error) {
	var out []axtree.NodeData
	for pos < len(lines) {
		line := lines[pos]
		if line.depth < depth {
			break
		}
		if line.depth > depth {
			return nil, 0, fmt.Errorf("node %d: depth jumps from %d to %d", pos+1, depth-1, line.depth)
		}
		node := line.data
		children, next, err := buildNodes(lines, pos+1, depth+1)
		if err != nil {
			return nil, 0, err
		}
		node.Children = children
		out = append(out, node)
		pos = next
	}
	return out, pos, nil
}

// parseLine splits a bare node line, e.g.
//
//	AXTextField identifier="search" label="Search songs"
//
// into its role and attributes. Values are Go-quoted, so labels may contain
// spaces, quotes, and newlines.
func parseLine(s string) (axtree.NodeData, error) {
	role := s
	rest := ""
	if i := strings.IndexByte(s, ' '); i >= 0 {
		role, rest = s[:i], strings.TrimSpace(s[i+1:])
	}
	if role == "" {
		return axtree.NodeData{}, errors.New("missing role")
	}

	node := axtree.NodeData{Role: role}
	for rest != "" {
		eq := strings.IndexByte(rest, '=')
		if eq < 0 {
			return axtree.NodeData{}, fmt.Errorf("malformed attribute %q", rest)
		}
		key := rest[:eq]
		value, remainder, err := unquoteFront(rest[eq+1:])
		if err != nil {
			return axtree.NodeData{}, fmt.Errorf("attribute %q: %w", key, err)
		}
		switch key {
		case "identifier":
			node.Identifier = value
		case "class":
			node.ClassName = value
		case "label":
			node.Label = value
		default:
			return axtree.NodeData{}, fmt.Errorf("unknown attribute %q", key)
		}
		rest = strings.TrimSpace(remainder)
	}
	return node, nil
}

// unquoteFront strips one Go-quoted string from the front of s.
func unquoteFront(s string) (value, rest string, err error) {
	quoted, err := strconv.QuotedPrefix(s)
	if err != nil {
		return "", "", fmt.Errorf("malformed quoted value at %q", s)
	}
	value, err = strconv.Unquote(quoted)
	if err != nil {
		return "", "", err
	}
	return value, s[len(quoted):], nil
}
