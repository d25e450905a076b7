package dump

import (
	"errors"
	"strings"
	"testing"

	"github.com/axlocate/axlocate/internal/axtree"
)

// buildLibraryTree returns the fixture:
//
//	AXWindow "Library"
//	├── AXButton id=play "Play"
//	├── AXGroup
//	│   ├── AXTextField id=search cls=UISearchField
//	│   └── AXStaticText "No results"
//	└── AXButton "Stop"
func buildLibraryTree() *axtree.NodeData {
	return &axtree.NodeData{
		Role:  "AXWindow",
		Label: "Library",
		Children: []axtree.NodeData{
			{Role: "AXButton", Identifier: "play", Label: "Play"},
			{Role: "AXGroup", Children: []axtree.NodeData{
				{Role: "AXTextField", Identifier: "search", ClassName: "UISearchField"},
				{Role: "AXStaticText", Label: "No results"},
			}},
			{Role: "AXButton", Label: "Stop"},
		},
	}
}

func TestDumpLeafHasNoChildrenSection(t *testing.T) {
	leaf := axtree.NewStatic(&axtree.NodeData{Role: "AXButton", Label: "Play"})

	out, err := String(leaf, 0)
	if err != nil {
		t.Fatalf("String: unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one line for a leaf, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "AXButton") {
		t.Errorf("expected the role first, got %q", lines[0])
	}
	if strings.HasPrefix(lines[0], " ") {
		t.Errorf("root line must not be indented, got %q", lines[0])
	}
}

func TestDumpPreservesChildOrderAndIndentation(t *testing.T) {
	out, err := String(axtree.NewStatic(buildLibraryTree()), 0)
	if err != nil {
		t.Fatalf("String: unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	want := []struct {
		indent int
		prefix string
	}{
		{0, "AXWindow"},
		{2, "AXButton"},
		{2, "AXGroup"},
		{4, "AXTextField"},
		{4, "AXStaticText"},
		{2, "AXButton"},
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(want), len(lines), out)
	}
	for i, w := range want {
		trimmed := strings.TrimLeft(lines[i], " ")
		indent := len(lines[i]) - len(trimmed)
		if indent != w.indent {
			t.Errorf("line %d: expected indent %d, got %d (%q)", i, w.indent, indent, lines[i])
		}
		if !strings.HasPrefix(trimmed, w.prefix) {
			t.Errorf("line %d: expected role %s, got %q", i, w.prefix, lines[i])
		}
	}
}

func TestDumpOmitsAbsentAttributes(t *testing.T) {
	out, err := String(axtree.NewStatic(buildLibraryTree()), 0)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, `identifier=""`) || strings.Contains(out, `label=""`) {
		t.Errorf("expected absent attributes to be omitted entirely:\n%s", out)
	}
	if !strings.Contains(out, `identifier="search" class="UISearchField"`) {
		t.Errorf("expected present attributes in role-identifier-class-label order:\n%s", out)
	}
}

func TestDumpParseRoundTripPreservesOrder(t *testing.T) {
	original := buildLibraryTree()

	text, err := String(axtree.NewStatic(original), 0)
	if err != nil {
		t.Fatalf("String: unexpected error: %v", err)
	}

	reparsed, err := ParseString(text)
	if err != nil {
		t.Fatalf("ParseString: unexpected error: %v", err)
	}

	// Re-dumping the reparsed tree must reproduce the text byte for byte,
	// which pins both attribute fidelity and child order.
	again, err := String(axtree.NewStatic(reparsed), 0)
	if err != nil {
		t.Fatalf("re-dump: unexpected error: %v", err)
	}
	if again != text {
		t.Errorf("round trip changed the dump:\nfirst:\n%s\nsecond:\n%s", text, again)
	}

	if len(reparsed.Children) != 3 {
		t.Fatalf("expected 3 root children, got %d", len(reparsed.Children))
	}
	wantOrder := []string{"AXButton", "AXGroup", "AXButton"}
	for i, c := range reparsed.Children {
		if c.Role != wantOrder[i] {
			t.Errorf("child %d: expected role %s, got %s", i, wantOrder[i], c.Role)
		}
	}
	if reparsed.Children[1].Children[0].Identifier != "search" {
		t.Errorf("nested identifier lost: got %q", reparsed.Children[1].Children[0].Identifier)
	}
}

func TestDumpQuotesAwkwardLabels(t *testing.T) {
	tree := &axtree.NodeData{
		Role:  "AXWindow",
		Label: `say "hello"` + "\nsecond line",
	}
	text, err := String(axtree.NewStatic(tree), 0)
	if err != nil {
		t.Fatal(err)
	}
	reparsed, err := ParseString(text)
	if err != nil {
		t.Fatalf("ParseString: unexpected error: %v", err)
	}
	if reparsed.Label != tree.Label {
		t.Errorf("label mangled in round trip: %q != %q", reparsed.Label, tree.Label)
	}
}

func TestDumpDepthCap(t *testing.T) {
	deep := &axtree.NodeData{Role: "AXWindow"}
	cur := deep
	for i := 0; i < 10; i++ {
		cur.Children = []axtree.NodeData{{Role: "AXGroup"}}
		cur = &cur.Children[0]
	}

	var b strings.Builder
	err := Dump(&b, axtree.NewStatic(deep), 4)
	if !errors.Is(err, axtree.ErrTreeTooDeep) {
		t.Errorf("expected ErrTreeTooDeep with a cap of 4, got %v", err)
	}

	b.Reset()
	if err := Dump(&b, axtree.NewStatic(deep), 0); err != nil {
		t.Errorf("default cap: unexpected error: %v", err)
	}
}

func TestLineRendersOneNodeWithoutChildren(t *testing.T) {
	node := axtree.NewStatic(&axtree.NodeData{
		Role:       "AXTextField",
		Identifier: "search",
		ClassName:  "UISearchField",
		Children:   []axtree.NodeData{{Role: "AXButton"}},
	})
	line, err := Line(node)
	if err != nil {
		t.Fatalf("Line: unexpected error: %v", err)
	}
	want := `AXTextField identifier="search" class="UISearchField"`
	if line != want {
		t.Errorf("expected %q, got %q", want, line)
	}
	if strings.Contains(line, "\n") || strings.Contains(line, "AXButton") {
		t.Errorf("Line must not include children: %q", line)
	}
}

func TestParseRejectsMalformedDumps(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"indented root", "  AXWindow"},
		{"odd indent", "AXWindow\n AXButton"},
		{"depth jump", "AXWindow\n    AXButton"},
		{"two roots", "AXWindow\nAXWindow"},
		{"bad attribute", "AXWindow color=\"red\""},
		{"unquoted value", "AXWindow label=Play"},
		{"dangling attribute", "AXWindow label"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseString(tt.in); err == nil {
				t.Errorf("expected a parse error for %s", tt.name)
			}
		})
	}
}

func TestParseIgnoresBlankLines(t *testing.T) {
	text := "AXWindow label=\"Main\"\n\n  AXButton identifier=\"play\"\n\n"
	tree, err := ParseString(text)
	if err != nil {
		t.Fatalf("ParseString: unexpected error: %v", err)
	}
	if len(tree.Children) != 1 || tree.Children[0].Identifier != "play" {
		t.Errorf("unexpected tree from dump with blank lines: %+v", tree)
	}
}
