package locator

import (
	"errors"
	"testing"
)

func demoApps() []*AppConfig {
	return []*AppConfig{
		{
			Name:      "Music",
			ProcessID: "com.apple.Music",
			Elements: map[string]*Pattern{
				"searchBox":  {Role: "AXTextField", Identifier: "search"},
				"playButton": {Role: "AXButton", Label: "Play", Match: MatchExact},
			},
		},
		{
			Name:      "Chat",
			ProcessID: "com.example.chat",
			Elements: map[string]*Pattern{
				"composer": {Role: "AXTextArea"},
			},
		},
	}
}

func TestNewModelValidatesPatterns(t *testing.T) {
	apps := demoApps()
	m, err := NewModel(apps)
	if err != nil {
		t.Fatalf("NewModel: unexpected error: %v", err)
	}
	if got := m.Apps(); len(got) != 2 || got[0] != "Chat" || got[1] != "Music" {
		t.Errorf("expected sorted app names [Chat Music], got %v", got)
	}
}

func TestNewModelRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name string
		apps []*AppConfig
	}{
		{"empty app name", []*AppConfig{{Name: "", ProcessID: "x"}}},
		{"missing process id", []*AppConfig{{Name: "Music", ProcessID: ""}}},
		{"duplicate app", []*AppConfig{
			{Name: "Music", ProcessID: "a"},
			{Name: "Music", ProcessID: "b"},
		}},
		{"nil pattern", []*AppConfig{{
			Name: "Music", ProcessID: "a",
			Elements: map[string]*Pattern{"x": nil},
		}}},
		{"pattern without role", []*AppConfig{{
			Name: "Music", ProcessID: "a",
			Elements: map[string]*Pattern{"x": {Label: "Play"}},
		}}},
		{"bad regex", []*AppConfig{{
			Name: "Music", ProcessID: "a",
			Elements: map[string]*Pattern{"x": {Role: "AXButton", Label: "([", Match: MatchRegex}},
		}}},
		{"bad nested pattern", []*AppConfig{{
			Name: "Music", ProcessID: "a",
			Elements: map[string]*Pattern{"x": {
				Role:     "AXGroup",
				Children: []*Pattern{{Role: ""}},
			}},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewModel(tt.apps); err == nil {
				t.Errorf("expected NewModel to reject %s", tt.name)
			}
		})
	}
}

func TestModelLookups(t *testing.T) {
	m, err := NewModel(demoApps())
	if err != nil {
		t.Fatal(err)
	}

	pid, err := m.ProcessIdentifier("Music")
	if err != nil {
		t.Fatalf("ProcessIdentifier: unexpected error: %v", err)
	}
	if pid != "com.apple.Music" {
		t.Errorf("expected com.apple.Music, got %q", pid)
	}

	p, err := m.Pattern("Music", "searchBox")
	if err != nil {
		t.Fatalf("Pattern: unexpected error: %v", err)
	}
	if p.Role != "AXTextField" {
		t.Errorf("expected role AXTextField, got %q", p.Role)
	}

	names, err := m.ElementNames("Music")
	if err != nil {
		t.Fatalf("ElementNames: unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "playButton" || names[1] != "searchBox" {
		t.Errorf("expected sorted [playButton searchBox], got %v", names)
	}
}

func TestModelErrorKindsAreDistinct(t *testing.T) {
	m, err := NewModel(demoApps())
	if err != nil {
		t.Fatal(err)
	}

	_, err = m.Pattern("Calculator", "anything")
	if !errors.Is(err, ErrAppConfigNotFound) {
		t.Errorf("unknown app: expected ErrAppConfigNotFound, got %v", err)
	}
	if errors.Is(err, ErrElementPathNotFound) {
		t.Error("unknown app must not also report ErrElementPathNotFound")
	}

	_, err = m.Pattern("Music", "volumeSlider")
	if !errors.Is(err, ErrElementPathNotFound) {
		t.Errorf("unknown element: expected ErrElementPathNotFound, got %v", err)
	}
	if errors.Is(err, ErrAppConfigNotFound) {
		t.Error("unknown element must not also report ErrAppConfigNotFound")
	}

	_, err = m.ProcessIdentifier("Calculator")
	if !errors.Is(err, ErrAppConfigNotFound) {
		t.Errorf("ProcessIdentifier: expected ErrAppConfigNotFound, got %v", err)
	}
}

func TestRegistryReplaceSwapsWholeModel(t *testing.T) {
	first, err := NewModel(demoApps())
	if err != nil {
		t.Fatal(err)
	}
	reg := NewRegistry(first)

	held := reg.Current()

	second, err := NewModel([]*AppConfig{{
		Name:      "Calculator",
		ProcessID: "com.apple.calculator",
		Elements:  map[string]*Pattern{"display": {Role: "AXStaticText"}},
	}})
	if err != nil {
		t.Fatal(err)
	}
	reg.Replace(second)

	if _, err := reg.Current().Pattern("Calculator", "display"); err != nil {
		t.Errorf("after Replace, expected Calculator to resolve, got %v", err)
	}
	if _, err := reg.Current().Pattern("Music", "searchBox"); !errors.Is(err, ErrAppConfigNotFound) {
		t.Errorf("after Replace, expected Music to be gone, got %v", err)
	}

	// A model handle taken before the swap keeps answering from the old
	// mapping; in-flight queries never see a half-replaced state.
	if _, err := held.Pattern("Music", "searchBox"); err != nil {
		t.Errorf("held model: expected the old mapping to keep working, got %v", err)
	}
}
