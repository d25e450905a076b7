// Package appconfig loads the locator document: the YAML file that maps app
// names to a process identifier and named element patterns. The on-disk
// shape lives only here; loading produces the immutable locator.Model the
// engine queries, or a classified source error.
package appconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/axlocate/axlocate/internal/locator"
)

// Source error kinds, shared with the rest of the taxonomy in the locator
// package. A missing document and a present-but-unusable one are handled
// differently by callers (create a starter file vs. fix the file), so they
// stay distinct.
var (
	// ErrSourceMissing reports that no locator document exists at the
	// given path, or anywhere on the search path.
	ErrSourceMissing = locator.ErrConfigSourceMissing

	// ErrSourceMalformed reports a document that exists but cannot be
	// parsed or validated.
	ErrSourceMalformed = locator.ErrConfigSourceMalformed
)

// EnvVar overrides the document path when no explicit path is given.
const EnvVar = "AXLOCATE_LOCATORS"

// DefaultName is the document filename looked for in the working directory.
const DefaultName = "axlocate.locators.yaml"

// document is the on-disk YAML shape:
//
//	apps:
//	  Music:
//	    process: com.apple.Music
//	    elements:
//	      searchBox:
//	        role: AXTextField
//	        match: contains
//	        identifier: search
//	        index: 0
//	        children:
//	          - role: AXButton
type document struct {
	Apps map[string]appEntry `yaml:"apps"`
}

type appEntry struct {
	Process  string                  `yaml:"process"`
	Elements map[string]patternEntry `yaml:"elements"`
}

type patternEntry struct {
	Role       string         `yaml:"role"`
	Match      string         `yaml:"match"`
	Identifier string         `yaml:"identifier"`
	ClassName  string         `yaml:"class"`
	Label      string         `yaml:"label"`
	Index      *int           `yaml:"index"`
	Children   []patternEntry `yaml:"children"`
}

// SearchPaths returns the candidate document paths in precedence order:
// the explicit path if any, then $AXLOCATE_LOCATORS, the working directory,
// the user config directory, and /etc/axlocate.
func SearchPaths(explicit string) []string {
	var paths []string
	if explicit != "" {
		paths = append(paths, explicit)
	}
	if env := os.Getenv(EnvVar); env != "" {
		paths = append(paths, env)
	}
	paths = append(paths, DefaultName)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "axlocate", "locators.yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "axlocate", "locators.yaml"))
	}
	paths = append(paths, "/etc/axlocate/locators.yaml")
	return paths
}

// Load reads the first document found on the search path and builds the
// model. It returns the path actually used. No document anywhere is
// ErrSourceMissing; the first document found decides the outcome, so a
// malformed high-precedence file is an error rather than a silent fallback.
func Load(explicit string) (*locator.Model, string, error) {
	paths := SearchPaths(explicit)
	for _, path := range paths {
		model, err := LoadFile(path)
		if errors.Is(err, ErrSourceMissing) {
			continue
		}
		if err != nil {
			return nil, path, err
		}
		return model, path, nil
	}
	return nil, "", fmt.Errorf("no locator config at any of: %s: %w",
		strings.Join(paths, ", "), ErrSourceMissing)
}

// LoadFile reads and validates one locator document.
func LoadFile(path string) (*locator.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrSourceMissing)
		}
		return nil, fmt.Errorf("read locator config %s: %w", path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrSourceMalformed, err)
	}

	model, err := doc.build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrSourceMalformed, err)
	}
	return model, nil
}

// Problem is one finding from Lint: the app and element it concerns and
// what is wrong with them. Document-level findings leave App and Element
// empty.
type Problem struct {
	App     string
	Element string
	Err     error
}

// Lint reads one locator document and reports every problem it can find
// rather than stopping at the first, for authoring workflows. A document
// Lint finds no problems in will load cleanly with LoadFile. Unreadable or
// unparseable documents still fail outright, classified like LoadFile.
func Lint(path string) ([]Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrSourceMissing)
		}
		return nil, fmt.Errorf("read locator config %s: %w", path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrSourceMalformed, err)
	}

	var problems []Problem
	if len(doc.Apps) == 0 {
		return []Problem{{Err: errors.New("no apps configured")}}, nil
	}
	for appName, entry := range doc.Apps {
		if entry.Process == "" {
			problems = append(problems, Problem{App: appName, Err: errors.New("process identifier is required")})
		}
		if len(entry.Elements) == 0 {
			problems = append(problems, Problem{App: appName, Err: errors.New("no elements configured")})
		}
		for elementName, pe := range entry.Elements {
			p, err := pe.pattern()
			if err == nil {
				err = p.Validate()
			}
			if err != nil {
				problems = append(problems, Problem{App: appName, Element: elementName, Err: err})
			}
		}
	}
	sort.Slice(problems, func(i, j int) bool {
		if problems[i].App != problems[j].App {
			return problems[i].App < problems[j].App
		}
		return problems[i].Element < problems[j].Element
	})
	return problems, nil
}

// build converts the document into a validated model. locator.NewModel
// compiles every regex, so patterns that load are patterns that run.
func (d document) build() (*locator.Model, error) {
	if len(d.Apps) == 0 {
		return nil, errors.New("no apps configured")
	}
	apps := make([]*locator.AppConfig, 0, len(d.Apps))
	for name, entry := range d.Apps {
		elements := make(map[string]*locator.Pattern, len(entry.Elements))
		for elementName, pe := range entry.Elements {
			p, err := pe.pattern()
			if err != nil {
				return nil, fmt.Errorf("app %q element %q: %w", name, elementName, err)
			}
			elements[elementName] = p
		}
		apps = append(apps, &locator.AppConfig{
			Name:      name,
			ProcessID: entry.Process,
			Elements:  elements,
		})
	}
	return locator.NewModel(apps)
}

func (pe patternEntry) pattern() (*locator.Pattern, error) {
	match, err := locator.ParseMatchType(pe.Match)
	if err != nil {
		return nil, err
	}
	p := &locator.Pattern{
		Role:       pe.Role,
		Identifier: pe.Identifier,
		ClassName:  pe.ClassName,
		Label:      pe.Label,
		Match:      match,
		Index:      pe.Index,
	}
	for _, ce := range pe.Children {
		child, err := ce.pattern()
		if err != nil {
			return nil, err
		}
		p.Children = append(p.Children, child)
	}
	return p, nil
}
