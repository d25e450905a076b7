package locator

import (
	"errors"
	"fmt"
	"sort"
)

// AppConfig holds the locator configuration for one application: the
// platform process identifier used to reach it, and its named element
// patterns.
type AppConfig struct {
	Name      string              // logical app name, unique within a model
	ProcessID string              // platform bundle / process identifier
	Elements  map[string]*Pattern // logical element name -> pattern
}

// Model is the immutable app -> element -> pattern mapping the engine
// queries. Build one with NewModel at configuration load; replace it
// wholesale on reload (see Registry). It is never mutated after
// construction, so concurrent readers need no locks.
type Model struct {
	apps map[string]*AppConfig
}

// NewModel validates the given app configs and builds a Model. Every
// pattern is validated and its regexes compiled up front; one malformed
// pattern fails the whole build, so a Model that exists is fully usable.
func NewModel(apps []*AppConfig) (*Model, error) {
	m := &Model{apps: make(map[string]*AppConfig, len(apps))}
	for _, app := range apps {
		if app == nil {
			return nil, errors.New("nil app config")
		}
		if app.Name == "" {
			return nil, errors.New("app name is required")
		}
		if _, dup := m.apps[app.Name]; dup {
			return nil, fmt.Errorf("duplicate app %q", app.Name)
		}
		if app.ProcessID == "" {
			return nil, fmt.Errorf("app %q: process identifier is required", app.Name)
		}
		for name, p := range app.Elements {
			if name == "" {
				return nil, fmt.Errorf("app %q: element with empty name", app.Name)
			}
			if p == nil {
				return nil, fmt.Errorf("app %q: element %q has no pattern", app.Name, name)
			}
			if err := p.Validate(); err != nil {
				return nil, fmt.Errorf("app %q: element %q: %w", app.Name, name, err)
			}
		}
		m.apps[app.Name] = app
	}
	return m, nil
}

// ProcessIdentifier returns the platform process identifier configured for
// app, or ErrAppConfigNotFound.
func (m *Model) ProcessIdentifier(app string) (string, error) {
	cfg, ok := m.apps[app]
	if !ok {
		return "", fmt.Errorf("app %q: %w", app, ErrAppConfigNotFound)
	}
	return cfg.ProcessID, nil
}

// Pattern returns the locator pattern for element within app. An unknown
// app and an unknown element within a known app are distinct kinds, so
// callers can tell misdirected queries from configuration drift.
func (m *Model) Pattern(app, element string) (*Pattern, error) {
	cfg, ok := m.apps[app]
	if !ok {
		return nil, fmt.Errorf("app %q: %w", app, ErrAppConfigNotFound)
	}
	p, ok := cfg.Elements[element]
	if !ok {
		return nil, fmt.Errorf("app %q element %q: %w", app, element, ErrElementPathNotFound)
	}
	return p, nil
}

// App returns the full configuration for one app, for listing and
// validation tooling.
func (m *Model) App(name string) (*AppConfig, error) {
	cfg, ok := m.apps[name]
	if !ok {
		return nil, fmt.Errorf("app %q: %w", name, ErrAppConfigNotFound)
	}
	return cfg, nil
}

// Apps returns the configured app names, sorted.
func (m *Model) Apps() []string {
	names := make([]string, 0, len(m.apps))
	for name := range m.apps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ElementNames returns the element names configured for app, sorted, or
// ErrAppConfigNotFound.
func (m *Model) ElementNames(app string) ([]string, error) {
	cfg, ok := m.apps[app]
	if !ok {
		return nil, fmt.Errorf("app %q: %w", app, ErrAppConfigNotFound)
	}
	names := make([]string, 0, len(cfg.Elements))
	for name := range cfg.Elements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
