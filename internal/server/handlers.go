package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/axlocate/axlocate/internal/appconfig"
	"github.com/axlocate/axlocate/internal/axtree"
	"github.com/axlocate/axlocate/internal/dump"
	"github.com/axlocate/axlocate/internal/locator"
)

// resolveResult is the locator_resolve payload for an indexed lookup.
// found=false with no node means the pattern matched nothing, which is an
// answer, not an error.
type resolveResult struct {
	App     string           `yaml:"app" json:"app"`
	Element string           `yaml:"element" json:"element"`
	Found   bool             `yaml:"found" json:"found"`
	Node    *axtree.NodeInfo `yaml:"node,omitempty" json:"node,omitempty"`
}

// resolveAllResult lists every candidate in document order.
type resolveAllResult struct {
	App        string            `yaml:"app" json:"app"`
	Element    string            `yaml:"element" json:"element"`
	Count      int               `yaml:"count" json:"count"`
	Candidates []axtree.NodeInfo `yaml:"candidates,omitempty" json:"candidates,omitempty"`
}

type appSummary struct {
	App      string   `yaml:"app" json:"app"`
	Process  string   `yaml:"process" json:"process"`
	Elements []string `yaml:"elements" json:"elements"`
}

type elementSummary struct {
	Name    string `yaml:"name" json:"name"`
	Pattern string `yaml:"pattern" json:"pattern"`
}

type appDetail struct {
	App      string           `yaml:"app" json:"app"`
	Process  string           `yaml:"process" json:"process"`
	Elements []elementSummary `yaml:"elements" json:"elements"`
}

type reloadResult struct {
	Reloaded bool     `yaml:"reloaded" json:"reloaded"`
	Path     string   `yaml:"path" json:"path"`
	Apps     []string `yaml:"apps" json:"apps"`
}

// resultText serializes v to YAML for an MCP text result.
func resultText(v interface{}) (*mcp.CallToolResult, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}

// toolError renders a classified failure as an MCP error result. The Go
// error stays nil: a failed lookup is an answered call, not a broken
// protocol stream.
func (s *Server) toolError(err error) (*mcp.CallToolResult, error) {
	s.log.Warn("tool call failed",
		zap.String("kind", locator.Kind(err)),
		zap.Error(err))

	b, merr := yaml.Marshal(struct {
		Error string `yaml:"error"`
		Kind  string `yaml:"kind"`
	}{Error: err.Error(), Kind: locator.Kind(err)})
	if merr != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultError(string(b)), nil
}

// treeKey is the cache key for one tool call: the snapshot path wins over
// the app name, mirroring loadRoot's source selection.
func treeKey(app, treePath string) Key {
	if treePath != "" {
		return Key{Path: treePath}
	}
	return Key{App: app}
}

// loadRoot returns a static tree for one tool call: the snapshot file when
// treePath is set, otherwise a capture of the app's live tree. Either way
// the result is cached under the server TTL.
func (s *Server) loadRoot(app, treePath string) (*axtree.NodeData, error) {
	if treePath != "" {
		return s.cache.Read(treeKey(app, treePath), func() (*axtree.NodeData, error) {
			snap, err := axtree.LoadSnapshot(treePath)
			if err != nil {
				return nil, err
			}
			return snap.Root, nil
		})
	}

	pid, err := s.registry.Current().ProcessIdentifier(app)
	if err != nil {
		return nil, err
	}
	return s.cache.Read(treeKey(app, treePath), func() (*axtree.NodeData, error) {
		s.sourceMu.Lock()
		defer s.sourceMu.Unlock()

		source, err := axtree.NewSource()
		if err != nil {
			return nil, err
		}
		node, err := source.AppTree(pid)
		if err != nil {
			return nil, err
		}
		// Live handles are only valid within this call; capture turns
		// them into data the cache may hold.
		return axtree.Capture(node, s.cfg.MaxDepth)
	})
}

func (s *Server) handleResolve(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	app := StringParam(params, "app", "")
	element := StringParam(params, "element", "")
	treePath := StringParam(params, "tree", "")
	all := BoolParam(params, "all", false)
	fresh := BoolParam(params, "fresh", false)

	if app == "" || element == "" {
		return mcp.NewToolResultError("app and element are required"), nil
	}
	if fresh {
		s.cache.Invalidate(treeKey(app, treePath))
	}

	data, err := s.loadRoot(app, treePath)
	if err != nil {
		return s.toolError(err)
	}
	root := axtree.NewStatic(data)

	if all {
		nodes, err := s.engine.ResolveAll(app, element, root)
		if err != nil {
			return s.toolError(err)
		}
		result := resolveAllResult{App: app, Element: element, Count: len(nodes)}
		for _, n := range nodes {
			info, err := axtree.Describe(n)
			if err != nil {
				return s.toolError(err)
			}
			result.Candidates = append(result.Candidates, info)
		}
		return resultText(result)
	}

	node, err := s.engine.Resolve(app, element, root)
	if err != nil {
		return s.toolError(err)
	}

	result := resolveResult{App: app, Element: element, Found: node != nil}
	if node != nil {
		info, err := axtree.Describe(node)
		if err != nil {
			return s.toolError(err)
		}
		result.Node = &info
	}
	return resultText(result)
}

func (s *Server) handleApps(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	app := StringParam(params, "app", "")

	model := s.registry.Current()

	if app != "" {
		cfg, err := model.App(app)
		if err != nil {
			return s.toolError(err)
		}
		names, err := model.ElementNames(app)
		if err != nil {
			return s.toolError(err)
		}
		detail := appDetail{App: cfg.Name, Process: cfg.ProcessID}
		for _, name := range names {
			detail.Elements = append(detail.Elements, elementSummary{
				Name:    name,
				Pattern: cfg.Elements[name].String(),
			})
		}
		return resultText(detail)
	}

	var list []appSummary
	for _, name := range model.Apps() {
		cfg, err := model.App(name)
		if err != nil {
			return s.toolError(err)
		}
		names, err := model.ElementNames(name)
		if err != nil {
			return s.toolError(err)
		}
		list = append(list, appSummary{App: name, Process: cfg.ProcessID, Elements: names})
	}
	return resultText(list)
}

func (s *Server) handleDump(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	app := StringParam(params, "app", "")
	treePath := StringParam(params, "tree", "")
	depth := IntParam(params, "depth", 0)
	fresh := BoolParam(params, "fresh", false)

	if app == "" && treePath == "" {
		return mcp.NewToolResultError("one of app or tree is required"), nil
	}
	if fresh {
		s.cache.Invalidate(treeKey(app, treePath))
	}

	data, err := s.loadRoot(app, treePath)
	if err != nil {
		return s.toolError(err)
	}

	maxDepth := depth
	if maxDepth <= 0 {
		maxDepth = s.cfg.MaxDepth
	}
	text, err := dump.String(axtree.NewStatic(data), maxDepth)
	if err != nil {
		return s.toolError(err)
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleReload(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	model, path, err := appconfig.Load(s.cfg.Locators)
	if err != nil {
		return s.toolError(err)
	}
	s.registry.Replace(model)
	s.loadedFrom = path

	// The model maps app names to processes, so cached live trees may now
	// belong to the wrong process.
	s.cache.InvalidateAll()

	s.log.Info("locator config reloaded",
		zap.String("path", path),
		zap.Int("apps", len(model.Apps())))

	return resultText(reloadResult{Reloaded: true, Path: path, Apps: model.Apps()})
}
