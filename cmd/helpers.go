package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/axlocate/axlocate/internal/appconfig"
	"github.com/axlocate/axlocate/internal/axtree"
	"github.com/axlocate/axlocate/internal/locator"
)

// loadModel reads the locator document from the configured search path.
func loadModel() (*locator.Model, string, error) {
	return appconfig.Load(settings.Locators)
}

// newEngine builds a single-shot engine over model. CLI invocations never
// reload, so the registry exists only to satisfy the engine.
func newEngine(model *locator.Model) *locator.Engine {
	return locator.NewEngine(locator.NewRegistry(model), settings.MaxDepth)
}

// loadTree returns the static tree to query: the snapshot file when treePath
// is set, otherwise a capture of the app's live tree. Live handles are only
// valid for the call that produced them, so the live tree is captured up
// front; the engine revisits subtrees.
func loadTree(model *locator.Model, appName, treePath string) (axtree.Node, error) {
	if treePath != "" {
		snap, err := axtree.LoadSnapshot(treePath)
		if err != nil {
			return nil, err
		}
		return axtree.NewStatic(snap.Root), nil
	}

	process, err := model.ProcessIdentifier(appName)
	if err != nil {
		return nil, err
	}
	source, err := axtree.NewSource()
	if err != nil {
		return nil, err
	}
	live, err := source.AppTree(process)
	if err != nil {
		return nil, err
	}
	data, err := axtree.Capture(live, settings.MaxDepth)
	if err != nil {
		return nil, err
	}
	return axtree.NewStatic(data), nil
}

// locatorDocumentPath finds the document on the search path without loading
// it, for commands that read the file themselves.
func locatorDocumentPath(explicit string) (string, error) {
	paths := appconfig.SearchPaths(explicit)
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no locator config at any of: %s: %w",
		strings.Join(paths, ", "), appconfig.ErrSourceMissing)
}

// describeAll copies node attributes into NodeInfo values for output.
func describeAll(nodes []axtree.Node) ([]axtree.NodeInfo, error) {
	infos := make([]axtree.NodeInfo, 0, len(nodes))
	for _, n := range nodes {
		info, err := axtree.Describe(n)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}
