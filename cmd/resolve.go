package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axlocate/axlocate/internal/axtree"
	"github.com/axlocate/axlocate/internal/dump"
	"github.com/axlocate/axlocate/internal/output"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a configured element name to a node in an accessibility tree",
	Long: "Run the locator engine for one configured element against a snapshot file\n" +
		"or the app's live tree. found=false with no node means the pattern is well\n" +
		"formed but nothing in the tree matches; that is an answer, not an error.",
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().String("app", "", "Configured application name")
	resolveCmd.Flags().String("element", "", "Configured element name")
	resolveCmd.Flags().String("tree", "", "Snapshot file to resolve against (default: the app's live tree)")
	resolveCmd.Flags().Bool("all", false, "List every candidate in document order instead of picking one")
	resolveCmd.Flags().Int("index", 0, "Override the pattern's index (negative counts from the back)")
	resolveCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

// resolveResult is the envelope for a single resolution.
type resolveResult struct {
	App     string           `yaml:"app"            json:"app"`
	Element string           `yaml:"element"        json:"element"`
	Found   bool             `yaml:"found"          json:"found"`
	Node    *axtree.NodeInfo `yaml:"node,omitempty" json:"node,omitempty"`
}

// resolveAllResult is the envelope for --all.
type resolveAllResult struct {
	App        string            `yaml:"app"        json:"app"`
	Element    string            `yaml:"element"    json:"element"`
	Count      int               `yaml:"count"      json:"count"`
	Candidates []axtree.NodeInfo `yaml:"candidates" json:"candidates"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	appName, _ := cmd.Flags().GetString("app")
	element, _ := cmd.Flags().GetString("element")
	treePath, _ := cmd.Flags().GetString("tree")
	all, _ := cmd.Flags().GetBool("all")

	if appName == "" || element == "" {
		return fmt.Errorf("--app and --element are required")
	}

	model, _, err := loadModel()
	if err != nil {
		return err
	}
	engine := newEngine(model)

	root, err := loadTree(model, appName, treePath)
	if err != nil {
		return err
	}

	if all {
		candidates, err := engine.ResolveAll(appName, element, root)
		if err != nil {
			return err
		}
		if output.RawMode {
			for _, c := range candidates {
				line, err := dump.Line(c)
				if err != nil {
					return err
				}
				fmt.Println(line)
			}
			return nil
		}
		infos, err := describeAll(candidates)
		if err != nil {
			return err
		}
		return output.Print(resolveAllResult{
			App:        appName,
			Element:    element,
			Count:      len(infos),
			Candidates: infos,
		})
	}

	var node axtree.Node
	if cmd.Flags().Changed("index") {
		idx, _ := cmd.Flags().GetInt("index")
		pattern, perr := model.Pattern(appName, element)
		if perr != nil {
			return perr
		}
		// Shallow copy so the override does not leak into the shared model.
		override := *pattern
		override.Index = &idx
		node, err = engine.ResolvePattern(&override, root)
	} else {
		node, err = engine.Resolve(appName, element, root)
	}
	if err != nil {
		return err
	}

	if output.RawMode {
		if node == nil {
			return nil
		}
		line, err := dump.Line(node)
		if err != nil {
			return err
		}
		fmt.Println(line)
		return nil
	}

	result := resolveResult{App: appName, Element: element}
	if node != nil {
		info, err := axtree.Describe(node)
		if err != nil {
			return err
		}
		result.Found = true
		result.Node = &info
	}
	return output.Print(result)
}
