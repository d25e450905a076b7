package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/axlocate/axlocate/internal/axtree"
	"github.com/axlocate/axlocate/internal/dump"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump an accessibility tree as indented text",
	Long: "Render a tree one node per line, children indented under parents, for\n" +
		"reading off roles and attributes when authoring locator patterns. The text\n" +
		"round-trips: a saved dump can be edited and parsed back into a tree.",
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().String("tree", "", "Snapshot file to dump instead of a live tree")
	dumpCmd.Flags().String("app", "", "Configured application name (reads the live tree)")
	dumpCmd.Flags().String("out", "", "Write the dump to this file instead of stdout")
	dumpCmd.Flags().Int("max-depth", 0, "Max depth to render (0 = configured default)")
}

func runDump(cmd *cobra.Command, args []string) error {
	treePath, _ := cmd.Flags().GetString("tree")
	appName, _ := cmd.Flags().GetString("app")
	outPath, _ := cmd.Flags().GetString("out")
	maxDepth, _ := cmd.Flags().GetInt("max-depth")

	if treePath == "" && appName == "" {
		return fmt.Errorf("--tree or --app is required")
	}
	if maxDepth <= 0 {
		maxDepth = settings.MaxDepth
	}

	// A snapshot file needs no locator document; only the live path does.
	var root axtree.Node
	if treePath != "" {
		snap, err := axtree.LoadSnapshot(treePath)
		if err != nil {
			return err
		}
		root = axtree.NewStatic(snap.Root)
	} else {
		model, _, err := loadModel()
		if err != nil {
			return err
		}
		root, err = loadTree(model, appName, "")
		if err != nil {
			return err
		}
	}

	text, err := dump.String(root, maxDepth)
	if err != nil {
		return err
	}
	if outPath != "" {
		return os.WriteFile(outPath, []byte(text), 0644)
	}
	fmt.Print(text)
	return nil
}
