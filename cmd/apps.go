package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axlocate/axlocate/internal/output"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List configured applications and their elements",
	Long: "List the apps in the locator document with their process identifiers and\n" +
		"element names. With --app, show one app's patterns in full.",
	RunE: runApps,
}

func init() {
	rootCmd.AddCommand(appsCmd)
	appsCmd.Flags().String("app", "", "Show one app in detail, including pattern summaries")
	appsCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

// appListing is one row of the default listing.
type appListing struct {
	App      string   `yaml:"app"      json:"app"`
	Process  string   `yaml:"process"  json:"process"`
	Elements []string `yaml:"elements" json:"elements"`
}

// elementListing pairs an element name with its pattern summary.
type elementListing struct {
	Name    string `yaml:"name"    json:"name"`
	Pattern string `yaml:"pattern" json:"pattern"`
}

// appDetailListing is the --app output.
type appDetailListing struct {
	App      string           `yaml:"app"      json:"app"`
	Process  string           `yaml:"process"  json:"process"`
	Elements []elementListing `yaml:"elements" json:"elements"`
}

func runApps(cmd *cobra.Command, args []string) error {
	appName, _ := cmd.Flags().GetString("app")

	model, _, err := loadModel()
	if err != nil {
		return err
	}

	if appName != "" {
		cfg, err := model.App(appName)
		if err != nil {
			return err
		}
		names, err := model.ElementNames(appName)
		if err != nil {
			return err
		}
		if output.RawMode {
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		}
		entries := make([]elementListing, 0, len(names))
		for _, n := range names {
			entries = append(entries, elementListing{Name: n, Pattern: cfg.Elements[n].String()})
		}
		return output.Print(appDetailListing{App: cfg.Name, Process: cfg.ProcessID, Elements: entries})
	}

	if output.RawMode {
		for _, name := range model.Apps() {
			fmt.Println(name)
		}
		return nil
	}

	list := make([]appListing, 0, len(model.Apps()))
	for _, name := range model.Apps() {
		cfg, err := model.App(name)
		if err != nil {
			return err
		}
		names, err := model.ElementNames(name)
		if err != nil {
			return err
		}
		list = append(list, appListing{App: cfg.Name, Process: cfg.ProcessID, Elements: names})
	}
	return output.Print(list)
}
