package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axlocate/axlocate/internal/appconfig"
	"github.com/axlocate/axlocate/internal/output"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the locator document and report every problem",
	Long: "Load the locator document and report all problems at once: missing process\n" +
		"identifiers, apps without elements, bad match kinds, regexes that do not\n" +
		"compile. A document that validates cleanly is one resolve will load.",
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

// problemEntry is one finding. Document-level findings have no app/element.
type problemEntry struct {
	App     string `yaml:"app,omitempty"     json:"app,omitempty"`
	Element string `yaml:"element,omitempty" json:"element,omitempty"`
	Error   string `yaml:"error"             json:"error"`
}

type validateResult struct {
	Path     string         `yaml:"path"     json:"path"`
	Valid    bool           `yaml:"valid"    json:"valid"`
	Problems []problemEntry `yaml:"problems" json:"problems"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	path, err := locatorDocumentPath(settings.Locators)
	if err != nil {
		return err
	}

	problems, err := appconfig.Lint(path)
	if err != nil {
		return err
	}

	if output.RawMode {
		for _, p := range problems {
			fmt.Printf("%s\t%s\t%s\n", p.App, p.Element, p.Err)
		}
	} else {
		result := validateResult{Path: path, Valid: len(problems) == 0, Problems: []problemEntry{}}
		for _, p := range problems {
			result.Problems = append(result.Problems, problemEntry{App: p.App, Element: p.Element, Error: p.Err.Error()})
		}
		if err := output.Print(result); err != nil {
			return err
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%d problem(s) in %s", len(problems), path)
	}
	return nil
}
