package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/axlocate/axlocate/internal/config"
	"github.com/axlocate/axlocate/internal/observability"
	"github.com/axlocate/axlocate/internal/output"
	"github.com/axlocate/axlocate/internal/version"
)

// settings is the loaded tool configuration. PersistentPreRunE fills it in
// before any RunE executes; until then it carries the defaults.
var settings = config.Default()

var rootCmd = &cobra.Command{
	Use:   "axlocate",
	Short: "Resolve configured UI element locators against accessibility trees",
	Long: "A CLI tool that resolves named, declarative locator patterns to concrete\n" +
		"UI elements in accessibility trees, for AI agents and UI test tooling.",
}

func Execute() {
	err := rootCmd.Execute()
	observability.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("config", "", "Config file (default: axlocate.yaml on the search path)")
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("raw", false, "Print bare values without the structured envelope")
	rootCmd.PersistentFlags().String("locators", "", "Locator document path (overrides config file and $AXLOCATE_LOCATORS)")
	rootCmd.PersistentFlags().Int("max-depth", 0, "Cap tree walks at this depth (0 = configured default)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
		s, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// Flags beat the config file and the environment.
		if locators, _ := rootCmd.PersistentFlags().GetString("locators"); locators != "" {
			s.Locators = locators
		}
		if maxDepth, _ := rootCmd.PersistentFlags().GetInt("max-depth"); maxDepth > 0 {
			s.MaxDepth = maxDepth
		}
		if level, _ := rootCmd.PersistentFlags().GetString("log-level"); level != "" {
			s.Logger.Level = level
		}
		settings = s

		observability.InitializeLogger(s.Logger)

		raw, _ := rootCmd.PersistentFlags().GetBool("raw")
		output.RawMode = raw

		// Use the root persistent flag directly to avoid conflicts with
		// subcommand local flags.
		format, _ := rootCmd.PersistentFlags().GetString("format")
		if format == "" {
			format = "yaml"
		}
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		if prettyFlag := cmd.Flags().Lookup("pretty"); prettyFlag != nil {
			if pretty, err := cmd.Flags().GetBool("pretty"); err == nil && pretty {
				output.PrettyOutput = true
			}
		}
		return nil
	}
}
