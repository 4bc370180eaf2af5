// Package cli implements the cobra-based CLI commands for outfitctl.
//
// Each command group (outfit, model, override, apply, list) is defined
// in its own file within this package. This file defines the root
// command that serves as the parent for all subcommands and handles
// global flags.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AmarilloArts/outfit-manager/internal/config"
	"github.com/AmarilloArts/outfit-manager/internal/model"
	"github.com/AmarilloArts/outfit-manager/internal/scene"
)

// Global flag variables shared across all subcommands. They are bound
// to cobra persistent flags on the root command, which makes them
// available to every subcommand automatically.
var (
	// scenePath overrides the scene file location from the config file.
	scenePath string

	// jsonOutput controls whether command output is formatted as JSON.
	// When false (default), output uses human-readable text format.
	jsonOutput bool

	// verbose enables detailed logging output to stderr.
	verbose bool
)

// Version, Commit, and Date are set at build time via ldflags. They
// are injected from the main package to display version information.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates and configures the root cobra command. The
// root command itself does not perform any action; actual functionality
// is provided by the subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "outfitctl",
		Short: "Outfit manager for scene files",
		Long: `outfitctl manages named outfits in a scene file: each outfit binds one
visibility group plus a set of shape-key overrides, and applying an
outfit switches the scene to exactly that look.

The scene file location comes from --scene, or from outfitctl.jsonc in
the current directory, or defaults to scene.yaml.`,

		// Errors are formatted by Execute (text or JSON based on --json),
		// so cobra's own error and usage printing is disabled.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().StringVarP(&scenePath, "scene", "s", "", "Path to the scene file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewOutfitCommand())
	rootCmd.AddCommand(NewModelCommand())
	rootCmd.AddCommand(NewOverrideCommand())
	rootCmd.AddCommand(NewApplyCommand())
	rootCmd.AddCommand(NewListCommand())

	return rootCmd
}

// Execute runs the root command and translates errors into OS exit
// codes. This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(int(model.ExitCodeFor(err)))
	}
}

// printError outputs an error in the appropriate format (JSON or text)
// based on the --json global flag. Errors always go to stderr; stdout
// is reserved for successful command output.
func printError(err error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": err.Error(),
			},
		}
		if kind := model.KindOf(err); kind != "" {
			errObj["error"].(map[string]interface{})["kind"] = kind.String()
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
}

// VerboseLog prints a message to stderr only when verbose mode is
// enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set. Subcommands use
// this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}

// loadEnvironment resolves the tool config and loads the scene file.
// The scene path resolution order is: --scene flag, then the config
// file's scene entry, then the built-in default.
func loadEnvironment() (*scene.Document, *config.Config, error) {
	cfg, err := config.LoadOrDefault(".")
	if err != nil {
		return nil, nil, err
	}

	path := scenePath
	if path == "" {
		path = cfg.Scene
	}

	VerboseLog("Loading scene from %s", path)
	doc, err := scene.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return doc, cfg, nil
}

// saveScene persists the scene document after a successful mutation.
func saveScene(doc *scene.Document) error {
	VerboseLog("Saving scene to %s", doc.Path())
	if err := doc.Save(); err != nil {
		return fmt.Errorf("failed to save scene: %w", err)
	}
	return nil
}

// parseIndex converts a positional index argument, naming the list it
// indexes into in the error message.
func parseIndex(arg, what string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid %s index %q: expected a number", what, arg))
	}
	return n, nil
}
