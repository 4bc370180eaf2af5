// Package cli — apply.go implements the "outfitctl apply" command.
//
// Applying an outfit enables its visibility group, disables every other
// outfit's group, resets all registry-referenced shape keys to a zero
// baseline, and then writes the outfit's override values. Stale
// references are reported as warnings, not errors.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AmarilloArts/outfit-manager/internal/model"
	"github.com/AmarilloArts/outfit-manager/internal/registry"
)

// NewApplyCommand creates the "apply" cobra command.
func NewApplyCommand() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "apply [index]",
		Short: "Apply an outfit to the scene",
		Long: `Apply the outfit at the given index, or the outfit named by --id.

Applying switches the scene to exactly this outfit: every other
outfit's visibility group is disabled, all shape keys referenced by any
override are reset to zero, and the outfit's own overrides are set on
top of that baseline.

Examples:
  outfitctl apply 1
  outfitctl apply --id 1f0e7c52-8a43-4a90-9f6d-93a35c1a8e7b`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" && len(args) == 0 {
				return model.NewCLIError(model.ExitGeneralError,
					"an outfit index or --id is required")
			}
			index := -1
			if len(args) == 1 {
				var err error
				if index, err = parseIndex(args[0], "outfit"); err != nil {
					return err
				}
			}
			return runApply(index, id)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Apply the outfit with this stable ID instead of an index")
	return cmd
}

func runApply(index int, id string) error {
	doc, _, err := loadEnvironment()
	if err != nil {
		return err
	}

	reg := registry.New(&doc.Manager, doc)

	// --id resolves to an index through the registry state, so the rest
	// of the command is identical for both addressing modes.
	if id != "" {
		index = doc.Manager.OutfitByID(id)
		if index < 0 {
			return model.NewError(model.KindInvalidReference,
				"no outfit with id %q", id)
		}
		VerboseLog("Resolved id %s to outfit index %d", id, index)
	}

	report, err := reg.Apply(index)
	if err != nil {
		return err
	}
	if err := saveScene(doc); err != nil {
		return err
	}

	if IsJSONOutput() {
		printApplyReportJSON(report)
	} else {
		printApplyReportText(report)
	}
	return nil
}

// printApplyReportText prints the one-line summary to stdout and any
// stale-reference warnings to stderr.
func printApplyReportText(report *model.ApplyReport) {
	fmt.Println(report.Summary())
	for _, w := range report.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w.Message)
	}
}

// printApplyReportJSON prints the full report as structured JSON. The
// ApplyReport struct carries json tags for exactly this purpose.
func printApplyReportJSON(report *model.ApplyReport) {
	data, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(data))
}
