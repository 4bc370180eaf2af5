// Package cli — override.go implements the "outfitctl override" command
// group: add and remove manage the shape-key overrides of one outfit.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AmarilloArts/outfit-manager/internal/registry"
)

// NewOverrideCommand creates the "override" parent command.
func NewOverrideCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Manage shape-key overrides",
	}
	cmd.AddCommand(newOverrideAddCommand())
	cmd.AddCommand(newOverrideRemoveCommand())
	return cmd
}

func newOverrideAddCommand() *cobra.Command {
	var value float64

	cmd := &cobra.Command{
		Use:   "add <outfit-index> <model-index> <key>",
		Short: "Add a shape-key override to an outfit",
		Long: `Add a shape-key override to the outfit at <outfit-index>, referencing
the managed model at <model-index>.

Without --value the override starts from the key's current scene value
when copyCurrentValue is enabled in outfitctl.jsonc (the default), and
from zero otherwise. Values are clamped to [0, 1].

Examples:
  outfitctl override add 0 0 arm_key --value 1.0
  outfitctl override add 1 0 collar_key`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			outfitIndex, err := parseIndex(args[0], "outfit")
			if err != nil {
				return err
			}
			modelIndex, err := parseIndex(args[1], "managed model")
			if err != nil {
				return err
			}
			return runOverrideAdd(outfitIndex, modelIndex, args[2],
				value, cmd.Flags().Changed("value"))
		},
	}

	cmd.Flags().Float64Var(&value, "value", 0, "Override value (defaults to the key's current value)")
	return cmd
}

func runOverrideAdd(outfitIndex, modelIndex int, key string, value float64, valueSet bool) error {
	doc, cfg, err := loadEnvironment()
	if err != nil {
		return err
	}

	reg := registry.New(&doc.Manager, doc)

	// Without an explicit --value, optionally seed the override from
	// the key's current scene value. A failed lookup falls through to
	// zero and lets AddOverride report the real problem.
	if !valueSet && cfg.CopyCurrentValue {
		if modelIndex >= 0 && modelIndex < len(reg.Models()) {
			object := reg.Models()[modelIndex].Object
			if v, ok := doc.ShapeKeyValue(object, key); ok {
				value = v
				VerboseLog("Copying current value %.2f of %s.%s", v, object, key)
			}
		}
	}

	ov, err := reg.AddOverride(outfitIndex, modelIndex, key, value)
	if err != nil {
		return err
	}
	if err := saveScene(doc); err != nil {
		return err
	}

	if IsJSONOutput() {
		printResultJSON(map[string]interface{}{
			"outfit":   outfitIndex,
			"model":    ov.Model,
			"shapeKey": ov.Key,
			"value":    ov.Value,
		})
	} else {
		fmt.Printf("Added override %s to outfit %d\n", ov, outfitIndex)
	}
	return nil
}

func newOverrideRemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <outfit-index> <override-index>",
		Short: "Remove a shape-key override from an outfit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outfitIndex, err := parseIndex(args[0], "outfit")
			if err != nil {
				return err
			}
			overrideIndex, err := parseIndex(args[1], "override")
			if err != nil {
				return err
			}
			return runOverrideRemove(outfitIndex, overrideIndex)
		},
	}
	return cmd
}

func runOverrideRemove(outfitIndex, overrideIndex int) error {
	doc, _, err := loadEnvironment()
	if err != nil {
		return err
	}

	reg := registry.New(&doc.Manager, doc)
	if err := reg.RemoveOverride(outfitIndex, overrideIndex); err != nil {
		return err
	}
	if err := saveScene(doc); err != nil {
		return err
	}

	if IsJSONOutput() {
		printResultJSON(map[string]interface{}{
			"outfit":  outfitIndex,
			"removed": overrideIndex,
		})
	} else {
		fmt.Printf("Removed override %d from outfit %d\n", overrideIndex, outfitIndex)
	}
	return nil
}
