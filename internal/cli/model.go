// Package cli — model.go implements the "outfitctl model" command
// group: add and remove manage the shared managed-model list that
// overrides reference.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AmarilloArts/outfit-manager/internal/registry"
)

// NewModelCommand creates the "model" parent command.
func NewModelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage the shared model list",
	}
	cmd.AddCommand(newModelAddCommand())
	cmd.AddCommand(newModelRemoveCommand())
	return cmd
}

func newModelAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <object>",
		Short: "Add a scene object to the managed model list",
		Long: `Add the named scene object to the managed model list so outfits can
override its shape keys. The object must carry at least one shape key
beyond the basis key.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModelAdd(args[0])
		},
	}
	return cmd
}

func runModelAdd(object string) error {
	doc, _, err := loadEnvironment()
	if err != nil {
		return err
	}

	reg := registry.New(&doc.Manager, doc)
	m, err := reg.AddManagedModel(object)
	if err != nil {
		return err
	}
	if err := saveScene(doc); err != nil {
		return err
	}

	if IsJSONOutput() {
		printResultJSON(map[string]interface{}{"added": m.Object})
	} else {
		fmt.Printf("Added managed model %q\n", m.Object)
	}
	return nil
}

func newModelRemoveCommand() *cobra.Command {
	var cascade bool

	cmd := &cobra.Command{
		Use:   "remove <index>",
		Short: "Remove a managed model",
		Long: `Remove the managed model at the given index.

By default overrides referencing the model stay in place; they are
tolerated as stale at apply time. With --cascade, every override
referencing the model is deleted from every outfit as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0], "managed model")
			if err != nil {
				return err
			}
			return runModelRemove(index, cascade)
		},
	}

	cmd.Flags().BoolVar(&cascade, "cascade", false, "Also delete overrides referencing the model")
	return cmd
}

func runModelRemove(index int, cascade bool) error {
	doc, _, err := loadEnvironment()
	if err != nil {
		return err
	}

	reg := registry.New(&doc.Manager, doc)
	object := ""
	if index >= 0 && index < len(reg.Models()) {
		object = reg.Models()[index].Object
	}
	if err := reg.RemoveManagedModel(index, cascade); err != nil {
		return err
	}
	if err := saveScene(doc); err != nil {
		return err
	}

	if IsJSONOutput() {
		printResultJSON(map[string]interface{}{
			"removed": object,
			"index":   index,
			"cascade": cascade,
		})
	} else if cascade {
		fmt.Printf("Removed managed model %q and its overrides\n", object)
	} else {
		fmt.Printf("Removed managed model %q\n", object)
	}
	return nil
}
