// Package cli — outfit.go implements the "outfitctl outfit" command
// group: add, remove, and move manage the ordered outfit list stored
// in the scene file.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AmarilloArts/outfit-manager/internal/model"
	"github.com/AmarilloArts/outfit-manager/internal/registry"
)

// NewOutfitCommand creates the "outfit" parent command.
func NewOutfitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outfit",
		Short: "Manage outfits",
	}
	cmd.AddCommand(newOutfitAddCommand())
	cmd.AddCommand(newOutfitRemoveCommand())
	cmd.AddCommand(newOutfitMoveCommand())
	return cmd
}

func newOutfitAddCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add <group>",
		Short: "Add an outfit bound to a visibility group",
		Long: `Add a new outfit bound to the named visibility group.

The outfit name defaults to the group name. Each group can back at most
one outfit.

Examples:
  outfitctl outfit add Casual
  outfitctl outfit add Formal --name "Evening Wear"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOutfitAdd(args[0], name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Outfit name (defaults to the group name)")
	return cmd
}

func runOutfitAdd(group, name string) error {
	doc, _, err := loadEnvironment()
	if err != nil {
		return err
	}

	reg := registry.New(&doc.Manager, doc)
	outfit, err := reg.AddOutfit(group, name)
	if err != nil {
		return err
	}
	if err := saveScene(doc); err != nil {
		return err
	}

	if IsJSONOutput() {
		printOutfitJSON(outfit)
	} else {
		fmt.Printf("Added outfit %q bound to group %q (id %s)\n",
			outfit.Name, outfit.Group, outfit.ID)
	}
	return nil
}

func newOutfitRemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <index>",
		Short: "Remove an outfit and its overrides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0], "outfit")
			if err != nil {
				return err
			}
			return runOutfitRemove(index)
		},
	}
	return cmd
}

func runOutfitRemove(index int) error {
	doc, _, err := loadEnvironment()
	if err != nil {
		return err
	}

	reg := registry.New(&doc.Manager, doc)
	name := ""
	if index >= 0 && index < len(reg.Outfits()) {
		name = reg.Outfits()[index].Name
	}
	if err := reg.RemoveOutfit(index); err != nil {
		return err
	}
	if err := saveScene(doc); err != nil {
		return err
	}

	if IsJSONOutput() {
		printResultJSON(map[string]interface{}{"removed": name, "index": index})
	} else {
		fmt.Printf("Removed outfit %q\n", name)
	}
	return nil
}

func newOutfitMoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <index> <up|down>",
		Short: "Move an outfit one position in the list",
		Long: `Move the outfit at the given index one position up (toward the front)
or down. Moving past either end of the list is a no-op.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0], "outfit")
			if err != nil {
				return err
			}
			switch args[1] {
			case "up", "down":
			default:
				return model.NewCLIError(model.ExitGeneralError,
					fmt.Sprintf("invalid direction %q: expected up or down", args[1]))
			}
			return runOutfitMove(index, args[1] == "up")
		},
	}
	return cmd
}

func runOutfitMove(index int, up bool) error {
	doc, _, err := loadEnvironment()
	if err != nil {
		return err
	}

	reg := registry.New(&doc.Manager, doc)
	if err := reg.MoveOutfit(index, up); err != nil {
		return err
	}
	if err := saveScene(doc); err != nil {
		return err
	}

	direction := "down"
	if up {
		direction = "up"
	}
	if IsJSONOutput() {
		printResultJSON(map[string]interface{}{"moved": index, "direction": direction})
	} else {
		fmt.Printf("Moved outfit %d %s\n", index, direction)
	}
	return nil
}

// outfitJSON is the JSON output structure for a single outfit.
type outfitJSON struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name"`
	Group     string                   `json:"group"`
	Overrides []model.ShapeKeyOverride `json:"overrides"`
}

func printOutfitJSON(o *model.Outfit) {
	entry := outfitJSON{
		ID:    o.ID,
		Name:  o.Name,
		Group: o.Group,
		// Empty slice instead of nil so JSON output shows [] not null.
		Overrides: append([]model.ShapeKeyOverride{}, o.Overrides...),
	}
	data, _ := json.MarshalIndent(entry, "", "  ")
	fmt.Println(string(data))
}

// printResultJSON prints a small ad-hoc result object. Used by the
// mutation commands whose output is just an acknowledgement.
func printResultJSON(result map[string]interface{}) {
	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}
