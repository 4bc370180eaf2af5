// Package cli — list.go implements the "outfitctl list" command.
//
// The list command displays the outfit table and the managed-model
// list from the scene file, as a text table or JSON, depending on the
// --json flag.
package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AmarilloArts/outfit-manager/internal/model"
	"github.com/AmarilloArts/outfit-manager/internal/registry"
)

// NewListCommand creates the "list" cobra command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List outfits and managed models",
		Long: `List all outfits with their bound groups and overrides, followed by
the managed-model list. The active outfit is marked with *.

Examples:
  outfitctl list
  outfitctl list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList()
		},
	}
	return cmd
}

func runList() error {
	doc, _, err := loadEnvironment()
	if err != nil {
		return err
	}

	reg := registry.New(&doc.Manager, doc)
	if IsJSONOutput() {
		printListJSON(reg)
	} else {
		printListText(reg)
	}
	return nil
}

// listOutfitJSON is the JSON output structure for one outfit row.
type listOutfitJSON struct {
	Index     int                      `json:"index"`
	ID        string                   `json:"id"`
	Name      string                   `json:"name"`
	Group     string                   `json:"group"`
	Active    bool                     `json:"active"`
	Overrides []model.ShapeKeyOverride `json:"overrides"`
}

// printListJSON outputs outfits and models as a single JSON object.
func printListJSON(reg *registry.Registry) {
	type resultJSON struct {
		Outfits []listOutfitJSON `json:"outfits"`
		Models  []string         `json:"models"`
	}

	// Empty slices instead of nil so empty lists render as [] not null.
	result := resultJSON{
		Outfits: make([]listOutfitJSON, 0, len(reg.Outfits())),
		Models:  make([]string, 0, len(reg.Models())),
	}

	for i, o := range reg.Outfits() {
		result.Outfits = append(result.Outfits, listOutfitJSON{
			Index:     i,
			ID:        o.ID,
			Name:      o.Name,
			Group:     o.Group,
			Active:    i == reg.ActiveIndex(),
			Overrides: append([]model.ShapeKeyOverride{}, o.Overrides...),
		})
	}
	for _, m := range reg.Models() {
		result.Models = append(result.Models, m.Object)
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}

// printListText outputs the outfit and model tables with aligned
// columns:
//
//	IDX  NAME       GROUP      ACTIVE  OVERRIDES
//	0    Casual     Casual     *       Body.arm_key=1.00
//	1    Formal     Formal             Body.arm_key=0.00,Body.collar_key=1.00
func printListText(reg *registry.Registry) {
	if len(reg.Outfits()) == 0 {
		fmt.Println("No outfits defined.")
	} else {
		fmt.Printf("%-4s %-20s %-20s %-7s %s\n",
			"IDX", "NAME", "GROUP", "ACTIVE", "OVERRIDES")
		for i, o := range reg.Outfits() {
			active := ""
			if i == reg.ActiveIndex() {
				active = "*"
			}
			fmt.Printf("%-4d %-20s %-20s %-7s %s\n",
				i, o.Name, o.Group, active, FormatOverrides(o.Overrides))
		}
	}

	if len(reg.Models()) == 0 {
		fmt.Println("\nNo managed models.")
		return
	}
	fmt.Printf("\n%-4s %s\n", "IDX", "OBJECT")
	for i, m := range reg.Models() {
		fmt.Printf("%-4d %s\n", i, m.Object)
	}
}

// FormatOverrides converts an override list into a comma-separated
// string of object.key=value entries. Returns "-" if there are none.
//
// Example:
//
//	[{Body arm_key 1.0}, {Body collar_key 0.5}] → "Body.arm_key=1.00,Body.collar_key=0.50"
//	[]                                          → "-"
func FormatOverrides(overrides []model.ShapeKeyOverride) string {
	if len(overrides) == 0 {
		return "-"
	}

	parts := make([]string, 0, len(overrides))
	for _, ov := range overrides {
		parts = append(parts, ov.String())
	}
	return strings.Join(parts, ",")
}
