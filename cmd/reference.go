package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/internal/adapters/api"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var referenceCmd = &cobra.Command{
	Use:     "reference [kind]",
	Aliases: []string{"ref"},
	Short:   "Show reference data",
	Long: `Show a reference list served by the API. Without a kind, print the
category taxonomy.

Kinds: ` + strings.Join(api.ReferenceKinds(), ", ") + `

Examples:
  alib reference
  alib reference climate-zones`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: noSession(),
	ValidArgs:   api.ReferenceKinds(),
	RunE:        runReference,
}

func runReference(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	if len(args) == 0 || strings.Trim(args[0], "/") == api.RefCategories {
		taxonomy, err := referenceService.Taxonomy(ctx)
		if err != nil {
			return err
		}
		fmt.Println(ui.FormatTitle(fmt.Sprintf("Categories (%d)", len(taxonomy))))
		fmt.Println()
		for _, c := range taxonomy {
			fmt.Printf("%s %s\n", ui.StyleAccent.Render("•"), ui.StyleBold.Render(c.Name))
			for _, sub := range c.Subcategories {
				fmt.Printf("    %s\n", ui.StyleMuted.Render(sub))
			}
		}
		return nil
	}

	kind := args[0]
	items, err := referenceService.List(ctx, kind)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println(ui.FormatWarning("No entries for " + kind))
		return nil
	}

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Value", Width: 12},
		{Header: "Label", MaxWidth: 30},
		{Header: "Description", MaxWidth: 60},
	})
	for _, it := range items {
		table.AddRow(it.Value, it.Label, it.Description)
	}
	fmt.Println(ui.FormatTitle(kind))
	fmt.Println()
	fmt.Print(table.Render())
	return nil
}
