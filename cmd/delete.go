package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an asset",
	Long: `Delete an asset and its uploaded files from the library.
Without an id, pick one interactively. You are asked to confirm unless
--force is given.

Examples:
  alib delete 3f1c...
  alib delete --force 3f1c...`,
	Aliases: []string{"rm"},
	Args:    cobra.MaximumNArgs(1),
	RunE:    runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	if _, err := requireUser(); err != nil {
		return err
	}
	id, err := pickAsset(args, false)
	if err != nil {
		return err
	}

	ctx := getContext()
	asset, err := assetService.Get(ctx, id, false)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s %s\n", ui.StyleBold.Render("Asset:"), asset.DisplayName(), ui.FormatMuted("("+asset.ID+")"))
	if !deleteForce && !confirm("Delete this asset permanently?") {
		fmt.Println(ui.FormatInfo("Cancelled"))
		return nil
	}

	if err := assetService.Delete(ctx, asset.ID); err != nil {
		return err
	}
	appLogger.Info("asset deleted", "asset_id", asset.ID)
	fmt.Println(ui.FormatSuccess("Deleted: " + asset.DisplayName()))
	return nil
}
