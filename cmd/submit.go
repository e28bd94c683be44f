package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var submitCmd = &cobra.Command{
	Use:   "submit [id]",
	Short: "Submit a draft asset for review",
	Long: `Move an asset from draft to under_review so an admin can approve it.

Examples:
  alib submit 3f1c...
  alib submit          # fuzzy picker`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSubmit,
}

func runSubmit(cmd *cobra.Command, args []string) error {
	if _, err := requireUser(); err != nil {
		return err
	}
	id, err := pickAsset(args, false)
	if err != nil {
		return err
	}

	asset, err := assetService.Submit(getContext(), id)
	if err != nil {
		return err
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("%s is now %s", asset.DisplayName(), ui.FormatStatus(string(asset.SystemMeta.Status)))))
	return nil
}
