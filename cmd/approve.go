package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var approveCmd = &cobra.Command{
	Use:   "approve [id]",
	Short: "Approve an asset under review (admin)",
	Long: `Approve an asset so it appears in the public catalog.
Requires an admin account.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runApprove,
}

func runApprove(cmd *cobra.Command, args []string) error {
	if _, err := requireAdmin(); err != nil {
		return err
	}
	id, err := pickAsset(args, false)
	if err != nil {
		return err
	}

	asset, err := assetService.Approve(getContext(), id)
	if err != nil {
		return err
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Approved: %s", asset.DisplayName())))
	if url := publicAssetURL(asset.ID); url != "" {
		fmt.Println(ui.RenderKeyValue("Public page", url))
		copyToClipboard(url, "Public URL")
	}
	return nil
}
