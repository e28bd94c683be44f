package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/internal/core/services"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse [id]",
	Short: "Browse approved assets without signing in",
	Long: `List the public catalog of approved assets, or show one of them.

No token is sent. Status filters do not apply to the public catalog.

Examples:
  alib browse
  alib browse --category Water
  alib browse 3f1c...`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: noSession(),
	RunE:        runBrowse,
}

func init() {
	addFilterFlags(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return showAsset(args[0], true)
	}

	filter, err := buildListFilter(cmd)
	if err != nil {
		return err
	}

	resp, err := assetService.List(getContext(), services.ListRequest{Filter: filter, Public: true})
	if err != nil {
		return fmt.Errorf("failed to load public catalog: %w", err)
	}
	if len(resp.Assets) == 0 {
		fmt.Println(ui.FormatWarning("No approved assets match"))
		return nil
	}
	printAssetList(resp, filter, "Public Catalog")
	return nil
}
