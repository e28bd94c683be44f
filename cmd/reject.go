package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var rejectReason string

var rejectCmd = &cobra.Command{
	Use:   "reject [id]",
	Short: "Reject an asset under review (admin)",
	Long: `Send an asset back to its contributor with a reason.
Requires an admin account. The reason is prompted for when omitted.

Examples:
  alib reject 3f1c... --reason "Missing datasheet"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReject,
}

func init() {
	rejectCmd.Flags().StringVarP(&rejectReason, "reason", "r", "", "Reason shown to the contributor")
}

func runReject(cmd *cobra.Command, args []string) error {
	if _, err := requireAdmin(); err != nil {
		return err
	}
	id, err := pickAsset(args, false)
	if err != nil {
		return err
	}

	reason := rejectReason
	if reason == "" {
		if reason, err = prompt("Rejection reason", "What needs to change?", false, notBlank("reason")); err != nil {
			return err
		}
	}

	asset, err := assetService.Reject(getContext(), id, reason)
	if err != nil {
		if errs, ok := asValidation(err); ok {
			printValidation(errs)
			return errSilent
		}
		return err
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Rejected: %s", asset.DisplayName())))
	return nil
}
