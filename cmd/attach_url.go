package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var attachTarget string

var attachURLCmd = &cobra.Command{
	Use:   "attach-url <id> <url>",
	Short: "Link a remote file to an asset",
	Long: `Attach a file hosted elsewhere instead of uploading it.

Examples:
  alib attach-url 3f1c... https://cdn.example/pump-datasheet.pdf --target datasheet`,
	Args: cobra.ExactArgs(2),
	RunE: runAttachURL,
}

func init() {
	attachURLCmd.Flags().StringVar(&attachTarget, "target", domain.DocTypeOther, "Field the link belongs to")
}

func runAttachURL(cmd *cobra.Command, args []string) error {
	if _, err := requireUser(); err != nil {
		return err
	}

	asset, err := editService.AttachURL(getContext(), args[0], domain.FileLink{Target: attachTarget, URL: args[1]})
	if err != nil {
		if errs, ok := asValidation(err); ok {
			printValidation(errs)
			return errSilent
		}
		return err
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Linked %s to %s", args[1], asset.DisplayName())))
	return nil
}
