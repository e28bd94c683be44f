package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var (
	extractSources []string
	extractURL     string
)

var extractCmd = &cobra.Command{
	Use:   "extract <id>",
	Short: "Fill asset fields with AI extraction",
	Long: `Ask the server to read the asset's uploaded documents and/or a website
and populate empty fields. Review the result with 'alib edit'.

Examples:
  alib extract 3f1c...                         # documents
  alib extract 3f1c... --url https://maker.example --source website`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringSliceVar(&extractSources, "source", nil, "Sources to read (documents, website)")
	extractCmd.Flags().StringVar(&extractURL, "url", "", "Website to read")
}

func runExtract(cmd *cobra.Command, args []string) error {
	if _, err := requireUser(); err != nil {
		return err
	}

	req := domain.AIExtractRequest{Sources: extractSources, URL: extractURL}
	if len(req.Sources) == 0 {
		req.Sources = []string{"documents"}
		if extractURL != "" {
			req.Sources = append(req.Sources, "website")
		}
	}

	fmt.Println(ui.FormatInfo(ui.IconSpark + " Running AI extraction (" + strings.Join(req.Sources, ", ") + ")..."))
	asset, err := editService.Extract(getContext(), args[0], req)
	if err != nil {
		if errs, ok := asValidation(err); ok {
			printValidation(errs)
			return errSilent
		}
		return err
	}

	fmt.Println(ui.FormatSuccess("Extraction finished for " + asset.DisplayName()))
	if fields := asset.AIAssistance.FieldsPopulated; len(fields) > 0 {
		fmt.Println(ui.RenderKeyValue("Populated", strings.Join(fields, ", ")))
	}
	fmt.Println(ui.FormatInfo("Review the result with: alib edit " + asset.ID))
	return nil
}
