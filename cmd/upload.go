package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var (
	uploadPrimary string
	uploadCaption string
)

var uploadCmd = &cobra.Command{
	Use:   "upload <id> <[doc_type=]path>...",
	Short: "Upload files to an asset",
	Long: `Upload local files to an existing asset. Files are sent in one batch
per document type. A bare path is uploaded as "other".

Document types: ` + strings.Join(domain.ValidDocTypes(), ", ") + `

Examples:
  alib upload 3f1c... datasheet=pump-datasheet.pdf manual=guide.pdf
  alib upload 3f1c... image=front.jpg image=side.jpg --primary front.jpg`,
	Args: cobra.MinimumNArgs(2),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(&uploadPrimary, "primary", "", "Mark this image file as the primary image")
	uploadCmd.Flags().StringVar(&uploadCaption, "caption", "", "Caption applied to every uploaded image")
}

func runUpload(cmd *cobra.Command, args []string) error {
	if _, err := requireUser(); err != nil {
		return err
	}

	files, err := parseStagedArgs(args[1:])
	if err != nil {
		return err
	}
	for i := range files {
		if files[i].DocType == domain.DocTypeImage {
			files[i].Caption = uploadCaption
			files[i].IsPrimary = uploadPrimary != "" && files[i].Filename() == uploadPrimary
		}
	}

	ctx := getContext()
	form, err := editService.Load(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Println(ui.FormatInfo(fmt.Sprintf("%s Uploading %d files to %s...", ui.IconUpload, len(files), form.Asset.DisplayName())))
	resp, err := editService.UploadStaged(ctx, form.Asset.ID, files)
	if err != nil {
		return err
	}
	reportUpload(resp.Uploaded, resp.Failed, resp.Warnings)
	if resp.Uploaded == 0 {
		return errSilent
	}
	return nil
}

// parseStagedArgs parses doc_type=path arguments and checks each file exists
func parseStagedArgs(args []string) ([]domain.StagedFile, error) {
	files := make([]domain.StagedFile, 0, len(args))
	for _, raw := range args {
		f, err := domain.ParseStagedFlag(raw)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(f.Path)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", f.Path, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", f.Path)
		}
		files = append(files, f)
	}
	return files, nil
}

func reportUpload(uploaded int, failed []domain.StagedFile, warnings []string) {
	if uploaded > 0 {
		fmt.Println(ui.FormatSuccess(fmt.Sprintf("Uploaded %d files", uploaded)))
	}
	printWarnings(warnings)
	for _, f := range failed {
		fmt.Println(ui.FormatMuted(fmt.Sprintf("  not uploaded: %s [%s]", f.Path, f.DocType)))
	}
}
