package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var cleanDraft bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clear cached files",
	Long: `Remove section scratch files and rendered chart pages from the cache
directory. The login token is kept.

Examples:
  alib clean
  alib clean --draft   # also discard the unfinished create draft`,
	Annotations: noSession(),
	RunE:        runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanDraft, "draft", false, "Also discard the create draft")
}

func runClean(cmd *cobra.Command, args []string) error {
	_, size, err := appVault.CacheUsage()
	if err != nil {
		appLogger.Warn("could not measure cache", "error", err)
	}
	fmt.Print(ui.StyleWarning.Render("Cleaning cache... "))
	removed, err := appVault.CleanCache()
	if err != nil {
		fmt.Println(ui.FormatError("Failed"))
		return err
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Done (%d entries, %s freed)", removed, formatBytes(size))))

	if cleanDraft {
		if err := draftService.Discard(); err != nil {
			return err
		}
		fmt.Println(ui.FormatMuted("Create draft discarded."))
	}
	return nil
}

// formatBytes renders a size with a binary unit
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
