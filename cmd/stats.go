package cmd

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/internal/core/services"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var (
	statsHTML bool
	statsOpen bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Long: `Summarize the catalog by lifecycle status, asset type and category.

With --html the summary is also rendered as an interactive chart page
in the cache directory.

Examples:
  alib stats
  alib stats --html --open`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsHTML, "html", false, "Write an HTML chart page")
	statsCmd.Flags().BoolVar(&statsOpen, "open", false, "Open the HTML page in the browser (implies --html)")
}

func runStats(cmd *cobra.Command, args []string) error {
	if _, err := requireUser(); err != nil {
		return err
	}

	fmt.Println(ui.FormatRocket("Analyzing catalog..."))
	stats, err := statsService.Execute(getContext())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(ui.FormatTitle("Catalog Analytics"))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Total Assets:"), stats.Total)
	for _, c := range stats.ByStatus {
		fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render(c.Label+":"), c.Value)
	}
	w.Flush()
	fmt.Println()

	renderBars("Asset Types", stats.ByType, 0)
	renderBars("Top Categories", stats.ByCategory, 8)

	if !statsHTML && !statsOpen {
		return nil
	}

	path := appVault.GetCachePath("stats.html")
	if err := writeStatsPage(stats, path); err != nil {
		return err
	}
	fmt.Println(ui.FormatSuccess("Chart page written to " + path))
	if statsOpen {
		return OpenURL("file://" + filepath.ToSlash(path))
	}
	return nil
}

func writeStatsPage(stats *services.StatsResponse, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart page: %w", err)
	}
	defer f.Close()
	return statsService.Render(stats, f)
}

// renderBars displays a horizontal bar chart; limit 0 shows everything
func renderBars(title string, counts []services.Count, limit int) {
	if len(counts) == 0 {
		return
	}

	fmt.Println(ui.StyleHeader.Render(title))

	if limit <= 0 || limit > len(counts) {
		limit = len(counts)
	}
	maxCount := counts[0].Value
	barWidth := 20

	for _, c := range counts[:limit] {
		length := int(math.Ceil(float64(c.Value) / float64(maxCount) * float64(barWidth)))
		fmt.Printf("%s %-20s %s\n",
			ui.StyleAccent.Render(padBar(length, barWidth)),
			ui.Truncate(c.Label, 20),
			ui.StyleMuted.Render(fmt.Sprintf("%d", c.Value)),
		)
	}
	fmt.Println()
}

func padBar(length, width int) string {
	bar := make([]rune, width)
	for i := range bar {
		if i < length {
			bar[i] = '█'
		} else {
			bar[i] = ' '
		}
	}
	return string(bar)
}
