package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/internal/core/services"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var (
	listSearch    string
	listCategory  string
	listAssetType string
	listStatus    string
	listScaling   string
	listLimit     int
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List catalog assets",
	Aliases: []string{"ls"},
	Long: `List assets in a table format. Every filter maps to a query parameter
of the assets endpoint.

Examples:
  alib list
  alib list --status under_review
  alib list --category Energy --type physical
  alib list --search "solar"`,
	RunE: runList,
}

func init() {
	addFilterFlags(listCmd)
	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status (draft, under_review, approved, deprecated)")
}

// addFilterFlags registers the filters shared by list and browse
func addFilterFlags(c *cobra.Command) {
	c.Flags().StringVarP(&listSearch, "search", "s", "", "Free-text search")
	c.Flags().StringVarP(&listCategory, "category", "c", "", "Filter by primary category")
	c.Flags().StringVarP(&listAssetType, "type", "t", "", "Filter by asset type (physical, plan, hybrid)")
	c.Flags().StringVar(&listScaling, "scaling", "", "Filter by scaling potential")
	c.Flags().IntVarP(&listLimit, "limit", "n", 0, "Maximum number of results")
}

func buildListFilter(cmd *cobra.Command) (domain.ListFilter, error) {
	filter := domain.ListFilter{
		Search:   listSearch,
		Category: listCategory,
		Scaling:  listScaling,
		Limit:    listLimit,
	}
	if filter.Limit <= 0 {
		filter.Limit = appConfig.PageSize
	}
	if listAssetType != "" {
		t, err := domain.ParseAssetType(listAssetType)
		if err != nil {
			return filter, err
		}
		filter.AssetType = string(t)
	}

	status := listStatus
	if cmd.Flags().Lookup("status") != nil && !cmd.Flags().Changed("status") {
		status = appConfig.DefaultStatusFilter
	}
	if status != "" {
		s, err := domain.ParseStatus(status)
		if err != nil {
			return filter, err
		}
		filter.Status = string(s)
	}
	return filter, nil
}

func runList(cmd *cobra.Command, args []string) error {
	if _, err := requireUser(); err != nil {
		return err
	}
	filter, err := buildListFilter(cmd)
	if err != nil {
		return err
	}

	resp, err := assetService.List(getContext(), services.ListRequest{Filter: filter})
	if err != nil {
		return fmt.Errorf("failed to list assets: %w", err)
	}

	printAssetList(resp, filter, "Assets")
	return nil
}

func printAssetList(resp *services.ListResponse, filter domain.ListFilter, title string) {
	if len(resp.Assets) == 0 {
		if describeFilter(filter) != "" {
			fmt.Println(ui.FormatWarning("No assets match the current filters"))
		} else {
			fmt.Println(ui.FormatWarning("No assets found"))
			fmt.Println(ui.FormatInfo("Create your first asset with: alib new"))
		}
		return
	}

	if desc := describeFilter(filter); desc != "" {
		title = fmt.Sprintf("%s (%s)", title, desc)
	}
	fmt.Println(ui.FormatTitle(title))
	fmt.Println()
	fmt.Print(renderAssetTable(resp.Assets))
	fmt.Println()
	fmt.Println(ui.FormatMuted(fmt.Sprintf("Showing %d of %d assets", len(resp.Assets), resp.Total)))
}

func describeFilter(f domain.ListFilter) string {
	var parts []string
	add := func(label, v string) {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, label+": "+v)
		}
	}
	add("search", f.Search)
	add("category", f.Category)
	add("type", f.AssetType)
	add("status", f.Status)
	add("scaling", f.Scaling)
	return strings.Join(parts, ", ")
}
