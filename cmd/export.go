package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/internal/core/services"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var (
	exportFormat string
	exportIDs    []string
	exportJobs   int
)

// ExportProfile defines how an asset is written to disk
type ExportProfile struct {
	Extension string
	Marshal   func(*domain.Asset) ([]byte, error)
}

var exportProfiles = map[string]ExportProfile{
	"yaml": {
		Extension: "yaml",
		Marshal: func(a *domain.Asset) ([]byte, error) {
			return yaml.Marshal(a)
		},
	},
	"json": {
		Extension: "json",
		Marshal: func(a *domain.Asset) ([]byte, error) {
			data, err := json.MarshalIndent(a, "", "  ")
			if err != nil {
				return nil, err
			}
			return append(data, '\n'), nil
		},
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [output-dir]",
	Short: "Export assets to YAML or JSON files",
	Long: `Write one file per asset into the output directory (./export by default).
Assets are selected with the same filters as list, or by id with --id.

Examples:
  alib export
  alib export --status approved -f json ./backup
  alib export --id 3f2c9a1e-... --id 9b1d...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	addFilterFlags(exportCmd)
	exportCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status (draft, under_review, approved, deprecated)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "Output format (yaml, json)")
	exportCmd.Flags().StringArrayVar(&exportIDs, "id", nil, "Export this asset id (repeatable)")
	exportCmd.Flags().IntVarP(&exportJobs, "jobs", "j", 4, "Concurrent fetches for --id")
}

func runExport(cmd *cobra.Command, args []string) error {
	if _, err := requireUser(); err != nil {
		return err
	}
	ctx := getContext()

	profile, ok := exportProfiles[exportFormat]
	if !ok {
		return fmt.Errorf("unsupported format: %s (valid: yaml, json)", exportFormat)
	}

	outDir := "export"
	if len(args) > 0 {
		outDir = args[0]
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	var assets []domain.Asset
	if len(exportIDs) > 0 {
		fetched, err := fetchAssets(ctx, exportIDs)
		if err != nil {
			return err
		}
		assets = fetched
	} else {
		filter, err := buildListFilter(cmd)
		if err != nil {
			return err
		}
		resp, err := assetService.List(ctx, services.ListRequest{Filter: filter})
		if err != nil {
			return fmt.Errorf("failed to list assets: %w", err)
		}
		assets = resp.Assets
	}

	if len(assets) == 0 {
		fmt.Println(ui.FormatWarning("Nothing to export"))
		return nil
	}

	fmt.Println(ui.FormatRocket(fmt.Sprintf("Exporting %d asset(s) to %s (%s)...", len(assets), outDir, exportFormat)))

	success := 0
	for i := range assets {
		path, err := exportAsset(&assets[i], outDir, profile)
		if err != nil {
			fmt.Println(ui.FormatWarning(fmt.Sprintf("Failed %s: %v", assets[i].ID, err)))
			continue
		}
		appLogger.Debug("exported asset", "id", assets[i].ID, "path", path)
		success++
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Exported %d of %d asset(s)", success, len(assets))))
	if success < len(assets) {
		return errSilent
	}
	return nil
}

// fetchAssets loads assets by id concurrently, keeping the given order
func fetchAssets(ctx context.Context, ids []string) ([]domain.Asset, error) {
	assets := make([]domain.Asset, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(exportJobs, 1))
	for i, id := range ids {
		g.Go(func() error {
			a, err := assetService.Get(gctx, id, false)
			if err != nil {
				return fmt.Errorf("asset %s: %w", id, err)
			}
			assets[i] = *a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return assets, nil
}

// exportAsset writes one asset and returns the file path
func exportAsset(a *domain.Asset, outDir string, profile ExportProfile) (string, error) {
	data, err := profile.Marshal(a)
	if err != nil {
		return "", err
	}
	path := filepath.Join(outDir, exportFileName(a)+"."+profile.Extension)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

var unsafeName = regexp.MustCompile(`[^a-z0-9]+`)

// exportFileName is "<slug>-<id prefix>", or just the id when the name is empty
func exportFileName(a *domain.Asset) string {
	slug := strings.Trim(unsafeName.ReplaceAllString(strings.ToLower(a.BasicInformation.Name), "-"), "-")
	id := a.ID
	if len(id) > 8 {
		id = id[:8]
	}
	if slug == "" {
		return a.ID
	}
	return slug + "-" + id
}
