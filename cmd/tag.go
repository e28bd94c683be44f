package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var tagCmd = &cobra.Command{
	Use:   "tag [command]",
	Short: "Manage tags on assets",
	Long:  `Add or remove tags on an asset without opening the edit wizard.`,
}

var tagAddCmd = &cobra.Command{
	Use:   "add <id> <tags...>",
	Short: "Add tags to an asset",
	Example: `  alib tag add 3f2c9a1e-... "solar, off-grid"
  alib tag add 3f2c9a1e-... water-filtration rural`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateTags(args[0], args[1:], true)
	},
}

var tagRemoveCmd = &cobra.Command{
	Use:     "remove <id> <tags...>",
	Aliases: []string{"rm"},
	Short:   "Remove tags from an asset",
	Example: `  alib tag remove 3f2c9a1e-... solar`,
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateTags(args[0], args[1:], false)
	},
}

func init() {
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRemoveCmd)
}

func updateTags(id string, input []string, isAdd bool) error {
	if _, err := requireUser(); err != nil {
		return err
	}
	ctx := getContext()

	asset, err := assetService.Get(ctx, id, false)
	if err != nil {
		return err
	}

	var requested []string
	for _, raw := range input {
		requested = append(requested, splitList(raw)...)
	}
	if len(requested) == 0 {
		return fmt.Errorf("no tags given")
	}

	basic := asset.BasicInformation
	updated, changed := mergeTags(basic.Tags, requested, isAdd)
	if !changed {
		fmt.Println(ui.FormatInfo("Tags already up to date"))
		return nil
	}
	basic.Tags = updated

	saved, err := assetService.Update(ctx, id, domain.AssetPatch{}.WithBasicInformation(basic))
	if err != nil {
		return err
	}

	verb := "Removed"
	if isAdd {
		verb = "Added"
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("%s tags on %s", verb, saved.DisplayName())))
	if len(saved.BasicInformation.Tags) == 0 {
		fmt.Println(ui.FormatMuted("  (no tags)"))
	} else {
		fmt.Println(ui.FormatMuted("  " + strings.Join(saved.BasicInformation.Tags, ", ")))
	}
	return nil
}

// mergeTags adds or removes tags case-insensitively, keeping existing order
func mergeTags(existing, tags []string, isAdd bool) ([]string, bool) {
	has := func(list []string, tag string) bool {
		return slices.ContainsFunc(list, func(t string) bool { return strings.EqualFold(t, tag) })
	}

	result := slices.Clone(existing)
	changed := false
	if isAdd {
		for _, tag := range tags {
			if !has(result, tag) {
				result = append(result, tag)
				changed = true
			}
		}
		return result, changed
	}

	result = slices.DeleteFunc(result, func(t string) bool { return has(tags, t) })
	return result, len(result) != len(existing)
}
