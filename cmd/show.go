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
	showCopy bool
	showWeb  bool
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one asset in detail",
	Long: `Show an asset with every section and its derived values.
Without an id, pick one interactively.

Examples:
  alib show 3f1c...
  alib show            # fuzzy picker
  alib show 3f1c... --copy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showCopy, "copy", false, "Copy the asset id to the clipboard")
	showCmd.Flags().BoolVar(&showWeb, "web", false, "Open the public page in the browser (approved assets)")
}

func runShow(cmd *cobra.Command, args []string) error {
	if _, err := requireUser(); err != nil {
		return err
	}
	id, err := pickAsset(args, false)
	if err != nil {
		return err
	}
	return showAsset(id, false)
}

func showAsset(id string, public bool) error {
	asset, err := assetService.Get(getContext(), id, public)
	if err != nil {
		return err
	}

	fmt.Print(renderAssetDetail(asset))

	if showCopy {
		copyToClipboard(asset.ID, "Asset id")
	}
	if showWeb || public {
		url := publicAssetURL(asset.ID)
		if url == "" {
			return nil
		}
		if asset.SystemMeta.Status == domain.StatusApproved {
			fmt.Println(ui.RenderKeyValue("Public page", url))
		}
		if showWeb {
			return OpenURL(url)
		}
	}
	return nil
}

// renderAssetDetail renders the full asset view
func renderAssetDetail(a *domain.Asset) string {
	var s strings.Builder
	s.WriteString(ui.FormatTitle(ui.IconAsset+" "+a.DisplayName()) + "\n\n")
	s.WriteString(ui.RenderKeyValue("ID", a.ID) + "\n")
	s.WriteString(ui.RenderKeyValue("Status", ui.FormatStatus(string(a.SystemMeta.Status))) + "\n")
	s.WriteString(ui.RenderKeyValue("Type", string(a.BasicInformation.AssetType)) + "\n")
	s.WriteString(ui.RenderKeyValue("Version", orDash(a.BasicInformation.Version)) + "\n")
	s.WriteString(ui.RenderKeyValue("Updated", a.GetDisplayDate()) + "\n")
	if a.SystemMeta.RejectionReason != "" {
		s.WriteString(ui.RenderKeyValue("Rejection", a.SystemMeta.RejectionReason) + "\n")
	}
	if a.BasicInformation.ShortDescription != "" {
		s.WriteString("\n" + a.BasicInformation.ShortDescription + "\n")
	}

	s.WriteString("\n" + ui.StyleHeader.Render("Categories") + "\n")
	if len(a.BasicInformation.Categories) == 0 {
		s.WriteString(ui.FormatMuted("  none") + "\n")
	}
	for _, c := range a.BasicInformation.Categories {
		line := "  • " + c.Primary
		if len(c.Subcategories) > 0 {
			line += ui.FormatMuted(" (" + strings.Join(c.Subcategories, ", ") + ")")
		}
		s.WriteString(line + "\n")
	}
	if len(a.BasicInformation.Tags) > 0 {
		s.WriteString(ui.RenderKeyValue(ui.IconTag+" Tags", strings.Join(a.BasicInformation.Tags, ", ")) + "\n")
	}

	if c := a.Contributor; c.Name != "" || c.Organization != "" || c.Email != "" {
		s.WriteString("\n" + ui.StyleHeader.Render("Contributor") + "\n")
		for _, kv := range [][2]string{
			{"Name", c.Name}, {"Organization", c.Organization}, {"Email", c.Email},
			{"Website", c.Website}, {"Country", c.Country},
		} {
			if kv[1] != "" {
				s.WriteString(ui.RenderKeyValue(kv[0], kv[1]) + "\n")
			}
		}
	}

	if a.Overview.Summary != "" {
		s.WriteString("\n" + ui.StyleHeader.Render("Overview") + "\n")
		s.WriteString(a.Overview.Summary + "\n")
		if len(a.Overview.KeyFeatures) > 0 {
			s.WriteString(ui.RenderList(a.Overview.KeyFeatures))
		}
	}

	docs := a.DocumentationUploads
	if len(docs.Documents)+len(docs.Images)+len(docs.BIMLinks) > 0 {
		s.WriteString("\n" + ui.StyleHeader.Render("Documentation") + "\n")
		for _, d := range docs.Documents {
			s.WriteString(fmt.Sprintf("  %s %s %s\n", ui.IconUpload, d.Filename, ui.FormatMuted("["+d.DocType+"]")))
		}
		for _, img := range docs.Images {
			label := img.Filename
			if img.IsPrimary {
				label += ui.StyleSelected.Render(" ★ primary")
			}
			s.WriteString("  🖼 " + label + "\n")
		}
		for _, l := range docs.BIMLinks {
			s.WriteString(fmt.Sprintf("  🔗 %s %s\n", l.URL, ui.FormatMuted(l.Format)))
		}
	}

	for _, section := range []domain.Section{domain.SectionPhysicalConfiguration, domain.SectionEconomics} {
		if lines := services.DerivedSummary(a, section); len(lines) > 0 {
			s.WriteString("\n" + ui.StyleHeader.Render(section.Title()) + "\n")
			for _, l := range lines {
				s.WriteString("  " + l + "\n")
			}
		}
	}

	if a.AIAssistance.Status != "" {
		s.WriteString("\n" + ui.StyleHeader.Render(ui.IconSpark+" AI Assistance") + "\n")
		s.WriteString(ui.RenderKeyValue("Status", a.AIAssistance.Status) + "\n")
		if len(a.AIAssistance.FieldsPopulated) > 0 {
			s.WriteString(ui.RenderKeyValue("Populated", strings.Join(a.AIAssistance.FieldsPopulated, ", ")) + "\n")
		}
	}
	s.WriteString("\n")
	return s.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
