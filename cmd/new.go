package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/internal/adapters/repository"
	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/internal/core/services"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var (
	newAssetType   string
	newName        string
	newDescription string
	newCategories  []string
	newTags        []string
	newVersion     string
	newFiles       []string
	newBIMLinks    []string
	newWebsiteURL  string
	newExtract     bool
	newFresh       bool

	newSupplierName  string
	newSupplierOrg   string
	newSupplierEmail string
	newSupplierPhone string
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:     "new",
	Aliases: []string{"create"},
	Short:   "Create a new asset",
	Long: `Create a new asset with the four-step wizard:
Basic Information, Supplier Information, Documentation and Review.

Progress is saved to a local draft after every change, so an interrupted
wizard picks up where it left off. Pass --fresh to start over.

When --type and --name are given the wizard is skipped and the asset is
created straight from flags. Categories are picked interactively when
--category is omitted.

Examples:
  alib new
  alib new --type product --name "Solar Pump" --category "Water:Pumping"
  alib new --type product --name "Kiln" --category Energy \
      --file datasheet=./kiln.pdf --file image=./kiln.jpg --extract`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

func init() {
	f := newCmd.Flags()
	f.StringVarP(&newAssetType, "type", "t", "", "Asset type (product, service, system)")
	f.StringVarP(&newName, "name", "n", "", "Asset name")
	f.StringVarP(&newDescription, "description", "d", "", "Short description")
	f.StringArrayVarP(&newCategories, "category", "c", nil, `Category as "Primary" or "Primary:sub1,sub2" (repeatable)`)
	f.StringSliceVar(&newTags, "tag", nil, "Tags (comma separated or repeated)")
	f.StringVar(&newVersion, "version", "", "Asset version")
	f.StringArrayVarP(&newFiles, "file", "f", nil, "File to upload as [doc_type=]path (repeatable)")
	f.StringArrayVar(&newBIMLinks, "bim", nil, "BIM link as label=url (repeatable)")
	f.StringVar(&newWebsiteURL, "website-url", "", "Product website used by AI extraction")
	f.BoolVar(&newExtract, "extract", false, "Run AI extraction after creating")
	f.BoolVar(&newFresh, "fresh", false, "Discard any saved draft and start over")

	f.StringVar(&newSupplierName, "supplier-name", "", "Supplier contact name")
	f.StringVar(&newSupplierOrg, "supplier-org", "", "Supplier organization")
	f.StringVar(&newSupplierEmail, "supplier-email", "", "Supplier email")
	f.StringVar(&newSupplierPhone, "supplier-phone", "", "Supplier phone")
}

func runNew(cmd *cobra.Command, args []string) error {
	if _, err := requireUser(); err != nil {
		return err
	}
	ctx := getContext()

	taxonomy, err := referenceService.Taxonomy(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	if newAssetType != "" || newName != "" {
		draft, err := draftFromFlags(taxonomy)
		if err != nil {
			return err
		}
		return finishCreate(ctx, draft, newExtract)
	}

	if newFresh {
		if err := draftService.Discard(); err != nil {
			return err
		}
	}
	draft, resumed, err := draftService.Resume()
	if err != nil {
		return err
	}
	if resumed {
		fmt.Println(ui.FormatInfo(fmt.Sprintf("Resuming draft from step %d (%s)", int(draft.Step)+1, draft.Step.Title())))
	}

	return runCreateWizard(ctx, draft, taxonomy)
}

// draftFromFlags builds a complete draft from command-line flags
func draftFromFlags(taxonomy domain.Taxonomy) (*domain.CreateDraft, error) {
	assetType, err := domain.ParseAssetType(newAssetType)
	if err != nil {
		return nil, err
	}

	var sel *domain.Selection
	if len(newCategories) == 0 {
		picked, err := pickCategories(taxonomy, appConfig.MaxCategories)
		if err != nil {
			return nil, err
		}
		sel = domain.NewSelection(appConfig.MinCategories, appConfig.MaxCategories, picked)
	} else {
		var entries []domain.CategorySelection
		for _, raw := range newCategories {
			c, err := domain.ParseCategoryFlag(raw)
			if err != nil {
				return nil, err
			}
			entries = append(entries, c)
		}
		sel = domain.NewSelection(appConfig.MinCategories, appConfig.MaxCategories, entries)
	}
	if err := sel.Validate(taxonomy); err != nil {
		return nil, err
	}

	draft := domain.NewCreateDraft()
	draft.BasicInformation = domain.BasicInformation{
		AssetType:        assetType,
		Name:             strings.TrimSpace(newName),
		ShortDescription: strings.TrimSpace(newDescription),
		Categories:       sel.Values(),
		Tags:             newTags,
		Version:          newVersion,
	}
	draft.Contributor = domain.Contributor{
		Name:         newSupplierName,
		Organization: newSupplierOrg,
		Email:        newSupplierEmail,
		Phone:        newSupplierPhone,
	}
	draft.WebsiteURL = strings.TrimSpace(newWebsiteURL)

	if draft.Files, err = parseStagedArgs(newFiles); err != nil {
		return nil, err
	}
	for _, raw := range newBIMLinks {
		label, url, found := strings.Cut(raw, "=")
		if !found {
			return nil, fmt.Errorf("invalid --bim %q: use label=url", raw)
		}
		draft.BIMLinks = append(draft.BIMLinks, domain.BIMLink{Label: strings.TrimSpace(label), URL: strings.TrimSpace(url)})
	}
	return draft, nil
}

func runCreateWizard(ctx context.Context, draft *domain.CreateDraft, taxonomy domain.Taxonomy) error {
	create := func(ctx context.Context, d *domain.CreateDraft, extract bool) (*services.CreateAssetResponse, error) {
		return createService.Execute(ctx, services.CreateAssetRequest{Draft: d, Extract: extract})
	}
	model := newCreateWizardModel(ctx, draft, taxonomy, appConfig.MinCategories, appConfig.MaxCategories, draftService.Save, create)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if appConfig.WatchDraft {
		watchCtx, stop := context.WithCancel(ctx)
		defer stop()
		watcher := repository.NewDraftWatcher(draftRepo, appLogger)
		go func() {
			if err := watcher.Run(watchCtx); err != nil {
				appLogger.Warn("draft watcher stopped", "error", err)
			}
		}()
		go func() {
			for change := range watcher.Changes() {
				p.Send(draftChangedMsg{change: change})
			}
		}()
	}

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}

	m := final.(createWizardModel)
	if m.result == nil {
		fmt.Println(ui.FormatInfo("Draft saved. Run 'alib new' to continue, or 'alib draft clear' to discard it."))
		return nil
	}
	reportCreate(m.result)
	return nil
}

// finishCreate runs the create pipeline without the wizard
func finishCreate(ctx context.Context, draft *domain.CreateDraft, extract bool) error {
	fmt.Println(ui.FormatInfo("Creating " + draft.BasicInformation.Name + "..."))
	resp, err := createService.Execute(ctx, services.CreateAssetRequest{Draft: draft, Extract: extract, KeepDraft: true})
	if err != nil {
		if errs, ok := asValidation(err); ok {
			fmt.Println(ui.FormatError("The asset is missing required fields"))
			printValidation(errs)
			return errSilent
		}
		return err
	}
	reportCreate(resp)
	return nil
}

func reportCreate(resp *services.CreateAssetResponse) {
	a := resp.Asset
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Created %s", a.DisplayName())))
	fmt.Println(ui.RenderKeyValue("ID", a.ID))
	fmt.Println(ui.RenderKeyValue("Status", ui.FormatStatus(string(a.SystemMeta.Status))))
	if resp.Uploaded > 0 {
		fmt.Println(ui.RenderKeyValue("Uploaded", fmt.Sprintf("%d file(s)", resp.Uploaded)))
	}
	if resp.Extracted {
		fmt.Println(ui.FormatInfo(ui.IconSpark + " AI extraction filled in the remaining sections"))
	}
	for _, f := range resp.Failed {
		fmt.Fprintln(os.Stderr, ui.FormatMuted("  not uploaded: "+f.Path))
	}
	printWarnings(resp.Warnings)
	if !resp.DraftCleared && len(resp.Warnings) > 0 {
		fmt.Println(ui.FormatMuted("The draft was kept; clear it with 'alib draft clear' once resolved."))
	}

	copyToClipboard(resp.EditTarget(), "Asset ID")
	fmt.Println()
	fmt.Println(ui.FormatInfo("Continue with: alib edit " + resp.EditTarget()))
}
