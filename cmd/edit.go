package cmd

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/internal/core/services"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var (
	editSection string
	editStart   string
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:     "edit [id]",
	Aliases: []string{"e"},
	Short:   "Edit an asset section by section",
	Long: `Walk an asset through its sections, opening each one in your editor
as YAML. Saving a section sends only that section; skipping keeps the
change in memory until you come back to it. The review page lists
sections that still have unsaved changes.

On the Documentation page you can stage and upload files, and choose
or remove images.

With --section a single section is opened in your editor and saved
without the interactive wizard.

Sections: ` + sectionNames() + `

Examples:
  alib edit
  alib edit 3f2c9a1e-...
  alib edit 3f2c9a1e-... --section economics
  alib edit 3f2c9a1e-... --start overview`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editSection, "section", "s", "", "Edit and save one section without the wizard")
	editCmd.Flags().StringVar(&editStart, "start", "", "Open the wizard at this section")
}

func runEdit(cmd *cobra.Command, args []string) error {
	if _, err := requireUser(); err != nil {
		return err
	}

	id, err := pickAsset(args, false)
	if err != nil {
		return err
	}

	ctx := getContext()
	form, err := editService.Load(ctx, id)
	if err != nil {
		return err
	}

	if editSection != "" {
		return runEditSection(form, editSection)
	}

	if editStart != "" {
		section, err := domain.ParseSection(editStart)
		if err != nil {
			return err
		}
		form.GoTo(section)
	}

	model := newEditWizardModel(ctx, form, editService, editorLauncher.Command)
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("edit wizard failed: %w", err)
	}

	m := final.(editWizardModel)
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("%s: %d section(s) saved", m.form.Asset.DisplayName(), len(m.form.Saved))))
	if unsaved := m.form.UnsavedSections(); len(unsaved) > 0 {
		titles := make([]string, len(unsaved))
		for i, s := range unsaved {
			titles[i] = s.Title()
		}
		fmt.Println(ui.FormatWarning("Discarded unsaved changes in: " + strings.Join(titles, ", ")))
	}
	if n := len(m.form.Staged); n > 0 {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("%d staged file(s) were not uploaded", n)))
	}
	return nil
}

// runEditSection opens one section in the editor and saves it
func runEditSection(form *domain.EditForm, name string) error {
	section, err := domain.ParseSection(name)
	if err != nil {
		return err
	}
	ctx := getContext()

	fmt.Println(ui.FormatInfo(fmt.Sprintf("Opening %s in %s...", section.Title(), editorLauncher.Name())))
	changed, err := editService.EditSection(ctx, form, section)
	if err != nil {
		if errs, ok := asValidation(err); ok {
			fmt.Println(ui.FormatError(section.Title() + " was not saved"))
			printValidation(errs)
			return errSilent
		}
		return err
	}
	if !changed {
		fmt.Println(ui.FormatMuted("No changes"))
		return nil
	}

	if err := editService.SaveSection(ctx, &form.Asset, section); err != nil {
		return err
	}
	form.MarkSaved(section)
	fmt.Println(ui.FormatSuccess(section.Title() + " saved"))
	for _, line := range services.DerivedSummary(&form.Asset, section) {
		fmt.Println(ui.FormatMuted("  " + line))
	}
	return nil
}

func sectionNames() string {
	names := make([]string, 0, len(domain.EditSections()))
	for _, s := range domain.EditSections() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
