package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Inspect the unfinished create draft",
	Long: `The create wizard mirrors its progress to a local draft file so an
interrupted 'alib new' can resume. These commands inspect or discard it.`,
	Annotations: noSession(),
}

var draftShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Print the draft",
	Annotations: noSession(),
	RunE:        runDraftShow,
}

var draftClearCmd = &cobra.Command{
	Use:         "clear",
	Short:       "Discard the draft",
	Annotations: noSession(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := draftService.Discard(); err != nil {
			return err
		}
		fmt.Println(ui.FormatSuccess("Draft discarded"))
		return nil
	},
}

var draftPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the draft file location",
	Annotations: noSession(),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(draftService.Path())
	},
}

func init() {
	draftCmd.AddCommand(draftShowCmd)
	draftCmd.AddCommand(draftClearCmd)
	draftCmd.AddCommand(draftPathCmd)
}

func runDraftShow(cmd *cobra.Command, args []string) error {
	draft, err := draftService.Load()
	if err != nil {
		return err
	}
	if draft == nil {
		fmt.Println(ui.FormatInfo("No draft in progress"))
		return nil
	}

	fmt.Println(ui.FormatTitle("Create Draft"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Step", fmt.Sprintf("%d/%d %s", int(draft.Step)+1, domain.CreateStepCount, draft.Step.Title())))
	fmt.Println(ui.RenderKeyValue("Revision", fmt.Sprintf("%d", draft.Revision)))
	if !draft.SavedAt.IsZero() {
		fmt.Println(ui.RenderKeyValue("Saved", draft.SavedAt.Local().Format("2006-01-02 15:04:05")))
	}
	fmt.Println()
	fmt.Print(renderDraftSummary(draft))
	return nil
}
