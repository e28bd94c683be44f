package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var (
	suggestType   string
	suggestParent string
	suggestReason string
	suggestStatus string
	suggestKind   string
	suggestNotes  string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Propose and moderate category suggestions",
	Long: `The category taxonomy is closed. Propose a new primary category or
subcategory here; admins review the queue.

Examples:
  alib suggest new "Rainwater" --reason "Many water assets need this"
  alib suggest new "Greywater" --type subcategory --parent Water --reason "..."
  alib suggest mine
  alib suggest list --status pending
  alib suggest review <id> approved --notes "Added"`,
}

var suggestNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Propose a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggestNew,
}

var suggestMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your suggestions",
	RunE:  runSuggestMine,
}

var suggestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the moderation queue (admin)",
	RunE:  runSuggestList,
}

var suggestReviewCmd = &cobra.Command{
	Use:   "review <id> <approved|rejected>",
	Short: "Approve or reject a suggestion (admin)",
	Args:  cobra.ExactArgs(2),
	RunE:  runSuggestReview,
}

var suggestDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Withdraw a suggestion",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggestDelete,
}

func init() {
	suggestNewCmd.Flags().StringVarP(&suggestType, "type", "t", string(domain.SuggestionPrimary), "primary or subcategory")
	suggestNewCmd.Flags().StringVarP(&suggestParent, "parent", "p", "", "Parent category for a subcategory")
	suggestNewCmd.Flags().StringVarP(&suggestReason, "reason", "r", "", "Why the category is needed")

	suggestListCmd.Flags().StringVar(&suggestStatus, "status", "", "Filter by status (pending, approved, rejected)")
	suggestListCmd.Flags().StringVarP(&suggestKind, "type", "t", "", "Filter by type (primary, subcategory)")

	suggestReviewCmd.Flags().StringVar(&suggestNotes, "notes", "", "Notes for the submitter")

	suggestCmd.AddCommand(suggestNewCmd)
	suggestCmd.AddCommand(suggestMineCmd)
	suggestCmd.AddCommand(suggestListCmd)
	suggestCmd.AddCommand(suggestReviewCmd)
	suggestCmd.AddCommand(suggestDeleteCmd)
}

func runSuggestNew(cmd *cobra.Command, args []string) error {
	if _, err := requireUser(); err != nil {
		return err
	}

	in := domain.SuggestionInput{
		SuggestionType: domain.SuggestionType(suggestType),
		Name:           args[0],
		ParentCategory: suggestParent,
		Reason:         suggestReason,
	}
	if in.Reason == "" {
		reason, err := prompt("Reason", "Why is this category needed?", false, func(v string) error {
			probe := in
			probe.Reason = v
			if msg, bad := probe.Validate()["reason"]; bad {
				return fmt.Errorf("%s", msg)
			}
			return nil
		})
		if err != nil {
			return err
		}
		in.Reason = reason
	}

	created, err := suggestionService.Submit(getContext(), in)
	if err != nil {
		if errs, ok := asValidation(err); ok {
			fmt.Println(ui.FormatError("Suggestion not sent"))
			printValidation(errs)
			return errSilent
		}
		return err
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Suggestion %q submitted for review", created.Name)))
	return nil
}

func runSuggestMine(cmd *cobra.Command, args []string) error {
	if _, err := requireUser(); err != nil {
		return err
	}
	items, err := suggestionService.Mine(getContext())
	if err != nil {
		return err
	}
	printSuggestions(items, "Your Suggestions")
	return nil
}

func runSuggestList(cmd *cobra.Command, args []string) error {
	if _, err := requireAdmin(); err != nil {
		return err
	}
	var status domain.SuggestionStatus
	if suggestStatus != "" {
		st, err := domain.ParseSuggestionStatus(suggestStatus)
		if err != nil {
			return err
		}
		status = st
	}
	items, err := suggestionService.List(getContext(), status, domain.SuggestionType(suggestKind))
	if err != nil {
		return err
	}
	printSuggestions(items, "Suggestion Queue")
	return nil
}

func runSuggestReview(cmd *cobra.Command, args []string) error {
	if _, err := requireAdmin(); err != nil {
		return err
	}
	reviewed, err := suggestionService.Review(getContext(), args[0], args[1], suggestNotes)
	if err != nil {
		return err
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("%q is now %s", reviewed.Name, reviewed.Status)))
	return nil
}

func runSuggestDelete(cmd *cobra.Command, args []string) error {
	if _, err := requireUser(); err != nil {
		return err
	}
	if err := suggestionService.Delete(getContext(), args[0]); err != nil {
		return err
	}
	fmt.Println(ui.FormatSuccess("Suggestion withdrawn"))
	return nil
}

func printSuggestions(items []domain.CategorySuggestion, title string) {
	if len(items) == 0 {
		fmt.Println(ui.FormatWarning("No suggestions"))
		return
	}
	fmt.Println(ui.FormatTitle(fmt.Sprintf("%s (%d)", title, len(items))))
	fmt.Println()

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Name", MaxWidth: 24},
		{Header: "Type", Width: 12},
		{Header: "Parent", MaxWidth: 16},
		{Header: "Status", Width: 9, Style: ui.FormatStatus},
		{Header: "Reason", MaxWidth: 36},
		{Header: "ID"},
	})
	for _, s := range items {
		table.AddRow(s.Name, string(s.SuggestionType), orDash(s.ParentCategory), string(s.Status), s.Reason, s.ID)
	}
	fmt.Print(table.Render())
}
