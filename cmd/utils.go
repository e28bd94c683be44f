package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/internal/core/services"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

var (
	// errAborted is returned when the user backs out of a picker or prompt
	errAborted = errors.New("aborted")

	// errSilent marks failures whose details were already printed
	errSilent = errors.New("")
)

// OpenURL opens a URL with the OS default handler without waiting for it
func OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open '%s': %w", url, err)
	}
	return nil
}

// confirm asks a y/n question on stdin
func confirm(question string) bool {
	return confirmFrom(os.Stdin, question)
}

func confirmFrom(r io.Reader, question string) bool {
	fmt.Print(ui.StyleWarning.Render(question + " (y/n): "))
	reader := bufio.NewReader(r)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// copyToClipboard copies text when enabled in config and reports the result
func copyToClipboard(text, label string) {
	if appConfig == nil || !appConfig.CopyToClipboard || text == "" {
		return
	}
	if err := clipboard.WriteAll(text); err != nil {
		fmt.Println(ui.FormatMuted("(Clipboard access failed)"))
		return
	}
	fmt.Println(ui.FormatMuted(label + " copied to clipboard"))
}

// publicAssetURL is the web address of an approved asset
func publicAssetURL(id string) string {
	base := strings.TrimRight(appConfig.PublicWebURL, "/")
	if base == "" {
		return ""
	}
	return base + "/public/" + id
}

// pickAsset resolves an asset id from args, or lets the user fuzzy-find one
func pickAsset(args []string, public bool) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0]), nil
	}

	filter := domain.ListFilter{Limit: appConfig.PageSize}
	if !public && appConfig.DefaultStatusFilter != "" {
		filter.Status = appConfig.DefaultStatusFilter
	}
	resp, err := assetService.List(getContext(), services.ListRequest{Filter: filter, Public: public})
	if err != nil {
		return "", err
	}
	if len(resp.Assets) == 0 {
		return "", fmt.Errorf("no assets to choose from")
	}

	idx, err := fuzzyfinder.Find(
		resp.Assets,
		func(i int) string {
			a := resp.Assets[i]
			return fmt.Sprintf("%s  [%s]  %s", a.DisplayName(), a.SystemMeta.Status, a.CategoriesString())
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return assetPreview(&resp.Assets[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", errAborted
		}
		return "", fmt.Errorf("picker failed: %w", err)
	}
	return resp.Assets[idx].ID, nil
}

// pickCategories opens one multi-select finder over the taxonomy primaries.
// Marks beyond maxCategories are dropped with a warning.
func pickCategories(taxonomy domain.Taxonomy, maxCategories int) ([]domain.CategorySelection, error) {
	idxs, err := fuzzyfinder.FindMulti(
		taxonomy,
		func(i int) string { return taxonomy[i].Name },
		fuzzyfinder.WithHeader(fmt.Sprintf("Select up to %d categories (Tab to mark)", maxCategories)),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			c := taxonomy[i]
			var s strings.Builder
			s.WriteString(c.Name + "\n\n")
			if c.Description != "" {
				s.WriteString(c.Description + "\n\n")
			}
			for _, sub := range c.Subcategories {
				s.WriteString("  • " + sub + "\n")
			}
			return s.String()
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, errAborted
		}
		return nil, fmt.Errorf("picker failed: %w", err)
	}
	values, err := selectPrimaries(taxonomy, idxs, appConfig.MinCategories, maxCategories)
	if err != nil {
		fmt.Println(ui.FormatWarning(err.Error()))
	}
	return values, nil
}

// selectPrimaries turns marked taxonomy rows into a selection in taxonomy
// order, stopping at the first mark the limit refuses
func selectPrimaries(taxonomy domain.Taxonomy, idxs []int, minCategories, maxCategories int) ([]domain.CategorySelection, error) {
	idxs = slices.Clone(idxs)
	slices.Sort(idxs)

	sel := domain.NewSelection(minCategories, maxCategories, nil)
	for _, i := range idxs {
		if err := sel.TogglePrimary(taxonomy[i].Name); err != nil {
			return sel.Values(), err
		}
	}
	return sel.Values(), nil
}

// assetPreview is a short multi-line summary used by pickers and the dashboard
func assetPreview(a *domain.Asset) string {
	var s strings.Builder
	s.WriteString(ui.StyleBold.Render(a.DisplayName()) + "\n")
	s.WriteString(ui.FormatMuted(a.ID) + "\n\n")
	s.WriteString(ui.RenderKeyValue("Status", ui.FormatStatus(string(a.SystemMeta.Status))) + "\n")
	s.WriteString(ui.RenderKeyValue("Type", string(a.BasicInformation.AssetType)) + "\n")
	s.WriteString(ui.RenderKeyValue("Categories", a.CategoriesString()) + "\n")
	if len(a.BasicInformation.Tags) > 0 {
		s.WriteString(ui.RenderKeyValue("Tags", strings.Join(a.BasicInformation.Tags, ", ")) + "\n")
	}
	s.WriteString(ui.RenderKeyValue("Updated", a.GetDisplayDate()) + "\n")
	if a.SystemMeta.RejectionReason != "" {
		s.WriteString(ui.RenderKeyValue("Rejected", a.SystemMeta.RejectionReason) + "\n")
	}
	if d := strings.TrimSpace(a.BasicInformation.ShortDescription); d != "" {
		s.WriteString("\n" + d + "\n")
	}
	if sum := strings.TrimSpace(a.Overview.Summary); sum != "" {
		s.WriteString("\n" + sum + "\n")
	}
	return s.String()
}

// renderAssetTable prints assets as a table
func renderAssetTable(assets []domain.Asset) string {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "Name", MaxWidth: 34},
		{Header: "Type", Width: 9},
		{Header: "Status", Width: 13, Style: ui.FormatStatus},
		{Header: "Categories", MaxWidth: 28},
		{Header: "Updated", Width: 10},
		{Header: "ID"},
	})
	for _, a := range assets {
		table.AddRow(
			a.DisplayName(),
			string(a.BasicInformation.AssetType),
			string(a.SystemMeta.Status),
			a.CategoriesString(),
			a.GetDisplayDate(),
			a.ID,
		)
	}
	return table.Render()
}

// printWarnings lists partial failures after a successful operation
func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Println(ui.FormatWarning(w))
	}
}

// printValidation prints field errors, one per line, in field order
func printValidation(errs domain.ValidationErrors) {
	for _, field := range errs.Fields() {
		fmt.Printf("  %s %s\n", ui.StyleBold.Render(field+":"), ui.StyleFieldError.Render(errs[field]))
	}
}

// asValidation unwraps local field validation errors
func asValidation(err error) (domain.ValidationErrors, bool) {
	var errs domain.ValidationErrors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

// requireUser fails with a login hint when no session is active
func requireUser() (*domain.User, error) {
	return session.RequireUser()
}

// requireAdmin fails unless the session user may moderate
func requireAdmin() (*domain.User, error) {
	return session.RequireAdmin()
}
