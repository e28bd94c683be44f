package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kamal-hamza/alib-cli/internal/adapters/repository"
	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/internal/core/services"
)

var testTaxonomy = domain.Taxonomy{
	{Name: "Energy", Subcategories: []string{"Solar", "Wind"}},
	{Name: "Water", Subcategories: []string{"Filtration"}},
	{Name: "Food"},
}

type wizardRecorder struct {
	saves   int
	last    domain.CreateDraft
	saveErr error

	created   *domain.CreateDraft
	extracted bool
	createErr error
}

func (r *wizardRecorder) save(d *domain.CreateDraft) error {
	r.saves++
	r.last = *d
	return r.saveErr
}

func (r *wizardRecorder) create(ctx context.Context, d *domain.CreateDraft, extract bool) (*services.CreateAssetResponse, error) {
	r.created = d
	r.extracted = extract
	if r.createErr != nil {
		return nil, r.createErr
	}
	return &services.CreateAssetResponse{Asset: &domain.Asset{ID: "new-id"}}, nil
}

func newTestWizard(draft *domain.CreateDraft, maxCategories int) (createWizardModel, *wizardRecorder) {
	rec := &wizardRecorder{}
	m := newCreateWizardModel(context.Background(), draft, testTaxonomy, 1, maxCategories, rec.save, rec.create)
	return m, rec
}

func sendKeys(t *testing.T, m createWizardModel, msgs ...tea.KeyMsg) createWizardModel {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(createWizardModel)
	}
	return m
}

func typeText(s string) []tea.KeyMsg {
	var msgs []tea.KeyMsg
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyNext  = tea.KeyMsg{Type: tea.KeyCtrlN}
	keyBack  = tea.KeyMsg{Type: tea.KeyCtrlB}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

// fillBasicInfo picks a type, types a name and selects the first category
func fillBasicInfo(t *testing.T, m createWizardModel, name string) createWizardModel {
	t.Helper()
	m = sendKeys(t, m, keyRight, keyTab)
	m = sendKeys(t, m, typeText(name)...)
	m = sendKeys(t, m, keyTab, keyTab, keySpace)
	return m
}

func TestCreateWizardNextBlockedUntilValid(t *testing.T) {
	m, _ := newTestWizard(nil, 3)

	m = sendKeys(t, m, keyNext)
	if m.wizard.Step() != domain.StepBasicInfo {
		t.Fatalf("step = %v, want basic info", m.wizard.Step())
	}
	if !strings.Contains(m.message, "3 field(s)") {
		t.Errorf("message = %q", m.message)
	}
	for _, field := range []string{"asset_type", "name", "categories"} {
		if !m.wizard.Touched[field] {
			t.Errorf("field %q should be touched after a refused Next", field)
		}
	}
}

func TestCreateWizardNameTouchedOnBlur(t *testing.T) {
	m, _ := newTestWizard(nil, 3)
	m = sendKeys(t, m, keyTab)
	m = sendKeys(t, m, typeText("So")...)
	if m.wizard.Touched["name"] {
		t.Error("name should not be touched while it is still being typed")
	}
	if _, ok := m.wizard.VisibleErrors()["name"]; ok {
		t.Error("name error shown before the field lost focus")
	}

	m = sendKeys(t, m, keyTab)
	if !m.wizard.Touched["name"] {
		t.Error("leaving the name input should mark it touched")
	}
}

func TestCreateWizardBasicInfoFlow(t *testing.T) {
	m, rec := newTestWizard(nil, 3)
	m = fillBasicInfo(t, m, "Solar Pump")

	if m.typeIndex != 0 {
		t.Errorf("typeIndex = %d, want 0", m.typeIndex)
	}
	if got := m.selection.Values(); len(got) != 1 || got[0].Primary != "Energy" {
		t.Fatalf("selection = %+v", got)
	}

	m = sendKeys(t, m, keyNext)
	if m.wizard.Step() != domain.StepSupplierInfo {
		t.Fatalf("step = %v, want supplier info", m.wizard.Step())
	}
	if rec.saves == 0 {
		t.Fatal("draft should be saved on every change")
	}
	if rec.last.BasicInformation.Name != "Solar Pump" {
		t.Errorf("saved name = %q", rec.last.BasicInformation.Name)
	}
	if rec.last.BasicInformation.AssetType != domain.AssetTypePhysical {
		t.Errorf("saved type = %q", rec.last.BasicInformation.AssetType)
	}
	if rec.last.Step != domain.StepSupplierInfo {
		t.Errorf("saved step = %v", rec.last.Step)
	}

	m = sendKeys(t, m, keyBack)
	if m.wizard.Step() != domain.StepBasicInfo {
		t.Errorf("Back should return to basic info, got %v", m.wizard.Step())
	}
}

func TestCreateWizardTypeCycles(t *testing.T) {
	m, _ := newTestWizard(nil, 3)
	m = sendKeys(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.typeIndex != len(domain.ValidAssetTypes())-1 {
		t.Errorf("left from unset should wrap to the last type, got %d", m.typeIndex)
	}
	m = sendKeys(t, m, keyRight)
	if m.typeIndex != 0 {
		t.Errorf("right should wrap to the first type, got %d", m.typeIndex)
	}
}

func TestCreateWizardCategorySelection(t *testing.T) {
	m, _ := newTestWizard(nil, 1)
	m.focus = focusCategories
	m.applyFocus()

	m = sendKeys(t, m, keySpace)
	rows := m.categoryRows()
	// Energy is selected, so its subcategories are listed under it
	if len(rows) != 5 || rows[1].sub != "Solar" {
		t.Fatalf("rows = %+v", rows)
	}

	// Toggle a subcategory
	m = sendKeys(t, m, keyDown, keySpace)
	if subs := m.selection.Values()[0].Subcategories; !slices.Equal(subs, []string{"Solar"}) {
		t.Errorf("subcategories = %v", subs)
	}

	// A second primary exceeds the limit of one
	m.catCursor = 3
	m = sendKeys(t, m, keySpace)
	if m.selection.Count() != 1 {
		t.Errorf("selection count = %d, want 1", m.selection.Count())
	}
	if !strings.Contains(m.message, "at most 1") {
		t.Errorf("message = %q", m.message)
	}
}

func TestCreateWizardResumesDraft(t *testing.T) {
	draft := domain.NewCreateDraft()
	draft.BasicInformation.AssetType = domain.AssetTypePlan
	draft.BasicInformation.Name = "Kiln"
	draft.BasicInformation.Tags = []string{"soil", "carbon"}
	draft.BasicInformation.Categories = []domain.CategorySelection{{Primary: "Food", Subcategories: []string{}}}
	draft.Step = domain.StepDocumentation

	m, _ := newTestWizard(draft, 3)
	if m.wizard.Step() != domain.StepDocumentation {
		t.Errorf("step = %v, want documentation", m.wizard.Step())
	}
	if m.typeIndex != 1 {
		t.Errorf("typeIndex = %d, want 1", m.typeIndex)
	}
	if m.basic[2].Value() != "soil, carbon" {
		t.Errorf("tags input = %q", m.basic[2].Value())
	}
	if !m.selection.IsSelected("Food") {
		t.Error("resumed selection should include Food")
	}
}

func TestCreateWizardStagesFiles(t *testing.T) {
	dir := t.TempDir()
	photo := filepath.Join(dir, "photo.jpg")
	sheet := filepath.Join(dir, "sheet.pdf")
	for _, p := range []string{photo, sheet} {
		if err := os.WriteFile(p, []byte("data"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name      string
		input     string
		wantFiles int
		wantMsg   string
	}{
		{name: "typed image", input: "image=" + photo, wantFiles: 1, wantMsg: "Staged photo.jpg as image"},
		{name: "bare path is other", input: sheet, wantFiles: 1, wantMsg: "as other"},
		{name: "missing file", input: "image=" + filepath.Join(dir, "nope.jpg"), wantMsg: "Not a readable file"},
		{name: "directory", input: dir, wantMsg: "Not a readable file"},
		{name: "unknown doc type", input: "poster=" + photo, wantMsg: "unknown document type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, rec := newTestWizard(nil, 3)
			m.addFile(tt.input)
			if got := len(m.wizard.Draft.Files); got != tt.wantFiles {
				t.Errorf("files = %d, want %d", got, tt.wantFiles)
			}
			if !strings.Contains(m.message, tt.wantMsg) {
				t.Errorf("message = %q, want it to contain %q", m.message, tt.wantMsg)
			}
			if tt.wantFiles > 0 && len(rec.last.Files) != tt.wantFiles {
				t.Error("staging a file should persist the draft")
			}
		})
	}
}

func TestCreateWizardPrimaryImage(t *testing.T) {
	m, _ := newTestWizard(nil, 3)
	m.wizard.Draft.Files = []domain.StagedFile{
		{Path: "a.jpg", DocType: domain.DocTypeImage, IsPrimary: true},
		{Path: "b.jpg", DocType: domain.DocTypeImage},
		{Path: "c.pdf", DocType: domain.DocTypeOther},
	}

	m.markPrimary(1)
	files := m.wizard.Draft.Files
	if files[0].IsPrimary || !files[1].IsPrimary {
		t.Errorf("primary flags = %v %v, want only b.jpg", files[0].IsPrimary, files[1].IsPrimary)
	}

	m.markPrimary(2)
	if files[2].IsPrimary || !strings.Contains(m.message, "Only images") {
		t.Error("a non-image cannot be primary")
	}

	m.fileCursor = 2
	m.removeFile(2)
	if len(m.wizard.Draft.Files) != 2 || m.fileCursor != 1 {
		t.Errorf("after remove: files %d, cursor %d", len(m.wizard.Draft.Files), m.fileCursor)
	}

	// b.jpg is primary; removing it promotes a.jpg
	m.removeFile(1)
	files = m.wizard.Draft.Files
	if len(files) != 1 || files[0].Path != "a.jpg" || !files[0].IsPrimary {
		t.Errorf("removing the primary should promote the first remaining image, got %+v", files)
	}
}

func TestCreateWizardRemovePrimaryFromFileList(t *testing.T) {
	m, _ := newTestWizard(nil, 3)
	m.wizard.Draft.Step = domain.StepDocumentation
	m.wizard.Draft.Files = []domain.StagedFile{
		{Path: "/tmp/a.jpg", DocType: domain.DocTypeImage, IsPrimary: true},
		{Path: "/tmp/b.jpg", DocType: domain.DocTypeImage},
	}
	m.focus = focusFileList
	m.fileCursor = 0

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	files := updated.(createWizardModel).wizard.Draft.Files
	if len(files) != 1 || files[0].Path != "/tmp/b.jpg" || !files[0].IsPrimary {
		t.Errorf("remaining = %+v, want b.jpg promoted to primary", files)
	}
}

func TestCreateWizardBIMLinks(t *testing.T) {
	m, _ := newTestWizard(nil, 3)

	m.addBIMLink("no separator")
	if len(m.wizard.Draft.BIMLinks) != 0 || !strings.Contains(m.message, "Label=") {
		t.Errorf("malformed link accepted, message %q", m.message)
	}

	m.addBIMLink("Model = https://bim.example/model.ifc")
	if len(m.wizard.Draft.BIMLinks) != 1 {
		t.Fatalf("links = %v", m.wizard.Draft.BIMLinks)
	}
	if got := m.wizard.Draft.BIMLinks[0]; got.Label != "Model" || got.URL != "https://bim.example/model.ifc" {
		t.Errorf("link = %+v", got)
	}
}

func TestCreateWizardExtractNeedsSources(t *testing.T) {
	draft := domain.NewCreateDraft()
	draft.Step = domain.StepReview
	m, rec := newTestWizard(draft, 3)

	m = sendKeys(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	if m.busy || rec.created != nil {
		t.Error("extraction without sources should not create")
	}
	if !strings.Contains(m.message, "before running AI extraction") {
		t.Errorf("message = %q", m.message)
	}
}

func TestCreateWizardFinalize(t *testing.T) {
	tests := []struct {
		name      string
		extract   bool
		createErr error
		wantQuit  bool
		wantMsg   string
	}{
		{name: "create", wantQuit: true},
		{name: "create and extract", extract: true, wantQuit: true},
		{name: "validation error lists fields", createErr: domain.ValidationErrors{"name": "name is required"}, wantMsg: "Fix these fields first: name"},
		{name: "server error", createErr: errors.New("server unavailable"), wantMsg: "server unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := domain.NewCreateDraft()
			draft.Step = domain.StepReview
			draft.WebsiteURL = "https://maker.example"
			m, rec := newTestWizard(draft, 3)
			m.siteInput.SetValue(draft.WebsiteURL)
			rec.createErr = tt.createErr

			updated, cmd := m.finalize(tt.extract)
			m = updated.(createWizardModel)
			if !m.busy {
				t.Fatal("finalize should mark the wizard busy")
			}

			// Keys are ignored while busy
			m = sendKeys(t, m, tea.KeyMsg{Type: tea.KeyEsc})
			if !m.busy {
				t.Fatal("busy wizard should ignore keys")
			}

			var created createdMsg
			batch, ok := cmd().(tea.BatchMsg)
			if !ok {
				t.Fatalf("expected a batch, got %T", cmd())
			}
			for _, c := range batch {
				if c == nil {
					continue
				}
				if msg, ok := c().(createdMsg); ok {
					created = msg
				}
			}
			if rec.extracted != tt.extract {
				t.Errorf("extract = %v, want %v", rec.extracted, tt.extract)
			}

			updated, quit := m.Update(created)
			m = updated.(createWizardModel)
			if m.busy {
				t.Error("busy should clear once the create returns")
			}
			if tt.wantQuit {
				if m.result == nil || m.result.Asset.ID != "new-id" || quit == nil {
					t.Errorf("expected result and quit, got %+v", m.result)
				}
				return
			}
			if m.result != nil {
				t.Error("failed create should not set a result")
			}
			if !strings.Contains(m.message, tt.wantMsg) {
				t.Errorf("message = %q, want it to contain %q", m.message, tt.wantMsg)
			}
		})
	}
}

func TestCreateWizardExternalChange(t *testing.T) {
	tests := []struct {
		name    string
		change  repository.DraftChange
		wantMsg string
	}{
		{name: "modified", change: repository.DraftChange{}, wantMsg: "changed by another process"},
		{name: "removed", change: repository.DraftChange{Removed: true}, wantMsg: "removed by another process"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestWizard(nil, 3)
			updated, _ := m.Update(draftChangedMsg{change: tt.change})
			m = updated.(createWizardModel)
			if !m.external {
				t.Error("external flag should be set")
			}
			if !strings.Contains(m.message, tt.wantMsg) {
				t.Errorf("message = %q", m.message)
			}
		})
	}
}

func TestCreateWizardSaveErrorShown(t *testing.T) {
	m, rec := newTestWizard(nil, 3)
	rec.saveErr = errors.New("disk full")
	m = sendKeys(t, m, keyRight)
	if !strings.Contains(m.message, "Draft not saved: disk full") {
		t.Errorf("message = %q", m.message)
	}
}

func TestCreateWizardViews(t *testing.T) {
	m, _ := newTestWizard(nil, 3)
	m = fillBasicInfo(t, m, "Solar Pump")
	steps := []string{"Basic", "Supplier", "Documentation", "Review"}
	for i, want := range steps {
		view := m.View()
		if view == "" {
			t.Fatalf("step %d rendered nothing", i)
		}
		if !strings.Contains(view, want) {
			t.Errorf("step %d view missing %q", i, want)
		}
		m = sendKeys(t, m, keyNext)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"solar", []string{"solar"}},
		{" solar ,  wind ,, ", []string{"solar", "wind"}},
	}
	for _, tt := range tests {
		if got := splitList(tt.input); !slices.Equal(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
