package services

import (
	"context"
	"errors"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/internal/core/ports/mocks"
)

type editFixture struct {
	assets      *mocks.MockAssetAPI
	contributor *mocks.MockContributorAPI
	cache       *mocks.MockQueryCache
	editor      *mocks.MockEditor
	service     *EditAssetService
}

func newEditFixture(t *testing.T) *editFixture {
	t.Helper()
	f := &editFixture{
		assets: mocks.NewMockAssetAPI(),
		cache:  mocks.NewMockQueryCache(),
		editor: &mocks.MockEditor{},
	}
	f.contributor = mocks.NewMockContributorAPI(f.assets)
	f.service = NewEditAssetService(f.assets, f.contributor, f.cache, f.editor, nil, t.TempDir(), 4)

	f.assets.Put(domain.Asset{
		ID: "a1",
		BasicInformation: domain.BasicInformation{
			AssetType:  domain.AssetTypePhysical,
			Name:       "Solar Tile",
			Categories: []domain.CategorySelection{{Primary: "Energy"}},
		},
		Overview:   domain.Overview{Summary: "original"},
		SystemMeta: domain.SystemMeta{Status: domain.StatusDraft},
	})
	return f
}

func TestEditAssetService_SaveSectionSendsOnlyThatSection(t *testing.T) {
	f := newEditFixture(t)
	ctx := context.Background()

	form, err := f.service.Load(ctx, "a1")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	form.Asset.BasicInformation.Name = "Solar Tile v2"
	form.MarkEdited(domain.SectionBasicInformation)
	form.Asset.Overview.Summary = "edited locally"
	form.MarkEdited(domain.SectionOverview)

	if err := f.service.SaveSection(ctx, &form.Asset, domain.SectionBasicInformation); err != nil {
		t.Fatalf("SaveSection() error: %v", err)
	}
	if form.Index != 0 || len(form.Saved) != 0 {
		t.Fatal("SaveSection must leave the form to the caller")
	}
	form.MarkSaved(domain.SectionBasicInformation)

	stored, _ := f.assets.Get(ctx, "a1")
	if stored.BasicInformation.Name != "Solar Tile v2" {
		t.Errorf("saved name = %q", stored.BasicInformation.Name)
	}
	if stored.Overview.Summary != "original" {
		t.Errorf("unsaved section leaked into the patch: %q", stored.Overview.Summary)
	}
	if form.Index != 1 {
		t.Errorf("save should advance, index = %d", form.Index)
	}
	if got := form.UnsavedSections(); len(got) != 1 || got[0] != domain.SectionOverview {
		t.Errorf("unsaved sections = %v", got)
	}
	if form.Asset.Overview.Summary != "edited locally" {
		t.Error("saving must not re-seed the form")
	}

	invalidated := strings.Join(f.cache.Invalidated(), " ")
	if !strings.Contains(invalidated, domain.AssetKey("a1")) {
		t.Errorf("asset query not invalidated: %s", invalidated)
	}
}

func TestEditAssetService_SaveSection(t *testing.T) {
	tests := []struct {
		name        string
		section     domain.Section
		mutate      func(*domain.EditForm)
		setupMocks  func(*editFixture)
		expectError bool
		errorMsg    string
	}{
		{
			name:    "valid overview",
			section: domain.SectionOverview,
			mutate: func(f *domain.EditForm) {
				f.Asset.Overview.KeyFeatures = []string{"durable"}
			},
			setupMocks: func(*editFixture) {},
		},
		{
			name:    "empty name rejected locally",
			section: domain.SectionBasicInformation,
			mutate: func(f *domain.EditForm) {
				f.Asset.BasicInformation.Name = ""
			},
			setupMocks:  func(*editFixture) {},
			expectError: true,
			errorMsg:    "name",
		},
		{
			name:    "invalid time period rejected locally",
			section: domain.SectionEconomics,
			mutate: func(f *domain.EditForm) {
				f.Asset.Economics.InputCosts = []domain.MonetizedItem{{Label: "x", Amount: domain.Float(1), TimePeriod: "per_century"}}
			},
			setupMocks:  func(*editFixture) {},
			expectError: true,
			errorMsg:    "per_century",
		},
		{
			name:    "server error keeps the form on the section",
			section: domain.SectionOverview,
			mutate:  func(*domain.EditForm) {},
			setupMocks: func(f *editFixture) {
				f.assets.SetError("Update", errors.New("conflict"))
			},
			expectError: true,
			errorMsg:    "conflict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEditFixture(t)
			tt.setupMocks(f)
			form, err := f.service.Load(context.Background(), "a1")
			if err != nil {
				t.Fatal(err)
			}
			form.GoTo(tt.section)
			start := form.Index
			tt.mutate(form)

			err = f.service.SaveSection(context.Background(), &form.Asset, tt.section)
			if form.Index != start {
				t.Error("SaveSection must not move the form")
			}
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("error %q does not mention %q", err, tt.errorMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("SaveSection() error: %v", err)
			}
			if !slices.Contains(f.assets.GetCalls(), "Update") {
				t.Error("expected an Update call")
			}
		})
	}
}

func TestEditAssetService_SkipDoesNotPersist(t *testing.T) {
	f := newEditFixture(t)
	ctx := context.Background()
	form, _ := f.service.Load(ctx, "a1")

	form.Asset.BasicInformation.Name = "Changed"
	form.MarkEdited(domain.SectionBasicInformation)
	form.Skip()

	for _, call := range f.assets.GetCalls() {
		if call == "Update" {
			t.Fatal("skip must not send an update")
		}
	}
	stored, _ := f.assets.Get(ctx, "a1")
	if stored.BasicInformation.Name != "Solar Tile" {
		t.Errorf("server copy changed on skip: %q", stored.BasicInformation.Name)
	}
	if form.Asset.BasicInformation.Name != "Changed" {
		t.Error("skip should keep local edits")
	}
}

func TestEditAssetService_UploadStaged(t *testing.T) {
	f := newEditFixture(t)
	ctx := context.Background()
	form, _ := f.service.Load(ctx, "a1")

	f.contributor.FailUploadsOf(domain.DocTypePlan, errors.New("rejected"))
	form.StageFiles(
		domain.StagedFile{Path: "/tmp/manual.pdf", DocType: domain.DocTypeManual},
		domain.StagedFile{Path: "/tmp/photo.jpg", DocType: domain.DocTypeImage, IsPrimary: true},
		domain.StagedFile{Path: "/tmp/plan.dwg", DocType: domain.DocTypePlan},
	)

	resp, err := f.service.UploadStaged(ctx, form.Asset.ID, form.Staged)
	if err != nil {
		t.Fatalf("UploadStaged() error: %v", err)
	}
	if resp.Uploaded != 2 || len(resp.Failed) != 1 || len(resp.Warnings) != 1 || resp.Documentation == nil {
		t.Errorf("response = %+v", resp)
	}
	if len(form.Staged) != 3 {
		t.Fatal("UploadStaged must not touch the staged list")
	}
	form.FinishUpload(resp.Documentation, resp.Failed)
	if len(form.Staged) != 1 || form.Staged[0].DocType != domain.DocTypePlan {
		t.Errorf("failed files should stay staged, got %+v", form.Staged)
	}
	if len(form.Asset.DocumentationUploads.Documents) != 1 || len(form.Asset.DocumentationUploads.Images) != 1 {
		t.Errorf("persisted list should come from the server, got %+v", form.Asset.DocumentationUploads)
	}

	if _, err := f.service.UploadStaged(ctx, "a1", nil); err == nil {
		t.Error("expected error with nothing staged")
	}
}

func TestEditAssetService_EditSectionRoundTrip(t *testing.T) {
	f := newEditFixture(t)
	ctx := context.Background()
	form, _ := f.service.Load(ctx, "a1")

	f.editor.Edit = func(path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !strings.Contains(string(data), "summary: original") {
			t.Errorf("editor file missing current value:\n%s", data)
		}
		return os.WriteFile(path, []byte("summary: rewritten\nkey_features:\n  - modular\n"), 0644)
	}

	changed, err := f.service.EditSection(ctx, form, domain.SectionOverview)
	if err != nil {
		t.Fatalf("EditSection() error: %v", err)
	}
	if !changed {
		t.Fatal("expected a change")
	}
	if form.Asset.Overview.Summary != "rewritten" || len(form.Asset.Overview.KeyFeatures) != 1 {
		t.Errorf("overview = %+v", form.Asset.Overview)
	}
	if !form.Edited[domain.SectionOverview] {
		t.Error("section should be marked edited")
	}

	opened := f.editor.Opened()
	if len(opened) != 1 {
		t.Fatalf("editor opened %d times", len(opened))
	}
	if _, err := os.Stat(opened[0]); !os.IsNotExist(err) {
		t.Error("scratch file should be removed after reading")
	}
}

func TestEditAssetService_ApplySection(t *testing.T) {
	tests := []struct {
		name        string
		section     domain.Section
		yaml        string
		wantChanged bool
		expectError bool
	}{
		{
			name:        "unchanged document",
			section:     domain.SectionOverview,
			yaml:        "summary: original\n",
			wantChanged: false,
		},
		{
			name:        "removed field is cleared",
			section:     domain.SectionOverview,
			yaml:        "{}\n",
			wantChanged: true,
		},
		{
			name:        "malformed YAML",
			section:     domain.SectionOverview,
			yaml:        "summary: [unclosed\n",
			expectError: true,
		},
		{
			name:        "invalid basic info",
			section:     domain.SectionBasicInformation,
			yaml:        "asset_type: physical\nname: \"\"\ncategories: []\n",
			expectError: true,
		},
		{
			name:        "invalid BIM link",
			section:     domain.SectionDocumentationUploads,
			yaml:        "bim_links:\n  - label: Model\n    url: not-a-url\n",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEditFixture(t)
			form, _ := f.service.Load(context.Background(), "a1")
			before := form.Asset

			changed, err := f.service.ApplySection(form, tt.section, []byte(tt.yaml))
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if form.Asset.BasicInformation.Name != before.BasicInformation.Name || form.Asset.Overview.Summary != before.Overview.Summary {
					t.Error("form changed despite error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplySection() error: %v", err)
			}
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
		})
	}
}

func TestEditAssetService_AttachURLValidation(t *testing.T) {
	f := newEditFixture(t)
	ctx := context.Background()

	if _, err := f.service.AttachURL(ctx, "a1", domain.FileLink{Target: "datasheet", URL: "example.com/x.pdf"}); err == nil {
		t.Error("expected error for relative URL")
	}
	if _, err := f.service.AttachURL(ctx, "a1", domain.FileLink{URL: "https://example.com/x.pdf"}); err == nil {
		t.Error("expected error for missing target")
	}
	if _, err := f.service.AttachURL(ctx, "a1", domain.FileLink{Target: "datasheet", URL: "https://example.com/x.pdf"}); err != nil {
		t.Errorf("valid link rejected: %v", err)
	}
}

func TestDerivedSummary(t *testing.T) {
	a := &domain.Asset{
		PhysicalConfiguration: domain.PhysicalConfiguration{
			Dimensions: domain.Dimensions{Length: domain.Float(2), Width: domain.Float(3), Height: domain.Float(4), Unit: "m"},
		},
		Economics: domain.Economics{
			Currency:     "USD",
			InputCosts:   []domain.MonetizedItem{{Label: "power", Amount: domain.Float(10), TimePeriod: domain.PerMonth}},
			OutputValues: []domain.MonetizedItem{{Label: "energy", Amount: domain.Float(1), TimePeriod: domain.PerDay}},
		},
	}

	phys := DerivedSummary(a, domain.SectionPhysicalConfiguration)
	if len(phys) != 1 || !strings.Contains(phys[0], "24.00") {
		t.Errorf("physical summary = %v", phys)
	}

	econ := strings.Join(DerivedSummary(a, domain.SectionEconomics), "\n")
	for _, want := range []string{"annual input cost: 120.00 USD", "annual output value: 365.00 USD", "annual net value: 245.00 USD"} {
		if !strings.Contains(econ, want) {
			t.Errorf("economics summary missing %q:\n%s", want, econ)
		}
	}

	if DerivedSummary(a, domain.SectionOverview) != nil {
		t.Error("overview has no derived values")
	}
}
