package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/internal/core/ports/mocks"
)

type createFixture struct {
	assets      *mocks.MockAssetAPI
	contributor *mocks.MockContributorAPI
	drafts      *mocks.MockDraftStore
	cache       *mocks.MockQueryCache
	service     *CreateAssetService
}

func newCreateFixture() *createFixture {
	f := &createFixture{
		assets: mocks.NewMockAssetAPI(),
		drafts: mocks.NewMockDraftStore(),
		cache:  mocks.NewMockQueryCache(),
	}
	f.contributor = mocks.NewMockContributorAPI(f.assets)
	f.service = NewCreateAssetService(f.assets, f.contributor, f.drafts, f.cache, nil, 4)
	return f
}

func validDraft() *domain.CreateDraft {
	d := domain.NewCreateDraft()
	d.BasicInformation = domain.BasicInformation{
		AssetType: domain.AssetTypePhysical,
		Name:      "Solar Tile",
		Categories: []domain.CategorySelection{
			{Primary: "Energy", Subcategories: []string{"Solar"}},
		},
	}
	d.Contributor = domain.Contributor{Name: "Ada", Organization: "Tiles Inc"}
	return d
}

func TestCreateAssetService_Execute(t *testing.T) {
	tests := []struct {
		name         string
		draft        func() *domain.CreateDraft
		extract      bool
		keepDraft    bool
		setupMocks   func(*createFixture)
		expectError  bool
		errorMsg     string
		wantUploads  int
		wantWarnings int
		wantCleared  bool
		wantExtract  bool
	}{
		{
			name:        "save draft with no files",
			draft:       validDraft,
			setupMocks:  func(f *createFixture) {},
			wantCleared: true,
		},
		{
			name:       "flag-built draft leaves the stored draft alone",
			draft:      validDraft,
			keepDraft:  true,
			setupMocks: func(f *createFixture) {},
		},
		{
			name: "files uploaded one batch per doc type",
			draft: func() *domain.CreateDraft {
				d := validDraft()
				d.Files = []domain.StagedFile{
					{Path: "/tmp/a.pdf", DocType: domain.DocTypeManual},
					{Path: "/tmp/b.png", DocType: domain.DocTypeImage, IsPrimary: true},
					{Path: "/tmp/c.pdf", DocType: domain.DocTypeManual},
				}
				return d
			},
			setupMocks:  func(f *createFixture) {},
			wantUploads: 3,
			wantCleared: true,
		},
		{
			name: "upload failure after create is a warning and keeps the draft",
			draft: func() *domain.CreateDraft {
				d := validDraft()
				d.Files = []domain.StagedFile{
					{Path: "/tmp/a.pdf", DocType: domain.DocTypeManual},
					{Path: "/tmp/b.png", DocType: domain.DocTypeImage},
				}
				return d
			},
			setupMocks: func(f *createFixture) {
				f.contributor.FailUploadsOf(domain.DocTypeImage, errors.New("too large"))
			},
			wantUploads:  1,
			wantWarnings: 1,
			wantCleared:  false,
		},
		{
			name: "extract with AI after upload",
			draft: func() *domain.CreateDraft {
				d := validDraft()
				d.Files = []domain.StagedFile{{Path: "/tmp/a.pdf", DocType: domain.DocTypeDatasheet}}
				d.WebsiteURL = "https://tiles.example.com"
				return d
			},
			extract:     true,
			setupMocks:  func(f *createFixture) {},
			wantUploads: 1,
			wantCleared: true,
			wantExtract: true,
		},
		{
			name:         "extract without sources is skipped with a warning",
			draft:        validDraft,
			extract:      true,
			setupMocks:   func(f *createFixture) {},
			wantWarnings: 1,
		},
		{
			name: "extract failure keeps the created asset",
			draft: func() *domain.CreateDraft {
				d := validDraft()
				d.WebsiteURL = "https://tiles.example.com"
				return d
			},
			extract: true,
			setupMocks: func(f *createFixture) {
				f.contributor.SetExtractError(errors.New("model unavailable"))
			},
			wantWarnings: 1,
		},
		{
			name: "invalid basic info never reaches the server",
			draft: func() *domain.CreateDraft {
				d := validDraft()
				d.BasicInformation.Name = "   "
				return d
			},
			setupMocks:  func(f *createFixture) {},
			expectError: true,
			errorMsg:    "name",
		},
		{
			name: "bad BIM link is rejected locally",
			draft: func() *domain.CreateDraft {
				d := validDraft()
				d.BIMLinks = []domain.BIMLink{{Label: "Model", URL: "ftp://example.com/m.ifc"}}
				return d
			},
			setupMocks:  func(f *createFixture) {},
			expectError: true,
			errorMsg:    "bim_links",
		},
		{
			name:  "create failure keeps the draft",
			draft: validDraft,
			setupMocks: func(f *createFixture) {
				f.assets.SetError("Create", errors.New("server down"))
			},
			expectError: true,
			errorMsg:    "failed to create asset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCreateFixture()
			tt.setupMocks(f)

			resp, err := f.service.Execute(context.Background(), CreateAssetRequest{
				Draft:     tt.draft(),
				Extract:   tt.extract,
				KeepDraft: tt.keepDraft,
			})

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("error %q does not mention %q", err, tt.errorMsg)
				}
				if f.drafts.Clears() != 0 {
					t.Error("draft must not be cleared on failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() error: %v", err)
			}

			if resp.EditTarget() != "asset-1" {
				t.Errorf("edit target = %q", resp.EditTarget())
			}
			if resp.Uploaded != tt.wantUploads {
				t.Errorf("uploaded = %d, want %d", resp.Uploaded, tt.wantUploads)
			}
			if len(resp.Warnings) != tt.wantWarnings {
				t.Errorf("warnings = %v, want %d", resp.Warnings, tt.wantWarnings)
			}
			if resp.DraftCleared != tt.wantCleared {
				t.Errorf("draft cleared = %v, want %v", resp.DraftCleared, tt.wantCleared)
			}
			if resp.Extracted != tt.wantExtract {
				t.Errorf("extracted = %v, want %v", resp.Extracted, tt.wantExtract)
			}
		})
	}
}

func TestCreateAssetService_GroupsUploadsInOrder(t *testing.T) {
	f := newCreateFixture()
	d := validDraft()
	d.Files = []domain.StagedFile{
		{Path: "/tmp/a.pdf", DocType: domain.DocTypeManual},
		{Path: "/tmp/b.png", DocType: domain.DocTypeImage},
		{Path: "/tmp/c.pdf", DocType: domain.DocTypeManual},
	}

	if _, err := f.service.Execute(context.Background(), CreateAssetRequest{Draft: d}); err != nil {
		t.Fatal(err)
	}

	uploads := f.contributor.Uploads()
	if len(uploads) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(uploads))
	}
	if uploads[0].DocType != domain.DocTypeManual || len(uploads[0].Files) != 2 {
		t.Errorf("first batch = %+v", uploads[0])
	}
	if uploads[1].DocType != domain.DocTypeImage {
		t.Errorf("second batch = %+v", uploads[1])
	}
}

func TestCreateAssetService_ExtractionSourcesAndInvalidation(t *testing.T) {
	f := newCreateFixture()
	d := validDraft()
	d.Files = []domain.StagedFile{{Path: "/tmp/a.pdf", DocType: domain.DocTypeManual}}
	d.WebsiteURL = "https://tiles.example.com"

	resp, err := f.service.Execute(context.Background(), CreateAssetRequest{Draft: d, Extract: true})
	if err != nil {
		t.Fatal(err)
	}

	ex := f.contributor.Extractions()
	if len(ex) != 1 {
		t.Fatalf("expected one extraction, got %d", len(ex))
	}
	if strings.Join(ex[0].Sources, ",") != "documents,website" || ex[0].URL != d.WebsiteURL {
		t.Errorf("extraction request = %+v", ex[0])
	}
	if resp.Asset.AIAssistance.Status != "completed" {
		t.Errorf("response should carry the extracted asset, got %+v", resp.Asset.AIAssistance)
	}

	invalidated := strings.Join(f.cache.Invalidated(), " ")
	if !strings.Contains(invalidated, domain.PrefixAssetLists) {
		t.Errorf("asset lists not invalidated: %s", invalidated)
	}
}

func TestCreateAssetService_Created_IsDraftStatus(t *testing.T) {
	f := newCreateFixture()
	resp, err := f.service.Execute(context.Background(), CreateAssetRequest{Draft: validDraft()})
	if err != nil {
		t.Fatal(err)
	}

	got, err := f.assets.Get(context.Background(), resp.EditTarget())
	if err != nil {
		t.Fatal(err)
	}
	if got.SystemMeta.Status != domain.StatusDraft {
		t.Errorf("status = %q, want draft", got.SystemMeta.Status)
	}
	if got.BasicInformation.Name != "Solar Tile" {
		t.Errorf("name = %q", got.BasicInformation.Name)
	}
}
