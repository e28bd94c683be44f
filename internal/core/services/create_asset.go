package services

import (
	"context"
	"fmt"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/internal/core/ports"
	"github.com/kamal-hamza/alib-cli/pkg/logger"
)

// CreateAssetService finalizes the create wizard: create, upload staged
// files, optionally run AI extraction
type CreateAssetService struct {
	assets        ports.AssetAPI
	contributor   ports.ContributorAPI
	drafts        ports.DraftStore
	cache         ports.QueryCache
	log           *logger.Logger
	maxCategories int
}

// NewCreateAssetService creates a new create-asset service
func NewCreateAssetService(
	assets ports.AssetAPI,
	contributor ports.ContributorAPI,
	drafts ports.DraftStore,
	cache ports.QueryCache,
	log *logger.Logger,
	maxCategories int,
) *CreateAssetService {
	if log == nil {
		log = logger.Nop()
	}
	return &CreateAssetService{
		assets:        assets,
		contributor:   contributor,
		drafts:        drafts,
		cache:         cache,
		log:           log,
		maxCategories: maxCategories,
	}
}

// CreateAssetRequest represents a finalize action from the review step
type CreateAssetRequest struct {
	Draft   *domain.CreateDraft
	Extract bool // run AI extraction after uploading
	// KeepDraft leaves the stored draft alone; set when Draft did not come
	// from the buffer
	KeepDraft bool
}

// CreateAssetResponse represents the outcome of finalizing a draft
type CreateAssetResponse struct {
	Asset        *domain.Asset
	Uploaded     int
	Failed       []domain.StagedFile
	Extracted    bool
	Warnings     []string
	DraftCleared bool
}

// EditTarget is the id the caller should open next in the edit wizard
func (r *CreateAssetResponse) EditTarget() string {
	if r == nil || r.Asset == nil {
		return ""
	}
	return r.Asset.ID
}

// Execute creates the asset from the draft. Failures after the asset exists
// become warnings: the asset is kept and the draft buffer is left in place so
// nothing staged is lost.
func (s *CreateAssetService) Execute(ctx context.Context, req CreateAssetRequest) (*CreateAssetResponse, error) {
	if req.Draft == nil {
		return nil, fmt.Errorf("no draft to create from")
	}
	draft := req.Draft

	if errs := domain.ValidateBasicInfo(draft.BasicInformation, s.maxCategories); !errs.Empty() {
		return nil, errs
	}
	if err := domain.ValidateBIMLinks(draft.BIMLinks); err != nil {
		return nil, domain.ValidationErrors{"bim_links": err.Error()}
	}

	created, err := s.assets.Create(ctx, draft.CreatePayload())
	if err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}
	s.cache.Invalidate(domain.PrefixAssetLists)
	s.log.Info("asset created", "asset_id", created.ID, "name", created.BasicInformation.Name)

	resp := &CreateAssetResponse{Asset: created}

	upload := uploadGroups(ctx, s.contributor, created.ID, draft.Files)
	resp.Uploaded = upload.Uploaded
	resp.Failed = upload.Failed
	resp.Warnings = append(resp.Warnings, upload.Warnings...)
	if upload.Asset != nil {
		resp.Asset = upload.Asset
	}

	if req.Extract {
		s.extract(ctx, draft, resp)
	}

	if len(resp.Warnings) == 0 && !req.KeepDraft {
		if err := s.drafts.Clear(); err != nil {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("could not clear draft: %v", err))
		} else {
			resp.DraftCleared = true
		}
	} else {
		for _, w := range resp.Warnings {
			s.log.Warn("create finished with warning", "asset_id", created.ID, "warning", w)
		}
	}

	s.cache.Invalidate(domain.AssetKey(created.ID))
	return resp, nil
}

func (s *CreateAssetService) extract(ctx context.Context, draft *domain.CreateDraft, resp *CreateAssetResponse) {
	sources := draft.ExtractionSources()
	if len(sources) == 0 {
		resp.Warnings = append(resp.Warnings, "AI extraction skipped: add documents or a website first")
		return
	}

	extracted, err := s.contributor.Extract(ctx, resp.Asset.ID, domain.AIExtractRequest{
		Sources: sources,
		URL:     draft.WebsiteURL,
	})
	if err != nil {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("AI extraction failed: %v", err))
		return
	}
	resp.Asset = extracted
	resp.Extracted = true
}

// uploadResult accumulates the outcome of sequential batch uploads
type uploadResult struct {
	Asset    *domain.Asset
	Uploaded int
	Failed   []domain.StagedFile
	Warnings []string
}

// uploadGroups sends one multipart batch per doc type, in order. A failed
// batch does not stop the rest and nothing is rolled back.
func uploadGroups(ctx context.Context, api ports.ContributorAPI, assetID string, files []domain.StagedFile) uploadResult {
	var res uploadResult
	for _, group := range domain.GroupByDocType(files) {
		if err := ctx.Err(); err != nil {
			res.Failed = append(res.Failed, group.Files...)
			res.Warnings = append(res.Warnings, fmt.Sprintf("upload of %s files canceled", group.DocType))
			continue
		}
		a, err := api.Upload(ctx, assetID, group)
		if err != nil {
			res.Failed = append(res.Failed, group.Files...)
			res.Warnings = append(res.Warnings, fmt.Sprintf("upload of %d %s file(s) failed: %v", len(group.Files), group.DocType, err))
			continue
		}
		res.Uploaded += len(group.Files)
		res.Asset = a
	}
	return res
}
