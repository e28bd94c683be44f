package services

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/internal/core/ports"
	"github.com/kamal-hamza/alib-cli/pkg/logger"
)

// EditAssetService drives the section-by-section edit wizard
type EditAssetService struct {
	assets        ports.AssetAPI
	contributor   ports.ContributorAPI
	cache         ports.QueryCache
	editor        ports.EditorLauncher
	log           *logger.Logger
	scratchDir    string
	maxCategories int
}

// NewEditAssetService creates a new edit-asset service. Section files for
// the external editor are written under scratchDir.
func NewEditAssetService(
	assets ports.AssetAPI,
	contributor ports.ContributorAPI,
	cache ports.QueryCache,
	editor ports.EditorLauncher,
	log *logger.Logger,
	scratchDir string,
	maxCategories int,
) *EditAssetService {
	if log == nil {
		log = logger.Nop()
	}
	return &EditAssetService{
		assets:        assets,
		contributor:   contributor,
		cache:         cache,
		editor:        editor,
		log:           log,
		scratchDir:    scratchDir,
		maxCategories: maxCategories,
	}
}

// Load fetches the asset and seeds a form from it. The form is never
// re-seeded afterwards.
func (s *EditAssetService) Load(ctx context.Context, id string) (*domain.EditForm, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("asset id cannot be empty")
	}
	v, err := s.cache.Fetch(ctx, domain.AssetKey(id), func(ctx context.Context) (any, error) {
		return s.assets.Get(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load asset %s: %w", id, err)
	}
	return domain.NewEditForm(*v.(*domain.Asset)), nil
}

// SaveSection validates a and sends only the given section. Forms are left
// alone; the caller marks the section saved once this returns nil.
func (s *EditAssetService) SaveSection(ctx context.Context, a *domain.Asset, section domain.Section) error {
	if err := s.validateSection(a, section); err != nil {
		return err
	}
	patch, err := domain.PatchForSection(a, section)
	if err != nil {
		return err
	}
	if _, err := s.assets.Update(ctx, a.ID, patch); err != nil {
		return fmt.Errorf("failed to save %s: %w", section.Title(), err)
	}
	s.cache.Invalidate(domain.AssetKey(a.ID), domain.PrefixAssetLists, domain.PrefixPublic)
	s.log.Info("section saved", "asset_id", a.ID, "section", string(section))
	return nil
}

// UploadResponse represents the outcome of uploading staged files.
// Documentation is the server's file list after the last successful batch,
// nil when every batch failed.
type UploadResponse struct {
	Uploaded      int
	Failed        []domain.StagedFile
	Warnings      []string
	Documentation *domain.DocumentationUploads
}

// UploadStaged sends the files, one batch per doc type. Apply the result
// with EditForm.FinishUpload.
func (s *EditAssetService) UploadStaged(ctx context.Context, assetID string, staged []domain.StagedFile) (*UploadResponse, error) {
	if len(staged) == 0 {
		return nil, fmt.Errorf("no files staged for upload")
	}

	res := uploadGroups(ctx, s.contributor, assetID, staged)
	resp := &UploadResponse{
		Uploaded: res.Uploaded,
		Failed:   res.Failed,
		Warnings: res.Warnings,
	}
	if res.Asset != nil {
		docs := res.Asset.DocumentationUploads
		resp.Documentation = &docs
	}
	if res.Uploaded > 0 {
		s.cache.Invalidate(domain.AssetKey(assetID), domain.PrefixAssetLists)
	}
	return resp, nil
}

// AttachURL links a remote file to the asset
func (s *EditAssetService) AttachURL(ctx context.Context, id string, link domain.FileLink) (*domain.Asset, error) {
	link.Target = strings.TrimSpace(link.Target)
	link.URL = strings.TrimSpace(link.URL)
	if link.Target == "" {
		return nil, domain.ValidationErrors{"target": "target field is required"}
	}
	if u, err := url.Parse(link.URL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, domain.ValidationErrors{"url": "an absolute http(s) URL is required"}
	}
	a, err := s.contributor.AttachURL(ctx, id, link)
	if err != nil {
		return nil, fmt.Errorf("failed to attach URL: %w", err)
	}
	s.cache.Invalidate(domain.AssetKey(id))
	return a, nil
}

// Extract runs AI extraction on an existing asset
func (s *EditAssetService) Extract(ctx context.Context, id string, req domain.AIExtractRequest) (*domain.Asset, error) {
	if len(req.Sources) == 0 {
		return nil, domain.ValidationErrors{"sources": "choose at least one source"}
	}
	a, err := s.contributor.Extract(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("AI extraction failed: %w", err)
	}
	s.cache.Invalidate(domain.AssetKey(id), domain.PrefixAssetLists)
	return a, nil
}

// MarshalSection renders a section as YAML with derived values as comments
func (s *EditAssetService) MarshalSection(form *domain.EditForm, section domain.Section) ([]byte, error) {
	ptr, err := form.Asset.SectionPtr(section)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s: %s\n", form.Asset.DisplayName(), section.Title())
	for _, line := range DerivedSummary(&form.Asset, section) {
		fmt.Fprintf(&buf, "# %s\n", line)
	}
	buf.WriteString("# Save and close the editor to apply. Derived values are read-only.\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ptr); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", section, err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ApplySection decodes edited YAML into the form. Fields removed from the
// document are cleared. The form is only touched when the result is valid.
func (s *EditAssetService) ApplySection(form *domain.EditForm, section domain.Section, data []byte) (bool, error) {
	next := form.Asset
	ptr, err := next.SectionPtr(section)
	if err != nil {
		return false, err
	}

	elem := reflect.ValueOf(ptr).Elem()
	before := reflect.New(elem.Type()).Elem()
	before.Set(elem)
	elem.Set(reflect.Zero(elem.Type()))

	if err := yaml.Unmarshal(data, ptr); err != nil {
		return false, fmt.Errorf("invalid YAML for %s: %w", section.Title(), err)
	}
	if err := s.validateSection(&next, section); err != nil {
		return false, err
	}
	if reflect.DeepEqual(before.Interface(), elem.Interface()) {
		return false, nil
	}

	form.Asset = next
	form.MarkEdited(section)
	return true, nil
}

// WriteSectionFile writes the section to a scratch file for an editor
func (s *EditAssetService) WriteSectionFile(form *domain.EditForm, section domain.Section) (string, error) {
	data, err := s.MarshalSection(form, section)
	if err != nil {
		return "", err
	}
	if s.scratchDir != "" {
		if err := os.MkdirAll(s.scratchDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create scratch directory: %w", err)
		}
	}
	f, err := os.CreateTemp(s.scratchDir, "alib-"+string(section)+"-*.yaml")
	if err != nil {
		return "", fmt.Errorf("failed to create section file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write section file: %w", err)
	}
	return f.Name(), nil
}

// ReadSectionFile applies an edited section file and removes it
func (s *EditAssetService) ReadSectionFile(form *domain.EditForm, section domain.Section, path string) (bool, error) {
	defer os.Remove(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read section file: %w", err)
	}
	return s.ApplySection(form, section, data)
}

// EditSection round-trips a section through the external editor
func (s *EditAssetService) EditSection(ctx context.Context, form *domain.EditForm, section domain.Section) (bool, error) {
	if s.editor == nil {
		return false, fmt.Errorf("no editor configured")
	}
	path, err := s.WriteSectionFile(form, section)
	if err != nil {
		return false, err
	}
	if err := s.editor.Open(ctx, path); err != nil {
		os.Remove(path)
		return false, fmt.Errorf("editor failed: %w", err)
	}
	return s.ReadSectionFile(form, section, path)
}

func (s *EditAssetService) validateSection(a *domain.Asset, section domain.Section) error {
	switch section {
	case domain.SectionBasicInformation:
		return domain.ValidateBasicInfo(a.BasicInformation, s.maxCategories).Err()
	case domain.SectionDocumentationUploads:
		if err := domain.ValidateBIMLinks(a.DocumentationUploads.BIMLinks); err != nil {
			return domain.ValidationErrors{"bim_links": err.Error()}
		}
	case domain.SectionEconomics:
		for _, items := range [][]domain.MonetizedItem{a.Economics.InputCosts, a.Economics.OutputValues} {
			for _, item := range items {
				if item.TimePeriod == "" {
					continue
				}
				if _, err := domain.ParseTimePeriod(string(item.TimePeriod)); err != nil {
					return domain.ValidationErrors{"economics": err.Error()}
				}
			}
		}
	}
	return nil
}

// DerivedSummary lists the read-only computed values shown for a section
func DerivedSummary(a *domain.Asset, section domain.Section) []string {
	switch section {
	case domain.SectionPhysicalConfiguration:
		dims := a.PhysicalConfiguration.Dimensions
		unit := dims.Unit
		if unit != "" {
			unit = " " + unit + "³"
		}
		return []string{"unit volume: " + domain.FormatOptional(dims.UnitVolume()) + unit}
	case domain.SectionEconomics:
		e := a.Economics
		var lines []string
		for _, item := range e.InputCosts {
			lines = append(lines, fmt.Sprintf("input %q per year: %s", item.Label, domain.FormatOptional(item.YearlyValue())))
		}
		for _, item := range e.OutputValues {
			lines = append(lines, fmt.Sprintf("output %q per year: %s", item.Label, domain.FormatOptional(item.YearlyValue())))
		}
		lines = append(lines,
			fmt.Sprintf("annual input cost: %.2f %s", e.AnnualInputCost(), e.Currency),
			fmt.Sprintf("annual output value: %.2f %s", e.AnnualOutputValue(), e.Currency),
			fmt.Sprintf("annual net value: %.2f %s", e.AnnualNetValue(), e.Currency),
		)
		return lines
	}
	return nil
}
