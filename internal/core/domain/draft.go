package domain

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// CreateStep is one page of the create wizard
type CreateStep int

const (
	StepBasicInfo CreateStep = iota
	StepSupplierInfo
	StepDocumentation
	StepReview
)

var createStepTitles = []string{"Basic Information", "Supplier Information", "Documentation", "Review"}

// Title returns the human label of the step
func (s CreateStep) Title() string {
	if s < 0 || int(s) >= len(createStepTitles) {
		return "Unknown"
	}
	return createStepTitles[s]
}

// CreateStepCount is the fixed number of create wizard steps
const CreateStepCount = 4

// CreateDraft is the in-progress create form mirrored to local storage.
// Revision increases on every save; the newest write wins.
type CreateDraft struct {
	Revision         int64            `json:"revision"`
	SavedAt          time.Time        `json:"saved_at"`
	Step             CreateStep       `json:"step"`
	BasicInformation BasicInformation `json:"basic_information"`
	Contributor      Contributor      `json:"contributor"`
	Files            []StagedFile     `json:"files,omitempty"`
	BIMLinks         []BIMLink        `json:"bim_links,omitempty"`
	WebsiteURL       string           `json:"website_url,omitempty"`
}

// NewCreateDraft returns an empty draft on the first step
func NewCreateDraft() *CreateDraft {
	return &CreateDraft{
		BasicInformation: BasicInformation{Categories: []CategorySelection{}},
	}
}

// CreatePayload builds the POST /assets body from the draft
func (d *CreateDraft) CreatePayload() AssetPatch {
	p := AssetPatch{}.
		WithBasicInformation(d.BasicInformation).
		WithContributor(d.Contributor)
	if len(d.BIMLinks) > 0 {
		p = p.WithDocumentationUploads(DocumentationUploads{BIMLinks: d.BIMLinks})
	}
	return p
}

// ExtractionSources lists the sources an AI extraction should read
func (d *CreateDraft) ExtractionSources() []string {
	var sources []string
	if len(d.Files) > 0 {
		sources = append(sources, "documents")
	}
	if d.WebsiteURL != "" {
		sources = append(sources, "website")
	}
	return sources
}

// ErrNotAnImage is returned when a non-image file is made primary
var ErrNotAnImage = errors.New("only images can be primary")

// images returns the staged images as an ImageSet and their positions in Files
func (d *CreateDraft) images() (*ImageSet, []int) {
	set := &ImageSet{}
	var pos []int
	for i, f := range d.Files {
		if f.DocType == DocTypeImage {
			set.Staged = append(set.Staged, f)
			pos = append(pos, i)
		}
	}
	return set, pos
}

// SetPrimaryFile makes Files[i] the only primary image
func (d *CreateDraft) SetPrimaryFile(i int) error {
	if i < 0 || i >= len(d.Files) {
		return fmt.Errorf("file index %d out of range", i)
	}
	if d.Files[i].DocType != DocTypeImage {
		return ErrNotAnImage
	}
	set, pos := d.images()
	if err := set.SetPrimary(slices.Index(pos, i)); err != nil {
		return err
	}
	for k, p := range pos {
		d.Files[p] = set.Staged[k]
	}
	return nil
}

// RemoveFile drops Files[i]. Removing the primary image promotes the first
// remaining image.
func (d *CreateDraft) RemoveFile(i int) error {
	if i < 0 || i >= len(d.Files) {
		return fmt.Errorf("file index %d out of range", i)
	}
	if d.Files[i].DocType != DocTypeImage {
		d.Files = slices.Delete(slices.Clone(d.Files), i, i+1)
		return nil
	}

	set, pos := d.images()
	k := slices.Index(pos, i)
	if err := set.Remove(k); err != nil {
		return err
	}
	files := slices.Delete(slices.Clone(d.Files), i, i+1)
	pos = slices.Delete(pos, k, k+1)
	for n, p := range pos {
		if p > i {
			p--
		}
		files[p] = set.Staged[n]
	}
	d.Files = files
	return nil
}

// CreateWizard is the step state machine over a CreateDraft
type CreateWizard struct {
	Draft         *CreateDraft
	Touched       Touched
	MaxCategories int
}

// NewCreateWizard resumes from draft (or starts empty when nil)
func NewCreateWizard(draft *CreateDraft, maxCategories int) *CreateWizard {
	if draft == nil {
		draft = NewCreateDraft()
	}
	if maxCategories <= 0 {
		maxCategories = DefaultMaxCategories
	}
	if draft.Step < StepBasicInfo || draft.Step > StepReview {
		draft.Step = StepBasicInfo
	}
	return &CreateWizard{Draft: draft, Touched: Touched{}, MaxCategories: maxCategories}
}

// Step returns the current step
func (w *CreateWizard) Step() CreateStep {
	return w.Draft.Step
}

// Touch marks a field as interacted with
func (w *CreateWizard) Touch(field string) {
	w.Touched[field] = true
}

// Errors returns every step 1 error regardless of touch state
func (w *CreateWizard) Errors() ValidationErrors {
	return ValidateBasicInfo(w.Draft.BasicInformation, w.MaxCategories)
}

// VisibleErrors returns errors for touched fields only
func (w *CreateWizard) VisibleErrors() ValidationErrors {
	return w.Touched.Visible(w.Errors())
}

// CanAdvance reports whether Next would succeed
func (w *CreateWizard) CanAdvance() bool {
	if w.Draft.Step == StepBasicInfo {
		return w.Errors().Empty()
	}
	return w.Draft.Step < StepReview
}

// Next advances one step. On step 1 an attempt touches every field and is
// refused while validation fails.
func (w *CreateWizard) Next() error {
	if w.Draft.Step == StepBasicInfo {
		w.Touch("asset_type")
		w.Touch("name")
		w.Touch("categories")
		if errs := w.Errors(); !errs.Empty() {
			return errs
		}
	}
	if w.Draft.Step >= StepReview {
		return fmt.Errorf("already on the last step")
	}
	w.Draft.Step++
	return nil
}

// Back moves one step back; always allowed except on the first step
func (w *CreateWizard) Back() {
	if w.Draft.Step > StepBasicInfo {
		w.Draft.Step--
	}
}
