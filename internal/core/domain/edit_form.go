package domain

import "slices"

// EditForm is the edit wizard's in-memory state. It is seeded once from the
// fetched asset; saving a section never re-seeds it.
type EditForm struct {
	Asset   Asset
	Index   int // len(EditSections()) means the review page
	Edited  map[Section]bool
	Saved   map[Section]bool
	Staged  []StagedFile
	Skipped map[Section]bool
}

// NewEditForm seeds the form from an asset snapshot
func NewEditForm(a Asset) *EditForm {
	return &EditForm{
		Asset:   a,
		Edited:  map[Section]bool{},
		Saved:   map[Section]bool{},
		Skipped: map[Section]bool{},
	}
}

// Current returns the active section; ok is false on the review page
func (f *EditForm) Current() (Section, bool) {
	sections := EditSections()
	if f.Index < 0 || f.Index >= len(sections) {
		return "", false
	}
	return sections[f.Index], true
}

// AtReview reports whether the form is on the review page
func (f *EditForm) AtReview() bool {
	return f.Index >= len(EditSections())
}

// MarkEdited records a local change to the section
func (f *EditForm) MarkEdited(s Section) {
	f.Edited[s] = true
	delete(f.Saved, s)
}

// MarkSaved records a successful save of the section and advances
func (f *EditForm) MarkSaved(s Section) {
	f.Saved[s] = true
	delete(f.Edited, s)
	delete(f.Skipped, s)
	f.advance()
}

// Skip advances without saving; local edits stay in memory
func (f *EditForm) Skip() {
	if s, ok := f.Current(); ok {
		f.Skipped[s] = true
	}
	f.advance()
}

// Prev moves one section back
func (f *EditForm) Prev() {
	if f.Index > 0 {
		f.Index--
	}
}

// GoTo jumps to a section, or to review when s is empty
func (f *EditForm) GoTo(s Section) {
	if s == "" {
		f.Index = len(EditSections())
		return
	}
	for i, sec := range EditSections() {
		if sec == s {
			f.Index = i
			return
		}
	}
}

func (f *EditForm) advance() {
	if f.Index < len(EditSections()) {
		f.Index++
	}
}

// UnsavedSections lists sections with local edits not yet persisted
func (f *EditForm) UnsavedSections() []Section {
	var out []Section
	for _, s := range EditSections() {
		if f.Edited[s] {
			out = append(out, s)
		}
	}
	return out
}

// Images returns the combined persisted + staged image view
func (f *EditForm) Images() *ImageSet {
	var staged []StagedFile
	for _, s := range f.Staged {
		if s.DocType == DocTypeImage {
			staged = append(staged, s)
		}
	}
	return &ImageSet{Persisted: f.Asset.DocumentationUploads.Images, Staged: staged}
}

// ApplyImages writes an ImageSet back into the form, keeping non-image
// staged files in place
func (f *EditForm) ApplyImages(set *ImageSet) {
	f.Asset.DocumentationUploads.Images = set.Persisted
	var rest []StagedFile
	for _, s := range f.Staged {
		if s.DocType != DocTypeImage {
			rest = append(rest, s)
		}
	}
	f.Staged = append(rest, set.Staged...)
	f.MarkEdited(SectionDocumentationUploads)
}

// StageFiles adds files to the pending upload list
func (f *EditForm) StageFiles(files ...StagedFile) {
	f.Staged = append(f.Staged, files...)
}

// ApplyUploadResult replaces persisted files with the server's view and
// clears the staged list
func (f *EditForm) ApplyUploadResult(docs DocumentationUploads) {
	f.Asset.DocumentationUploads.Documents = docs.Documents
	f.Asset.DocumentationUploads.Images = docs.Images
	f.Staged = nil
}

// FinishUpload applies an upload outcome: the server's file list when one
// came back, and failed files stay staged for another attempt
func (f *EditForm) FinishUpload(docs *DocumentationUploads, failed []StagedFile) {
	if docs != nil {
		f.ApplyUploadResult(*docs)
	}
	f.Staged = slices.Clone(failed)
}
