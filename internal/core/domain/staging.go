package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Document types accepted by the uploads endpoint
const (
	DocTypeDatasheet     = "datasheet"
	DocTypeManual        = "manual"
	DocTypeCertification = "certification"
	DocTypePlan          = "plan"
	DocTypeImage         = "image"
	DocTypeOther         = "other"
)

// ValidDocTypes lists known document types in display order
func ValidDocTypes() []string {
	return []string{DocTypeDatasheet, DocTypeManual, DocTypeCertification, DocTypePlan, DocTypeImage, DocTypeOther}
}

// StagedFile is a local file selected for upload but not yet sent
type StagedFile struct {
	Path      string `json:"path"`
	DocType   string `json:"doc_type"`
	Caption   string `json:"caption,omitempty"`
	IsPrimary bool   `json:"is_primary,omitempty"`
}

// Filename returns the base name of the staged file
func (f StagedFile) Filename() string {
	return filepath.Base(f.Path)
}

// UploadGroup is one multipart batch: every file shares a doc type
type UploadGroup struct {
	DocType string
	Files   []StagedFile
}

// ParseStagedFlag parses "doc_type=path" or a bare path (doc type "other")
func ParseStagedFlag(raw string) (StagedFile, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return StagedFile{}, fmt.Errorf("empty file argument")
	}
	docType, path, found := strings.Cut(raw, "=")
	if !found {
		return StagedFile{Path: raw, DocType: DocTypeOther}, nil
	}
	docType = strings.ToLower(strings.TrimSpace(docType))
	path = strings.TrimSpace(path)
	if path == "" {
		return StagedFile{}, fmt.Errorf("file argument %q has no path", raw)
	}
	if !containsFold(ValidDocTypes(), docType) {
		return StagedFile{}, fmt.Errorf("unknown document type %q", docType)
	}
	return StagedFile{Path: path, DocType: docType}, nil
}

// GroupByDocType splits staged files into batches ordered by the first
// appearance of each doc type
func GroupByDocType(files []StagedFile) []UploadGroup {
	var groups []UploadGroup
	index := make(map[string]int)
	for _, f := range files {
		docType := f.DocType
		if docType == "" {
			docType = DocTypeOther
		}
		i, ok := index[docType]
		if !ok {
			i = len(groups)
			index[docType] = i
			groups = append(groups, UploadGroup{DocType: docType})
		}
		groups[i].Files = append(groups[i].Files, f)
	}
	return groups
}
