package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
)

// uploadField is the repeated multipart field carrying each file
const uploadField = "files[]"

// ContributorResource maps the per-asset file and extraction endpoints
type ContributorResource struct {
	client *Client
}

func NewContributorResource(client *Client) *ContributorResource {
	return &ContributorResource{client: client}
}

// Upload posts one doc-type group as a single multipart batch
func (r *ContributorResource) Upload(ctx context.Context, assetID string, group domain.UploadGroup) (*domain.Asset, error) {
	if len(group.Files) == 0 {
		return nil, fmt.Errorf("no files to upload")
	}
	path, err := assetPath(assetID, "uploads")
	if err != nil {
		return nil, err
	}

	docType := group.DocType
	if docType == "" {
		docType = domain.DocTypeOther
	}
	form := Form{Fields: map[string][]string{"doc_type": {docType}}}
	for _, f := range group.Files {
		form.Files = append(form.Files, FormFile{Field: uploadField, Path: f.Path})
		if f.Caption != "" {
			form.Fields["captions"] = append(form.Fields["captions"], f.Caption)
		}
		if f.IsPrimary {
			form.Fields["primary_filename"] = []string{f.Filename()}
		}
	}

	var asset domain.Asset
	if err := r.client.PostFormData(ctx, path, form, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// AttachURL links a remote file to an asset field
func (r *ContributorResource) AttachURL(ctx context.Context, assetID string, link domain.FileLink) (*domain.Asset, error) {
	link.Target = strings.TrimSpace(link.Target)
	link.URL = strings.TrimSpace(link.URL)
	if link.Target == "" || link.URL == "" {
		return nil, fmt.Errorf("target and url are required")
	}
	path, err := assetPath(assetID, "files")
	if err != nil {
		return nil, err
	}
	var asset domain.Asset
	if err := r.client.Post(ctx, path, link, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// Extract triggers server-side AI extraction
func (r *ContributorResource) Extract(ctx context.Context, assetID string, req domain.AIExtractRequest) (*domain.Asset, error) {
	if len(req.Sources) == 0 {
		return nil, fmt.Errorf("at least one extraction source is required")
	}
	path, err := assetPath(assetID, "ai-extract")
	if err != nil {
		return nil, err
	}
	var asset domain.Asset
	if err := r.client.Post(ctx, path, req, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}
