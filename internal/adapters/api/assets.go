package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
)

// AssetsResource maps the /assets and /public/assets endpoints
type AssetsResource struct {
	client *Client
}

func NewAssetsResource(client *Client) *AssetsResource {
	return &AssetsResource{client: client}
}

func (r *AssetsResource) Create(ctx context.Context, patch domain.AssetPatch) (*domain.Asset, error) {
	var asset domain.Asset
	if err := r.client.Post(ctx, "/assets", patch, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *AssetsResource) Get(ctx context.Context, id string) (*domain.Asset, error) {
	path, err := assetPath(id, "")
	if err != nil {
		return nil, err
	}
	var asset domain.Asset
	if err := r.client.Get(ctx, path, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *AssetsResource) Update(ctx context.Context, id string, patch domain.AssetPatch) (*domain.Asset, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("nothing to update")
	}
	path, err := assetPath(id, "")
	if err != nil {
		return nil, err
	}
	var asset domain.Asset
	if err := r.client.Patch(ctx, path, patch, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *AssetsResource) Delete(ctx context.Context, id string) error {
	path, err := assetPath(id, "")
	if err != nil {
		return err
	}
	return r.client.Delete(ctx, path, nil)
}

func (r *AssetsResource) List(ctx context.Context, filter domain.ListFilter) (*domain.AssetList, error) {
	return r.list(ctx, "/assets", filter, true)
}

func (r *AssetsResource) Submit(ctx context.Context, id string) (*domain.Asset, error) {
	return r.transition(ctx, id, "submit", nil)
}

func (r *AssetsResource) Approve(ctx context.Context, id string) (*domain.Asset, error) {
	return r.transition(ctx, id, "approve", nil)
}

func (r *AssetsResource) Reject(ctx context.Context, id, reason string) (*domain.Asset, error) {
	return r.transition(ctx, id, "reject", map[string]string{"reason": strings.TrimSpace(reason)})
}

func (r *AssetsResource) ListPublic(ctx context.Context, filter domain.ListFilter) (*domain.AssetList, error) {
	return r.list(ctx, "/public/assets", filter.Public(), false)
}

func (r *AssetsResource) GetPublic(ctx context.Context, id string) (*domain.Asset, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("asset id is required")
	}
	var asset domain.Asset
	if err := r.client.GetAnonymous(ctx, "/public/assets/"+url.PathEscape(id), &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *AssetsResource) transition(ctx context.Context, id, action string, body any) (*domain.Asset, error) {
	path, err := assetPath(id, action)
	if err != nil {
		return nil, err
	}
	var asset domain.Asset
	if err := r.client.Post(ctx, path, body, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *AssetsResource) list(ctx context.Context, base string, filter domain.ListFilter, auth bool) (*domain.AssetList, error) {
	path := base
	if q := filter.Query().Encode(); q != "" {
		path += "?" + q
	}

	var list domain.AssetList
	get := r.client.Get
	if !auth {
		get = r.client.GetAnonymous
	}
	if err := get(ctx, path, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// assetPath builds /assets/{id}[/action]
func assetPath(id, action string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("asset id is required")
	}
	path := "/assets/" + url.PathEscape(id)
	if action != "" {
		path += "/" + action
	}
	return path, nil
}
