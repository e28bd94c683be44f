package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
)

// Reference data kinds served under /reference
const (
	RefAssetTypes         = "asset-types"
	RefCategories         = "categories"
	RefCategoriesFlat     = "categories/flat"
	RefSubcategories      = "subcategories"
	RefScalingPotentials  = "scaling-potentials"
	RefLicenseTypes       = "license-types"
	RefClimateZones       = "climate-zones"
	RefSubmissionStatuses = "submission-statuses"
	RefSystemStatuses     = "system-statuses"
)

// ReferenceKinds lists every reference endpoint
func ReferenceKinds() []string {
	return []string{
		RefAssetTypes, RefCategories, RefCategoriesFlat, RefSubcategories,
		RefScalingPotentials, RefLicenseTypes, RefClimateZones,
		RefSubmissionStatuses, RefSystemStatuses,
	}
}

// ReferenceResource maps the /reference endpoints
type ReferenceResource struct {
	client *Client
}

func NewReferenceResource(client *Client) *ReferenceResource {
	return &ReferenceResource{client: client}
}

// Categories fetches the category tree
func (r *ReferenceResource) Categories(ctx context.Context) (domain.Taxonomy, error) {
	var raw json.RawMessage
	if err := r.client.Get(ctx, "/reference/"+RefCategories, &raw); err != nil {
		return nil, err
	}
	tax, err := decodeTaxonomy(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: categories: %v", ErrMalformedResponse, err)
	}
	return tax, nil
}

// List fetches a flat reference list by kind
func (r *ReferenceResource) List(ctx context.Context, kind string) ([]domain.ReferenceItem, error) {
	kind = strings.Trim(strings.TrimSpace(kind), "/")
	if !isReferenceKind(kind) {
		return nil, fmt.Errorf("unknown reference list %q", kind)
	}
	var raw json.RawMessage
	if err := r.client.Get(ctx, "/reference/"+kind, &raw); err != nil {
		return nil, err
	}
	items, err := decodeReferenceItems(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, kind, err)
	}
	return items, nil
}

func isReferenceKind(kind string) bool {
	for _, k := range ReferenceKinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// unwrapItems strips an {"items": ...} or {"data": ...} wrapper if present
func unwrapItems(raw json.RawMessage, keys ...string) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return trimmed
	}
	for _, k := range append(keys, "items", "data") {
		if v, ok := obj[k]; ok {
			return v
		}
	}
	return trimmed
}

// decodeTaxonomy accepts a list of categories (optionally wrapped) or a
// map of primary name to subcategory names
func decodeTaxonomy(raw json.RawMessage) (domain.Taxonomy, error) {
	body := unwrapItems(raw, "categories")
	if len(body) == 0 {
		return domain.Taxonomy{}, nil
	}

	if body[0] == '[' {
		var tax domain.Taxonomy
		if err := json.Unmarshal(body, &tax); err != nil {
			return nil, err
		}
		return tax, nil
	}

	var byName map[string][]string
	if err := json.Unmarshal(body, &byName); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	tax := make(domain.Taxonomy, 0, len(names))
	for _, name := range names {
		tax = append(tax, domain.Category{Name: name, Subcategories: byName[name]})
	}
	return tax, nil
}

// decodeReferenceItems accepts strings or {value,label,description} objects
func decodeReferenceItems(raw json.RawMessage) ([]domain.ReferenceItem, error) {
	body := unwrapItems(raw)
	if len(body) == 0 {
		return nil, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		return nil, err
	}

	items := make([]domain.ReferenceItem, 0, len(elems))
	for _, e := range elems {
		var s string
		if err := json.Unmarshal(e, &s); err == nil {
			items = append(items, domain.ReferenceItem{Value: s, Label: s})
			continue
		}
		var obj struct {
			domain.ReferenceItem
			Name string `json:"name"`
		}
		if err := json.Unmarshal(e, &obj); err != nil {
			return nil, err
		}
		item := obj.ReferenceItem
		if item.Value == "" {
			item.Value = obj.Name
		}
		if item.Label == "" {
			item.Label = item.Value
		}
		items = append(items, item)
	}
	return items, nil
}
