package domain

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationErrors maps a form field to its message
type ValidationErrors map[string]string

// Empty reports whether there are no errors
func (v ValidationErrors) Empty() bool {
	return len(v) == 0
}

// Fields returns the failing field names sorted
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Error implements error so validation can short-circuit a service call
func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, f := range v.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", f, v[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Err returns v as an error, or nil when empty
func (v ValidationErrors) Err() error {
	if v.Empty() {
		return nil
	}
	return v
}

// Touched tracks which fields the user has interacted with
type Touched map[string]bool

// Visible filters errors down to touched fields
func (t Touched) Visible(errs ValidationErrors) ValidationErrors {
	out := ValidationErrors{}
	for f, msg := range errs {
		if t[f] {
			out[f] = msg
		}
	}
	return out
}

// ValidateBasicInfo applies the create-wizard step 1 rules
func ValidateBasicInfo(info BasicInformation, maxCategories int) ValidationErrors {
	if maxCategories <= 0 {
		maxCategories = DefaultMaxCategories
	}
	errs := ValidationErrors{}
	if strings.TrimSpace(string(info.AssetType)) == "" {
		errs["asset_type"] = "asset type is required"
	}
	if strings.TrimSpace(info.Name) == "" {
		errs["name"] = "name is required"
	}
	switch n := len(info.Categories); {
	case n == 0:
		errs["categories"] = "select at least 1 category"
	case n > maxCategories:
		errs["categories"] = fmt.Sprintf("select at most %d categories", maxCategories)
	}
	return errs
}
