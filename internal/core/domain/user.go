package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// User is the authenticated account as reported by /auth/me
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the user may moderate
func (u *User) IsAdmin() bool {
	return u != nil && strings.EqualFold(u.Role, "admin")
}

// Credentials are exchanged for a bearer token
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest registers a new account
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// TokenResponse is returned by /auth/login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// SignupResponse carries both the token and the created user
type SignupResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// ListFilter drives the dashboard and browse list requests
type ListFilter struct {
	Search    string
	Category  string
	AssetType string
	Status    string
	Scaling   string
	Limit     int
}

// Query encodes the non-empty filters as URL parameters
func (f ListFilter) Query() url.Values {
	q := url.Values{}
	set := func(key, val string) {
		if val = strings.TrimSpace(val); val != "" {
			q.Set(key, val)
		}
	}
	set("search", f.Search)
	set("category", f.Category)
	set("asset_type", f.AssetType)
	set("status", f.Status)
	set("scaling_potential", f.Scaling)
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// Public drops filters the approved-only endpoint does not accept
func (f ListFilter) Public() ListFilter {
	f.Status = ""
	return f
}

// Key is a stable identity for caching this filter
func (f ListFilter) Key() string {
	return f.Query().Encode()
}

// AIExtractRequest names the sources the server should read
type AIExtractRequest struct {
	Sources []string `json:"sources"`
	URL     string   `json:"url,omitempty"`
}

// FileLink attaches a remote URL to an asset field
type FileLink struct {
	Target string `json:"target"`
	URL    string `json:"url"`
}

// ReferenceItem is a generic value/label pair from a reference list
type ReferenceItem struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}
