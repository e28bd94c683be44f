package ports

import (
	"context"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
)

// TokenStore defines the port for bearer token persistence
type TokenStore interface {
	// Load returns the stored token, or an empty string when none is stored
	Load() (string, error)

	// Save persists the token
	Save(token string) error

	// Clear removes the stored token
	Clear() error
}

// DraftStore defines the port for the single create-asset draft buffer
type DraftStore interface {
	// Load returns the stored draft, or nil when there is none
	Load() (*domain.CreateDraft, error)

	// Save writes the draft, bumping its revision. Last write wins.
	Save(draft *domain.CreateDraft) error

	// Clear removes the draft
	Clear() error

	// Path returns the backing file location
	Path() string
}

// AuthAPI defines the port for the authentication endpoints
type AuthAPI interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.TokenResponse, error)
	Signup(ctx context.Context, req domain.SignupRequest) (*domain.SignupResponse, error)
	Me(ctx context.Context) (*domain.User, error)
}

// AssetAPI defines the port for asset CRUD, lifecycle and public reads
type AssetAPI interface {
	Create(ctx context.Context, patch domain.AssetPatch) (*domain.Asset, error)
	Get(ctx context.Context, id string) (*domain.Asset, error)
	Update(ctx context.Context, id string, patch domain.AssetPatch) (*domain.Asset, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.ListFilter) (*domain.AssetList, error)

	Submit(ctx context.Context, id string) (*domain.Asset, error)
	Approve(ctx context.Context, id string) (*domain.Asset, error)
	Reject(ctx context.Context, id, reason string) (*domain.Asset, error)

	// ListPublic and GetPublic hit the approved-only endpoints without a token
	ListPublic(ctx context.Context, filter domain.ListFilter) (*domain.AssetList, error)
	GetPublic(ctx context.Context, id string) (*domain.Asset, error)
}

// ContributorAPI defines the port for file and extraction endpoints of an asset
type ContributorAPI interface {
	// Upload sends one multipart batch where every file shares a doc type
	Upload(ctx context.Context, assetID string, group domain.UploadGroup) (*domain.Asset, error)

	// AttachURL links a remote file to an asset field
	AttachURL(ctx context.Context, assetID string, link domain.FileLink) (*domain.Asset, error)

	// Extract asks the server to run AI extraction over the given sources
	Extract(ctx context.Context, assetID string, req domain.AIExtractRequest) (*domain.Asset, error)
}

// ReferenceAPI defines the port for reference data lookups
type ReferenceAPI interface {
	Categories(ctx context.Context) (domain.Taxonomy, error)
	List(ctx context.Context, kind string) ([]domain.ReferenceItem, error)
}

// SuggestionAPI defines the port for the category suggestion queue
type SuggestionAPI interface {
	Create(ctx context.Context, s domain.CategorySuggestion) (*domain.CategorySuggestion, error)
	Mine(ctx context.Context) ([]domain.CategorySuggestion, error)
	List(ctx context.Context, status domain.SuggestionStatus, kind domain.SuggestionType) ([]domain.CategorySuggestion, error)
	Review(ctx context.Context, id string, status domain.SuggestionStatus, notes string) (*domain.CategorySuggestion, error)
	Delete(ctx context.Context, id string) error
}

// QueryCache defines the port for the server-state cache. Identical
// concurrent fetches share one call; mutations invalidate by key prefix.
type QueryCache interface {
	Fetch(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, error)
	Invalidate(prefixes ...string)
}

// EditorLauncher defines the port for launching external editors
type EditorLauncher interface {
	// Open opens a file in the user's preferred editor and waits for it to exit
	Open(ctx context.Context, filepath string) error
}
