package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
)

// AuthResource maps the /auth endpoints
type AuthResource struct {
	client *Client
}

func NewAuthResource(client *Client) *AuthResource {
	return &AuthResource{client: client}
}

// Login exchanges credentials for a token. It does not store the token.
func (r *AuthResource) Login(ctx context.Context, creds domain.Credentials) (*domain.TokenResponse, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	var resp domain.TokenResponse
	if err := r.client.Post(ctx, "/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("%w: login response has no access token", ErrMalformedResponse)
	}
	return &resp, nil
}

// Signup registers an account and returns its token and profile together
func (r *AuthResource) Signup(ctx context.Context, req domain.SignupRequest) (*domain.SignupResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	var resp domain.SignupResponse
	if err := r.client.Post(ctx, "/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("%w: signup response has no access token", ErrMalformedResponse)
	}
	return &resp, nil
}

// Me returns the profile of the token holder
func (r *AuthResource) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := r.client.Get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
