package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kamal-hamza/alib-cli/internal/core/ports"
	"github.com/kamal-hamza/alib-cli/pkg/logger"
)

const (
	defaultBaseURL = "http://localhost:8000/api/v1"
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 1 << 20
)

// Config controls how the client reaches the API
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client is the single HTTP entry point for every resource module.
// It attaches the bearer token, decodes the error envelope and clears the
// stored token on 401. It never retries.
type Client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
	tokens     ports.TokenStore
}

// New creates a client. tokens may be nil for anonymous use.
func New(log *logger.Logger, cfg Config, tokens ports.TokenStore) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return nil, fmt.Errorf("api base URL must start with http:// or https://, got %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "alib-cli"
	}

	return &Client{
		log:        log.With("client", "AssetLibraryAPI"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tokens:     tokens,
	}, nil
}

// BaseURL returns the normalized API base URL
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// Get decodes the response of GET path into out
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out, true)
}

// GetAnonymous is Get without the Authorization header
func (c *Client) GetAnonymous(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out, false)
}

// Post sends body as JSON and decodes the response into out
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out, true)
}

// Patch sends body as JSON and decodes the response into out
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, body, out, true)
}

// Delete issues a DELETE, decoding any response body into out
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, out, true)
}

// FormFile is one file part of a multipart request
type FormFile struct {
	Field string
	Path  string
}

// Form is a multipart body
type Form struct {
	Fields map[string][]string
	Files  []FormFile
}

// PostFormData sends form as multipart/form-data; the content type with
// its boundary is set here
func (c *Client) PostFormData(ctx context.Context, path string, form Form, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for key, values := range form.Fields {
		for _, v := range values {
			if err := w.WriteField(key, v); err != nil {
				return fmt.Errorf("failed to write form field %s: %w", key, err)
			}
		}
	}
	for _, f := range form.Files {
		if err := writeFilePart(w, f); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return c.do(ctx, http.MethodPost, path, &buf, w.FormDataContentType(), out, true)
}

func writeFilePart(w *multipart.Writer, f FormFile) error {
	file, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.Path, err)
	}
	defer file.Close()

	part, err := w.CreateFormFile(f.Field, filepath.Base(f.Path))
	if err != nil {
		return fmt.Errorf("failed to create form part for %s: %w", f.Path, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read %s: %w", f.Path, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any, auth bool) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = &buf
		contentType = "application/json"
	}
	return c.do(ctx, method, path, reader, contentType, out, auth)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any, auth bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return err
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			"method", method,
			"path", path,
			"request_id", requestID,
			"error", err.Error(),
		)
		return err
	}
	defer resp.Body.Close()

	c.log.Debug("request completed",
		"method", method,
		"path", path,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration", time.Since(start).String(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if resp.StatusCode == http.StatusUnauthorized && auth {
			c.clearToken()
		}
		apiErr := parseError(resp.StatusCode, raw)
		c.log.Info("request rejected",
			"method", method,
			"path", path,
			"request_id", requestID,
			"status", resp.StatusCode,
			"error", apiErr.Error(),
		)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, method, path, err)
	}
	return nil
}

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.cfg.BaseURL + path
}

func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	token, err := c.tokens.Load()
	if err != nil {
		c.log.Warn("failed to read stored token", "error", err.Error())
		return ""
	}
	return token
}

func (c *Client) clearToken() {
	if c.tokens == nil {
		return
	}
	if err := c.tokens.Clear(); err != nil {
		c.log.Warn("failed to clear token after 401", "error", err.Error())
		return
	}
	c.log.Info("stored token cleared after 401")
}
