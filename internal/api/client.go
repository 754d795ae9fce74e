package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"searchui/internal/domain"
)

// DefaultBaseURL is where the search backend listens unless configured otherwise.
const DefaultBaseURL = "http://localhost:5000"

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

var (
	// ErrSearchFailed is matched by every non-2xx /query response.
	ErrSearchFailed = errors.New("search request failed")
	// ErrUploadFailed is matched by every non-2xx /upload response.
	ErrUploadFailed = errors.New("upload failed")
)

// StatusError is returned when the backend answers with a non-2xx status.
// Its message is deliberately generic; Detail keeps whatever the backend said.
type StatusError struct {
	Op         string
	StatusCode int
	Detail     string
	kind       error
}

func (e *StatusError) Error() string { return e.kind.Error() }

func (e *StatusError) Unwrap() error { return e.kind }

// Client is a minimal REST client for the search backend.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

// Config configures the backend client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *log.Logger
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// NewClient creates a backend client. Zero values fall back to defaults.
func NewClient(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{baseURL: base, client: hc, logger: logger.WithPrefix("api")}
}

// BaseURL returns the backend root this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Search lower-cases the query and posts it to /query. The text is not
// trimmed; surrounding whitespace reaches the backend unchanged.
func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	body := map[string]string{"query": strings.ToLower(query)}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	var out []domain.SearchResult
	if err := c.do(ctx, "search", "/query", "application/json", bytes.NewReader(data), ErrSearchFailed, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Upload sends r as the single multipart field "file" named name.
func (c *Client) Upload(ctx context.Context, name string, r io.Reader) (domain.UploadResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return domain.UploadResponse{}, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return domain.UploadResponse{}, fmt.Errorf("read %s: %w", name, err)
	}
	if err := mw.Close(); err != nil {
		return domain.UploadResponse{}, err
	}
	var out domain.UploadResponse
	if err := c.do(ctx, "upload", "/upload", mw.FormDataContentType(), &buf, ErrUploadFailed, &out); err != nil {
		return domain.UploadResponse{}, err
	}
	return out, nil
}

// UploadFile opens path and uploads it under its base name.
func (c *Client) UploadFile(ctx context.Context, path string) (domain.UploadResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		c.logger.Error("upload error", "op", "upload", "path", path, "err", err)
		return domain.UploadResponse{}, err
	}
	defer f.Close()
	return c.Upload(ctx, filepath.Base(path), f)
}

func (c *Client) do(ctx context.Context, op, path, contentType string, body io.Reader, kind error, out any) error {
	reqID := uuid.NewString()
	logger := c.logger.With("op", op, "request_id", reqID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		logger.Error(op+" error", "err", err)
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		logger.Error(op+" error", "err", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		serr := &StatusError{Op: op, StatusCode: resp.StatusCode, Detail: errorDetail(resp.Body), kind: kind}
		logger.Error(op+" error", "status", resp.StatusCode, "detail", serr.Detail, "err", serr)
		return serr
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		err = fmt.Errorf("decode %s response: %w", op, err)
		logger.Error(op+" error", "status", resp.StatusCode, "err", err)
		return err
	}
	logger.Debug(op+" ok", "status", resp.StatusCode, "elapsed", time.Since(start))
	return nil
}

// errorDetail extracts the backend's {"status":"error","message":...}
// message, falling back to the raw body.
func errorDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(raw))
}
