package domain

import (
	"context"
	"io"
)

// SearchResult is one hit returned by the search backend.
type SearchResult struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// UploadResponse is the backend's reply to a document upload.
type UploadResponse struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message"`
}

// Searcher runs a free-text query against the backend.
type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// Uploader sends a single document to the backend for indexing.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (UploadResponse, error)
}

// Backend is everything the UI needs from the remote service.
type Backend interface {
	Searcher
	Uploader
}
