package tui

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"searchui/internal/domain"
)

// searchDoneMsg is sent when a /query request settles.
type searchDoneMsg struct {
	gen     uint64 // must match the session generation to be applied
	query   string
	results []domain.SearchResult
	err     error
}

// uploadDoneMsg is sent when an /upload request settles.
type uploadDoneMsg struct {
	path string
	resp domain.UploadResponse
	err  error
}

func searchCmd(ctx context.Context, s domain.Searcher, gen uint64, query string) tea.Cmd {
	return func() tea.Msg {
		res, err := s.Search(ctx, query)
		return searchDoneMsg{gen: gen, query: query, results: res, err: err}
	}
}

func uploadCmd(ctx context.Context, u domain.Uploader, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return uploadDoneMsg{path: path, err: err}
		}
		defer f.Close()
		resp, err := u.Upload(ctx, filepath.Base(path), f)
		return uploadDoneMsg{path: path, resp: resp, err: err}
	}
}
