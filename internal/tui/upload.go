package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"searchui/internal/domain"
	"searchui/internal/upload"
)

// uploadPanel is the file-selection element plus its in-flight guard.
type uploadPanel struct {
	input   textinput.Model
	control upload.Control
	open    bool
}

func newUploadPanel() uploadPanel {
	ti := textinput.New()
	ti.Prompt = "file: "
	ti.Placeholder = "path/to/documents.csv or .json"
	ti.CharLimit = 0
	return uploadPanel{input: ti}
}

// submit validates the entered path and, if acceptable, starts the upload.
// notice is non-empty when the file was rejected without a request.
func (p *uploadPanel) submit(ctx context.Context, u domain.Uploader) (cmd tea.Cmd, notice string) {
	path := strings.TrimSpace(p.input.Value())
	if path == "" {
		return nil, ""
	}
	if err := upload.Validate(path); err != nil {
		return nil, upload.RejectNotice
	}
	if !p.control.Begin() {
		return nil, ""
	}
	return uploadCmd(ctx, u, path), ""
}

// finish resets the selection so the same path can be chosen again.
func (p *uploadPanel) finish() {
	p.control.Finish()
	p.input.Reset()
}

func (p uploadPanel) view(spinner string, width int) string {
	body := p.input.View()
	if p.control.Busy() {
		body = renderLoading(spinner, "Uploading "+p.input.Value()+"...")
	}
	return uploadBoxStyle.Width(boxWidth(uploadBoxStyle, width)).Render(body)
}
