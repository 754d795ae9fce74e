// Package upload holds the client-side rules for sending documents to the
// backend: which files are accepted, the single in-flight guard, and the
// notices shown once an upload settles.
package upload

import (
	"errors"
	"strings"

	"searchui/internal/domain"
)

// AllowedExtensions lists the accepted filename suffixes. Matching is case-sensitive.
var AllowedExtensions = []string{".csv", ".json"}

// ErrUnsupportedType rejects files outside AllowedExtensions.
var ErrUnsupportedType = errors.New("please select a .csv or .json file")

const (
	// RejectNotice is shown when a file fails Validate.
	RejectNotice = "Please select a .csv or .json file"
	// DefaultSuccessNotice is used when the backend sends no message.
	DefaultSuccessNotice = "Document uploaded successfully!"
	// DefaultFailureNotice is used when the error carries no text.
	DefaultFailureNotice = "Failed to upload document. Please try again."
)

// Validate checks name against AllowedExtensions.
func Validate(name string) error {
	for _, ext := range AllowedExtensions {
		if strings.HasSuffix(name, ext) {
			return nil
		}
	}
	return ErrUnsupportedType
}

// State is the upload control's phase.
type State int

const (
	Idle State = iota
	Uploading
)

func (s State) String() string {
	if s == Uploading {
		return "uploading"
	}
	return "idle"
}

// Control guards against overlapping uploads.
type Control struct {
	state State
}

// State reports the current phase.
func (c Control) State() State { return c.state }

// Busy is true while a request is in flight.
func (c Control) Busy() bool { return c.state == Uploading }

// Begin moves to Uploading. It returns false if an upload is already running.
func (c *Control) Begin() bool {
	if c.state == Uploading {
		return false
	}
	c.state = Uploading
	return true
}

// Finish returns the control to Idle.
func (c *Control) Finish() { c.state = Idle }

// SuccessNotice is the alert text for a completed upload.
func SuccessNotice(resp domain.UploadResponse) string {
	if resp.Message != "" {
		return resp.Message
	}
	return DefaultSuccessNotice
}

// FailureNotice is the alert text for a failed upload.
func FailureNotice(err error) string {
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return DefaultFailureNotice
}
