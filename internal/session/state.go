// Package session holds the search screen's application state as a single
// value with explicit transitions.
package session

import (
	"strings"

	"searchui/internal/domain"
)

// FailureMessage is what the user sees for any failed search.
const FailureMessage = "Failed to fetch search results. Please try again."

// Phase identifies which variant of State is active.
type Phase int

const (
	Idle Phase = iota
	Loading
	Success
	Error
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "idle"
	}
}

// State is Idle | Loading | Success(results) | Error(message).
// Results are only populated in Success and Message only in Error.
type State struct {
	phase   Phase
	results []domain.SearchResult
	message string
	// gen increases on every accepted submission; only the latest may resolve.
	gen uint64
}

// Phase reports the active variant.
func (s State) Phase() Phase { return s.phase }

// Loading is true while a submission is in flight.
func (s State) Loading() bool { return s.phase == Loading }

// Results are the last successful results, nil otherwise.
func (s State) Results() []domain.SearchResult { return s.results }

// Message is the user-facing error text when Phase is Error.
func (s State) Message() string { return s.message }

// Generation is the token of the most recent submission.
func (s State) Generation() uint64 { return s.gen }

// Attempted reports whether a search has ever been resolved on this state.
func (s State) Attempted() bool { return s.phase == Success || s.phase == Error }

// Submit starts a search for query. Blank queries are rejected and leave the
// state untouched; ok is false in that case.
func (s State) Submit(query string) (next State, gen uint64, ok bool) {
	if strings.TrimSpace(query) == "" {
		return s, s.gen, false
	}
	next = State{phase: Loading, gen: s.gen + 1}
	return next, next.gen, true
}

// Resolve applies a successful response for generation gen. Stale
// generations are ignored and reported with applied=false.
func (s State) Resolve(gen uint64, results []domain.SearchResult) (next State, applied bool) {
	if gen != s.gen || s.phase != Loading {
		return s, false
	}
	return State{phase: Success, results: results, gen: s.gen}, true
}

// Fail applies a failed response for generation gen. Results are cleared and
// the message is always FailureMessage.
func (s State) Fail(gen uint64) (next State, applied bool) {
	if gen != s.gen || s.phase != Loading {
		return s, false
	}
	return State{phase: Error, message: FailureMessage, gen: s.gen}, true
}
