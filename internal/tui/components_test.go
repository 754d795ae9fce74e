package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"searchui/internal/domain"
)

func TestResultCardsOnePerResult(t *testing.T) {
	results := make([]domain.SearchResult, 5)
	for i := range results {
		results[i] = domain.SearchResult{ID: int64(i), Title: strings.Repeat("t", i+1)}
	}
	assert.Len(t, resultCards(results, "", 0, 0, 80), 5)
	assert.Len(t, resultCards(results, "", 0, 3, 80), 3)
	assert.Len(t, resultCards(results, "", 0, 10, 80), 5)
	assert.Empty(t, resultCards(nil, "", 0, 0, 80))
}

func TestResultCardContents(t *testing.T) {
	card := renderResultCard(domain.SearchResult{
		Title:       "Go Concurrency",
		URL:         "https://go.dev/blog",
		Description: "Channels and goroutines.",
		Tags:        []string{"go", "concurrency"},
	}, "goroutines", false, 80)

	assert.Contains(t, card, "Go Concurrency")
	assert.Contains(t, card, "goroutines")
	assert.Contains(t, card, "go")
	assert.Contains(t, card, "concurrency")
}

func TestResultCardWithoutOptionalFields(t *testing.T) {
	card := renderResultCard(domain.SearchResult{Title: "Bare"}, "", true, 40)
	assert.Contains(t, card, "Bare")
	assert.Equal(t, "", renderTags(nil))
}

func TestRenderResultListEmptyStates(t *testing.T) {
	assert.Contains(t, renderResultList(nil, false, "", 0, 0, 80), emptyPrompt)
	assert.Contains(t, renderResultList(nil, true, "cats", 0, 0, 80), emptyNoResults)
	assert.Contains(t, renderResultList([]domain.SearchResult{{Title: "hit"}}, true, "", 0, 0, 80), "hit")
}

func TestRenderErrorBannerAndAlert(t *testing.T) {
	assert.Contains(t, renderErrorBanner("Failed to fetch", 80), "Failed to fetch")
	alert := renderAlert("Document uploaded successfully!", 80, 20)
	assert.Contains(t, alert, "Document uploaded successfully!")
	assert.Contains(t, alert, "press enter to dismiss")
	assert.Contains(t, renderAlert("small", 0, 0), "small")
}

func TestHighlightBestSentenceKeepsText(t *testing.T) {
	text := "Cats sleep a lot. Dogs bark loudly. Birds sing"
	out := highlightBestSentence(text, "dogs")
	assert.Contains(t, out, "Cats sleep a lot.")
	assert.Contains(t, out, "Dogs bark loudly.")
	assert.Contains(t, out, "Birds sing")

	assert.Equal(t, "...", highlightBestSentence("...", "cats"))
	assert.Equal(t, "", highlightBestSentence("", "cats"))
	assert.Equal(t, text, highlightBestSentence(text, ""))
}

func TestSplitSentences(t *testing.T) {
	assert.Equal(t, []string{"One.", " Two!", " three"}, splitSentences("One. Two! three"))
	assert.Equal(t, []string{"..."}, splitSentences("..."))
}

func TestTokenOverlapScore(t *testing.T) {
	q := toTokenSet("Cat facts")
	assert.Equal(t, 2, tokenOverlapScore(q, "facts about a cat, cat facts"))
	assert.Equal(t, 0, tokenOverlapScore(q, "dogs"))
}
