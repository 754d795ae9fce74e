package tui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"searchui/internal/domain"
)

const (
	emptyPrompt    = "Enter a search term to begin"
	emptyNoResults = "No results found. Try a different search term."
)

// renderSearchBar draws the query input inside its box.
func renderSearchBar(input string, width int) string {
	return queryBoxStyle.Width(boxWidth(queryBoxStyle, width)).Render(input)
}

// renderResultCard draws one result: title, link, description, tag chips.
func renderResultCard(r domain.SearchResult, query string, selected bool, width int) string {
	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	inner := boxWidth(style, width)

	lines := []string{titleStyle.Render(r.Title)}
	if r.URL != "" {
		lines = append(lines, urlStyle.Render(r.URL))
	}
	if strings.TrimSpace(r.Description) != "" {
		lines = append(lines, descStyle.Width(inner).Render(highlightBestSentence(r.Description, query)))
	}
	if chips := renderTags(r.Tags); chips != "" {
		lines = append(lines, chips)
	}
	return style.Width(inner).Render(strings.Join(lines, "\n"))
}

func renderTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	chips := make([]string, 0, len(tags))
	for _, t := range tags {
		chips = append(chips, chipStyle.Render(t))
	}
	return strings.Join(chips, " ")
}

// resultCards renders every result in order. limit <= 0 renders all.
func resultCards(results []domain.SearchResult, query string, cursor, limit, width int) []string {
	n := len(results)
	if limit > 0 && limit < n {
		n = limit
	}
	cards := make([]string, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, renderResultCard(results[i], query, i == cursor, width))
	}
	return cards
}

// renderResultList is the card stack, or the empty state when there is
// nothing to show.
func renderResultList(results []domain.SearchResult, attempted bool, query string, cursor, limit, width int) string {
	if len(results) == 0 {
		return renderEmpty(attempted)
	}
	return strings.Join(resultCards(results, query, cursor, limit, width), "\n")
}

func renderEmpty(attempted bool) string {
	if attempted {
		return emptyStyle.Render(emptyNoResults)
	}
	return emptyStyle.Render(emptyPrompt)
}

func renderLoading(spinner, label string) string {
	return spinner + " " + label
}

func renderErrorBanner(message string, width int) string {
	return errorBannerStyle.Width(boxWidth(errorBannerStyle, width)).Render(message)
}

// renderAlert draws the blocking notification centred in the window.
func renderAlert(text string, width, height int) string {
	body := text + "\n\n" + alertHintStyle.Render("press enter to dismiss")
	box := alertStyle.Render(body)
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// boxWidth is the content width that makes a bordered box span total columns.
func boxWidth(style lipgloss.Style, total int) int {
	fw, _ := style.GetFrameSize()
	w := total - fw
	if w < 10 {
		w = 10
	}
	return w
}

var (
	unicodeWordRe = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
	sentenceRe    = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
)

// highlightBestSentence emphasises the sentence sharing the most words with query.
func highlightBestSentence(text, query string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	sentences := splitSentences(text)
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 {
		return strings.TrimSpace(strings.Join(sentences, ""))
	}
	bestIdx := -1
	bestScore := 0
	for i, s := range sentences {
		if score := tokenOverlapScore(qTokens, s); score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	for i := range sentences {
		sent := strings.TrimSpace(sentences[i])
		if i == bestIdx {
			sentences[i] = highlightStyle.Render(sent)
		} else {
			sentences[i] = sent
		}
	}
	return strings.Join(sentences, " ")
}

// splitSentences keeps any trailing text that lacks closing punctuation.
func splitSentences(text string) []string {
	var out []string
	end := 0
	for _, loc := range sentenceRe.FindAllStringIndex(text, -1) {
		out = append(out, text[loc[0]:loc[1]])
		end = loc[1]
	}
	if tail := text[end:]; strings.TrimSpace(tail) != "" {
		out = append(out, tail)
	}
	return out
}

func toTokenSet(s string) map[string]struct{} {
	tokens := unicodeWordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

func tokenOverlapScore(queryTokens map[string]struct{}, sentence string) int {
	score := 0
	tokens := unicodeWordRe.FindAllString(strings.ToLower(sentence), -1)
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}
