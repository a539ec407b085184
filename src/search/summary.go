package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dinner_planner/src/logger"
	"dinner_planner/src/metrics"
	"dinner_planner/src/model"
	"dinner_planner/src/vocabulary"
)

const (
	NotConfiguredSummary = "Search functionality is not available at the moment."
	UnavailableSummary   = "Unable to search for current information at the moment."
	EmptySummary         = "No recent information found for this search."

	maxListedResults  = 3
	maxSnippetRunes   = 200
	defaultMaxResults = 5
)

// Searcher is the search endpoint used by Augmenter.
type Searcher interface {
	Enabled() bool
	Search(ctx context.Context, query string, maxResults int) (*model.SearchResponse, error)
}

// VocabularySource supplies the current keyword tables.
type VocabularySource interface {
	Get() *vocabulary.Vocabulary
}

// Augmenter produces bounded text summaries of live search results.
type Augmenter struct {
	searcher   Searcher
	vocab      VocabularySource
	maxResults int
}

func NewAugmenter(searcher Searcher, vocab VocabularySource, maxResults int) *Augmenter {
	if maxResults <= 0 || maxResults > defaultMaxResults {
		maxResults = defaultMaxResults
	}
	return &Augmenter{searcher: searcher, vocab: vocab, maxResults: maxResults}
}

// Summarize searches for restaurants matching query near location. It never fails;
// errors come back as one of the fixed summary strings.
func (a *Augmenter) Summarize(ctx context.Context, query, location string) string {
	if !a.searcher.Enabled() {
		metrics.SearchRequests.WithLabelValues(metrics.OutcomeUnavailable).Inc()
		return NotConfiguredSummary
	}

	searchQuery := strings.Join(strings.Fields(fmt.Sprintf("%s restaurants %s menu prices reviews opening hours", query, location)), " ")

	resp, err := a.searcher.Search(ctx, searchQuery, a.maxResults)
	if err != nil {
		metrics.SearchRequests.WithLabelValues(metrics.OutcomeError).Inc()
		if errors.Is(err, model.ErrSearchNotConfigured) {
			return NotConfiguredSummary
		}
		logger.Warn().Err(err).Str("query", searchQuery).Msg("Web search failed")
		return UnavailableSummary
	}
	metrics.SearchRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()

	logger.Debug().Str("query", searchQuery).Int("results", len(resp.Results)).Bool("answer", resp.Answer != "").Msg("Web search completed")
	return FormatSummary(resp)
}

// SearchSpecificRestaurant looks up current details for one named restaurant.
func (a *Augmenter) SearchSpecificRestaurant(ctx context.Context, name, location string) string {
	query := fmt.Sprintf("\"%s\" restaurant %s current menu prices hours contact booking", name, location)
	return a.Summarize(ctx, query, location)
}

// SearchCuisineType looks up open restaurants of one cuisine.
func (a *Augmenter) SearchCuisineType(ctx context.Context, cuisine, location, budget string) string {
	query := strings.Join(strings.Fields(fmt.Sprintf("%s restaurants %s %s current open recommendations", cuisine, location, budget)), " ")
	return a.Summarize(ctx, query, location)
}

// ShouldSearch applies the trigger list from the current vocabulary.
func (a *Augmenter) ShouldSearch(text string) bool {
	return ShouldSearch(a.vocab.Get(), text)
}

// KeywordQuery builds a query from the cuisine and atmosphere terms in utterance.
func (a *Augmenter) KeywordQuery(utterance string) string {
	return KeywordQuery(a.vocab.Get(), utterance)
}

// FormatSummary renders the answer and the top results as prompt-ready text.
func FormatSummary(resp *model.SearchResponse) string {
	if resp == nil {
		return EmptySummary
	}

	var b strings.Builder
	if resp.Answer != "" {
		fmt.Fprintf(&b, "Summary: %s\n\n", resp.Answer)
	}

	if len(resp.Results) > 0 {
		b.WriteString("Recent information found:\n")
		for i, result := range resp.Results {
			if i == maxListedResults {
				break
			}
			fmt.Fprintf(&b, "%d. %s\n", i+1, result.Title)
			fmt.Fprintf(&b, "   %s...\n", truncateRunes(result.Content, maxSnippetRunes))
			fmt.Fprintf(&b, "   Source: %s\n\n", result.URL)
		}
	}

	if b.Len() == 0 {
		return EmptySummary
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
