package search

import (
	"strings"

	"dinner_planner/src/model"
	"dinner_planner/src/vocabulary"
)

const defaultKeywordQuery = "restaurant dining"

// KeywordQuery keeps the cuisine and atmosphere terms found in an utterance.
func KeywordQuery(v *vocabulary.Vocabulary, utterance string) string {
	text := strings.ToLower(utterance)

	var terms []string
	terms = append(terms, vocabulary.Matches(text, v.CuisineTerms)...)
	terms = append(terms, vocabulary.Matches(text, v.AtmosphereTerms)...)
	if len(terms) == 0 {
		return defaultKeywordQuery
	}
	return strings.Join(terms, " ")
}

// PreferenceQuery composes a query from an extracted preference record.
func PreferenceQuery(rec model.PreferenceRecord) string {
	return strings.Join(strings.Fields(strings.Join(rec.Preferences, " ")+" restaurants "+rec.Location+" "+rec.Budget), " ")
}

// ShouldSearch reports whether text asks for something only a live search can answer.
func ShouldSearch(v *vocabulary.Vocabulary, text string) bool {
	return vocabulary.ContainsAny(strings.ToLower(text), v.SearchTriggers)
}
