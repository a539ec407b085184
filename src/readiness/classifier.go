// Package readiness decides when a conversation carries enough signal to
// extract preferences and recommend restaurants.
package readiness

import (
	"strconv"
	"strings"

	"dinner_planner/src/metrics"
	"dinner_planner/src/vocabulary"
)

const (
	// Category count that makes a conversation ready on its own
	minCategories = 2
	// Turns after which a single category is enough
	longConversationTurns = 4
)

// VocabularySource supplies the current keyword tables.
type VocabularySource interface {
	Get() *vocabulary.Vocabulary
}

type Classifier struct {
	vocab VocabularySource
}

func NewClassifier(vocab VocabularySource) *Classifier {
	return &Classifier{vocab: vocab}
}

// IsReady reports whether recommendations should be offered after this exchange.
// history holds earlier turns of the same conversation, oldest first.
func (c *Classifier) IsReady(userText, assistantReply string, conversationLength int, history ...string) bool {
	v := c.vocab.Get()

	user := strings.ToLower(userText)
	reply := strings.ToLower(assistantReply)

	ready := c.keywordPair(v, user, reply)
	if !ready {
		transcript := append(append([]string{}, history...), userText, assistantReply)
		found := len(c.categories(v, strings.ToLower(strings.Join(transcript, " "))))
		ready = found >= minCategories || (conversationLength >= longConversationTurns && found >= 1)
	}

	metrics.ReadinessDecisions.WithLabelValues(strconv.FormatBool(ready)).Inc()
	return ready
}

// Categories returns the preference categories mentioned in text.
func (c *Classifier) Categories(text string) []vocabulary.Category {
	return c.categories(c.vocab.Get(), strings.ToLower(text))
}

// keywordPair: the user named a place or a budget and the reply sounds ready.
func (c *Classifier) keywordPair(v *vocabulary.Vocabulary, user, reply string) bool {
	hasSignal := vocabulary.ContainsAny(user, v.LocationSignals) || vocabulary.ContainsAny(user, v.BudgetSignals)
	return hasSignal && vocabulary.ContainsAny(reply, v.ReadinessPhrases)
}

func (c *Classifier) categories(v *vocabulary.Vocabulary, text string) []vocabulary.Category {
	var found []vocabulary.Category
	for _, category := range vocabulary.Categories {
		if vocabulary.ContainsAny(text, v.Terms(category)) {
			found = append(found, category)
		}
	}
	return found
}
