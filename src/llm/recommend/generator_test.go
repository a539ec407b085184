package recommend

import (
	"context"
	"errors"
	"testing"

	"dinner_planner/src/llm/llmtest"
	"dinner_planner/src/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPrefs = model.PreferenceRecord{
	Location:    "Batu Ferringhi, Penang",
	Time:        "Saturday, 7 PM",
	Budget:      "RM80-150",
	Preferences: []string{"Seafood", "Sea View"},
}

func TestStructured_NotJSONReturnsFallback(t *testing.T) {
	ctx := context.Background()
	g, err := NewGenerator(ctx, &llmtest.ChatModel{Reply: "not json at all"})
	require.NoError(t, err)

	assert.Equal(t, FallbackCandidates(), g.Structured(ctx, testPrefs, "", ""))
}

func TestStructured_FencedArray(t *testing.T) {
	ctx := context.Background()
	g, err := NewGenerator(ctx, &llmtest.ChatModel{Reply: "```json\n" + twoRestaurants + "\n```"})
	require.NoError(t, err)

	assert.Equal(t, twoRestaurantsParsed, g.Structured(ctx, testPrefs, "", ""))
}

func TestStructured_NumericIDsAreNotAFailure(t *testing.T) {
	ctx := context.Background()
	reply := "```json\n" + `[{"id": 1, "name": "Sushi Hinata", "rating": 4.7}]` + "\n```"
	g, err := NewGenerator(ctx, &llmtest.ChatModel{Reply: reply})
	require.NoError(t, err)

	got := g.Structured(ctx, testPrefs, "", "")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "Sushi Hinata", got[0].Name)
}

func TestStructured_ModelErrorReturnsFallback(t *testing.T) {
	ctx := context.Background()
	g, err := NewGenerator(ctx, &llmtest.ChatModel{Err: errors.New("timeout")})
	require.NoError(t, err)

	assert.Equal(t, FallbackCandidates(), g.Structured(ctx, testPrefs, "", LoadMoreRequest))
}

func TestStructured_PromptCarriesInputs(t *testing.T) {
	ctx := context.Background()
	fake := &llmtest.ChatModel{Reply: "[]"}
	g, err := NewGenerator(ctx, fake)
	require.NoError(t, err)

	got := g.Structured(ctx, testPrefs, "Summary: Fresh catch daily.\n\n", LoadMoreRequest)
	assert.Empty(t, got)

	messages := fake.LastCall()
	require.Len(t, messages, 2)
	assert.Contains(t, messages[0].Content, `"priceRange": "RM60-100"`)
	assert.Contains(t, messages[1].Content, "- Location: Batu Ferringhi, Penang")
	assert.Contains(t, messages[1].Content, "- Preferences: Seafood, Sea View")
	assert.Contains(t, messages[1].Content, "- Additional request: different restaurants from previous suggestions")
	assert.Contains(t, messages[1].Content, "Summary: Fresh catch daily.")
}

func TestNarrative(t *testing.T) {
	ctx := context.Background()
	fake := &llmtest.ChatModel{Reply: "## **The Cove**\n- Seafood by the beach\n"}
	g, err := NewGenerator(ctx, fake)
	require.NoError(t, err)

	got := g.Narrative(ctx, testPrefs, "")
	assert.Equal(t, "## **The Cove**\n- Seafood by the beach", got)

	user := fake.LastCall()[1].Content
	assert.Contains(t, user, "None available.")
	assert.NotContains(t, user, "Additional request")
}

func TestNarrative_Fallbacks(t *testing.T) {
	ctx := context.Background()

	g, err := NewGenerator(ctx, &llmtest.ChatModel{Err: errors.New("connection reset")})
	require.NoError(t, err)
	assert.Equal(t, NarrativeFallback, g.Narrative(ctx, testPrefs, ""))

	g, err = NewGenerator(ctx, &llmtest.ChatModel{Reply: "   "})
	require.NoError(t, err)
	assert.Equal(t, NarrativeFallback, g.Narrative(ctx, testPrefs, ""))
}

func TestGenerator_NotConfigured(t *testing.T) {
	ctx := context.Background()
	g, err := NewGenerator(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, NarrativeFallback, g.Narrative(ctx, testPrefs, ""))
	assert.Equal(t, FallbackCandidates(), g.Structured(ctx, testPrefs, "", ""))
}
