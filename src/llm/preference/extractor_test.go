package preference

import (
	"context"
	"errors"
	"testing"

	"dinner_planner/src/llm/llmtest"
	"dinner_planner/src/model"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	ctx := context.Background()
	fake := &llmtest.ChatModel{
		Reply: `{"location": "Bukit Bintang", "time": "Tonight, 8 PM", "budget": "RM80-120", "preferences": ["Japanese", "Quiet"]}`,
	}

	extractor, err := NewExtractor(ctx, fake)
	require.NoError(t, err)

	accuracy := 12.0
	loc := &model.LocationRecord{Latitude: 3.1466, Longitude: 101.7113, Address: "Pavilion KL", Accuracy: &accuracy}
	rec := extractor.Extract(ctx, []string{"I want japanese", "Sure, where?", "near pavilion, quiet please"}, loc)

	assert.Equal(t, "Bukit Bintang", rec.Location)
	assert.Equal(t, []string{"Japanese", "Quiet"}, rec.Preferences)

	messages := fake.LastCall()
	require.Len(t, messages, 2)
	assert.Equal(t, schema.System, messages[0].Role)
	assert.Contains(t, messages[0].Content, "Pavilion KL | Coordinates: 3.146600, 101.711300 | Location accuracy: 12m (high precision)")
	assert.Contains(t, messages[0].Content, `"preferences": ["<short tag>", "<short tag>"]`)
	assert.Equal(t, "Extract preferences from this conversation: I want japanese Sure, where? near pavilion, quiet please", messages[1].Content)
}

func TestExtractor_ModelErrorFallsBack(t *testing.T) {
	ctx := context.Background()
	extractor, err := NewExtractor(ctx, &llmtest.ChatModel{Err: errors.New("503 from upstream")})
	require.NoError(t, err)

	rec := extractor.Extract(ctx, []string{"anything"}, nil)
	assert.Equal(t, Defaults(nil), rec)
}

func TestExtractor_GarbageFallsBack(t *testing.T) {
	ctx := context.Background()
	extractor, err := NewExtractor(ctx, &llmtest.ChatModel{Reply: "Sorry, I cannot help with that."})
	require.NoError(t, err)

	loc := &model.LocationRecord{Latitude: 2.5, Longitude: 102.25}
	rec := extractor.Extract(ctx, []string{"hi"}, loc)
	assert.Equal(t, "2.5000, 102.2500", rec.Location)
	assert.Equal(t, DefaultPreferences, rec.Preferences)
}

func TestExtractor_NotConfigured(t *testing.T) {
	extractor, err := NewExtractor(context.Background(), nil)
	require.NoError(t, err)

	rec := extractor.Extract(context.Background(), []string{"italian near me"}, nil)
	assert.Equal(t, Defaults(nil), rec)
}
