package assistant

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

func TestResponder_Reply(t *testing.T) {
	ctx := context.Background()
	fake := &llmtest.ChatModel{Reply: "  Great choice, let me find some options!  "}
	r, err := NewResponder(ctx, fake)
	require.NoError(t, err)

	history := []*schema.Message{
		schema.UserMessage("hi"),
		schema.AssistantMessage("Hello! What are you in the mood for?", nil),
	}
	loc := &model.LocationRecord{Latitude: 3.0738, Longitude: 101.5183, City: "Shah Alam", Country: "Malaysia"}

	got := r.Reply(ctx, "I want Italian food near me", history, loc)
	assert.Equal(t, "Great choice, let me find some options!", got)

	messages := fake.LastCall()
	require.Len(t, messages, 4)
	assert.Equal(t, schema.System, messages[0].Role)
	assert.Contains(t, messages[0].Content, "User location: Shah Alam, Malaysia | Coordinates: 3.073800, 101.518300")
	assert.Equal(t, "hi", messages[1].Content)
	assert.Equal(t, schema.Assistant, messages[2].Role)
	assert.Equal(t, schema.User, messages[3].Role)
	assert.Equal(t, "I want Italian food near me", messages[3].Content)
}

func TestResponder_NoHistoryNoLocation(t *testing.T) {
	ctx := context.Background()
	fake := &llmtest.ChatModel{Reply: "Hi there!"}
	r, err := NewResponder(ctx, fake)
	require.NoError(t, err)

	assert.Equal(t, "Hi there!", r.Reply(ctx, "hi {not a placeholder}", nil, nil))

	messages := fake.LastCall()
	require.Len(t, messages, 2)
	assert.Contains(t, messages[0].Content, "User location: not shared")
	assert.Equal(t, "hi {not a placeholder}", messages[1].Content)
}

func TestResponder_Fallbacks(t *testing.T) {
	ctx := context.Background()

	r, err := NewResponder(ctx, &llmtest.ChatModel{Err: errors.New("401 unauthorized")})
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, r.Reply(ctx, "hi", nil, nil))

	r, err = NewResponder(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, r.Reply(ctx, "hi", nil, nil))
}
