// Package assistant produces the conversational replies of the dinner planner.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dinner_planner/src/llm"
	"dinner_planner/src/location"
	"dinner_planner/src/logger"
	"dinner_planner/src/metrics"
	"dinner_planner/src/model"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

const (
	operation = "assistant_reply"

	FallbackReply = "I'm having trouble connecting right now. Please try again or let me know your dining preferences and I'll help you find the perfect restaurant!"
)

func getSystemTemplate() string {
	return `You are a smart dinner planner assistant. Help users find restaurants based on their preferences including location, cuisine, budget, ambiance, and timing.

Be conversational, friendly, and ask clarifying questions if needed. Keep responses concise and helpful.
When you have enough information about their preferences (location, budget, cuisine type, timing), let them know you can help them find restaurants.

User location: {location_context}`
}

type Responder struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewResponder compiles the Template → ChatModel chain. A nil chatModel
// yields a responder that always answers with FallbackReply.
func NewResponder(ctx context.Context, chatModel einomodel.BaseChatModel) (*Responder, error) {
	if chatModel == nil {
		return &Responder{}, nil
	}

	template := prompt.FromMessages(schema.FString,
		schema.SystemMessage(getSystemTemplate()),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{user_text}"),
	)

	chain, err := compose.NewChain[map[string]any, *schema.Message]().
		AppendChatTemplate(template).
		AppendChatModel(chatModel).
		Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating assistant chain: %w", err)
	}
	return &Responder{chain: chain}, nil
}

// Reply answers userText given the earlier turns. It never fails.
func (r *Responder) Reply(ctx context.Context, userText string, history []*schema.Message, loc *model.LocationRecord) string {
	if r.chain == nil {
		llm.Skipped(operation)
		metrics.Fallbacks.WithLabelValues(operation).Inc()
		return FallbackReply
	}

	locationContext := location.BuildContext(loc)
	if locationContext == "" {
		locationContext = "not shared"
	}

	start := time.Now()
	out, err := r.chain.Invoke(ctx, map[string]any{
		"location_context": locationContext,
		"history":          history,
		"user_text":        userText,
	})
	llm.Observe(operation, start, err)
	if err != nil {
		logger.Warn().Err(err).Msg("Assistant reply failed, using fallback")
		metrics.Fallbacks.WithLabelValues(operation).Inc()
		return FallbackReply
	}

	reply := strings.TrimSpace(out.Content)
	if reply == "" {
		metrics.Fallbacks.WithLabelValues(operation).Inc()
		return FallbackReply
	}
	return reply
}
