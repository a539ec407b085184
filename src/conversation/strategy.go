package conversation

import (
	"github.com/cloudwego/eino/schema"
)

type ContextStrategy interface {
	BuildContext(messages []*schema.Message) []*schema.Message
}

// AssistantContextStrategy keeps the last user and assistant turns for the chat prompt
type AssistantContextStrategy struct {
	maxTurns int
}

func NewAssistantContextStrategy(maxTurns int) *AssistantContextStrategy {
	if maxTurns <= 0 {
		maxTurns = 10
	}
	return &AssistantContextStrategy{maxTurns: maxTurns}
}

func (s *AssistantContextStrategy) BuildContext(messages []*schema.Message) []*schema.Message {
	dialog := make([]*schema.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == schema.User || msg.Role == schema.Assistant {
			dialog = append(dialog, msg)
		}
	}
	return trimTail(dialog, s.maxTurns)
}

// Helper function
func trimTail(messages []*schema.Message, maxTurns int) []*schema.Message {
	if len(messages) <= maxTurns {
		return messages
	}
	return messages[len(messages)-maxTurns:]
}
