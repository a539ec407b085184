package conversation

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddUserMessage appends the user's turn to the session history
func (s *Service) AddUserMessage(ctx context.Context, sessionID, text string) error {
	return s.repo.AddMessage(ctx, sessionID, schema.UserMessage(text))
}

// AddAssistantMessage appends the assistant's reply to the session history
func (s *Service) AddAssistantMessage(ctx context.Context, sessionID, text string) error {
	return s.repo.AddMessage(ctx, sessionID, schema.AssistantMessage(text, nil))
}

// History returns every stored message, oldest first
func (s *Service) History(ctx context.Context, sessionID string) ([]*schema.Message, error) {
	history, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return history.Messages, nil
}

// Transcript returns the message texts in order, the snapshot handed to extraction
func (s *Service) Transcript(ctx context.Context, sessionID string) ([]string, error) {
	messages, err := s.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(messages))
	for _, msg := range messages {
		texts = append(texts, msg.Content)
	}
	return texts, nil
}

// ContextFor returns the history trimmed by strategy
func (s *Service) ContextFor(ctx context.Context, sessionID string, strategy ContextStrategy) ([]*schema.Message, error) {
	messages, err := s.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return strategy.BuildContext(messages), nil
}

// Clear forgets the session history
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID)
}
