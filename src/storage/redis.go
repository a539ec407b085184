package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dinner_planner/src/model"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultSessionTTL = 60 * time.Minute
	sessionPrefix     = "session:"
)

// NewRedisClient connects to redisURL and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL environment variable is required")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// SessionStore keeps per-session pipeline state in Redis
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a store; a non-positive ttl falls back to DefaultSessionTTL
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

// key generates a Redis key for the given session ID
func (s *SessionStore) key(sessionID string) string {
	return sessionPrefix + sessionID
}

// Get reads the session state and extends its TTL.
// Returns model.ErrSessionNotFound when nothing is stored.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*model.SessionState, error) {
	data, err := s.client.GetEx(ctx, s.key(sessionID), s.ttl).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", model.ErrSessionNotFound, sessionID)
		}
		return nil, fmt.Errorf("failed to get session data: %w", err)
	}

	var state model.SessionState
	if err := sonic.UnmarshalString(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}
	return &state, nil
}

// GetOrEmpty is Get with a fresh state in place of ErrSessionNotFound
func (s *SessionStore) GetOrEmpty(ctx context.Context, sessionID string) (*model.SessionState, error) {
	state, err := s.Get(ctx, sessionID)
	if errors.Is(err, model.ErrSessionNotFound) {
		return &model.SessionState{Candidates: []model.CandidateRestaurant{}}, nil
	}
	return state, err
}

// Set stores the session state with the store TTL
func (s *SessionStore) Set(ctx context.Context, sessionID string, state *model.SessionState) error {
	state.UpdatedAt = time.Now().UTC()
	data, err := sonic.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session data: %w", err)
	}
	return nil
}

// Delete removes session from Redis
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// HealthCheck pings Redis
func (s *SessionStore) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
