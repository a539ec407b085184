package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "conversation:"

type ConversationHistory struct {
	Messages []*schema.Message `json:"messages"`
}

type Repository interface {
	Load(ctx context.Context, sessionID string) (*ConversationHistory, error)
	AddMessage(ctx context.Context, sessionID string, message *schema.Message) error
	Delete(ctx context.Context, sessionID string) error
}

type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	return &RedisRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisRepository) Load(ctx context.Context, sessionID string) (*ConversationHistory, error) {
	key := keyPrefix + sessionID
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &ConversationHistory{Messages: []*schema.Message{}}, nil
		}
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	var history ConversationHistory
	if err := sonic.UnmarshalString(data, &history); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}

	// Refresh TTL
	r.client.Expire(ctx, key, r.ttl)
	return &history, nil
}

// AddMessage appends inside a WATCH transaction so concurrent turns of one
// session do not overwrite each other.
func (r *RedisRepository) AddMessage(ctx context.Context, sessionID string, message *schema.Message) error {
	key := keyPrefix + sessionID

	txf := func(tx *redis.Tx) error {
		history := &ConversationHistory{Messages: []*schema.Message{}}
		data, err := tx.Get(ctx, key).Result()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			if err := sonic.UnmarshalString(data, history); err != nil {
				return fmt.Errorf("failed to unmarshal history: %w", err)
			}
		}

		history.Messages = append(history.Messages, message)
		encoded, err := sonic.Marshal(history)
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, r.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < 3; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("failed to append message to %s: too much contention", key)
}

func (r *RedisRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, keyPrefix+sessionID).Err()
}
