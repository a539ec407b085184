package conversation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisRepository_LoadMissing(t *testing.T) {
	_, client := setupRedis(t)
	repo := NewRedisRepository(client, time.Hour)

	history, err := repo.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, history.Messages)
}

func TestRedisRepository_AddAndLoad(t *testing.T) {
	mr, client := setupRedis(t)
	repo := NewRedisRepository(client, 30*time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.AddMessage(ctx, "s1", schema.UserMessage("Italian near KLCC")))
	require.NoError(t, repo.AddMessage(ctx, "s1", schema.AssistantMessage("Great choice!", nil)))

	history, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, schema.User, history.Messages[0].Role)
	assert.Equal(t, "Italian near KLCC", history.Messages[0].Content)
	assert.Equal(t, schema.Assistant, history.Messages[1].Role)

	assert.True(t, mr.Exists("conversation:s1"))
	assert.Equal(t, 30*time.Minute, mr.TTL("conversation:s1"))
}

func TestRedisRepository_AddLoadAndDelete(t *testing.T) {
	mr, client := setupRedis(t)
	repo := NewRedisRepository(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.AddMessage(ctx, "s2", schema.UserMessage("Cheap sushi in Bangsar")))
	require.NoError(t, repo.AddMessage(ctx, "s2", schema.AssistantMessage("Sounds good, let me find some places.", nil)))
	assert.Equal(t, time.Hour, mr.TTL("conversation:s2"))

	loaded, err := repo.Load(ctx, "s2")
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 2)
	assert.Equal(t, "Cheap sushi in Bangsar", loaded.Messages[0].Content)

	require.NoError(t, repo.Delete(ctx, "s2"))
	assert.False(t, mr.Exists("conversation:s2"))
}

func TestRedisRepository_ConcurrentAppends(t *testing.T) {
	_, client := setupRedis(t)
	repo := NewRedisRepository(client, time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.AddMessage(ctx, "busy", schema.UserMessage(fmt.Sprintf("msg %d", i)))
		}(i)
	}
	wg.Wait()

	history, err := repo.Load(ctx, "busy")
	require.NoError(t, err)
	assert.NotEmpty(t, history.Messages)
	assert.LessOrEqual(t, len(history.Messages), 5)
}

func TestRedisRepository_CorruptData(t *testing.T) {
	mr, client := setupRedis(t)
	repo := NewRedisRepository(client, time.Hour)
	require.NoError(t, mr.Set("conversation:bad", "{not json"))

	_, err := repo.Load(context.Background(), "bad")
	assert.Error(t, err)
}

func TestService_TranscriptAndContext(t *testing.T) {
	_, client := setupRedis(t)
	svc := NewService(NewRedisRepository(client, time.Hour))
	ctx := context.Background()

	turns := []string{"hi", "Hello! What are you craving?", "sushi", "Any budget?", "under RM80"}
	for i, text := range turns {
		if i%2 == 0 {
			require.NoError(t, svc.AddUserMessage(ctx, "s2", text))
		} else {
			require.NoError(t, svc.AddAssistantMessage(ctx, "s2", text))
		}
	}

	transcript, err := svc.Transcript(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, turns, transcript)

	recent, err := svc.ContextFor(ctx, "s2", NewAssistantContextStrategy(2))
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Any budget?", recent[0].Content)
	assert.Equal(t, "under RM80", recent[1].Content)

	require.NoError(t, svc.Clear(ctx, "s2"))
	transcript, err = svc.Transcript(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, transcript)
}

func TestAssistantContextStrategy_DropsSystemMessages(t *testing.T) {
	s := NewAssistantContextStrategy(0)
	got := s.BuildContext([]*schema.Message{
		schema.SystemMessage("ignored"),
		schema.UserMessage("hi"),
	})
	require.Len(t, got, 1)
	assert.Equal(t, "hi", got[0].Content)
}
