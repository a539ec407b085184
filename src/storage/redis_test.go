package storage

import (
	"context"
	"testing"
	"time"

	"dinner_planner/src/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *SessionStore) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewSessionStore(client, ttl)
}

func TestSessionStore_RoundTrip(t *testing.T) {
	mr, store := setupStore(t, 10*time.Minute)
	ctx := context.Background()

	state := &model.SessionState{
		Preferences: &model.PreferenceRecord{Location: "Ipoh", Time: "Tonight, 7 PM", Budget: "RM60-120", Preferences: []string{"Dim Sum"}},
		Candidates:  []model.CandidateRestaurant{{ID: "r1", Name: "Foh San", Rating: 4.4, Features: []string{"Dim Sum"}}},
	}
	require.NoError(t, store.Set(ctx, "abc", state))
	assert.False(t, state.UpdatedAt.IsZero())
	assert.Equal(t, 10*time.Minute, mr.TTL("session:abc"))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, state.Preferences, got.Preferences)
	assert.Equal(t, state.Candidates, got.Candidates)

	assert.True(t, mr.Exists("session:abc"))

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestSessionStore_GetOrEmpty(t *testing.T) {
	_, store := setupStore(t, 0)

	state, err := store.GetOrEmpty(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Nil(t, state.Preferences)
	assert.Empty(t, state.Candidates)
}

func TestSessionStore_GetExtendsTTL(t *testing.T) {
	mr, store := setupStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "ttl", &model.SessionState{}))
	mr.FastForward(45 * time.Second)

	_, err := store.Get(ctx, "ttl")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL("session:ttl"))
}

func TestNewRedisClient(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	defer client.Close()

	_, err = NewRedisClient(context.Background(), "")
	assert.Error(t, err)

	_, err = NewRedisClient(context.Background(), "://bad")
	assert.Error(t, err)
}
