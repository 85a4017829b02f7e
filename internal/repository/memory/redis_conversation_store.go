package memory

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"knowthee-be/pkg/conversation"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisSessionPrefix = "session:"

type RedisConversationStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisConversationStore(client *redis.Client, ttl time.Duration) *RedisConversationStore {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &RedisConversationStore{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisConversationStore) Save(ctx context.Context, state *conversation.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisSessionPrefix+state.SessionId, raw, r.ttl).Err()
}

func (r *RedisConversationStore) Get(ctx context.Context, sessionId string) (*conversation.State, bool, error) {
	raw, err := r.client.Get(ctx, redisSessionPrefix+sessionId).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var state conversation.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, false, err
	}
	if state.WorkingSet == nil {
		state.WorkingSet = make(map[uuid.UUID]*conversation.TrackedEmployee)
	}
	return &state, true, nil
}

func (r *RedisConversationStore) Delete(ctx context.Context, sessionId string) error {
	return r.client.Del(ctx, redisSessionPrefix+sessionId).Err()
}
