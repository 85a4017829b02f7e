package memory

import (
	"context"
	"time"

	"knowthee-be/pkg/conversation"

	"github.com/patrickmn/go-cache"
)

type CacheConversationStore struct {
	cache *cache.Cache
}

func NewCacheConversationStore(ttl time.Duration) *CacheConversationStore {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	// Purge expired sessions every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &CacheConversationStore{
		cache: c,
	}
}

func (r *CacheConversationStore) Save(_ context.Context, state *conversation.State) error {
	r.cache.Set(state.SessionId, state, cache.DefaultExpiration)
	return nil
}

func (r *CacheConversationStore) Get(_ context.Context, sessionId string) (*conversation.State, bool, error) {
	if x, found := r.cache.Get(sessionId); found {
		return x.(*conversation.State), true, nil
	}
	return nil, false, nil
}

func (r *CacheConversationStore) Delete(_ context.Context, sessionId string) error {
	r.cache.Delete(sessionId)
	return nil
}
