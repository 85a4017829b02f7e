package memory

import (
	"context"

	"knowthee-be/pkg/conversation"
)

// ConversationStore keeps per-session conversational state. The cache
// backed implementation is process local; the Redis one survives restarts
// and is shared across instances.
type ConversationStore interface {
	Save(ctx context.Context, state *conversation.State) error
	Get(ctx context.Context, sessionId string) (*conversation.State, bool, error)
	Delete(ctx context.Context, sessionId string) error
}
