package repository

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const sessionSetKey = "UserIDs"

// SessionRepo is the advisory positive cache of already-verified user
// IDs, shared across processes through a Redis set. A miss only means
// "ask the durable store"; it is never an error.
type SessionRepo struct {
	client *redis.Client
}

func NewSessionRepo(client *redis.Client) *SessionRepo {
	return &SessionRepo{client: client}
}

func (r *SessionRepo) IsTrusted(ctx context.Context, userID string) (bool, error) {
	return r.client.SIsMember(ctx, sessionSetKey, userID).Result()
}

func (r *SessionRepo) Trust(ctx context.Context, userID string) error {
	return r.client.SAdd(ctx, sessionSetKey, userID).Err()
}

func (r *SessionRepo) Revoke(ctx context.Context, userID string) error {
	return r.client.SRem(ctx, sessionSetKey, userID).Err()
}
