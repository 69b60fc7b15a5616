package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"course-service/internal/domain"
)

const (
	onlineUsersKey     = "OnlineUsers"
	presenceMaxRetries = 16
)

// PresenceRepo maps user IDs to their live connection handles in a
// Redis hash, JSON-encoded and capped at the last three handles.
//
// The read-modify-write of a user's list runs under WATCH so that two
// near-simultaneous connects (or a connect racing a disconnect) cannot
// overwrite each other; a conflicting write fails the transaction and
// the update is retried against the fresh list.
type PresenceRepo struct {
	client *redis.Client
}

func NewPresenceRepo(client *redis.Client) *PresenceRepo {
	return &PresenceRepo{client: client}
}

func (r *PresenceRepo) Register(ctx context.Context, userID, handle string) error {
	return r.update(ctx, userID, func(handles []string) ([]string, bool) {
		return domain.AppendHandle(handles, handle)
	})
}

func (r *PresenceRepo) Unregister(ctx context.Context, userID, handle string) error {
	return r.update(ctx, userID, func(handles []string) ([]string, bool) {
		return domain.RemoveHandle(handles, handle)
	})
}

// Lookup returns the user's live handles; empty means offline.
func (r *PresenceRepo) Lookup(ctx context.Context, userID string) ([]string, error) {
	raw, err := r.client.HGet(ctx, onlineUsersKey, userID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeHandles(userID, raw), nil
}

func (r *PresenceRepo) update(ctx context.Context, userID string, apply func([]string) ([]string, bool)) error {
	for i := 0; i < presenceMaxRetries; i++ {
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			raw, err := tx.HGet(ctx, onlineUsersKey, userID).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				return err
			}
			var handles []string
			if err == nil {
				handles = decodeHandles(userID, raw)
			}

			next, changed := apply(handles)
			if !changed {
				return nil
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				if len(next) == 0 {
					pipe.HDel(ctx, onlineUsersKey, userID)
					return nil
				}
				data, err := json.Marshal(next)
				if err != nil {
					return err
				}
				pipe.HSet(ctx, onlineUsersKey, userID, data)
				return nil
			})
			return err
		}, onlineUsersKey)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("presence: update for %s: too many conflicting writes", userID)
}

func decodeHandles(userID, raw string) []string {
	var handles []string
	if err := json.Unmarshal([]byte(raw), &handles); err != nil {
		// A corrupt entry is treated as offline; it will be rewritten
		// on the next register.
		log.Printf("presence: corrupt handle list for %s: %v", userID, err)
		return nil
	}
	return handles
}
