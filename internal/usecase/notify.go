package usecase

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"course-service/internal/domain"
	"course-service/internal/infrastructure"
)

// Notifier is the single place that decides online versus offline.
// Callers hand it a notification and never branch on presence
// themselves.
type Notifier struct {
	presence PresenceStore
	users    UserStore
	store    NotificationStore
	emitter  Emitter
}

func NewNotifier(presence PresenceStore, users UserStore, store NotificationStore, emitter Emitter) *Notifier {
	return &Notifier{
		presence: presence,
		users:    users,
		store:    store,
		emitter:  emitter,
	}
}

// Deliver routes a notification to every live handle of its recipient,
// or bumps the durable unread counter when the recipient is offline.
// A single handle's delivery failure does not block the others.
func (n *Notifier) Deliver(ctx context.Context, notification *domain.Notification) error {
	handles, err := n.presence.Lookup(ctx, notification.ToUser.Hex())
	if err != nil {
		return fmt.Errorf("presence lookup: %w", err)
	}

	if len(handles) == 0 {
		if err := n.users.IncrementUnread(ctx, notification.ToUser); err != nil {
			return fmt.Errorf("increment unread: %w", err)
		}
		infrastructure.NotificationsQueued.Inc()
		return nil
	}

	for _, handle := range handles {
		if err := n.emitter.Emit(handle, "onNewNotification", notification); err != nil {
			log.Printf("notify %s: emit to %s failed: %v", notification.ToUser.Hex(), handle, err)
		}
	}
	infrastructure.NotificationsLive.Inc()
	return nil
}

// Feed returns the recipient's notifications newest-first and resets
// the unread counter; reading the feed is what "seen" means.
func (n *Notifier) Feed(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error) {
	notifications, err := n.store.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	if err := n.users.ResetUnread(ctx, userID); err != nil {
		return nil, fmt.Errorf("reset unread: %w", err)
	}
	return notifications, nil
}
