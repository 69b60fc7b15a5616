package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"course-service/internal/domain"
)

// The shared stores are injected capabilities rather than package
// globals so tests can substitute in-memory fakes.

// TokenVerifier resolves a bearer token to a user ID or fails.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// SessionCache is the advisory set of already-verified user IDs.
type SessionCache interface {
	IsTrusted(ctx context.Context, userID string) (bool, error)
	Trust(ctx context.Context, userID string) error
	Revoke(ctx context.Context, userID string) error
}

// PresenceStore tracks which users hold live connection handles.
type PresenceStore interface {
	Register(ctx context.Context, userID, handle string) error
	Unregister(ctx context.Context, userID, handle string) error
	Lookup(ctx context.Context, userID string) ([]string, error)
}

type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	IsVerified(ctx context.Context, id primitive.ObjectID) (bool, error)
	PullWishlist(ctx context.Context, userID, courseID primitive.ObjectID) error
	AddPurchasedCourse(ctx context.Context, userID, courseID primitive.ObjectID) error
	IncrementUnread(ctx context.Context, userID primitive.ObjectID) error
	ResetUnread(ctx context.Context, userID primitive.ObjectID) error
}

type CourseStore interface {
	FindPublished(ctx context.Context, id primitive.ObjectID) (*domain.Course, error)
	AddStudent(ctx context.Context, courseID, userID primitive.ObjectID) error
}

type PaymentStore interface {
	Insert(ctx context.Context, payment *domain.Payment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Payment, error)
	FindWaiting(ctx context.Context, userID, courseID primitive.ObjectID) (*domain.Payment, error)
	TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to domain.PaymentStatus) (*domain.Payment, error)
}

type NotificationStore interface {
	Insert(ctx context.Context, notification *domain.Notification) error
	ListForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error)
}

// SlipUploader stores a proof-of-payment image out-of-band.
type SlipUploader interface {
	Upload(ctx context.Context, contentType string, data []byte) (domain.SlipImage, error)
}

// Emitter pushes an event payload to one live connection handle.
type Emitter interface {
	Emit(handle, event string, payload interface{}) error
}

// EventPublisher announces payment lifecycle events, best-effort.
type EventPublisher interface {
	Publish(subject string, payload interface{}) error
}

// ReceiptMailer sends the confirmation receipt email, best-effort.
type ReceiptMailer interface {
	SendPaymentConfirmed(ctx context.Context, recipientEmail, courseName string) error
}
