package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationConfirmation NotificationType = "confirmation"
	NotificationCancellation NotificationType = "cancellation"
)

// Notification records one terminal payment transition for its owner.
// Created exactly once per transition, immutable afterwards.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type      NotificationType   `bson:"type" json:"type"`
	PaymentID primitive.ObjectID `bson:"paymentID" json:"paymentID"`
	CourseID  primitive.ObjectID `bson:"courseID" json:"courseID"`
	ToUser    primitive.ObjectID `bson:"toUser" json:"toUser"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
