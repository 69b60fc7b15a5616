package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentWaiting   PaymentStatus = "waiting"
	PaymentConfirmed PaymentStatus = "confirmed"
	PaymentCanceled  PaymentStatus = "canceled"
)

// Terminal reports whether no further status transition is permitted.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentConfirmed || s == PaymentCanceled
}

type PaymentAction string

const (
	ActionConfirm PaymentAction = "confirm"
	ActionCancel  PaymentAction = "cancel"
)

// SlipImage references the uploaded proof-of-payment image.
type SlipImage struct {
	Key string `bson:"key" json:"key"`
	URL string `bson:"url" json:"url"`
}

type Payment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CourseID    primitive.ObjectID `bson:"courseID" json:"courseID"`
	SlipImage   SlipImage          `bson:"slipImage" json:"slipImage"`
	Last4Digits string             `bson:"last4Digits" json:"last4Digits"`
	Status      PaymentStatus      `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// ValidLast4Digits reports whether s is exactly four digit characters.
// The value stays a string end to end so leading zeros survive.
func ValidLast4Digits(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
