package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User carries the account fields this service touches; the stored
// documents hold the full profile schema.
type User struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username         string               `bson:"username" json:"username"`
	Email            string               `bson:"email" json:"email"`
	IsVerified       bool                 `bson:"isVerified" json:"isVerified"`
	Role             string               `bson:"role" json:"role"`
	PurchasedCourses []primitive.ObjectID `bson:"purchasedCourses" json:"purchasedCourses"`
	Wishlist         []primitive.ObjectID `bson:"wishlist" json:"wishlist"`
	UnreadCount      int                  `bson:"unreadNotification" json:"unreadNotification"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
}

// Owns reports whether courseID is among the user's purchased courses.
func (u *User) Owns(courseID primitive.ObjectID) bool {
	for _, id := range u.PurchasedCourses {
		if id == courseID {
			return true
		}
	}
	return false
}
