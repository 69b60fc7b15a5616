package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course carries only the fields the payment flow reads; the stored
// documents hold the full catalog schema.
type Course struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Instructor  primitive.ObjectID   `bson:"instructor" json:"instructor"`
	IsPaid      bool                 `bson:"isPaid" json:"isPaid"`
	IsPublished bool                 `bson:"isPublished" json:"isPublished"`
	Price       float64              `bson:"price" json:"price"`
	Students    []primitive.ObjectID `bson:"students" json:"students"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
}
