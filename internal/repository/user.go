package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"course-service/internal/domain"
)

type UserRepo struct {
	collection *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{
		collection: db.Collection("users"),
	}
}

// FindByID returns the user, or nil without error when absent.
func (r *UserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// IsVerified reports whether a verified account exists for id.
func (r *UserRepo) IsVerified(ctx context.Context, id primitive.ObjectID) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "isVerified": true}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *UserRepo) PullWishlist(ctx context.Context, userID, courseID primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, userID, bson.M{
		"$pull": bson.M{"wishlist": courseID},
	})
	return err
}

// AddPurchasedCourse enrolls the user; $addToSet keeps the operation
// idempotent should a confirm ever be replayed.
func (r *UserRepo) AddPurchasedCourse(ctx context.Context, userID, courseID primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, userID, bson.M{
		"$addToSet": bson.M{"purchasedCourses": courseID},
	})
	return err
}

func (r *UserRepo) IncrementUnread(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, userID, bson.M{
		"$inc": bson.M{"unreadNotification": 1},
	})
	return err
}

func (r *UserRepo) ResetUnread(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{"unreadNotification": 0},
	})
	return err
}
