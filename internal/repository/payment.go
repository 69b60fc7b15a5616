package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"course-service/internal/domain"
)

type PaymentRepo struct {
	collection *mongo.Collection
}

func NewPaymentRepo(db *mongo.Database) *PaymentRepo {
	return &PaymentRepo{
		collection: db.Collection("payments"),
	}
}

func (r *PaymentRepo) Insert(ctx context.Context, payment *domain.Payment) error {
	res, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		payment.ID = id
	}
	return nil
}

// FindByID returns the payment, or nil without error when absent.
func (r *PaymentRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&payment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindWaiting returns the user's non-terminal payment for a course, if any.
func (r *PaymentRepo) FindWaiting(ctx context.Context, userID, courseID primitive.ObjectID) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.collection.FindOne(ctx, bson.M{
		"createdBy": userID,
		"courseID":  courseID,
		"status":    domain.PaymentWaiting,
	}).Decode(&payment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// TransitionStatus flips the status from `from` to `to` in one
// conditional update; the filter is the compare, the $set is the swap.
// Returns nil without error when no document matched, which means the
// payment either does not exist or is no longer in `from` — two
// concurrent transitions can never both see waiting.
func (r *PaymentRepo) TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to domain.PaymentStatus) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&payment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
