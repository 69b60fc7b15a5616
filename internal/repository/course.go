package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"course-service/internal/domain"
)

type CourseRepo struct {
	collection *mongo.Collection
}

func NewCourseRepo(db *mongo.Database) *CourseRepo {
	return &CourseRepo{
		collection: db.Collection("courses"),
	}
}

// FindPublished returns the course only if it is published; nil without
// error when there is no such course.
func (r *CourseRepo) FindPublished(ctx context.Context, id primitive.ObjectID) (*domain.Course, error) {
	var course domain.Course
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "isPublished": true}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepo) AddStudent(ctx context.Context, courseID, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, courseID, bson.M{
		"$addToSet": bson.M{"students": userID},
	})
	return err
}
