package database

import (
	"context"
	"fmt"

	"travelify/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TourRepository struct {
	coll *mongo.Collection
}

func NewTourRepository(coll *mongo.Collection) *TourRepository {
	return &TourRepository{coll: coll}
}

func (r *TourRepository) FindTour(ctx context.Context, id primitive.ObjectID) (model.Tour, error) {
	var tour model.Tour
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&tour)
	if err != nil {
		return model.Tour{}, translateErr(err)
	}
	return tour, nil
}

// ListTours filters by category when one is given.
func (r *TourRepository) ListTours(ctx context.Context, category string) ([]model.Tour, error) {
	filter := bson.D{}
	if category != "" {
		filter = append(filter, bson.E{Key: "category", Value: category})
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list tours: %w", err)
	}
	defer cur.Close(ctx)

	tours := []model.Tour{}
	if err := cur.All(ctx, &tours); err != nil {
		return nil, fmt.Errorf("decode tours: %w", err)
	}
	return tours, nil
}
