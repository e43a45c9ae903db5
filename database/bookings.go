package database

import (
	"context"
	"fmt"
	"time"

	"travelify/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookingRepository struct {
	coll *mongo.Collection
}

func NewBookingRepository(coll *mongo.Collection) *BookingRepository {
	return &BookingRepository{coll: coll}
}

// Create inserts a booking. A second booking for the same payment id fails
// with ErrDuplicate.
func (r *BookingRepository) Create(ctx context.Context, booking model.Booking) error {
	_, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("insert booking: %w", translateErr(err))
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (model.Booking, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *BookingRepository) FindByPaymentID(ctx context.Context, paymentID string) (model.Booking, error) {
	return r.findOne(ctx, bson.D{{Key: "payment_id", Value: paymentID}})
}

func (r *BookingRepository) findOne(ctx context.Context, filter bson.D) (model.Booking, error) {
	var booking model.Booking
	err := r.coll.FindOne(ctx, filter).Decode(&booking)
	if err != nil {
		return model.Booking{}, translateErr(err)
	}
	return booking, nil
}

// UpdateStatus moves a booking from one status to another. The filter pins
// the current status so that only one of two concurrent writers succeeds;
// the loser gets ErrNotFound.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to model.BookingStatus, at time.Time) error {
	filter := bson.D{{Key: "_id", Value: id}, {Key: "status", Value: from}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: to},
		{Key: "updated_at", Value: at},
	}}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update booking status: %w", translateErr(err))
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns bookings newest first. A zero userID lists every user.
func (r *BookingRepository) List(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]model.Booking, error) {
	filter := bson.D{}
	if !userID.IsZero() {
		filter = append(filter, bson.E{Key: "user", Value: userID})
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
		if page > 1 {
			findOptions.SetSkip(int64((page - 1) * limit))
		}
	}

	cur, err := r.coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer cur.Close(ctx)

	bookings := []model.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}
