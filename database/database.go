package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollectionName    = "users"
	ToursCollectionName    = "tours"
	BookingsCollectionName = "bookings"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

func DBInit(ctx context.Context, connString, dbName string) (*mongo.Database, error) {
	clientOptions := options.Client().ApplyURI(connString)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to the db: %v", err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("db is not available: %v", err)
	}

	return client.Database(dbName), nil
}

// EnsureIndexes creates the unique indexes the booking flow relies on.
// payment_id is the idempotency token for verified payments.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(BookingsCollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "payment_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_payment_id"),
		},
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("user_created_at"),
		},
	})
	if err != nil {
		return fmt.Errorf("cannot create booking indexes: %w", err)
	}

	_, err = db.Collection(UsersCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "login", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_login"),
	})
	if err != nil {
		return fmt.Errorf("cannot create user indexes: %w", err)
	}
	return nil
}

func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}
