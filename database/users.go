package database

import (
	"context"
	"fmt"

	"travelify/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(coll *mongo.Collection) *UserRepository {
	return &UserRepository{coll: coll}
}

func (r *UserRepository) FindUserByID(ctx context.Context, id primitive.ObjectID) (model.UserData, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *UserRepository) GetUserData(ctx context.Context, userLogin string) (model.UserData, error) {
	return r.findOne(ctx, bson.D{{Key: "login", Value: userLogin}})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.D) (model.UserData, error) {
	var user model.UserData
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return model.UserData{}, translateErr(err)
	}
	return user, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user model.UserData) error {
	_, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("server side problem occured while writing user data: %w", translateErr(err))
	}
	return nil
}
