package model

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type UserData struct {
	Id             primitive.ObjectID `json:"_id" bson:"_id"`
	Login          string             `json:"login" bson:"login,omitempty"`
	Email          string             `json:"email" bson:"email,omitempty"`
	Name           string             `json:"name" bson:"name,omitempty"`
	HashedPassword string             `json:"-" bson:"password_hash,omitempty"`
	Role           string             `json:"role" bson:"role,omitempty"`
}
