package model

import "go.mongodb.org/mongo-driver/bson/primitive"

type Tour struct {
	Id             primitive.ObjectID `json:"_id" bson:"_id"`
	Title          string             `json:"title" bson:"title"`
	Price          int64              `json:"price" bson:"price"`
	AvailableSlots uint               `json:"availableSlots" bson:"available_slots"`
	Category       string             `json:"category" bson:"category"`
	Location       string             `json:"location" bson:"location"`
	Rating         float64            `json:"rating" bson:"rating"`
	NumReviews     uint               `json:"numReviews" bson:"num_reviews"`
}
