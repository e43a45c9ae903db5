package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

type Booking struct {
	Id            primitive.ObjectID `json:"_id" bson:"_id"`
	User          primitive.ObjectID `json:"user" bson:"user"`
	Tour          primitive.ObjectID `json:"tour" bson:"tour"`
	Amount        int64              `json:"amount" bson:"amount"`
	OrderId       string             `json:"orderId" bson:"order_id"`
	PaymentId     string             `json:"paymentId" bson:"payment_id"`
	PaymentStatus PaymentStatus      `json:"paymentStatus" bson:"payment_status"`
	Status        BookingStatus      `json:"status" bson:"status"`
	CreatedAt     time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updated_at"`
}

// NewPaidBooking builds the booking written after a verified payment callback.
func NewPaidBooking(user, tour primitive.ObjectID, amount int64, orderId, paymentId string, now time.Time) Booking {
	return Booking{
		Id:            primitive.NewObjectID(),
		User:          user,
		Tour:          tour,
		Amount:        amount,
		OrderId:       orderId,
		PaymentId:     paymentId,
		PaymentStatus: PaymentPaid,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
