package handlers

import (
	"context"

	"travelify/booking"
	"travelify/model"
	"travelify/payment"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TourStore interface {
	FindTour(ctx context.Context, id primitive.ObjectID) (model.Tour, error)
	ListTours(ctx context.Context, category string) ([]model.Tour, error)
}

type UserStore interface {
	GetUserData(ctx context.Context, login string) (model.UserData, error)
	CreateUser(ctx context.Context, user model.UserData) error
}

type Handlers struct {
	Orders   *payment.OrderInitiator
	Bookings *booking.Service
	Tours    TourStore
	Users    UserStore
	// Sign is the HS256 key used to mint login tokens.
	Sign string
}

func GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
