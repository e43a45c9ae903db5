package handlers

import (
	stderrors "errors"
	"fmt"

	"travelify/database"
	"travelify/errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (h *Handlers) GetTours(c *fiber.Ctx) error {
	tours, dbErr := h.Tours.ListTours(c.UserContext(), c.Query("category"))
	if dbErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("database error: %v", dbErr))
	}

	return c.JSON(tours)
}

func (h *Handlers) GetTour(c *fiber.Ctx) error {
	tourId, idErr := primitive.ObjectIDFromHex(c.Params("id"))
	if idErr != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("malformed tour id %v", c.Params("id")))
	}

	tour, dbErr := h.Tours.FindTour(c.UserContext(), tourId)
	if stderrors.Is(dbErr, database.ErrNotFound) {
		return errors.RaiseNotFoundError(c, fmt.Sprintf("tour %v not found", c.Params("id")))
	}
	if dbErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("database error: %v", dbErr))
	}

	return c.JSON(tour)
}
