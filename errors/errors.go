package errors

import (
	stderrors "errors"

	"travelify/booking"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

func RaiseError(context *fiber.Ctx, status int, message string, data string) error {
	return context.Status(status).JSON(fiber.Map{
		"success": false,
		"status":  "error",
		"message": message,
		"data":    data})
}

func RaisePermissionsError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusUnauthorized, "lack of permissions", data)
}

func RaiseInternalServerError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusInternalServerError, "internal error", data)
}

func RaiseBadRequestError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusBadRequest, "bad request", data)
}

func RaiseNotFoundError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusNotFound, "resource not found", data)
}

func RaiseConflictError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusConflict, "conflict", data)
}

// RaiseServiceError maps booking flow errors onto HTTP responses. Anything
// unrecognised is logged and reported as a generic 500.
func RaiseServiceError(context *fiber.Ctx, err error) error {
	switch {
	case stderrors.Is(err, booking.ErrInvalidSignature):
		return RaiseError(context, fiber.StatusBadRequest, "invalid payment signature", err.Error())
	case stderrors.Is(err, booking.ErrInvalidInput), stderrors.Is(err, booking.ErrInvalidStatus):
		return RaiseBadRequestError(context, err.Error())
	case stderrors.Is(err, booking.ErrTourNotFound), stderrors.Is(err, booking.ErrBookingNotFound):
		return RaiseNotFoundError(context, err.Error())
	case stderrors.Is(err, booking.ErrTransitionNotAllowed):
		return RaiseConflictError(context, err.Error())
	default:
		log.WithError(err).WithField("path", context.Path()).Error("request failed")
		return RaiseInternalServerError(context, "something went wrong, please try again later")
	}
}
