package handlers

import (
	"fmt"
	"strconv"

	"travelify/booking"
	"travelify/errors"
	"travelify/middleware"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const (
	defaultPageSize = 20
	maxPageSize     = 50
)

func (h *Handlers) CreateOrder(c *fiber.Ctx) error {
	type orderInput struct {
		Amount int64 `json:"amount"`
	}

	input := new(orderInput)
	if err := c.BodyParser(input); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unacceptable order parameters: %v", err))
	}
	if input.Amount <= 0 {
		return errors.RaiseBadRequestError(c, "amount must be a positive number of rupees")
	}

	order, err := h.Orders.Create(input.Amount)
	if err != nil {
		log.WithError(err).WithField("amount", input.Amount).Error("order creation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "failed to create payment order",
			"error":   "payment provider unavailable"})
	}

	return c.JSON(order)
}

func (h *Handlers) VerifyPayment(c *fiber.Ctx) error {
	type verifyInput struct {
		OrderId   string `json:"razorpay_order_id"`
		PaymentId string `json:"razorpay_payment_id"`
		Signature string `json:"razorpay_signature"`
		UserId    string `json:"userId"`
		TourId    string `json:"tourId"`
	}

	input := new(verifyInput)
	if err := c.BodyParser(input); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unacceptable payment parameters: %v", err))
	}
	if input.UserId == "" {
		input.UserId = middleware.UserID(c)
	}

	newBooking, created, err := h.Bookings.VerifyAndBook(c.UserContext(), booking.VerifyRequest{
		OrderID:   input.OrderId,
		PaymentID: input.PaymentId,
		Signature: input.Signature,
		UserID:    input.UserId,
		TourID:    input.TourId,
	})
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	if !created {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "payment already verified",
			"booking": newBooking})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "payment verified, booking created",
		"booking": newBooking})
}

func (h *Handlers) UpdateBookingStatus(c *fiber.Ctx) error {
	type statusInput struct {
		Status string `json:"status"`
	}

	input := new(statusInput)
	if err := c.BodyParser(input); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unacceptable status parameters: %v", err))
	}

	updated, err := h.Bookings.TransitionStatus(c.UserContext(), c.Params("id"), input.Status)
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("booking status updated to %v", updated.Status),
		"booking": updated})
}

func (h *Handlers) GetBookings(c *fiber.Ctx) error {
	page, limit := pagination(c)

	bookings, err := h.Bookings.ListBookings(c.UserContext(), page, limit)
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"page":     page,
		"limit":    limit,
		"bookings": bookings})
}

func (h *Handlers) GetMyBookings(c *fiber.Ctx) error {
	bookings, err := h.Bookings.UserBookings(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return errors.RaiseServiceError(c, err)
	}

	return c.JSON(fiber.Map{"bookings": bookings})
}

func pagination(c *fiber.Ctx) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.Query("limit"))
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
