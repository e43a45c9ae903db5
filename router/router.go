package router

import (
	"travelify/handlers"
	"travelify/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, sign string, limiter *middleware.RateLimiter) {
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New())

	app.Get("/health", handlers.GetHealth)

	api := app.Group("/api", logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	//Auth
	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)

	//Tours
	tours := api.Group("/tours")
	tours.Get("/", h.GetTours)
	tours.Get("/:id", h.GetTour)

	//Bookings
	bookings := api.Group("/bookings", middleware.Authorize(sign))
	bookings.Post("/create-order", limiter.Limit(), h.CreateOrder)
	bookings.Post("/verify", limiter.Limit(), h.VerifyPayment)
	bookings.Get("/my", h.GetMyBookings)
	bookings.Get("/", middleware.RequireAdmin(), h.GetBookings)
	bookings.Put("/:id/status", middleware.RequireAdmin(), h.UpdateBookingStatus)
}
