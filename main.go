package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travelify/booking"
	"travelify/config"
	"travelify/database"
	"travelify/handlers"
	"travelify/middleware"
	"travelify/notify"
	"travelify/payment"
	"travelify/router"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const memoryQueueSize = 1024

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := database.DBInit(initCtx, cfg.MongoConnString, cfg.MongoDatabase)
	if err == nil {
		err = database.EnsureIndexes(initCtx, db)
	}
	cancel()
	if err != nil {
		log.WithError(err).Fatal("database initialisation failed")
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			log.WithError(err).Error("mongo disconnect failed")
		}
	}()

	bookings := database.NewBookingRepository(db.Collection(database.BookingsCollectionName))
	tours := database.NewTourRepository(db.Collection(database.ToursCollectionName))
	users := database.NewUserRepository(db.Collection(database.UsersCollectionName))

	var queue notify.Queue
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.WithError(err).WithField("addr", cfg.RedisAddr).Fatal("redis is unreachable")
		}
		defer rdb.Close()
		queue = notify.NewRedisQueue(rdb, notify.DefaultRedisKey)
		log.WithField("addr", cfg.RedisAddr).Info("notifications queued in redis")
	} else {
		queue = notify.NewMemoryQueue(memoryQueueSize)
		log.Warn("REDIS_ADDR is not set, notifications are queued in memory")
	}

	var mailer notify.Mailer = notify.LogMailer{}
	if cfg.SMTP.Host != "" {
		mailer = notify.SMTPMailer{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}
	}

	worker := notify.NewWorker(queue, mailer, notify.RetryPolicy{
		MaxAttempts: cfg.NotifyMaxAttempts,
		Backoff:     cfg.NotifyBackoff,
	})
	go worker.Run(ctx)

	h := &handlers.Handlers{
		Orders:   payment.NewRazorpayInitiator(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
		Bookings: booking.NewService(bookings, tours, users, queue, cfg.RazorpayKeySecret),
		Tours:    tours,
		Users:    users,
		Sign:     cfg.Sign,
	}

	app := fiber.New()
	router.SetupRoutes(app, h, cfg.Sign, middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst))

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	log.WithField("addr", cfg.ListenAddr()).Info("travelify api listening")
	if err := app.Listen(cfg.ListenAddr()); err != nil {
		log.WithError(err).Error("server stopped")
	}
}
