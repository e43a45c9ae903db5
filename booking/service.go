package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travelify/database"
	"travelify/model"
	"travelify/notify"
	"travelify/payment"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidSignature     = errors.New("invalid payment signature")
	ErrTourNotFound         = errors.New("tour not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrInvalidStatus        = errors.New("invalid booking status")
	ErrTransitionNotAllowed = errors.New("booking status transition not allowed")
)

type BookingStore interface {
	Create(ctx context.Context, booking model.Booking) error
	FindByID(ctx context.Context, id primitive.ObjectID) (model.Booking, error)
	FindByPaymentID(ctx context.Context, paymentID string) (model.Booking, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to model.BookingStatus, at time.Time) error
	List(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]model.Booking, error)
}

type TourStore interface {
	FindTour(ctx context.Context, id primitive.ObjectID) (model.Tour, error)
}

type UserStore interface {
	FindUserByID(ctx context.Context, id primitive.ObjectID) (model.UserData, error)
}

type Service struct {
	bookings BookingStore
	tours    TourStore
	users    UserStore
	queue    notify.Queue
	secret   string
	now      func() time.Time
}

// NewService wires the booking flow. secret is the payment provider's key
// secret used to check callback signatures.
func NewService(bookings BookingStore, tours TourStore, users UserStore, queue notify.Queue, secret string) *Service {
	return &Service{
		bookings: bookings,
		tours:    tours,
		users:    users,
		queue:    queue,
		secret:   secret,
		now:      time.Now,
	}
}

type VerifyRequest struct {
	OrderID   string
	PaymentID string
	Signature string
	UserID    string
	TourID    string
}

// VerifyAndBook checks the payment callback signature and records a Pending
// booking for it. Replaying a callback returns the stored booking with
// created == false.
func (s *Service) VerifyAndBook(ctx context.Context, req VerifyRequest) (booking model.Booking, created bool, err error) {
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return model.Booking{}, false, fmt.Errorf("%w: order id, payment id and signature are required", ErrInvalidInput)
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return model.Booking{}, false, fmt.Errorf("%w: user id %q", ErrInvalidInput, req.UserID)
	}
	tourID, err := primitive.ObjectIDFromHex(req.TourID)
	if err != nil {
		return model.Booking{}, false, fmt.Errorf("%w: tour id %q", ErrInvalidInput, req.TourID)
	}

	if !payment.VerifySignature(s.secret, req.OrderID, req.PaymentID, req.Signature) {
		return model.Booking{}, false, ErrInvalidSignature
	}

	existing, err := s.bookings.FindByPaymentID(ctx, req.PaymentID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return model.Booking{}, false, fmt.Errorf("lookup booking by payment: %w", err)
	}

	tour, err := s.tours.FindTour(ctx, tourID)
	if errors.Is(err, database.ErrNotFound) {
		return model.Booking{}, false, fmt.Errorf("%w: %v", ErrTourNotFound, req.TourID)
	}
	if err != nil {
		return model.Booking{}, false, fmt.Errorf("lookup tour: %w", err)
	}

	booking = model.NewPaidBooking(userID, tour.Id, tour.Price, req.OrderID, req.PaymentID, s.now())
	if err := s.bookings.Create(ctx, booking); err != nil {
		if !errors.Is(err, database.ErrDuplicate) {
			return model.Booking{}, false, fmt.Errorf("create booking: %w", err)
		}
		// a concurrent callback for the same payment won the insert
		existing, findErr := s.bookings.FindByPaymentID(ctx, req.PaymentID)
		if findErr != nil {
			return model.Booking{}, false, fmt.Errorf("lookup booking after duplicate insert: %w", findErr)
		}
		return existing, false, nil
	}

	log.WithFields(log.Fields{
		"booking_id": booking.Id.Hex(),
		"payment_id": booking.PaymentId,
		"tour_id":    tour.Id.Hex(),
	}).Info("booking created from verified payment")

	s.notify(ctx, notify.KindPaymentConfirmed, booking, &tour)
	return booking, true, nil
}

// TransitionStatus applies an admin status change. Unknown statuses and
// transitions outside the status table are rejected without writing.
func (s *Service) TransitionStatus(ctx context.Context, bookingID, status string) (model.Booking, error) {
	id, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		return model.Booking{}, fmt.Errorf("%w: booking id %q", ErrInvalidInput, bookingID)
	}
	target, err := model.ParseBookingStatus(status)
	if err != nil || target == model.StatusPending {
		return model.Booking{}, fmt.Errorf("%w: %q, expected %v or %v",
			ErrInvalidStatus, status, model.StatusApproved, model.StatusCancelled)
	}

	booking, err := s.bookings.FindByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return model.Booking{}, fmt.Errorf("%w: %v", ErrBookingNotFound, bookingID)
	}
	if err != nil {
		return model.Booking{}, fmt.Errorf("lookup booking: %w", err)
	}

	if !booking.Status.CanTransition(target) {
		return model.Booking{}, fmt.Errorf("%w: %v -> %v", ErrTransitionNotAllowed, booking.Status, target)
	}

	now := s.now()
	err = s.bookings.UpdateStatus(ctx, id, booking.Status, target, now)
	if errors.Is(err, database.ErrNotFound) {
		return model.Booking{}, fmt.Errorf("%w: booking %v changed concurrently", ErrTransitionNotAllowed, bookingID)
	}
	if err != nil {
		return model.Booking{}, fmt.Errorf("update booking status: %w", err)
	}

	log.WithFields(log.Fields{
		"booking_id": bookingID,
		"from":       booking.Status,
		"to":         target,
	}).Info("booking status changed")

	booking.Status = target
	booking.UpdatedAt = now

	kind, err := statusNotification(target)
	if err != nil {
		log.WithError(err).Error("no notification for booking status")
		return booking, nil
	}
	s.notify(ctx, kind, booking, nil)
	return booking, nil
}

func (s *Service) ListBookings(ctx context.Context, page, limit int) ([]model.Booking, error) {
	return s.bookings.List(ctx, primitive.NilObjectID, page, limit)
}

func (s *Service) UserBookings(ctx context.Context, userID string) ([]model.Booking, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user id %q", ErrInvalidInput, userID)
	}
	return s.bookings.List(ctx, id, 0, 0)
}

func statusNotification(status model.BookingStatus) (notify.Kind, error) {
	switch status {
	case model.StatusApproved:
		return notify.KindBookingApproved, nil
	case model.StatusCancelled:
		return notify.KindBookingCancelled, nil
	case model.StatusPending:
		return "", fmt.Errorf("status %v has no notification", status)
	default:
		return "", fmt.Errorf("unknown booking status %q", status)
	}
}

// notify queues a mail about booking. Every failure here is logged and
// swallowed: the booking write has already happened.
func (s *Service) notify(ctx context.Context, kind notify.Kind, booking model.Booking, tour *model.Tour) {
	entry := log.WithFields(log.Fields{
		"booking_id": booking.Id.Hex(),
		"kind":       kind,
	})

	user, err := s.users.FindUserByID(ctx, booking.User)
	if err != nil {
		entry.WithError(err).Warn("skipping notification, user lookup failed")
		return
	}
	if tour == nil {
		t, err := s.tours.FindTour(ctx, booking.Tour)
		if err != nil {
			entry.WithError(err).Warn("skipping notification, tour lookup failed")
			return
		}
		tour = &t
	}

	job := notify.NewJob(kind, user.Email, user.Name, tour.Title, booking.Id.Hex(), booking.Amount)
	if err := s.queue.Enqueue(ctx, job); err != nil {
		entry.WithError(err).Error("notification enqueue failed")
		return
	}
	entry.WithField("job_id", job.ID).Info("notification queued")
}
