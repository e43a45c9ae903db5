// Package memdb keeps bookings, tours and users in process memory with the
// same error contract as the MongoDB repositories. Used by the service and
// handler tests.
package memdb

import (
	"context"
	"sort"
	"sync"
	"time"

	"travelify/database"
	"travelify/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Bookings struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]model.Booking
}

func NewBookings() *Bookings {
	return &Bookings{bookings: map[primitive.ObjectID]model.Booking{}}
}

func (s *Bookings) Create(_ context.Context, booking model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		if b.PaymentId == booking.PaymentId {
			return database.ErrDuplicate
		}
	}
	if _, exists := s.bookings[booking.Id]; exists {
		return database.ErrDuplicate
	}
	s.bookings[booking.Id] = booking
	return nil
}

func (s *Bookings) FindByID(_ context.Context, id primitive.ObjectID) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return model.Booking{}, database.ErrNotFound
	}
	return b, nil
}

func (s *Bookings) FindByPaymentID(_ context.Context, paymentID string) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		if b.PaymentId == paymentID {
			return b, nil
		}
	}
	return model.Booking{}, database.ErrNotFound
}

func (s *Bookings) UpdateStatus(_ context.Context, id primitive.ObjectID, from, to model.BookingStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok || b.Status != from {
		return database.ErrNotFound
	}
	b.Status = to
	b.UpdatedAt = at
	s.bookings[id] = b
	return nil
}

func (s *Bookings) List(_ context.Context, userID primitive.ObjectID, page, limit int) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings := []model.Booking{}
	for _, b := range s.bookings {
		if userID.IsZero() || b.User == userID {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})

	if limit <= 0 {
		return bookings, nil
	}
	start := 0
	if page > 1 {
		start = (page - 1) * limit
	}
	if start >= len(bookings) {
		return []model.Booking{}, nil
	}
	end := start + limit
	if end > len(bookings) {
		end = len(bookings)
	}
	return bookings[start:end], nil
}

// Count is the number of stored bookings.
func (s *Bookings) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

type Tours struct {
	mu    sync.RWMutex
	tours map[primitive.ObjectID]model.Tour
}

func NewTours(tours ...model.Tour) *Tours {
	s := &Tours{tours: map[primitive.ObjectID]model.Tour{}}
	for _, t := range tours {
		s.tours[t.Id] = t
	}
	return s
}

func (s *Tours) FindTour(_ context.Context, id primitive.ObjectID) (model.Tour, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tours[id]
	if !ok {
		return model.Tour{}, database.ErrNotFound
	}
	return t, nil
}

func (s *Tours) ListTours(_ context.Context, category string) ([]model.Tour, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tours := []model.Tour{}
	for _, t := range s.tours {
		if category == "" || t.Category == category {
			tours = append(tours, t)
		}
	}
	sort.Slice(tours, func(i, j int) bool { return tours[i].Title < tours[j].Title })
	return tours, nil
}

type Users struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]model.UserData
}

func NewUsers(users ...model.UserData) *Users {
	s := &Users{users: map[primitive.ObjectID]model.UserData{}}
	for _, u := range users {
		s.users[u.Id] = u
	}
	return s
}

func (s *Users) FindUserByID(_ context.Context, id primitive.ObjectID) (model.UserData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return model.UserData{}, database.ErrNotFound
	}
	return u, nil
}

func (s *Users) GetUserData(_ context.Context, login string) (model.UserData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Login == login {
			return u, nil
		}
	}
	return model.UserData{}, database.ErrNotFound
}

func (s *Users) CreateUser(_ context.Context, user model.UserData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Login == user.Login {
			return database.ErrDuplicate
		}
	}
	s.users[user.Id] = user
	return nil
}
