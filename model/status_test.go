package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseBookingStatus(t *testing.T) {
	tests := []struct {
		input       string
		expected    BookingStatus
		expectedErr bool
	}{
		{"Pending", StatusPending, false},
		{"Approved", StatusApproved, false},
		{"Cancelled", StatusCancelled, false},
		{"Declined", "", true},
		{"approved", "", true},
		{"", "", true},
	}

	for _, test := range tests {
		status, err := ParseBookingStatus(test.input)
		if test.expectedErr {
			assert.Errorf(t, err, "input %q", test.input)
			continue
		}
		assert.NoErrorf(t, err, "input %q", test.input)
		assert.Equal(t, test.expected, status)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		allowed  bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusCancelled, true},
		{StatusApproved, StatusCancelled, true},
		{StatusPending, StatusPending, false},
		{StatusApproved, StatusApproved, false},
		{StatusApproved, StatusPending, false},
		{StatusCancelled, StatusApproved, false},
		{StatusCancelled, StatusPending, false},
		{BookingStatus("Declined"), StatusApproved, false},
	}

	for _, test := range tests {
		assert.Equalf(t, test.allowed, test.from.CanTransition(test.to), "%v -> %v", test.from, test.to)
	}
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
}

func TestNewPaidBooking(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	user, tour := primitive.NewObjectID(), primitive.NewObjectID()

	b := NewPaidBooking(user, tour, 5000, "order_1", "pay_1", now)

	assert.False(t, b.Id.IsZero())
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, PaymentPaid, b.PaymentStatus)
	assert.Equal(t, int64(5000), b.Amount)
	assert.Equal(t, now, b.CreatedAt)
	assert.Equal(t, now, b.UpdatedAt)
}
