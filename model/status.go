package model

import "fmt"

type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusApproved  BookingStatus = "Approved"
	StatusCancelled BookingStatus = "Cancelled"
)

// ParseBookingStatus accepts only the declared statuses, compared case-sensitively.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case StatusPending, StatusApproved, StatusCancelled:
		return BookingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown booking status %q", s)
	}
}

var allowedTransitions = map[BookingStatus]map[BookingStatus]bool{
	StatusPending:   {StatusApproved: true, StatusCancelled: true},
	StatusApproved:  {StatusCancelled: true},
	StatusCancelled: {},
}

func (s BookingStatus) CanTransition(to BookingStatus) bool {
	return allowedTransitions[s][to]
}

func (s BookingStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}
