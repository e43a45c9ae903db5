package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindPaymentConfirmed Kind = "payment_confirmed"
	KindBookingApproved  Kind = "booking_approved"
	KindBookingCancelled Kind = "booking_cancelled"
)

// Job is one outbound notification. It is serialized as-is onto the queue.
type Job struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	To        string    `json:"to"`
	Name      string    `json:"name"`
	TourTitle string    `json:"tour_title"`
	BookingID string    `json:"booking_id"`
	Amount    int64     `json:"amount"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"created_at"`
	// NotBefore is set on retries; the worker leaves the job queued until then.
	NotBefore time.Time `json:"not_before"`
}

func (j Job) due(now time.Time) bool {
	return !now.Before(j.NotBefore)
}

func NewJob(kind Kind, to, name, tourTitle, bookingID string, amount int64) Job {
	return Job{
		ID:        uuid.NewString(),
		Kind:      kind,
		To:        to,
		Name:      name,
		TourTitle: tourTitle,
		BookingID: bookingID,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
}

type Message struct {
	To      string
	Subject string
	Body    string
}

func Compose(job Job) (Message, error) {
	if job.To == "" {
		return Message{}, fmt.Errorf("job %v has no recipient", job.ID)
	}

	msg := Message{To: job.To}
	switch job.Kind {
	case KindPaymentConfirmed:
		msg.Subject = "Payment received for " + job.TourTitle
		msg.Body = fmt.Sprintf("Hi %s,\n\nWe received your payment of Rs. %d for %s.\n"+
			"Your booking %s is pending approval. We will email you once it is confirmed.\n",
			job.Name, job.Amount, job.TourTitle, job.BookingID)
	case KindBookingApproved:
		msg.Subject = "Your booking for " + job.TourTitle + " is confirmed"
		msg.Body = fmt.Sprintf("Hi %s,\n\nGood news: booking %s for %s has been approved.\n",
			job.Name, job.BookingID, job.TourTitle)
	case KindBookingCancelled:
		msg.Subject = "Your booking for " + job.TourTitle + " was cancelled"
		msg.Body = fmt.Sprintf("Hi %s,\n\nBooking %s for %s has been cancelled. "+
			"Contact support if you have questions about your refund.\n",
			job.Name, job.BookingID, job.TourTitle)
	default:
		return Message{}, fmt.Errorf("unknown notification kind %q", job.Kind)
	}
	return msg, nil
}
