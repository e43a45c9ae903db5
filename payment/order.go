package payment

import (
	"fmt"
	"time"

	"github.com/razorpay/razorpay-go"
)

const (
	paisePerRupee = 100
	currency      = "INR"
	receiptPrefix = "receipt_"
)

// OrderCreator is the order API of the payment provider. razorpay-go's
// client.Order satisfies it.
type OrderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type OrderInitiator struct {
	orders OrderCreator
	now    func() time.Time
}

func NewOrderInitiator(orders OrderCreator) *OrderInitiator {
	return &OrderInitiator{orders: orders, now: time.Now}
}

// NewRazorpayInitiator wires an initiator to a live Razorpay client.
func NewRazorpayInitiator(keyID, keySecret string) *OrderInitiator {
	client := razorpay.NewClient(keyID, keySecret)
	return NewOrderInitiator(client.Order)
}

// Create requests a provider order for amount rupees and returns the
// provider's order object untouched.
func (o *OrderInitiator) Create(amount int64) (map[string]interface{}, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %v", amount)
	}

	data := map[string]interface{}{
		"amount":   amount * paisePerRupee,
		"currency": currency,
		"receipt":  fmt.Sprintf("%s%d", receiptPrefix, o.now().UnixMilli()),
	}

	order, err := o.orders.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("payment provider rejected order: %w", err)
	}
	return order, nil
}
