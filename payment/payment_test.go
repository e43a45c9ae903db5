package payment

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrders struct {
	data map[string]interface{}
	err  error
}

func (f *fakeOrders) Create(data map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	f.data = data
	if f.err != nil {
		return nil, f.err
	}
	return map[string]interface{}{
		"id":       "order_test_1",
		"amount":   data["amount"],
		"currency": data["currency"],
		"receipt":  data["receipt"],
		"status":   "created",
	}, nil
}

func TestCreateOrder(t *testing.T) {
	orders := &fakeOrders{}
	initiator := NewOrderInitiator(orders)
	initiator.now = func() time.Time { return time.UnixMilli(1700000000123) }

	order, err := initiator.Create(5000)
	require.NoError(t, err)

	assert.Equal(t, int64(500000), orders.data["amount"])
	assert.Equal(t, "INR", orders.data["currency"])
	assert.Equal(t, "receipt_1700000000123", orders.data["receipt"])
	assert.Equal(t, "order_test_1", order["id"])
	assert.Equal(t, "created", order["status"])
}

func TestCreateOrderRejectsNonPositive(t *testing.T) {
	orders := &fakeOrders{}
	initiator := NewOrderInitiator(orders)

	for _, amount := range []int64{0, -1} {
		_, err := initiator.Create(amount)
		assert.Error(t, err)
	}
	assert.Nil(t, orders.data, "provider must not be called")
}

func TestCreateOrderProviderFailure(t *testing.T) {
	providerErr := errors.New("BAD_REQUEST_ERROR")
	initiator := NewOrderInitiator(&fakeOrders{err: providerErr})

	_, err := initiator.Create(100)
	assert.ErrorIs(t, err, providerErr)
}

func TestSignKnownVector(t *testing.T) {
	sig := Sign("secret", "order_1", "pay_1")
	assert.Len(t, sig, 64)
	assert.Equal(t, strings.ToLower(sig), sig)
	assert.Equal(t, sig, Sign("secret", "order_1", "pay_1"))
	assert.NotEqual(t, sig, Sign("other", "order_1", "pay_1"))
	assert.NotEqual(t, sig, Sign("secret", "order_1|", "pay_1x"))
}

func TestVerifySignature(t *testing.T) {
	valid := Sign("secret", "order_1", "pay_1")

	tests := []struct {
		description string
		orderID     string
		paymentID   string
		signature   string
		expected    bool
	}{
		{"exact match", "order_1", "pay_1", valid, true},
		{"upper-cased hex", "order_1", "pay_1", strings.ToUpper(valid), false},
		{"truncated", "order_1", "pay_1", valid[:63], false},
		{"extra char", "order_1", "pay_1", valid + "0", false},
		{"other payment", "order_1", "pay_2", valid, false},
		{"other order", "order_2", "pay_1", valid, false},
		{"empty", "order_1", "pay_1", "", false},
	}

	for _, test := range tests {
		assert.Equalf(t, test.expected,
			VerifySignature("secret", test.orderID, test.paymentID, test.signature),
			test.description)
	}
}
