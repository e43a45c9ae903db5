package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"travelify/booking"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaiseServiceError(t *testing.T) {
	tests := []struct {
		description     string
		err             error
		expectedCode    int
		expectedMessage string
	}{
		{"signature", booking.ErrInvalidSignature, 400, "invalid payment signature"},
		{"input", fmt.Errorf("%w: tour id", booking.ErrInvalidInput), 400, "bad request"},
		{"status", fmt.Errorf("%w: Declined", booking.ErrInvalidStatus), 400, "bad request"},
		{"tour", fmt.Errorf("%w: t1", booking.ErrTourNotFound), 404, "resource not found"},
		{"booking", booking.ErrBookingNotFound, 404, "resource not found"},
		{"transition", booking.ErrTransitionNotAllowed, 409, "conflict"},
		{"unknown", stderrors.New("connection reset"), 500, "internal error"},
	}

	for _, test := range tests {
		app := fiber.New()
		err := test.err
		app.Get("/", func(c *fiber.Ctx) error { return RaiseServiceError(c, err) })

		res, testErr := app.Test(httptest.NewRequest("GET", "/", nil), -1)
		require.NoError(t, testErr)

		body, _ := io.ReadAll(res.Body)
		var payload map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &payload))

		assert.Equalf(t, test.expectedCode, res.StatusCode, test.description)
		assert.Equalf(t, test.expectedMessage, payload["message"], test.description)
		assert.Equalf(t, false, payload["success"], test.description)
		if test.expectedCode == 500 {
			assert.NotContains(t, payload["data"], "connection reset", "internal details stay in the log")
		}
	}
}
