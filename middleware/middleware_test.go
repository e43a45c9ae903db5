package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sign = "test-sign"

func token(t *testing.T, role, userID string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "tester",
		"user_id":  userID,
		"role":     role,
		"exp":      exp.Unix(),
	})
	s, err := tok.SignedString([]byte(sign))
	require.NoError(t, err)
	return s
}

func TestAuthorizeAndRequireAdmin(t *testing.T) {
	app := fiber.New()
	app.Get("/me", Authorize(sign), func(c *fiber.Ctx) error { return c.SendString(UserID(c)) })
	app.Get("/admin", Authorize(sign), RequireAdmin(), func(c *fiber.Ctx) error { return c.SendString("ok") })

	tests := []struct {
		description  string
		route        string
		auth         string
		expectedCode int
	}{
		{"no token", "/me", "", 400},
		{"garbage token", "/me", "Bearer abc.def.ghi", 401},
		{"expired token", "/me", "Bearer " + token(t, "user", "u1", time.Now().Add(-time.Hour)), 401},
		{"user token", "/me", "Bearer " + token(t, "user", "u1", time.Now().Add(time.Hour)), 200},
		{"user on admin route", "/admin", "Bearer " + token(t, "user", "u1", time.Now().Add(time.Hour)), 401},
		{"admin on admin route", "/admin", "Bearer " + token(t, "admin", "a1", time.Now().Add(time.Hour)), 200},
	}

	for _, test := range tests {
		req := httptest.NewRequest("GET", test.route, nil)
		if test.auth != "" {
			req.Header.Set("Authorization", test.auth)
		}
		res, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equalf(t, test.expectedCode, res.StatusCode, test.description)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	app := fiber.New()
	app.Get("/", rl.Limit(), func(c *fiber.Ctx) error { return c.SendString("ok") })

	codes := []int{}
	for i := 0; i < 3; i++ {
		res, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
		require.NoError(t, err)
		codes = append(codes, res.StatusCode)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestRateLimiterForgetsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Now()
	rl.getLimiter("10.0.0.1", now)
	rl.getLimiter("10.0.0.2", now.Add(11*time.Minute))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestRateLimiterSweepsOncePerTTL(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	start := time.Now()
	rl.getLimiter("10.0.0.1", start)
	rl.getLimiter("10.0.0.2", start.Add(time.Minute))
	rl.getLimiter("10.0.0.3", start.Add(10*time.Minute+30*time.Second))

	rl.mu.Lock()
	assert.NotContains(t, rl.visitors, "10.0.0.1")
	assert.Contains(t, rl.visitors, "10.0.0.2")
	rl.mu.Unlock()

	// 10.0.0.2 is idle past ttl now, but the last sweep was a minute ago
	rl.getLimiter("10.0.0.4", start.Add(11*time.Minute+30*time.Second))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Contains(t, rl.visitors, "10.0.0.2")
	assert.Len(t, rl.visitors, 3)
}
