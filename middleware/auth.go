package middleware

import (
	apperrors "travelify/errors"
	"travelify/model"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
)

const IdentityKey = "identity"

func Authorize(sign string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(sign),
		ErrorHandler: jwtError,
		ContextKey:   IdentityKey,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"success": false, "status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"success": false, "status": "error", "message": "Invalid or expired JWT", "data": nil})
}

// RequireAdmin must run after Authorize.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsAdminRole(c) {
			return apperrors.RaisePermissionsError(c, "only admin can perform this operation")
		}
		return c.Next()
	}
}

func claims(c *fiber.Ctx) jwt.MapClaims {
	token, ok := c.Locals(IdentityKey).(*jwt.Token)
	if !ok {
		return nil
	}
	claims, _ := token.Claims.(jwt.MapClaims)
	return claims
}

func IsAdminRole(c *fiber.Ctx) bool {
	role, _ := claims(c)["role"].(string)
	return role == model.RoleAdmin
}

// UserID is the user_id claim of the authenticated caller, or "".
func UserID(c *fiber.Ctx) string {
	id, _ := claims(c)["user_id"].(string)
	return id
}
