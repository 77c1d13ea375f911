package middleware

import (
	"strings"

	"onboardu/apperror"
	"onboardu/auth"

	"github.com/gofiber/fiber/v2"
)

const userIDKey = "userId"

// JWTMiddleware requires a valid access token in the Authorization header and
// stores the user id in the request context.
func JWTMiddleware(tokens *auth.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get the token from the Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authentication credentials were not provided.")
		}

		// The token should be prefixed with "Bearer "
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return unauthorized(c, "Invalid Authorization header format")
		}
		tokenString := strings.TrimSpace(authHeader[len("Bearer "):])

		claims, err := tokens.Parse(tokenString, auth.TypeAccess)
		if err != nil || claims.UserID == 0 {
			return unauthorized(c, "Given token not valid for any token type")
		}

		c.Locals(userIDKey, claims.UserID)
		return c.Next()
	}
}

// UserID returns the id stored by JWTMiddleware, or 0 outside it.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(userIDKey).(uint)
	return id
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(envelope(apperror.CodeFailed, message))
}
