package middleware

import (
	"onboardu/apperror"
	"onboardu/auth"
	"onboardu/database"
	"onboardu/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ActiveUser rejects tokens whose user was deleted or deactivated after the
// token was issued. It must run after JWTMiddleware.
func ActiveUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := UserID(c)
		if userID == 0 {
			return unauthorized(c, "Authentication credentials were not provided.")
		}

		var user models.User
		err := db.WithContext(c.UserContext()).Select("id", "is_active").First(&user, userID).Error
		if err != nil {
			if database.IsNotFound(err) {
				return unauthorized(c, "User not found")
			}
			return c.Status(fiber.StatusInternalServerError).JSON(envelope(apperror.CodeFailed, "Server error while checking user!"))
		}
		if !user.IsActive {
			return unauthorized(c, "User is inactive")
		}

		return c.Next()
	}
}

// Authenticated is the guard chain for routes that need a signed-in, active
// user.
func Authenticated(tokens *auth.TokenIssuer, db *gorm.DB) []fiber.Handler {
	return []fiber.Handler{JWTMiddleware(tokens), ActiveUser(db)}
}

// Chain prepends guard to handlers without sharing guard's backing array.
func Chain(guard []fiber.Handler, handlers ...fiber.Handler) []fiber.Handler {
	chain := make([]fiber.Handler, 0, len(guard)+len(handlers))
	chain = append(chain, guard...)
	return append(chain, handlers...)
}
