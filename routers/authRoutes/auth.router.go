package authRoutes

import (
	authController "onboardu/controllers/auth"
	"onboardu/middleware"
	"onboardu/services/account"
	authValidator "onboardu/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, svc *account.Service, guard []fiber.Handler) {
	app.Post("/register", authValidator.Register(), authController.Register(svc))
	app.Post("/login", authValidator.Login(), authController.Login(svc))
	app.Post("/token/refresh", authValidator.Token(), authController.RefreshToken(svc))
	app.Post("/logout", authValidator.Token(), authController.Logout(svc))

	app.Post("/verify/otp", middleware.Chain(guard, authValidator.VerifyOTP(), authController.VerifyOTP(svc))...)
	app.Post("/resend/otp", middleware.Chain(guard, authValidator.ResendOTP(), authController.ResendOTP(svc))...)
	app.Get("/user-details", middleware.Chain(guard, authController.UserDetails(svc))...)
	app.Get("/home", middleware.Chain(guard, authController.Home(svc))...)
}
