package authController

import (
	"onboardu/middleware"
	"onboardu/services/account"
	authValidator "onboardu/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func Register(svc *account.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedRegister").(*authValidator.RegisterRequest)
		if !ok {
			return middleware.InvalidRequest(c)
		}

		session, err := svc.Register(c.UserContext(), account.RegisterInput{
			Name:          reqData.Name,
			Email:         reqData.Email,
			ContactNumber: reqData.ContactNumber.String(),
			Password:      reqData.Password,
		})
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.KeyedResponse(c, fiber.StatusOK, "Registration Successful.", "token", session.Token)
	}
}

func Login(svc *account.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
		if !ok {
			return middleware.InvalidRequest(c)
		}

		session, err := svc.Login(c.UserContext(), reqData.Email, reqData.Password)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.KeyedResponse(c, fiber.StatusOK, "Login Successful.", "token", session.Token)
	}
}

func VerifyOTP(svc *account.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedVerifyOTP").(*authValidator.VerifyOTPRequest)
		if !ok {
			return middleware.InvalidRequest(c)
		}

		if err := svc.VerifyOTP(c.UserContext(), middleware.UserID(c), reqData.Of, reqData.OTP.String()); err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "Successfully OTP verified.", nil)
	}
}

func ResendOTP(svc *account.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedResendOTP").(*authValidator.ResendOTPRequest)
		if !ok {
			return middleware.InvalidRequest(c)
		}

		if err := svc.ResendOTP(c.UserContext(), middleware.UserID(c), reqData.Of); err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "OTP sent successfully.", nil)
	}
}

func RefreshToken(svc *account.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedToken").(*authValidator.TokenRequest)
		if !ok {
			return middleware.InvalidRequest(c)
		}

		pair, err := svc.Refresh(c.UserContext(), reqData.Refresh)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.KeyedResponse(c, fiber.StatusOK, "Token refreshed.", "token", pair)
	}
}

func Logout(svc *account.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedToken").(*authValidator.TokenRequest)
		if !ok {
			return middleware.InvalidRequest(c)
		}

		if err := svc.Logout(c.UserContext(), reqData.Refresh); err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "Successfully logged out.", nil)
	}
}

func UserDetails(svc *account.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile, err := svc.UserDetails(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "Successfully retrieved.", profile)
	}
}

func Home(svc *account.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile, err := svc.UserDetails(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.KeyedResponse(c, fiber.StatusOK, "You are authenticated", "username", profile.Email)
	}
}
