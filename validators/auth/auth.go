package authValidator

import (
	"onboardu/apperror"
	"onboardu/validators"

	"github.com/gofiber/fiber/v2"
)

type RegisterRequest struct {
	Name          string           `json:"name" form:"name" validate:"required,max=255"`
	Email         string           `json:"email" form:"email" validate:"required,email,max=255"`
	ContactNumber validators.Value `json:"contact_number" form:"contact_number" validate:"required,max=20"`
	Password      string           `json:"password" form:"password" validate:"required,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email,max=255"`
	Password string `json:"password" form:"password" validate:"required"`
}

// VerifyOTPRequest leaves blank checks to the service so clients get its
// messages.
type VerifyOTPRequest struct {
	Of  string           `json:"of" form:"of" validate:"max=20"`
	OTP validators.Value `json:"otp" form:"otp" validate:"max=10"`
}

type ResendOTPRequest struct {
	Of string `json:"of" form:"of" validate:"omitempty,oneof=email gst"`
}

type TokenRequest struct {
	Refresh string `json:"refresh" form:"refresh" validate:"required"`
}

// Register validator middleware
func Register() fiber.Handler {
	return validators.Body(apperror.CodeInvalid, "validatedRegister", func() interface{} { return new(RegisterRequest) })
}

// Login validator middleware
func Login() fiber.Handler {
	return validators.Body(apperror.CodeInvalid, "validatedLogin", func() interface{} { return new(LoginRequest) })
}

func VerifyOTP() fiber.Handler {
	return validators.Body(apperror.CodeInvalid, "validatedVerifyOTP", func() interface{} { return new(VerifyOTPRequest) })
}

func ResendOTP() fiber.Handler {
	return validators.Body(apperror.CodeInvalid, "validatedResendOTP", func() interface{} { return new(ResendOTPRequest) })
}

// Token validates the body of refresh and logout requests.
func Token() fiber.Handler {
	return validators.Body(apperror.CodeInvalid, "validatedToken", func() interface{} { return new(TokenRequest) })
}
