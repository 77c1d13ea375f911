package middleware

import (
	"errors"

	"onboardu/apperror"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Status is the embedded status block of every response.
type Status struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func envelope(code int, message string) fiber.Map {
	msg := "success"
	if code != apperror.CodeSuccess {
		msg = "failed"
	}
	return fiber.Map{
		"message": message,
		"status":  Status{Code: code, Msg: msg},
	}
}

// JsonResponse writes a success envelope. data is left out when nil.
func JsonResponse(c *fiber.Ctx, statusCode int, message string, data interface{}) error {
	body := envelope(apperror.CodeSuccess, message)
	if data != nil {
		body["data"] = data
	}
	return c.Status(statusCode).JSON(body)
}

// KeyedResponse writes a success envelope carrying value under key instead
// of "data", for clients that expect "token", "image" or "products".
func KeyedResponse(c *fiber.Ctx, statusCode int, message, key string, value interface{}) error {
	body := envelope(apperror.CodeSuccess, message)
	body[key] = value
	return c.Status(statusCode).JSON(body)
}

// PageResponse merges pagination fields into the success envelope.
func PageResponse(c *fiber.Ctx, message string, page fiber.Map) error {
	body := envelope(apperror.CodeSuccess, message)
	for k, v := range page {
		body[k] = v
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

func ValidationErrorResponse(c *fiber.Ctx, code int, errors map[string]string) error {
	body := envelope(code, "Validation failed!")
	body["messages"] = errors
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

// ErrorResponse renders err with the status of its kind. Internal errors
// are logged and their cause is never sent to the client.
func ErrorResponse(c *fiber.Ctx, err error) error {
	appErr := apperror.As(err)
	if appErr.Kind == apperror.KindInternal {
		zap.L().Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := envelope(appErr.Code, appErr.Message)
	if len(appErr.Fields) > 0 {
		body["messages"] = appErr.Fields
	}
	return c.Status(appErr.HTTPStatus()).JSON(body)
}

// ErrorHandler is the app wide fiber error handler; routing errors such as
// 404 and 405 keep their status but use the common envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(envelope(apperror.CodeFailed, fe.Message))
	}
	return ErrorResponse(c, err)
}

// InvalidRequest answers when a validator left nothing usable in Locals.
func InvalidRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(envelope(apperror.CodeInvalid, "Invalid request data!"))
}
