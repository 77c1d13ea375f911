// Package validators holds what the per area request validators share: a
// configured validator/v10 instance and a lenient scalar type for request
// fields.
package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"onboardu/apperror"
	"onboardu/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields under their wire names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// Struct validates s and returns a field to message map, or nil when s is
// valid.
func Struct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field may not be blank."
	case "email":
		return "Enter a valid email address."
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Ensure this field has no more than %s elements.", fe.Param())
		}
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Ensure this field has at least %s elements.", fe.Param())
		}
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "numeric", "number":
		return "A valid number is required."
	default:
		return "Invalid value."
	}
}

// Value is a request scalar that may arrive as a JSON string, number or
// boolean, or as a form value. It keeps the text; JSON booleans become "1"
// and "0".
type Value string

func (v *Value) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "null":
		*v = ""
	case raw == "true":
		*v = "1"
	case raw == "false":
		*v = "0"
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Value(s)
	case strings.HasPrefix(raw, "{"), strings.HasPrefix(raw, "["):
		return fmt.Errorf("expected a scalar, got %s", raw)
	default:
		*v = Value(raw)
	}
	return nil
}

func (v *Value) UnmarshalText(b []byte) error {
	*v = Value(b)
	return nil
}

func (v Value) String() string {
	return strings.TrimSpace(string(v))
}

// Body returns a middleware that parses the request body (JSON, form or
// multipart) into a fresh request, validates it and stores it in Locals
// under key. Failures are answered with the embedded code.
func Body(code int, key string, newReq func() interface{}) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := newReq()
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.ErrorResponse(c, apperror.Validation(code, "Invalid request body!"))
			}
		}

		// Respond with errors if any exist
		if errs := Struct(reqData); errs != nil {
			return middleware.ValidationErrorResponse(c, code, errs)
		}

		c.Locals(key, reqData)
		return c.Next()
	}
}

// Query is Body for query string parameters.
func Query(code int, key string, newReq func() interface{}) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := newReq()
		if err := c.QueryParser(reqData); err != nil {
			return middleware.ErrorResponse(c, apperror.Validation(code, "Invalid query parameters!"))
		}
		if errs := Struct(reqData); errs != nil {
			return middleware.ValidationErrorResponse(c, code, errs)
		}

		c.Locals(key, reqData)
		return c.Next()
	}
}
