package sellerValidator

import (
	"onboardu/apperror"
	"onboardu/middleware"
	"onboardu/services/seller"
	"onboardu/validators"

	"github.com/gofiber/fiber/v2"
)

type GSTDetailsRequest struct {
	TradeName       string `json:"trade-name" form:"trade-name" validate:"max=255"`
	GSTNo           string `json:"gst-no" form:"gst-no" validate:"max=20"`
	GSTType         string `json:"gst-type" form:"gst-type" validate:"max=50"`
	LegalName       string `json:"legal-name" form:"legal-name" validate:"max=255"`
	BusinessAddress string `json:"business_address" form:"business_address"`
}

type businessProfileRequest struct {
	Action         validators.Value `json:"action" form:"action"`
	Name           string           `json:"business-name" form:"business-name" validate:"max=255"`
	Address        string           `json:"business-address" form:"business-address"`
	Email          string           `json:"business-email" form:"business-email" validate:"omitempty,email,max=255"`
	ContactNumber  validators.Value `json:"business-contact_number" form:"business-contact_number" validate:"max=20"`
	ShippingMethod string           `json:"business-shipping_method" form:"business-shipping_method" validate:"max=255"`
	StoreName      string           `json:"store_name" form:"store_name" validate:"max=255"`
}

type BankDetailsRequest struct {
	AccHolderName string           `json:"acc-holder-name" form:"acc-holder-name" validate:"max=255"`
	AccNumber     validators.Value `json:"acc-number" form:"acc-number" validate:"max=34"`
	IFSC          string           `json:"ifsc" form:"ifsc" validate:"max=11"`
}

func GSTDetails() fiber.Handler {
	return validators.Body(apperror.CodeFailed, "validatedGSTDetails", func() interface{} { return new(GSTDetailsRequest) })
}

func BankDetails() fiber.Handler {
	return validators.Body(apperror.CodeFailed, "validatedBankDetails", func() interface{} { return new(BankDetailsRequest) })
}

// BusinessProfile turns the action flag into a seller.BusinessUpdate:
// "1" uploads the profile-pic file, "0" updates the textual fields.
func BusinessProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(businessProfileRequest)
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.ErrorResponse(c, apperror.Validation(apperror.CodeFailed, "Invalid request body!"))
			}
		}

		var update seller.BusinessUpdate
		switch reqData.Action.String() {
		case "1":
			// a missing file is reported by the service
			file, _ := c.FormFile("profile-pic")
			update = seller.UpdateProfilePicture{File: file}
		case "0":
			if errs := validators.Struct(reqData); errs != nil {
				return middleware.ValidationErrorResponse(c, apperror.CodeFailed, errs)
			}
			update = seller.UpdateProfileFields{
				Name:           reqData.Name,
				StoreName:      reqData.StoreName,
				Address:        reqData.Address,
				EmailAddress:   reqData.Email,
				PhoneNumber:    reqData.ContactNumber.String(),
				ShippingMethod: reqData.ShippingMethod,
			}
		default:
			return middleware.ErrorResponse(c, apperror.Validation(apperror.CodeFailed, "Submit action in 0 or 1."))
		}

		c.Locals("validatedBusinessUpdate", update)
		return c.Next()
	}
}
