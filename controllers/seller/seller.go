package sellerController

import (
	"onboardu/middleware"
	"onboardu/services/seller"
	sellerValidator "onboardu/validators/seller"

	"github.com/gofiber/fiber/v2"
)

// UploadGSTCertificate expects the file in the "gst-certificate" form field.
func UploadGSTCertificate(svc *seller.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// a missing file is reported by the service
		file, _ := c.FormFile("gst-certificate")

		if _, err := svc.UploadGSTCertificate(c.UserContext(), middleware.UserID(c), file); err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "Successfully certificate uploaded.", nil)
	}
}

func UpdateGSTDetails(svc *seller.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedGSTDetails").(*sellerValidator.GSTDetailsRequest)
		if !ok {
			return middleware.InvalidRequest(c)
		}

		gst, err := svc.UpdateGSTDetails(c.UserContext(), middleware.UserID(c), seller.GSTDetails{
			TradeName:       reqData.TradeName,
			GSTNumber:       reqData.GSTNo,
			GSTType:         reqData.GSTType,
			LegalName:       reqData.LegalName,
			BusinessAddress: reqData.BusinessAddress,
		})
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		gst.Certificate = svc.FileURL(c.BaseURL(), gst.Certificate)
		return middleware.JsonResponse(c, fiber.StatusOK, "Successfully retrieved.", gst)
	}
}

func UpdateBusinessProfile(svc *seller.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		update, ok := c.Locals("validatedBusinessUpdate").(seller.BusinessUpdate)
		if !ok {
			return middleware.InvalidRequest(c)
		}

		business, err := svc.UpdateBusinessProfile(c.UserContext(), middleware.UserID(c), update)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		if _, picture := update.(seller.UpdateProfilePicture); picture {
			return middleware.JsonResponse(c, fiber.StatusOK, "Successfully profile pic uploaded.", nil)
		}
		business.ProfilePic = svc.FileURL(c.BaseURL(), business.ProfilePic)
		return middleware.JsonResponse(c, fiber.StatusOK, "Successfully business details updated.", business)
	}
}

func AddBankDetails(svc *seller.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedBankDetails").(*sellerValidator.BankDetailsRequest)
		if !ok {
			return middleware.InvalidRequest(c)
		}

		bank, err := svc.AddBankDetails(c.UserContext(), middleware.UserID(c), seller.BankInput{
			AccHolderName: reqData.AccHolderName,
			AccNumber:     reqData.AccNumber.String(),
			IFSC:          reqData.IFSC,
		})
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "Bank account details successfully added.", bank)
	}
}

func BusinessDetails(svc *seller.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		business, err := svc.Business(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		business.ProfilePic = svc.FileURL(c.BaseURL(), business.ProfilePic)
		return middleware.JsonResponse(c, fiber.StatusOK, "Successfully retrieved.", business)
	}
}

func SellerDetails(svc *seller.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gst, err := svc.SellerDetails(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		gst.Certificate = svc.FileURL(c.BaseURL(), gst.Certificate)
		return middleware.JsonResponse(c, fiber.StatusOK, "Successfully retrieved.", gst)
	}
}
