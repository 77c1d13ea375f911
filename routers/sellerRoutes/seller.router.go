package sellerRoutes

import (
	sellerController "onboardu/controllers/seller"
	"onboardu/middleware"
	"onboardu/services/seller"
	sellerValidator "onboardu/validators/seller"

	"github.com/gofiber/fiber/v2"
)

func SetupSellerRoutes(app *fiber.App, svc *seller.Service, guard []fiber.Handler) {
	app.Post("/upload/gst-certificate", middleware.Chain(guard, sellerController.UploadGSTCertificate(svc))...)
	app.Post("/update/gst-details", middleware.Chain(guard, sellerValidator.GSTDetails(), sellerController.UpdateGSTDetails(svc))...)
	app.Post("/update/business-profile", middleware.Chain(guard, sellerValidator.BusinessProfile(), sellerController.UpdateBusinessProfile(svc))...)
	app.Post("/create/bank-details", middleware.Chain(guard, sellerValidator.BankDetails(), sellerController.AddBankDetails(svc))...)
	app.Get("/business-details", middleware.Chain(guard, sellerController.BusinessDetails(svc))...)
	app.Get("/seller-details", middleware.Chain(guard, sellerController.SellerDetails(svc))...)
}
