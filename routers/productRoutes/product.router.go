package productRoutes

import (
	catalogueController "onboardu/controllers/catalogue"
	productController "onboardu/controllers/product"
	"onboardu/middleware"
	"onboardu/services/catalogue"
	productValidator "onboardu/validators/product"

	"github.com/gofiber/fiber/v2"
)

func SetupProductRoutes(app *fiber.App, svc *catalogue.Service, guard []fiber.Handler) {
	app.Post("/create/product", middleware.Chain(guard, productValidator.CreateProducts(), productController.CreateProducts(svc))...)
	app.Get("/get/products-lists", middleware.Chain(guard, productValidator.ListProducts(), productController.ListProducts(svc))...)
	app.Patch("/update/product", middleware.Chain(guard, productValidator.UpdateProduct(), productController.UpdateProduct(svc))...)
	app.Patch("/pub-unpub/product", middleware.Chain(guard, productValidator.PublishProduct(), productController.PublishProduct(svc))...)
	app.Post("/upload/product-image", middleware.Chain(guard, productController.UploadProductImage(svc))...)
	app.Post("/extract/excel", productController.ExtractExcel())

	app.Get("/get/catalogue-lists", middleware.Chain(guard, catalogueController.ListCatalogues(svc))...)
	app.Get("/get/categories-lists", middleware.Chain(guard, catalogueController.ListCategories(svc))...)
	app.Post("/create/category", middleware.Chain(guard, productValidator.CreateCategory(), catalogueController.CreateCategory(svc))...)
	app.Post("/upload/catalogue-image", middleware.Chain(guard, catalogueController.UploadCatalogueImage(svc))...)
}
