package catalogueController

import (
	"onboardu/middleware"
	"onboardu/services/catalogue"
	productValidator "onboardu/validators/product"

	"github.com/gofiber/fiber/v2"
)

func ListCatalogues(svc *catalogue.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		catalogues, err := svc.ListCatalogues(c.UserContext())
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, "Successfully Retrieved.", catalogues)
	}
}

func ListCategories(svc *catalogue.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		categories, err := svc.ListCategories(c.UserContext())
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, "Successfully retrieved.", categories)
	}
}

func CreateCategory(svc *catalogue.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedCreateCategory").(*productValidator.CreateCategoryRequest)
		if !ok {
			return middleware.InvalidRequest(c)
		}

		category, err := svc.CreateCategory(c.UserContext(), middleware.UserID(c), reqData.Name)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "Successfully retrieved.", category)
	}
}

// UploadCatalogueImage expects the file in the "catalogue-image" form field.
func UploadCatalogueImage(svc *catalogue.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, _ := c.FormFile("catalogue-image")

		url, err := svc.UploadCatalogueImage(c.UserContext(), middleware.UserID(c), file, c.BaseURL())
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.KeyedResponse(c, fiber.StatusOK, "Successfully image uploaded.", "image", url)
	}
}
