package productController

import (
	"strconv"

	"onboardu/apperror"
	"onboardu/middleware"
	"onboardu/services/catalogue"
	"onboardu/services/spreadsheet"
	productValidator "onboardu/validators/product"

	"github.com/gofiber/fiber/v2"
)

func CreateProducts(svc *catalogue.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedCreateProducts").(*productValidator.CreateProductsRequest)
		if !ok {
			return middleware.InvalidRequest(c)
		}

		results, err := svc.CreateProducts(c.UserContext(), middleware.UserID(c), reqData.Products)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "Products created successfully.", results)
	}
}

func ListProducts(svc *catalogue.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedListProducts").(*productValidator.ListProductsRequest)
		if !ok {
			return middleware.InvalidRequest(c)
		}

		page, err := svc.ListProducts(c.UserContext(), middleware.UserID(c), svc.Pagination(reqData.Page, reqData.PageSize))
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.PageResponse(c, "Successfully retrieved.", fiber.Map{
			"count":     page.Count,
			"page":      page.Page,
			"page_size": page.PageSize,
			"next":      page.Next,
			"previous":  page.Previous,
			"results":   page.Results,
		})
	}
}

func UpdateProduct(svc *catalogue.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedUpdateProduct").(*productValidator.UpdateProductRequest)
		if !ok {
			return middleware.InvalidRequest(c)
		}

		detailID, err := strconv.ParseUint(reqData.PID.String(), 10, 64)
		if err != nil {
			return middleware.ErrorResponse(c, apperror.Validation(apperror.CodeInvalid, "Please submit correct product id!"))
		}

		detail, err := svc.UpdateProduct(c.UserContext(), middleware.UserID(c), uint(detailID), catalogue.ProductPatch{
			Stock:      reqData.Stock.String(),
			Discount:   reqData.Discount.String(),
			FinalPrice: reqData.FinalPrice.String(),
		})
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "Product successfully updated.", detail)
	}
}

func PublishProduct(svc *catalogue.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedPublishProduct").(*productValidator.PublishProductRequest)
		if !ok {
			return middleware.InvalidRequest(c)
		}

		detail, err := svc.PublishProduct(c.UserContext(), middleware.UserID(c), reqData.PID.String(), reqData.Publish.String())
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.KeyedResponse(c, fiber.StatusOK, "Successfully retrieved.", "products", detail)
	}
}

// UploadProductImage expects the file in the "product-image" form field.
func UploadProductImage(svc *catalogue.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, _ := c.FormFile("product-image")

		url, err := svc.UploadProductImage(c.UserContext(), middleware.UserID(c), file, c.BaseURL())
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.KeyedResponse(c, fiber.StatusOK, "Successfully image uploaded.", "image", url)
	}
}

// ExtractExcel returns the rows of an uploaded .xlsx or .csv file keyed by
// its header row.
func ExtractExcel() fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := c.FormFile("excel-file")
		if err != nil {
			return middleware.ErrorResponse(c, apperror.Validation(apperror.CodeFailed, "Please submit excel file!"))
		}

		f, err := file.Open()
		if err != nil {
			return middleware.ErrorResponse(c, apperror.Internal("Failed to read file!", err))
		}
		defer f.Close()

		rows, err := spreadsheet.Extract(file.Filename, f)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "Successfully catalogue extracted.", rows)
	}
}
