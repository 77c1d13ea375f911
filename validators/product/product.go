package productValidator

import (
	"onboardu/apperror"
	"onboardu/services/catalogue"
	"onboardu/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateProductsRequest struct {
	Products []catalogue.ProductDescriptor `json:"products" validate:"required,min=1,max=500"`
}

type UpdateProductRequest struct {
	PID        validators.Value `json:"p-id" form:"p-id" validate:"required,numeric"`
	Stock      validators.Value `json:"stock" form:"stock"`
	Discount   validators.Value `json:"discount" form:"discount"`
	FinalPrice validators.Value `json:"final-price" form:"final-price"`
}

type PublishProductRequest struct {
	PID     validators.Value `json:"p-id" form:"p-id"`
	Publish validators.Value `json:"publish" form:"publish"`
}

type ListProductsRequest struct {
	Page     string `query:"page" validate:"omitempty,numeric"`
	PageSize string `query:"page-size" validate:"omitempty,numeric"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" form:"name" validate:"max=255"`
}

func CreateProducts() fiber.Handler {
	return validators.Body(apperror.CodeInvalid, "validatedCreateProducts", func() interface{} { return new(CreateProductsRequest) })
}

func UpdateProduct() fiber.Handler {
	return validators.Body(apperror.CodeInvalid, "validatedUpdateProduct", func() interface{} { return new(UpdateProductRequest) })
}

func PublishProduct() fiber.Handler {
	return validators.Body(apperror.CodeFailed, "validatedPublishProduct", func() interface{} { return new(PublishProductRequest) })
}

func ListProducts() fiber.Handler {
	return validators.Query(apperror.CodeInvalid, "validatedListProducts", func() interface{} { return new(ListProductsRequest) })
}

func CreateCategory() fiber.Handler {
	return validators.Body(apperror.CodeInvalid, "validatedCreateCategory", func() interface{} { return new(CreateCategoryRequest) })
}
