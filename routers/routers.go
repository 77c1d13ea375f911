// Package routers mounts every route group on a fiber app.
package routers

import (
	"onboardu/auth"
	"onboardu/middleware"
	"onboardu/routers/authRoutes"
	"onboardu/routers/productRoutes"
	"onboardu/routers/sellerRoutes"
	"onboardu/services/account"
	"onboardu/services/catalogue"
	"onboardu/services/seller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Deps struct {
	DB        *gorm.DB
	Tokens    *auth.TokenIssuer
	Account   *account.Service
	Seller    *seller.Service
	Catalogue *catalogue.Service
}

func Setup(app *fiber.App, deps Deps) {
	guard := middleware.Authenticated(deps.Tokens, deps.DB)

	authRoutes.SetupAuthRoutes(app, deps.Account, guard)
	sellerRoutes.SetupSellerRoutes(app, deps.Seller, guard)
	productRoutes.SetupProductRoutes(app, deps.Catalogue, guard)
}
