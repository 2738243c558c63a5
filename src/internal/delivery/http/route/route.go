package route

import (
	"wallet-service/src/internal/delivery/http"

	"github.com/gofiber/fiber/v2"
)

type RouteConfig struct {
	App                   *fiber.App
	WalletController      *http.WalletController
	ReferralController    *http.ReferralController
	ProfileController     *http.ProfileController
	BeneficiaryController *http.BeneficiaryController
	StoreController       *http.StoreController
	AdminController       *http.AdminController
	LoggerMiddleware      fiber.Handler
	AuthMiddleware        fiber.Handler
	AdminMiddleware       fiber.Handler
	WebhookMiddleware     fiber.Handler
}

func (c *RouteConfig) Setup() {
	c.App.Use(c.LoggerMiddleware)
	c.App.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})

	c.SetupWebhookRoute()
	c.SetupAuthRoute()
	c.SetupAdminRoute()
}

// SetupWebhookRoute registers the provider callback, authenticated by the
// shared webhook key rather than a bearer token.
func (c *RouteConfig) SetupWebhookRoute() {
	c.App.Post("/wallet/v1/funding/webhook", c.WebhookMiddleware, c.WalletController.FundWallet)
}

func (c *RouteConfig) SetupAuthRoute() {
	api := c.App.Group("", c.AuthMiddleware)

	api.Get("/wallet/v1/balance", c.WalletController.GetBalance)
	api.Post("/wallet/v1/purchase", c.WalletController.PurchaseService)
	api.Get("/wallet/v1/transactions", c.WalletController.ListTransactions)

	api.Get("/users/v1/profile", c.ProfileController.GetProfile)
	api.Post("/users/v1/pin", c.ProfileController.SetPin)
	api.Post("/users/v1/pin/verify", c.ProfileController.VerifyPin)

	api.Post("/referrals/v1/apply", c.ReferralController.ApplyCode)
	api.Get("/referrals/v1/status", c.ReferralController.Status)

	api.Post("/beneficiaries/v1", c.BeneficiaryController.Save)
	api.Get("/beneficiaries/v1", c.BeneficiaryController.List)
	api.Delete("/beneficiaries/v1/:id", c.BeneficiaryController.Delete)

	api.Get("/store/v1/products", c.StoreController.ListProducts)
	api.Post("/store/v1/orders", c.StoreController.PurchaseProduct)
	api.Get("/store/v1/orders", c.StoreController.ListOrders)
}

func (c *RouteConfig) SetupAdminRoute() {
	admin := c.App.Group("/admin/v1", c.AuthMiddleware, c.AdminMiddleware)

	admin.Get("/settings", c.AdminController.ListSettings)
	admin.Put("/settings", c.AdminController.UpsertSetting)
	admin.Get("/transactions", c.AdminController.ListAllTransactions)
	admin.Post("/transactions/:id/resolve", c.AdminController.ResolvePending)
	admin.Post("/products", c.AdminController.CreateProduct)
	admin.Put("/products/:id", c.AdminController.UpdateProduct)
}
