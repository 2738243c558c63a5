package http

import (
	"wallet-service/src/internal/delivery/http/middleware"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/usecase"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type StoreController struct {
	Log     log.Log
	UseCase *usecase.StoreUseCase
}

func NewStoreController(useCase *usecase.StoreUseCase, logger log.Log) *StoreController {
	return &StoreController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *StoreController) ListProducts(ctx *fiber.Ctx) error {
	request := &model.ListProductsRequest{
		Page:     ctx.QueryInt("page", 1),
		PageSize: ctx.QueryInt("pageSize", 20),
	}
	result := c.UseCase.ListProducts(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Products", fiber.StatusOK, ctx)
}

func (c *StoreController) PurchaseProduct(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.PurchaseProductRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("StoreController.PurchaseProduct", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.UserID

	result := c.UseCase.PurchaseProduct(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Product Purchased", fiber.StatusCreated, ctx)
}

func (c *StoreController) ListOrders(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.ListOrders(ctx.Context(), auth.UserID)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Orders", fiber.StatusOK, ctx)
}
