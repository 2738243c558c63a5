package http

import (
	"wallet-service/src/internal/delivery/http/middleware"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/usecase"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type AdminController struct {
	Log     log.Log
	UseCase *usecase.AdminUseCase
}

func NewAdminController(useCase *usecase.AdminUseCase, logger log.Log) *AdminController {
	return &AdminController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *AdminController) ListSettings(ctx *fiber.Ctx) error {
	result := c.UseCase.ListSettings(ctx.Context())
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Settings", fiber.StatusOK, ctx)
}

func (c *AdminController) UpsertSetting(ctx *fiber.Ctx) error {
	request := new(model.UpsertSettingRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AdminController.UpsertSetting", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.UpsertSetting(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Setting Saved", fiber.StatusOK, ctx)
}

func (c *AdminController) ListAllTransactions(ctx *fiber.Ctx) error {
	request := &model.ListAllTransactionsRequest{
		Status:   ctx.Query("status"),
		Type:     ctx.Query("type"),
		Page:     ctx.QueryInt("page", 1),
		PageSize: ctx.QueryInt("pageSize", 20),
	}
	result := c.UseCase.ListAllTransactions(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "All Transactions", fiber.StatusOK, ctx)
}

func (c *AdminController) ResolvePending(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.ResolvePendingRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AdminController.ResolvePending", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.AdminID = auth.UserID
	request.TransactionID = ctx.Params("id")

	result := c.UseCase.ResolvePending(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Transaction Resolved", fiber.StatusOK, ctx)
}

func (c *AdminController) CreateProduct(ctx *fiber.Ctx) error {
	request := new(model.UpsertProductRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AdminController.CreateProduct", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.UpsertProduct(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Product Saved", fiber.StatusCreated, ctx)
}

func (c *AdminController) UpdateProduct(ctx *fiber.Ctx) error {
	request := new(model.UpsertProductRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AdminController.UpdateProduct", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.ProductID = ctx.Params("id")

	result := c.UseCase.UpsertProduct(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Product Saved", fiber.StatusOK, ctx)
}
