package http

import (
	"wallet-service/src/internal/delivery/http/middleware"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/usecase"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletController struct {
	Log     log.Log
	UseCase *usecase.WalletUseCase
}

func NewWalletController(useCase *usecase.WalletUseCase, logger log.Log) *WalletController {
	return &WalletController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *WalletController) GetBalance(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.GetBalance(ctx.Context(), auth.UserID)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Wallet Balance", fiber.StatusOK, ctx)
}

func (c *WalletController) PurchaseService(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.PurchaseServiceRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("WalletController.PurchaseService", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.UserID

	result := c.UseCase.PurchaseService(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Purchase Service", fiber.StatusOK, ctx)
}

func (c *WalletController) ListTransactions(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.ListTransactionsRequest{
		UserID:   auth.UserID,
		Status:   ctx.Query("status"),
		Type:     ctx.Query("type"),
		Page:     ctx.QueryInt("page", 1),
		PageSize: ctx.QueryInt("pageSize", 20),
	}
	result := c.UseCase.ListTransactions(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Transaction History", fiber.StatusOK, ctx)
}

// FundWallet is the payment-provider webhook. It is authenticated by the
// shared webhook key, not by a bearer token; replays answer 200 so the
// provider stops retrying.
func (c *WalletController) FundWallet(ctx *fiber.Ctx) error {
	request := new(model.FundWalletRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("WalletController.FundWallet", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.FundWallet(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Wallet Funded", fiber.StatusOK, ctx)
}
