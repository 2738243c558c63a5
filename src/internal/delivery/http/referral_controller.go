package http

import (
	"wallet-service/src/internal/delivery/http/middleware"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/usecase"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type ReferralController struct {
	Log     log.Log
	UseCase *usecase.ReferralUseCase
}

func NewReferralController(useCase *usecase.ReferralUseCase, logger log.Log) *ReferralController {
	return &ReferralController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *ReferralController) ApplyCode(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.ApplyReferralCodeRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("ReferralController.ApplyCode", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.UserID

	result := c.UseCase.ApplyReferralCode(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Referral Code Applied", fiber.StatusOK, ctx)
}

func (c *ReferralController) Status(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.Status(ctx.Context(), auth.UserID)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Referral Status", fiber.StatusOK, ctx)
}
