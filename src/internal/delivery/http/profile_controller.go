package http

import (
	"wallet-service/src/internal/delivery/http/middleware"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/usecase"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type ProfileController struct {
	Log     log.Log
	UseCase *usecase.ProfileUseCase
}

func NewProfileController(useCase *usecase.ProfileUseCase, logger log.Log) *ProfileController {
	return &ProfileController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *ProfileController) GetProfile(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.Get(ctx.Context(), auth.UserID)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Profile", fiber.StatusOK, ctx)
}

func (c *ProfileController) SetPin(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.SetPinRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("ProfileController.SetPin", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.UserID

	result := c.UseCase.SetPin(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Pin Set", fiber.StatusOK, ctx)
}

func (c *ProfileController) VerifyPin(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.VerifyPinRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("ProfileController.VerifyPin", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.UserID

	result := c.UseCase.VerifyPin(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Pin Verified", fiber.StatusOK, ctx)
}
