package http

import (
	"wallet-service/src/internal/delivery/http/middleware"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/usecase"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type BeneficiaryController struct {
	Log     log.Log
	UseCase *usecase.BeneficiaryUseCase
}

func NewBeneficiaryController(useCase *usecase.BeneficiaryUseCase, logger log.Log) *BeneficiaryController {
	return &BeneficiaryController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *BeneficiaryController) Save(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.SaveBeneficiaryRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("BeneficiaryController.Save", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.UserID

	result := c.UseCase.Save(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Beneficiary Saved", fiber.StatusCreated, ctx)
}

func (c *BeneficiaryController) List(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.ListBeneficiariesRequest{
		UserID: auth.UserID,
		Type:   ctx.Query("type"),
	}
	result := c.UseCase.List(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Beneficiaries", fiber.StatusOK, ctx)
}

func (c *BeneficiaryController) Delete(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.DeleteBeneficiaryRequest{
		UserID:        auth.UserID,
		BeneficiaryID: ctx.Params("id"),
	}
	result := c.UseCase.Delete(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Beneficiary Deleted", fiber.StatusOK, ctx)
}
