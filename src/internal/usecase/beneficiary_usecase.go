package usecase

import (
	"context"
	"fmt"
	"strings"

	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/model/converter"
	httpError "wallet-service/src/pkg/http-error"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type BeneficiaryUseCase struct {
	Log           log.Log
	Validate      *validator.Validate
	Beneficiaries BeneficiaryStore
}

func NewBeneficiaryUseCase(logger log.Log, validate *validator.Validate, beneficiaries BeneficiaryStore) *BeneficiaryUseCase {
	return &BeneficiaryUseCase{
		Log:           logger,
		Validate:      validate,
		Beneficiaries: beneficiaries,
	}
}

func (c *BeneficiaryUseCase) Save(ctx context.Context, request *model.SaveBeneficiaryRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	beneficiary := &entity.Beneficiary{
		ID:          uuid.NewString(),
		UserID:      request.UserID,
		Name:        request.Name,
		PhoneNumber: request.PhoneNumber,
		Network:     strings.ToUpper(request.Network),
		Type:        request.Type,
	}
	if err := c.Beneficiaries.Insert(ctx, beneficiary); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to save beneficiary"
		result.Error = errObj
		c.Log.Error("beneficiary-usecase", err.Error(), "Save", request.UserID)
		return result
	}

	result.Data = converter.BeneficiaryToResponse(beneficiary)
	return result
}

func (c *BeneficiaryUseCase) List(ctx context.Context, request *model.ListBeneficiariesRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	items, err := c.Beneficiaries.ListByUser(ctx, request.UserID, request.Type)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to fetch beneficiaries"
		result.Error = errObj
		c.Log.Error("beneficiary-usecase", err.Error(), "List", request.UserID)
		return result
	}

	result.Data = converter.BeneficiariesToResponse(items)
	return result
}

func (c *BeneficiaryUseCase) Delete(ctx context.Context, request *model.DeleteBeneficiaryRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	deleted, err := c.Beneficiaries.Delete(ctx, request.BeneficiaryID, request.UserID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to delete beneficiary"
		result.Error = errObj
		c.Log.Error("beneficiary-usecase", err.Error(), "Delete", request.BeneficiaryID)
		return result
	}
	if !deleted {
		errObj := httpError.NewNotFound()
		errObj.Message = "beneficiary not found"
		result.Error = errObj
		return result
	}

	result.Data = map[string]bool{"deleted": true}
	return result
}
