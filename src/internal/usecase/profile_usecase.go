package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"wallet-service/src/internal/model"
	"wallet-service/src/internal/model/converter"
	httpError "wallet-service/src/pkg/http-error"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const referralCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type ProfileUseCase struct {
	Log      log.Log
	Validate *validator.Validate
	Profiles ProfileStore
}

func NewProfileUseCase(logger log.Log, validate *validator.Validate, profiles ProfileStore) *ProfileUseCase {
	return &ProfileUseCase{
		Log:      logger,
		Validate: validate,
		Profiles: profiles,
	}
}

// Get returns the profile, backfilling a referral code for accounts created
// before codes were assigned at signup.
func (c *ProfileUseCase) Get(ctx context.Context, userID string) utils.Result {
	var result utils.Result

	profile, err := c.Profiles.FindByID(ctx, userID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = "profile not found"
		result.Error = errObj
		return result
	}

	if profile.ReferralCode == "" {
		code := generateReferralCode()
		if err := c.Profiles.SetReferralCode(ctx, userID, code); err != nil {
			c.Log.Error("profile-usecase", fmt.Sprintf("failed to backfill referral code: %v", err), "Get", userID)
		} else {
			profile.ReferralCode = code
		}
	}

	result.Data = converter.ProfileToResponse(profile)
	return result
}

func (c *ProfileUseCase) SetPin(ctx context.Context, request *model.SetPinRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Pin), bcrypt.DefaultCost)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to set transaction pin"
		result.Error = errObj
		c.Log.Error("profile-usecase", err.Error(), "SetPin", request.UserID)
		return result
	}

	if err := c.Profiles.SetPin(ctx, request.UserID, string(hash)); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to set transaction pin"
		result.Error = errObj
		c.Log.Error("profile-usecase", err.Error(), "SetPin", request.UserID)
		return result
	}

	result.Data = map[string]bool{"hasPin": true}
	return result
}

func (c *ProfileUseCase) VerifyPin(ctx context.Context, request *model.VerifyPinRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	profile, err := c.Profiles.FindByID(ctx, request.UserID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = "profile not found"
		result.Error = errObj
		return result
	}
	if !profile.HasPin {
		errObj := httpError.NewUnprocessableEntity()
		errObj.Message = "no transaction pin set for this account"
		result.Error = errObj
		return result
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PinHash.String), []byte(request.Pin)); err != nil {
		errObj := httpError.NewUnauthorized()
		errObj.Message = "incorrect transaction pin"
		result.Error = errObj
		return result
	}

	result.Data = map[string]bool{"valid": true}
	return result
}

func generateReferralCode() string {
	code := make([]byte, 8)
	max := big.NewInt(int64(len(referralCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			code[i] = referralCodeAlphabet[0]
			continue
		}
		code[i] = referralCodeAlphabet[n.Int64()]
	}
	return string(code)
}
