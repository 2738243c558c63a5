package usecase

import (
	"context"
	"fmt"

	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/model/converter"
	"wallet-service/src/internal/repository"
	httpError "wallet-service/src/pkg/http-error"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type AdminUseCase struct {
	Log          log.Log
	Validate     *validator.Validate
	Profiles     ProfileStore
	Transactions TransactionStore
	Settings     SettingsStore
	Products     ProductStore
	Snapshot     *SettingsProvider
	Producer     EventPublisher
}

func NewAdminUseCase(
	logger log.Log,
	validate *validator.Validate,
	profiles ProfileStore,
	transactions TransactionStore,
	settings SettingsStore,
	products ProductStore,
	snapshot *SettingsProvider,
	producer EventPublisher,
) *AdminUseCase {
	return &AdminUseCase{
		Log:          logger,
		Validate:     validate,
		Profiles:     profiles,
		Transactions: transactions,
		Settings:     settings,
		Products:     products,
		Snapshot:     snapshot,
		Producer:     producer,
	}
}

func (c *AdminUseCase) ListSettings(ctx context.Context) utils.Result {
	var result utils.Result

	settings, err := c.Settings.All(ctx)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to fetch settings"
		result.Error = errObj
		c.Log.Error("admin-usecase", err.Error(), "ListSettings", "")
		return result
	}

	result.Data = settings
	return result
}

// UpsertSetting writes one configuration row and drops the cached snapshot so
// the next operation reads the new value.
func (c *AdminUseCase) UpsertSetting(ctx context.Context, request *model.UpsertSettingRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	setting := entity.Setting{
		Key:         request.Key,
		Value:       request.Value,
		Description: request.Description,
	}
	if err := c.Settings.Upsert(ctx, setting); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to save setting"
		result.Error = errObj
		c.Log.Error("admin-usecase", err.Error(), "UpsertSetting", request.Key)
		return result
	}

	c.Snapshot.Invalidate(ctx)

	result.Data = setting
	return result
}

func (c *AdminUseCase) ListAllTransactions(ctx context.Context, request *model.ListAllTransactionsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	transactions, total, err := c.Transactions.List(ctx, repository.TransactionFilter{
		Status:   request.Status,
		Type:     request.Type,
		Page:     request.Page,
		PageSize: request.PageSize,
	})
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to fetch transactions"
		result.Error = errObj
		c.Log.Error("admin-usecase", err.Error(), "ListAllTransactions", "")
		return result
	}

	page := request.Page
	if page < 1 {
		page = 1
	}
	pageSize := request.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	result.Data = model.TransactionListResponse{
		Transactions: converter.TransactionsToResponse(transactions),
		Page:         page,
		PageSize:     pageSize,
		Total:        total,
	}
	return result
}

// ResolvePending settles a transaction stuck in pending after the admin has
// confirmed the real outcome with the provider. Success settles the deferred
// debit now; failed simply closes the record, since no money ever moved for
// a pending purchase.
func (c *AdminUseCase) ResolvePending(ctx context.Context, request *model.ResolvePendingRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	tx, err := c.Transactions.FindByID(ctx, request.TransactionID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = "transaction not found"
		result.Error = errObj
		return result
	}
	if tx.Status != entity.TxStatusPending {
		errObj := httpError.NewConflict()
		errObj.Message = fmt.Sprintf("transaction is already %s", tx.Status)
		result.Error = errObj
		return result
	}

	updated, err := c.Transactions.UpdateStatus(ctx, tx.ID, entity.TxStatusPending, request.Outcome)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to resolve transaction"
		result.Error = errObj
		c.Log.Error("admin-usecase", err.Error(), "ResolvePending", tx.ID)
		return result
	}
	if !updated {
		// Another admin resolved it between the read and the write.
		errObj := httpError.NewConflict()
		errObj.Message = "transaction was resolved concurrently"
		result.Error = errObj
		return result
	}

	if request.Outcome == entity.TxStatusSuccess {
		if entity.IsCreditType(tx.Type) {
			if err := c.Profiles.CreditBalance(ctx, tx.UserID, tx.Amount); err != nil {
				c.Log.Error("admin-usecase",
					fmt.Sprintf("settlement credit did not land for %s: %v, needs reconciliation", tx.Reference, err),
					"ResolvePending", tx.UserID)
			}
		} else {
			debited, err := c.Profiles.DebitBalance(ctx, tx.UserID, tx.Amount)
			if err != nil || !debited {
				c.Log.Error("admin-usecase",
					fmt.Sprintf("settlement debit did not land for %s (err=%v, debited=%v), needs reconciliation", tx.Reference, err, debited),
					"ResolvePending", tx.UserID)
			}
		}
	}

	tx.Status = request.Outcome
	if err := c.Producer.SendResolved(converter.TransactionToEvent(tx)); err != nil {
		c.Log.Error("admin-usecase", fmt.Sprintf("failed to publish transaction event: %v", err), "ResolvePending", tx.Reference)
	}

	c.Log.Info("admin-usecase",
		fmt.Sprintf("transaction %s resolved to %s by %s", tx.Reference, request.Outcome, request.AdminID),
		"ResolvePending", tx.ID)

	result.Data = converter.TransactionToResponse(tx)
	return result
}

func (c *AdminUseCase) UpsertProduct(ctx context.Context, request *model.UpsertProductRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	product := &entity.Product{
		ID:    request.ProductID,
		Name:  request.Name,
		Price: request.Price,
		Stock: request.Stock,
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if request.Description != "" {
		product.Description.String = request.Description
		product.Description.Valid = true
	}
	if request.ImageURL != "" {
		product.ImageURL.String = request.ImageURL
		product.ImageURL.Valid = true
	}

	if err := c.Products.Upsert(ctx, product); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to save product"
		result.Error = errObj
		c.Log.Error("admin-usecase", err.Error(), "UpsertProduct", product.ID)
		return result
	}

	result.Data = converter.ProductToResponse(product)
	return result
}
