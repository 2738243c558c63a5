package usecase

import (
	"context"
	"fmt"

	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/model/converter"
	httpError "wallet-service/src/pkg/http-error"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// StoreUseCase sells physical products against the wallet. Unlike service
// purchases the whole flow is internal, so the debit runs first and every
// later failure compensates: stock back, then a refund credit.
type StoreUseCase struct {
	Log          log.Log
	Validate     *validator.Validate
	Profiles     ProfileStore
	Transactions TransactionStore
	Products     ProductStore
	Orders       OrderStore
	Producer     EventPublisher
}

func NewStoreUseCase(
	logger log.Log,
	validate *validator.Validate,
	profiles ProfileStore,
	transactions TransactionStore,
	products ProductStore,
	orders OrderStore,
	producer EventPublisher,
) *StoreUseCase {
	return &StoreUseCase{
		Log:          logger,
		Validate:     validate,
		Profiles:     profiles,
		Transactions: transactions,
		Products:     products,
		Orders:       orders,
		Producer:     producer,
	}
}

func (c *StoreUseCase) ListProducts(ctx context.Context, request *model.ListProductsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
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

	products, err := c.Products.List(ctx, page, pageSize)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to fetch products"
		result.Error = errObj
		c.Log.Error("store-usecase", err.Error(), "ListProducts", "")
		return result
	}

	responses := make([]model.ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, converter.ProductToResponse(&products[i]))
	}
	result.Data = responses
	return result
}

func (c *StoreUseCase) PurchaseProduct(ctx context.Context, request *model.PurchaseProductRequest) utils.Result {
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
	if errObj := verifyPin(profile, request.Pin); errObj != nil {
		result.Error = *errObj
		return result
	}

	product, err := c.Products.FindByID(ctx, request.ProductID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = "product not found"
		result.Error = errObj
		return result
	}

	amount := product.Price * float64(request.Quantity)
	if amount > profile.WalletBalance {
		errObj := httpError.NewUnprocessableEntity()
		errObj.Message = "insufficient wallet balance, please fund your wallet and try again"
		result.Error = errObj
		return result
	}

	reserved, err := c.Products.DecrementStock(ctx, request.ProductID, request.Quantity)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to reserve stock"
		result.Error = errObj
		c.Log.Error("store-usecase", err.Error(), "PurchaseProduct", request.ProductID)
		return result
	}
	if !reserved {
		errObj := httpError.NewUnprocessableEntity()
		errObj.Message = "insufficient stock for this product"
		result.Error = errObj
		return result
	}

	debited, err := c.Profiles.DebitBalance(ctx, request.UserID, amount)
	if err != nil || !debited {
		c.restock(ctx, request.ProductID, request.Quantity)
		errObj := httpError.NewUnprocessableEntity()
		errObj.Message = "insufficient wallet balance, please fund your wallet and try again"
		if err != nil {
			errObj = httpError.NewInternalServerError()
			errObj.Message = "unable to complete purchase"
			c.Log.Error("store-usecase", err.Error(), "PurchaseProduct", request.UserID)
		}
		result.Error = errObj
		return result
	}

	reference := utils.NewReference("ORD")
	tx := &entity.Transaction{
		ID:        uuid.NewString(),
		UserID:    request.UserID,
		Type:      entity.TxTypeProductPurchase,
		Amount:    amount,
		Status:    entity.TxStatusSuccess,
		Reference: reference,
		Details: model.MarshalDetails(model.ProductPurchaseDetails{
			ProductID: product.ID,
			Quantity:  request.Quantity,
			UnitPrice: product.Price,
		}),
	}
	if err := c.Transactions.Insert(ctx, tx); err != nil {
		c.restock(ctx, request.ProductID, request.Quantity)
		if creditErr := c.Profiles.CreditBalance(ctx, request.UserID, amount); creditErr != nil {
			c.Log.Error("store-usecase",
				fmt.Sprintf("CRITICAL: refund after failed record also failed: %v", creditErr),
				"PurchaseProduct", request.UserID)
		}
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to record purchase"
		result.Error = errObj
		c.Log.Error("store-usecase", err.Error(), "PurchaseProduct", reference)
		return result
	}

	order := &entity.Order{
		ID:        uuid.NewString(),
		UserID:    request.UserID,
		ProductID: product.ID,
		Quantity:  request.Quantity,
		Amount:    amount,
		Status:    entity.TxStatusSuccess,
		Reference: reference,
	}
	if err := c.Orders.Insert(ctx, order); err != nil {
		// The transaction row already carries the full purchase record.
		c.Log.Error("store-usecase", fmt.Sprintf("failed to record order: %v", err), "PurchaseProduct", reference)
	}

	if err := c.Producer.SendResolved(converter.TransactionToEvent(tx)); err != nil {
		c.Log.Error("store-usecase", fmt.Sprintf("failed to publish transaction event: %v", err), "PurchaseProduct", reference)
	}

	result.Data = converter.OrderToResponse(order)
	return result
}

func (c *StoreUseCase) ListOrders(ctx context.Context, userID string) utils.Result {
	var result utils.Result

	orders, err := c.Orders.ListByUser(ctx, userID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to fetch orders"
		result.Error = errObj
		c.Log.Error("store-usecase", err.Error(), "ListOrders", userID)
		return result
	}

	responses := make([]model.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, *converter.OrderToResponse(&orders[i]))
	}
	result.Data = responses
	return result
}

func (c *StoreUseCase) restock(ctx context.Context, productID string, quantity int) {
	if err := c.Products.IncrementStock(ctx, productID, quantity); err != nil {
		c.Log.Error("store-usecase", fmt.Sprintf("failed to restore stock: %v", err), "PurchaseProduct", productID)
	}
}
