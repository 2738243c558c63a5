package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/usecase"
	httpError "wallet-service/src/pkg/http-error"
	"wallet-service/src/pkg/log"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeFixture struct {
	useCase  *usecase.StoreUseCase
	profiles *fakeProfileStore
	txs      *fakeTransactionStore
	products *fakeProductStore
	orders   *fakeOrderStore
	events   *fakePublisher
}

func newStoreFixture(profile *entity.Profile, products ...*entity.Product) *storeFixture {
	f := &storeFixture{
		profiles: newFakeProfileStore(profile),
		txs:      newFakeTransactionStore(),
		products: newFakeProductStore(products...),
		orders:   &fakeOrderStore{},
		events:   &fakePublisher{},
	}
	f.useCase = usecase.NewStoreUseCase(
		log.Log{},
		validator.New(),
		f.profiles,
		f.txs,
		f.products,
		f.orders,
		f.events,
	)
	return f
}

func TestPurchaseProduct(t *testing.T) {
	f := newStoreFixture(
		&entity.Profile{ID: "u1", WalletBalance: 5000},
		&entity.Product{ID: "p1", Name: "Power Bank", Price: 1500, Stock: 10},
	)

	result := f.useCase.PurchaseProduct(context.Background(), &model.PurchaseProductRequest{
		UserID:    "u1",
		ProductID: "p1",
		Quantity:  2,
	})
	require.NoError(t, result.Error)

	order := result.Data.(*model.OrderResponse)
	assert.Equal(t, float64(3000), order.Amount)
	assert.Equal(t, entity.TxStatusSuccess, order.Status)

	assert.Equal(t, float64(2000), f.profiles.profiles["u1"].WalletBalance)
	assert.Equal(t, 8, f.products.products["p1"].Stock)
	require.Len(t, f.txs.inserted, 1)
	assert.Equal(t, entity.TxTypeProductPurchase, f.txs.inserted[0].Type)
	require.Len(t, f.orders.orders, 1)
	require.Len(t, f.events.resolved, 1)
}

func TestPurchaseProductInsufficientStock(t *testing.T) {
	f := newStoreFixture(
		&entity.Profile{ID: "u1", WalletBalance: 50000},
		&entity.Product{ID: "p1", Name: "Power Bank", Price: 1500, Stock: 1},
	)

	result := f.useCase.PurchaseProduct(context.Background(), &model.PurchaseProductRequest{
		UserID:    "u1",
		ProductID: "p1",
		Quantity:  3,
	})
	require.Error(t, result.Error)
	assert.Equal(t, http.StatusUnprocessableEntity, result.Error.(httpError.CommonError).Code)
	assert.Equal(t, 1, f.products.products["p1"].Stock)
	assert.Equal(t, float64(50000), f.profiles.profiles["u1"].WalletBalance)
}

func TestPurchaseProductInsufficientFunds(t *testing.T) {
	f := newStoreFixture(
		&entity.Profile{ID: "u1", WalletBalance: 1000},
		&entity.Product{ID: "p1", Name: "Power Bank", Price: 1500, Stock: 5},
	)

	result := f.useCase.PurchaseProduct(context.Background(), &model.PurchaseProductRequest{
		UserID:    "u1",
		ProductID: "p1",
		Quantity:  1,
	})
	require.Error(t, result.Error)
	assert.Equal(t, http.StatusUnprocessableEntity, result.Error.(httpError.CommonError).Code)
	assert.Equal(t, float64(1000), f.profiles.profiles["u1"].WalletBalance)
	assert.Empty(t, f.txs.inserted)
	assert.Empty(t, f.orders.orders)
}

func TestPurchaseProductDebitFailureRestoresStock(t *testing.T) {
	f := newStoreFixture(
		&entity.Profile{ID: "u1", WalletBalance: 5000},
		&entity.Product{ID: "p1", Name: "Power Bank", Price: 1500, Stock: 5},
	)
	f.profiles.debitErr = assert.AnError

	result := f.useCase.PurchaseProduct(context.Background(), &model.PurchaseProductRequest{
		UserID:    "u1",
		ProductID: "p1",
		Quantity:  1,
	})
	require.Error(t, result.Error)
	assert.Equal(t, http.StatusInternalServerError, result.Error.(httpError.CommonError).Code)
	assert.Equal(t, 5, f.products.products["p1"].Stock, "reserved stock must be released")
	assert.Empty(t, f.txs.inserted)
}

func TestPurchaseProductRecordFailureRefunds(t *testing.T) {
	f := newStoreFixture(
		&entity.Profile{ID: "u1", WalletBalance: 5000},
		&entity.Product{ID: "p1", Name: "Power Bank", Price: 1500, Stock: 5},
	)
	f.txs.insertErr = assert.AnError

	result := f.useCase.PurchaseProduct(context.Background(), &model.PurchaseProductRequest{
		UserID:    "u1",
		ProductID: "p1",
		Quantity:  1,
	})
	require.Error(t, result.Error)
	assert.Equal(t, float64(5000), f.profiles.profiles["u1"].WalletBalance, "failed record must refund the debit")
	assert.Equal(t, 5, f.products.products["p1"].Stock, "failed record must restore stock")
}

func TestListOrders(t *testing.T) {
	f := newStoreFixture(
		&entity.Profile{ID: "u1", WalletBalance: 5000},
		&entity.Product{ID: "p1", Name: "Power Bank", Price: 500, Stock: 10},
	)

	require.NoError(t, f.useCase.PurchaseProduct(context.Background(), &model.PurchaseProductRequest{
		UserID:    "u1",
		ProductID: "p1",
		Quantity:  1,
	}).Error)

	result := f.useCase.ListOrders(context.Background(), "u1")
	require.NoError(t, result.Error)
	assert.Len(t, result.Data.([]model.OrderResponse), 1)
}
