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

type adminFixture struct {
	useCase  *usecase.AdminUseCase
	profiles *fakeProfileStore
	txs      *fakeTransactionStore
	settings *fakeSettingsStore
	products *fakeProductStore
	events   *fakePublisher
}

func newAdminFixture(profiles ...*entity.Profile) *adminFixture {
	f := &adminFixture{
		profiles: newFakeProfileStore(profiles...),
		txs:      newFakeTransactionStore(),
		settings: &fakeSettingsStore{},
		products: newFakeProductStore(),
		events:   &fakePublisher{},
	}
	f.useCase = usecase.NewAdminUseCase(
		log.Log{},
		validator.New(),
		f.profiles,
		f.txs,
		f.settings,
		f.products,
		usecase.NewSettingsProvider(log.Log{}, f.settings, nil),
		f.events,
	)
	return f
}

func pendingTransaction(f *adminFixture, userID string, amount float64) *entity.Transaction {
	tx := &entity.Transaction{
		ID:        "tx-1",
		UserID:    userID,
		Type:      entity.TxTypeAirtime,
		Amount:    amount,
		Status:    entity.TxStatusPending,
		Reference: "AIR-20260901-abc",
	}
	_ = f.txs.Insert(context.Background(), tx)
	return tx
}

func TestResolvePendingToSuccessSettlesDebit(t *testing.T) {
	f := newAdminFixture(&entity.Profile{ID: "u1", WalletBalance: 1000})
	tx := pendingTransaction(f, "u1", 300)

	result := f.useCase.ResolvePending(context.Background(), &model.ResolvePendingRequest{
		AdminID:       "admin-1",
		TransactionID: tx.ID,
		Outcome:       entity.TxStatusSuccess,
	})
	require.NoError(t, result.Error)

	assert.Equal(t, entity.TxStatusSuccess, tx.Status)
	assert.Equal(t, float64(700), f.profiles.profiles["u1"].WalletBalance)
	require.Len(t, f.events.resolved, 1)
	assert.Equal(t, entity.TxStatusSuccess, f.events.resolved[0].Status)
}

func TestResolvePendingToFailedLeavesBalance(t *testing.T) {
	f := newAdminFixture(&entity.Profile{ID: "u1", WalletBalance: 1000})
	tx := pendingTransaction(f, "u1", 300)

	result := f.useCase.ResolvePending(context.Background(), &model.ResolvePendingRequest{
		AdminID:       "admin-1",
		TransactionID: tx.ID,
		Outcome:       entity.TxStatusFailed,
	})
	require.NoError(t, result.Error)

	assert.Equal(t, entity.TxStatusFailed, tx.Status)
	assert.Equal(t, float64(1000), f.profiles.profiles["u1"].WalletBalance, "a failed purchase never moved money")
}

func TestResolvePendingCreditTypeCredits(t *testing.T) {
	f := newAdminFixture(&entity.Profile{ID: "u1", WalletBalance: 1000})
	tx := &entity.Transaction{
		ID:        "tx-2",
		UserID:    "u1",
		Type:      entity.TxTypeRefund,
		Amount:    300,
		Status:    entity.TxStatusPending,
		Reference: "RFD-20260901-abc",
	}
	require.NoError(t, f.txs.Insert(context.Background(), tx))

	result := f.useCase.ResolvePending(context.Background(), &model.ResolvePendingRequest{
		AdminID:       "admin-1",
		TransactionID: tx.ID,
		Outcome:       entity.TxStatusSuccess,
	})
	require.NoError(t, result.Error)
	assert.Equal(t, float64(1300), f.profiles.profiles["u1"].WalletBalance)
}

func TestResolvePendingRejectsSettledTransaction(t *testing.T) {
	f := newAdminFixture(&entity.Profile{ID: "u1", WalletBalance: 1000})
	tx := pendingTransaction(f, "u1", 300)
	tx.Status = entity.TxStatusSuccess

	result := f.useCase.ResolvePending(context.Background(), &model.ResolvePendingRequest{
		AdminID:       "admin-1",
		TransactionID: tx.ID,
		Outcome:       entity.TxStatusFailed,
	})
	require.Error(t, result.Error)
	assert.Equal(t, http.StatusConflict, result.Error.(httpError.CommonError).Code)
}

func TestUpsertSettingInvalidatesSnapshot(t *testing.T) {
	f := newAdminFixture()

	result := f.useCase.UpsertSetting(context.Background(), &model.UpsertSettingRequest{
		Key:   "service_airtime_status",
		Value: entity.ServiceStatusDisabled,
	})
	require.NoError(t, result.Error)

	require.Len(t, f.settings.upserts, 1)
	assert.Equal(t, "service_airtime_status", f.settings.upserts[0].Key)
}

func TestUpsertProductCreatesAndUpdates(t *testing.T) {
	f := newAdminFixture()

	created := f.useCase.UpsertProduct(context.Background(), &model.UpsertProductRequest{
		Name:  "Power Bank",
		Price: 1500,
		Stock: 10,
	})
	require.NoError(t, created.Error)
	response := created.Data.(model.ProductResponse)
	require.NotEmpty(t, response.ID)

	updated := f.useCase.UpsertProduct(context.Background(), &model.UpsertProductRequest{
		ProductID: response.ID,
		Name:      "Power Bank 20000mAh",
		Price:     1800,
		Stock:     8,
	})
	require.NoError(t, updated.Error)
	assert.Equal(t, "Power Bank 20000mAh", f.products.products[response.ID].Name)
}
