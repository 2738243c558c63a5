package usecase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/gateway/vtu"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/usecase"
	httpError "wallet-service/src/pkg/http-error"
	"wallet-service/src/pkg/log"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type walletFixture struct {
	useCase  *usecase.WalletUseCase
	profiles *fakeProfileStore
	txs      *fakeTransactionStore
	bens     *fakeBeneficiaryStore
	settings *fakeSettingsStore
	gateway  *fakeGateway
	events   *fakePublisher
	tasks    *fakeEnqueuer
}

func newWalletFixture(profiles ...*entity.Profile) *walletFixture {
	f := &walletFixture{
		profiles: newFakeProfileStore(profiles...),
		txs:      newFakeTransactionStore(),
		bens:     &fakeBeneficiaryStore{},
		settings: &fakeSettingsStore{},
		gateway: &fakeGateway{
			result: &vtu.SubmitResult{Success: true, ProviderReference: "PROV-001"},
		},
		events: &fakePublisher{},
		tasks:  &fakeEnqueuer{},
	}
	f.useCase = usecase.NewWalletUseCase(
		log.Log{},
		validator.New(),
		f.profiles,
		f.txs,
		f.bens,
		usecase.NewSettingsProvider(log.Log{}, f.settings, nil),
		f.gateway,
		f.events,
		f.tasks,
	)
	return f
}

func airtimeRequest(userID string, amount float64) *model.PurchaseServiceRequest {
	return &model.PurchaseServiceRequest{
		UserID: userID,
		Type:   entity.TxTypeAirtime,
		Amount: amount,
		Payload: model.ServicePayload{
			Network:     "MTN",
			PhoneNumber: "08030000000",
		},
	}
}

func TestPurchaseServiceInsufficientFunds(t *testing.T) {
	f := newWalletFixture(&entity.Profile{ID: "u1", WalletBalance: 1000})

	result := f.useCase.PurchaseService(context.Background(), airtimeRequest("u1", 1500))

	require.Error(t, result.Error)
	assert.Equal(t, http.StatusUnprocessableEntity, result.Error.(httpError.CommonError).Code)
	assert.Empty(t, f.gateway.requests, "nothing may be dispatched without funds")
	assert.Empty(t, f.txs.inserted)
	assert.Equal(t, float64(1000), f.profiles.profiles["u1"].WalletBalance)
}

func TestPurchaseServiceSuccessDebitsAfterDispatch(t *testing.T) {
	f := newWalletFixture(&entity.Profile{ID: "u1", WalletBalance: 1000})

	result := f.useCase.PurchaseService(context.Background(), airtimeRequest("u1", 500))

	require.NoError(t, result.Error)
	response := result.Data.(model.PurchaseServiceResponse)
	assert.Equal(t, entity.TxStatusSuccess, response.Status)
	assert.Equal(t, "PROV-001", response.ProviderReference)
	assert.Equal(t, float64(500), response.NewBalance)

	require.Len(t, f.txs.inserted, 1)
	tx := f.txs.inserted[0]
	assert.Equal(t, entity.TxStatusSuccess, tx.Status)
	assert.Equal(t, float64(500), tx.Amount)

	var details map[string]interface{}
	require.NoError(t, json.Unmarshal(tx.Details, &details))
	assert.Equal(t, "PROV-001", details["provider_reference"])

	assert.Equal(t, float64(500), f.profiles.profiles["u1"].WalletBalance)
	require.Len(t, f.events.resolved, 1)
	assert.Equal(t, tx.ID, f.events.resolved[0].ID)
}

func TestPurchaseServiceTimeoutStaysPending(t *testing.T) {
	f := newWalletFixture(&entity.Profile{ID: "u1", WalletBalance: 1000})
	f.gateway.err = &vtu.Error{Kind: vtu.KindTimeout, Message: "context deadline exceeded"}

	result := f.useCase.PurchaseService(context.Background(), airtimeRequest("u1", 500))

	require.Error(t, result.Error)
	assert.Equal(t, http.StatusGatewayTimeout, result.Error.(httpError.CommonError).Code)

	require.Len(t, f.txs.inserted, 1)
	assert.Equal(t, entity.TxStatusPending, f.txs.inserted[0].Status)
	assert.Equal(t, float64(1000), f.profiles.profiles["u1"].WalletBalance, "ambiguous outcome must not move money")
	assert.Empty(t, f.events.resolved, "pending transactions publish on resolution only")
}

func TestPurchaseServiceUpstreamRejected(t *testing.T) {
	f := newWalletFixture(&entity.Profile{ID: "u1", WalletBalance: 1000})
	f.gateway.err = &vtu.Error{Kind: vtu.KindUpstreamRejected, Message: "invalid phone number"}

	result := f.useCase.PurchaseService(context.Background(), airtimeRequest("u1", 500))

	require.Error(t, result.Error)
	commonErr := result.Error.(httpError.CommonError)
	assert.Equal(t, http.StatusUnprocessableEntity, commonErr.Code)
	assert.Contains(t, commonErr.Message, "invalid phone number")

	require.Len(t, f.txs.inserted, 1)
	assert.Equal(t, entity.TxStatusFailed, f.txs.inserted[0].Status)
	assert.Equal(t, float64(1000), f.profiles.profiles["u1"].WalletBalance)
	require.Len(t, f.events.resolved, 1)
}

func TestPurchaseServiceNetworkErrorHidesProviderDetail(t *testing.T) {
	f := newWalletFixture(&entity.Profile{ID: "u1", WalletBalance: 1000})
	f.gateway.err = &vtu.Error{Kind: vtu.KindNetwork, Message: "dial tcp: connection refused"}

	result := f.useCase.PurchaseService(context.Background(), airtimeRequest("u1", 500))

	require.Error(t, result.Error)
	commonErr := result.Error.(httpError.CommonError)
	assert.Equal(t, http.StatusServiceUnavailable, commonErr.Code)
	assert.NotContains(t, commonErr.Message, "dial tcp")
	assert.Equal(t, float64(1000), f.profiles.profiles["u1"].WalletBalance)
}

func TestPurchaseServiceDisabledService(t *testing.T) {
	f := newWalletFixture(&entity.Profile{ID: "u1", WalletBalance: 1000})
	f.settings.set("service_airtime_status", entity.ServiceStatusDisabled)

	result := f.useCase.PurchaseService(context.Background(), airtimeRequest("u1", 500))

	require.Error(t, result.Error)
	assert.Equal(t, http.StatusServiceUnavailable, result.Error.(httpError.CommonError).Code)
	assert.Empty(t, f.gateway.requests)
}

func TestPurchaseServiceRequiresPinWhenSet(t *testing.T) {
	profile := &entity.Profile{ID: "u1", WalletBalance: 1000}
	f := newWalletFixture(profile)
	setPinUseCase := usecase.NewProfileUseCase(log.Log{}, validator.New(), f.profiles)
	require.NoError(t, setPinUseCase.SetPin(context.Background(), &model.SetPinRequest{UserID: "u1", Pin: "1234"}).Error)

	request := airtimeRequest("u1", 500)
	result := f.useCase.PurchaseService(context.Background(), request)
	require.Error(t, result.Error)
	assert.Equal(t, http.StatusUnauthorized, result.Error.(httpError.CommonError).Code)

	request.Pin = "9999"
	result = f.useCase.PurchaseService(context.Background(), request)
	require.Error(t, result.Error)
	assert.Equal(t, http.StatusUnauthorized, result.Error.(httpError.CommonError).Code)

	request.Pin = "1234"
	result = f.useCase.PurchaseService(context.Background(), request)
	require.NoError(t, result.Error)
}

func TestPurchaseServiceSavesBeneficiary(t *testing.T) {
	f := newWalletFixture(&entity.Profile{ID: "u1", WalletBalance: 1000})

	request := airtimeRequest("u1", 500)
	request.SaveBeneficiary = true
	request.BeneficiaryName = "Mum"

	result := f.useCase.PurchaseService(context.Background(), request)
	require.NoError(t, result.Error)

	require.Len(t, f.bens.saved, 1)
	assert.Equal(t, "Mum", f.bens.saved[0].Name)
	assert.Equal(t, "08030000000", f.bens.saved[0].PhoneNumber)
}

func TestFundWalletCreditsNetOfCharge(t *testing.T) {
	f := newWalletFixture(&entity.Profile{ID: "u1", WalletBalance: 100})
	f.settings.set("funding_charge_enabled", "true")
	f.settings.set("funding_charge_type", "percentage")
	f.settings.set("funding_charge_value", "2")

	result := f.useCase.FundWallet(context.Background(), &model.FundWalletRequest{
		UserID:            "u1",
		Amount:            1000,
		Provider:          "paystack",
		ProviderReference: "PSK-123",
	})

	require.NoError(t, result.Error)
	response := result.Data.(model.FundWalletResponse)
	assert.Equal(t, float64(1000), response.Gross)
	assert.Equal(t, float64(20), response.Charge)
	assert.Equal(t, float64(980), response.Credited)
	assert.Equal(t, float64(1080), response.NewBalance)

	require.Len(t, f.txs.inserted, 1)
	assert.Equal(t, "PSK-123", f.txs.inserted[0].Reference)
	assert.Equal(t, float64(980), f.txs.inserted[0].Amount)
	assert.Equal(t, float64(1080), f.profiles.profiles["u1"].WalletBalance)
}

func TestFundWalletDuplicateReferenceIsNoOp(t *testing.T) {
	f := newWalletFixture(&entity.Profile{ID: "u1", WalletBalance: 100})

	request := &model.FundWalletRequest{
		UserID:            "u1",
		Amount:            1000,
		Provider:          "paystack",
		ProviderReference: "PSK-123",
	}

	first := f.useCase.FundWallet(context.Background(), request)
	require.NoError(t, first.Error)

	second := f.useCase.FundWallet(context.Background(), request)
	require.NoError(t, second.Error)
	assert.True(t, second.Data.(model.FundWalletResponse).Duplicate)

	assert.Len(t, f.txs.inserted, 1, "replayed webhook must not create a second record")
	assert.Equal(t, float64(1100), f.profiles.profiles["u1"].WalletBalance, "replayed webhook must not credit twice")
}

func TestFundWalletInsertRaceTreatedAsDuplicate(t *testing.T) {
	f := newWalletFixture(&entity.Profile{ID: "u1", WalletBalance: 100})

	request := &model.FundWalletRequest{
		UserID:            "u1",
		Amount:            1000,
		Provider:          "paystack",
		ProviderReference: "PSK-123",
	}

	first := f.useCase.FundWallet(context.Background(), request)
	require.NoError(t, first.Error)

	// The replay slips past the existence check and the unique index on
	// reference is the last line of defense.
	f.txs.staleExists = true
	second := f.useCase.FundWallet(context.Background(), request)
	require.NoError(t, second.Error)
	assert.True(t, second.Data.(model.FundWalletResponse).Duplicate)

	assert.Len(t, f.txs.inserted, 1)
	assert.Equal(t, float64(1100), f.profiles.profiles["u1"].WalletBalance, "the losing insert must not credit")
}

func TestFundWalletNewBalanceReflectsConcurrentMovements(t *testing.T) {
	f := newWalletFixture(&entity.Profile{ID: "u1", WalletBalance: 100})
	f.profiles.creditHook = func() {
		f.profiles.profiles["u1"].WalletBalance += 50
	}

	result := f.useCase.FundWallet(context.Background(), &model.FundWalletRequest{
		UserID:            "u1",
		Amount:            1000,
		Provider:          "paystack",
		ProviderReference: "PSK-9",
	})
	require.NoError(t, result.Error)

	response := result.Data.(model.FundWalletResponse)
	assert.Equal(t, float64(1150), response.NewBalance, "reported balance comes from the post-credit read")
	assert.Equal(t, float64(1150), f.profiles.profiles["u1"].WalletBalance)
}

func TestFundWalletFirstFundingEnqueuesReferralEvaluation(t *testing.T) {
	profile := &entity.Profile{ID: "u1", WalletBalance: 0}
	profile.ReferredBy.String = "referrer-1"
	profile.ReferredBy.Valid = true
	f := newWalletFixture(profile)

	result := f.useCase.FundWallet(context.Background(), &model.FundWalletRequest{
		UserID:            "u1",
		Amount:            500,
		Provider:          "paystack",
		ProviderReference: "PSK-1",
	})
	require.NoError(t, result.Error)

	require.Len(t, f.tasks.tasks, 1)
	assert.Equal(t, usecase.TaskTypeEvaluateReferral, f.tasks.tasks[0].Type())

	var payload model.EvaluateReferralPayload
	require.NoError(t, json.Unmarshal(f.tasks.tasks[0].Payload(), &payload))
	assert.Equal(t, "referrer-1", payload.ReferrerID)

	// A second funding is no longer the first and must not re-enqueue.
	result = f.useCase.FundWallet(context.Background(), &model.FundWalletRequest{
		UserID:            "u1",
		Amount:            500,
		Provider:          "paystack",
		ProviderReference: "PSK-2",
	})
	require.NoError(t, result.Error)
	assert.Len(t, f.tasks.tasks, 1)
}

func TestFundingCharge(t *testing.T) {
	tests := []struct {
		name   string
		cfg    model.FundingChargeConfig
		amount float64
		want   float64
	}{
		{
			name:   "disabled",
			cfg:    model.FundingChargeConfig{Enabled: false, Type: model.ChargeTypeFixed, Value: 50},
			amount: 1000,
			want:   0,
		},
		{
			name:   "percentage",
			cfg:    model.FundingChargeConfig{Enabled: true, Type: model.ChargeTypePercentage, Value: 1.5},
			amount: 1000,
			want:   15,
		},
		{
			name:   "fixed",
			cfg:    model.FundingChargeConfig{Enabled: true, Type: model.ChargeTypeFixed, Value: 50},
			amount: 1000,
			want:   50,
		},
		{
			name:   "below minimum deposit",
			cfg:    model.FundingChargeConfig{Enabled: true, Type: model.ChargeTypeFixed, Value: 50, MinDeposit: 500},
			amount: 400,
			want:   0,
		},
		{
			name:   "above maximum deposit",
			cfg:    model.FundingChargeConfig{Enabled: true, Type: model.ChargeTypeFixed, Value: 50, MaxDeposit: 5000},
			amount: 10000,
			want:   0,
		},
		{
			name:   "charge swallowing the credit is dropped",
			cfg:    model.FundingChargeConfig{Enabled: true, Type: model.ChargeTypeFixed, Value: 100},
			amount: 100,
			want:   0,
		},
		{
			name:   "unknown charge type",
			cfg:    model.FundingChargeConfig{Enabled: true, Type: "mystery", Value: 50},
			amount: 1000,
			want:   0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, usecase.FundingCharge(tc.cfg, tc.amount))
		})
	}
}

func TestListTransactionsFilters(t *testing.T) {
	f := newWalletFixture(&entity.Profile{ID: "u1", WalletBalance: 1000})

	require.NoError(t, f.useCase.PurchaseService(context.Background(), airtimeRequest("u1", 100)).Error)
	require.NoError(t, f.useCase.PurchaseService(context.Background(), airtimeRequest("u1", 200)).Error)

	result := f.useCase.ListTransactions(context.Background(), &model.ListTransactionsRequest{
		UserID: "u1",
		Status: entity.TxStatusSuccess,
	})
	require.NoError(t, result.Error)

	response := result.Data.(model.TransactionListResponse)
	assert.Equal(t, 2, response.Total)
	assert.Len(t, response.Transactions, 2)
}
