package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/gateway/vtu"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/model/converter"
	"wallet-service/src/internal/repository"
	httpError "wallet-service/src/pkg/http-error"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"golang.org/x/crypto/bcrypt"
)

var referencePrefixes = map[string]string{
	entity.TxTypeAirtime:     "AIR",
	entity.TxTypeData:        "DAT",
	entity.TxTypeElectricity: "ELC",
	entity.TxTypeWaec:        "WAE",
}

// WalletUseCase is the wallet ledger core. It guarantees that a wallet debit
// only persists paired with a confirmed external success, and that every
// attempted money movement leaves a transaction record whatever the outcome.
type WalletUseCase struct {
	Log           log.Log
	Validate      *validator.Validate
	Profiles      ProfileStore
	Transactions  TransactionStore
	Beneficiaries BeneficiaryStore
	Settings      *SettingsProvider
	Gateway       ServiceGateway
	Producer      EventPublisher
	Tasks         TaskEnqueuer
}

func NewWalletUseCase(
	logger log.Log,
	validate *validator.Validate,
	profiles ProfileStore,
	transactions TransactionStore,
	beneficiaries BeneficiaryStore,
	settings *SettingsProvider,
	gateway ServiceGateway,
	producer EventPublisher,
	tasks TaskEnqueuer,
) *WalletUseCase {
	return &WalletUseCase{
		Log:           logger,
		Validate:      validate,
		Profiles:      profiles,
		Transactions:  transactions,
		Beneficiaries: beneficiaries,
		Settings:      settings,
		Gateway:       gateway,
		Producer:      producer,
		Tasks:         tasks,
	}
}

// PurchaseService debits the wallet for an external service purchase.
// Ordering is load-bearing: the balance is checked immediately before the
// dispatch, the transaction row is written the moment an outcome is known,
// and the debit lands only after confirmed external success. The external
// step is not reversible from here, so the debit can never precede it.
func (c *WalletUseCase) PurchaseService(ctx context.Context, request *model.PurchaseServiceRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("wallet-usecase", errObj.Message, "PurchaseService", utils.ConvertString(request))
		return result
	}
	if err := validatePayload(request.Type, request.Payload); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = err.Error()
		result.Error = errObj
		return result
	}

	snapshot, err := c.Settings.Snapshot(ctx)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to load service configuration"
		result.Error = errObj
		c.Log.Error("wallet-usecase", err.Error(), "PurchaseService", "settings snapshot")
		return result
	}
	switch snapshot.StatusFor(request.Type) {
	case entity.ServiceStatusDisabled:
		errObj := httpError.NewServiceUnavailable()
		errObj.Message = fmt.Sprintf("%s service is currently disabled", request.Type)
		result.Error = errObj
		return result
	case entity.ServiceStatusComingSoon:
		errObj := httpError.NewServiceUnavailable()
		errObj.Message = fmt.Sprintf("%s service is coming soon", request.Type)
		result.Error = errObj
		return result
	}

	profile, err := c.Profiles.FindByID(ctx, request.UserID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = "profile not found"
		result.Error = errObj
		c.Log.Error("wallet-usecase", err.Error(), "PurchaseService", request.UserID)
		return result
	}

	if errObj := verifyPin(profile, request.Pin); errObj != nil {
		result.Error = *errObj
		return result
	}

	// Balance precondition, checked right before the dispatch to narrow the
	// stale-balance window. The conditional debit below is the real guard.
	if request.Amount > profile.WalletBalance {
		errObj := httpError.NewUnprocessableEntity()
		errObj.Message = "insufficient wallet balance, please fund your wallet and try again"
		result.Error = errObj
		return result
	}

	reference := utils.NewReference(referencePrefixes[request.Type])
	details := model.DetailsFor(request.Type, request.Payload)

	submitResult, err := c.Gateway.Submit(ctx, &vtu.SubmitRequest{
		Type:        request.Type,
		Amount:      request.Amount,
		Reference:   reference,
		Network:     strings.ToLower(request.Payload.Network),
		PhoneNumber: request.Payload.PhoneNumber,
		Plan:        request.Payload.Plan,
		Disco:       request.Payload.Disco,
		MeterNumber: request.Payload.MeterNumber,
		Quantity:    request.Payload.Quantity,
	})
	if err != nil {
		return c.recordFailedDispatch(ctx, request, reference, details, err)
	}

	details["provider_reference"] = submitResult.ProviderReference
	tx := &entity.Transaction{
		ID:        uuid.NewString(),
		UserID:    request.UserID,
		Type:      request.Type,
		Amount:    request.Amount,
		Status:    entity.TxStatusSuccess,
		Reference: reference,
		Details:   model.MarshalDetails(details),
	}
	if err := c.Transactions.Insert(ctx, tx); err != nil {
		// The provider has delivered; losing the record would break audit
		// completeness, so this is loud.
		c.Log.Error("wallet-usecase",
			fmt.Sprintf("CRITICAL: dispatched but failed to record transaction %s: %v", reference, err),
			"PurchaseService", utils.ConvertString(request))
		errObj := httpError.NewInternalServerError()
		errObj.Message = "purchase delivered but could not be recorded, contact support"
		result.Error = errObj
		return result
	}

	debited, err := c.Profiles.DebitBalance(ctx, request.UserID, request.Amount)
	if err != nil || !debited {
		// External success already happened and cannot be rolled back. The
		// transaction row stands; the missed debit goes to manual
		// reconciliation rather than forcing the balance negative.
		c.Log.Error("wallet-usecase",
			fmt.Sprintf("debit did not land for %s (err=%v, debited=%v), needs reconciliation", reference, err, debited),
			"PurchaseService", request.UserID)
	}

	if err := c.Producer.SendResolved(converter.TransactionToEvent(tx)); err != nil {
		c.Log.Error("wallet-usecase", fmt.Sprintf("failed to publish transaction event: %v", err), "PurchaseService", reference)
	}

	if request.SaveBeneficiary && request.BeneficiaryName != "" &&
		(request.Type == entity.TxTypeAirtime || request.Type == entity.TxTypeData) {
		c.saveBeneficiary(ctx, request)
	}

	newBalance := profile.WalletBalance
	if debited {
		newBalance -= request.Amount
	}
	result.Data = model.PurchaseServiceResponse{
		Reference:         reference,
		Status:            entity.TxStatusSuccess,
		Amount:            request.Amount,
		ProviderReference: submitResult.ProviderReference,
		NewBalance:        newBalance,
	}
	return result
}

// recordFailedDispatch persists the audit row for a non-success outcome.
// Timeouts stay pending with the balance untouched: the outcome is unknown
// and no compensating entry is invented for it.
func (c *WalletUseCase) recordFailedDispatch(ctx context.Context, request *model.PurchaseServiceRequest, reference string, details map[string]interface{}, dispatchErr error) utils.Result {
	var result utils.Result

	kind := vtu.KindOf(dispatchErr)
	details["error_kind"] = string(kind)

	status := entity.TxStatusFailed
	if kind == vtu.KindTimeout {
		status = entity.TxStatusPending
	}

	tx := &entity.Transaction{
		ID:        uuid.NewString(),
		UserID:    request.UserID,
		Type:      request.Type,
		Amount:    request.Amount,
		Status:    status,
		Reference: reference,
		Details:   model.MarshalDetails(details),
	}
	if err := c.Transactions.Insert(ctx, tx); err != nil {
		c.Log.Error("wallet-usecase",
			fmt.Sprintf("failed to record %s transaction %s: %v", status, reference, err),
			"PurchaseService", utils.ConvertString(request))
	}

	if status == entity.TxStatusFailed {
		if err := c.Producer.SendResolved(converter.TransactionToEvent(tx)); err != nil {
			c.Log.Error("wallet-usecase", fmt.Sprintf("failed to publish transaction event: %v", err), "PurchaseService", reference)
		}
	}

	switch kind {
	case vtu.KindTimeout:
		errObj := httpError.NewGatewayTimeout()
		errObj.Message = "request timed out, the purchase will be reconciled shortly, do not retry immediately"
		result.Error = errObj
	case vtu.KindUpstreamRejected:
		errObj := httpError.NewUnprocessableEntity()
		errObj.Message = dispatchErr.Error()
		result.Error = errObj
	case vtu.KindUpstreamUnavailable:
		errObj := httpError.NewServiceUnavailable()
		errObj.Message = "payment service temporarily unavailable, please try again later"
		result.Error = errObj
	default:
		errObj := httpError.NewServiceUnavailable()
		errObj.Message = "unable to connect to payment service, please check your connection and try again"
		result.Error = errObj
	}

	c.Log.Error("wallet-usecase",
		fmt.Sprintf("dispatch outcome %s for %s: %v", status, reference, dispatchErr),
		"PurchaseService", request.UserID)
	return result
}

// FundWallet credits the wallet after the payment provider confirms
// settlement. Idempotent on the provider reference: the reference doubles as
// the transaction reference, so the unique index rejects a replay even when
// two webhooks race past the existence check.
func (c *WalletUseCase) FundWallet(ctx context.Context, request *model.FundWalletRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("wallet-usecase", errObj.Message, "FundWallet", utils.ConvertString(request))
		return result
	}

	exists, err := c.Transactions.ExistsByReference(ctx, request.ProviderReference)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to verify funding reference"
		result.Error = errObj
		c.Log.Error("wallet-usecase", err.Error(), "FundWallet", request.ProviderReference)
		return result
	}
	if exists {
		c.Log.Warn("wallet-usecase", "duplicate funding reference ignored", "FundWallet", request.ProviderReference)
		result.Data = model.FundWalletResponse{
			Reference: request.ProviderReference,
			Duplicate: true,
		}
		return result
	}

	profile, err := c.Profiles.FindByID(ctx, request.UserID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = "profile not found"
		result.Error = errObj
		c.Log.Error("wallet-usecase", err.Error(), "FundWallet", request.UserID)
		return result
	}

	snapshot, err := c.Settings.Snapshot(ctx)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to load funding configuration"
		result.Error = errObj
		c.Log.Error("wallet-usecase", err.Error(), "FundWallet", "settings snapshot")
		return result
	}

	charge := FundingCharge(snapshot.FundingCharge, request.Amount)
	net := request.Amount - charge

	tx := &entity.Transaction{
		ID:        uuid.NewString(),
		UserID:    request.UserID,
		Type:      entity.TxTypeWalletFunding,
		Amount:    net,
		Status:    entity.TxStatusSuccess,
		Reference: request.ProviderReference,
		Details: model.MarshalDetails(model.FundingDetails{
			Provider:          request.Provider,
			ProviderReference: request.ProviderReference,
			Gross:             request.Amount,
			Charge:            charge,
		}),
	}
	if err := c.Transactions.Insert(ctx, tx); err != nil {
		if isDuplicateKey(err) {
			c.Log.Warn("wallet-usecase", "duplicate funding reference lost insert race, ignored", "FundWallet", request.ProviderReference)
			result.Data = model.FundWalletResponse{
				Reference: request.ProviderReference,
				Duplicate: true,
			}
			return result
		}
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to record funding"
		result.Error = errObj
		c.Log.Error("wallet-usecase", err.Error(), "FundWallet", request.ProviderReference)
		return result
	}

	if err := c.Profiles.CreditBalance(ctx, request.UserID, net); err != nil {
		// Record exists but the credit is missing: reconciliation target.
		c.Log.Error("wallet-usecase",
			fmt.Sprintf("CRITICAL: funding %s recorded but credit failed: %v", request.ProviderReference, err),
			"FundWallet", request.UserID)
		errObj := httpError.NewInternalServerError()
		errObj.Message = "funding recorded but not yet credited, contact support"
		result.Error = errObj
		return result
	}

	if err := c.Producer.SendResolved(converter.TransactionToEvent(tx)); err != nil {
		c.Log.Error("wallet-usecase", fmt.Sprintf("failed to publish funding event: %v", err), "FundWallet", request.ProviderReference)
	}

	c.enqueueReferralEvaluation(ctx, profile)

	// Re-read after the credit so the reported balance reflects any other
	// movements since the pre-credit read.
	newBalance := profile.WalletBalance + net
	if updated, err := c.Profiles.FindByID(ctx, request.UserID); err == nil {
		newBalance = updated.WalletBalance
	}

	result.Data = model.FundWalletResponse{
		Reference:  tx.Reference,
		Gross:      request.Amount,
		Charge:     charge,
		Credited:   net,
		NewBalance: newBalance,
	}
	return result
}

// enqueueReferralEvaluation schedules the referrer's reward check when this
// funding is the payer's first successful one.
func (c *WalletUseCase) enqueueReferralEvaluation(ctx context.Context, profile *entity.Profile) {
	if c.Tasks == nil || !profile.ReferredBy.Valid || profile.ReferredBy.String == "" {
		return
	}
	count, err := c.Transactions.CountSuccessFunding(ctx, profile.ID)
	if err != nil {
		c.Log.Error("wallet-usecase", err.Error(), "enqueueReferralEvaluation", profile.ID)
		return
	}
	if count != 1 {
		return
	}

	payload, _ := json.Marshal(model.EvaluateReferralPayload{ReferrerID: profile.ReferredBy.String})
	if _, err := c.Tasks.EnqueueContext(ctx, asynq.NewTask(TaskTypeEvaluateReferral, payload)); err != nil {
		c.Log.Error("wallet-usecase", fmt.Sprintf("failed to enqueue referral evaluation: %v", err), "FundWallet", profile.ReferredBy.String)
	}
}

func (c *WalletUseCase) GetBalance(ctx context.Context, userID string) utils.Result {
	var result utils.Result

	profile, err := c.Profiles.FindByID(ctx, userID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = "profile not found"
		result.Error = errObj
		return result
	}
	result.Data = model.BalanceResponse{
		UserID:        profile.ID,
		WalletBalance: profile.WalletBalance,
	}
	return result
}

func (c *WalletUseCase) ListTransactions(ctx context.Context, request *model.ListTransactionsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	transactions, total, err := c.Transactions.List(ctx, repository.TransactionFilter{
		UserID:   request.UserID,
		Status:   request.Status,
		Type:     request.Type,
		Page:     request.Page,
		PageSize: request.PageSize,
	})
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to fetch transactions"
		result.Error = errObj
		c.Log.Error("wallet-usecase", err.Error(), "ListTransactions", request.UserID)
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

func (c *WalletUseCase) saveBeneficiary(ctx context.Context, request *model.PurchaseServiceRequest) {
	err := c.Beneficiaries.Insert(ctx, &entity.Beneficiary{
		ID:          uuid.NewString(),
		UserID:      request.UserID,
		Name:        request.BeneficiaryName,
		PhoneNumber: request.Payload.PhoneNumber,
		Network:     strings.ToUpper(request.Payload.Network),
		Type:        request.Type,
	})
	if err != nil {
		c.Log.Error("wallet-usecase", fmt.Sprintf("failed to save beneficiary: %v", err), "PurchaseService", request.UserID)
	}
}

// FundingCharge computes the charge netted out of a funding credit. The rule
// is pure data from admin_settings; out-of-band deposits and nonsense values
// yield no charge rather than eating the whole credit.
func FundingCharge(cfg model.FundingChargeConfig, amount float64) float64 {
	if !cfg.Enabled || amount <= 0 {
		return 0
	}
	if amount < cfg.MinDeposit {
		return 0
	}
	if cfg.MaxDeposit > 0 && amount > cfg.MaxDeposit {
		return 0
	}

	var charge float64
	switch cfg.Type {
	case model.ChargeTypePercentage:
		charge = amount * cfg.Value / 100
	case model.ChargeTypeFixed:
		charge = cfg.Value
	default:
		return 0
	}

	if charge < 0 || charge >= amount {
		return 0
	}
	return charge
}

func validatePayload(txType string, payload model.ServicePayload) error {
	switch txType {
	case entity.TxTypeAirtime:
		if payload.Network == "" || payload.PhoneNumber == "" {
			return fmt.Errorf("network and phoneNumber are required for airtime")
		}
	case entity.TxTypeData:
		if payload.Network == "" || payload.PhoneNumber == "" || payload.Plan == "" {
			return fmt.Errorf("network, phoneNumber and plan are required for data")
		}
	case entity.TxTypeElectricity:
		if payload.Disco == "" || payload.MeterNumber == "" {
			return fmt.Errorf("disco and meterNumber are required for electricity")
		}
	case entity.TxTypeWaec:
		if payload.Quantity < 1 {
			return fmt.Errorf("quantity must be at least 1 for waec")
		}
	}
	return nil
}

// verifyPin enforces the transaction PIN when the profile has one set.
func verifyPin(profile *entity.Profile, pin string) *httpError.CommonError {
	if !profile.HasPin {
		return nil
	}
	if pin == "" {
		errObj := httpError.NewUnauthorized()
		errObj.Message = "transaction pin is required"
		return &errObj
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PinHash.String), []byte(pin)); err != nil {
		errObj := httpError.NewUnauthorized()
		errObj.Message = "incorrect transaction pin"
		return &errObj
	}
	return nil
}

// isDuplicateKey reports whether err is a MySQL unique constraint violation.
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
