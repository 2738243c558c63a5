package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/gateway/vtu"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/model/converter"
	httpError "wallet-service/src/pkg/http-error"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

const referralLockTTL = 30 * time.Second

// ReferralUseCase issues at most one reward per referrer per threshold
// band. The redis lock serializes concurrent evaluations; the durable
// reward row keyed by threshold makes a re-run after a crash a no-op.
type ReferralUseCase struct {
	Log          log.Log
	Validate     *validator.Validate
	Profiles     ProfileStore
	Transactions TransactionStore
	Settings     *SettingsProvider
	Redis        redis.UniversalClient
	Gateway      ServiceGateway
	Producer     EventPublisher
}

func NewReferralUseCase(
	logger log.Log,
	validate *validator.Validate,
	profiles ProfileStore,
	transactions TransactionStore,
	settings *SettingsProvider,
	redisClient redis.UniversalClient,
	gateway ServiceGateway,
	producer EventPublisher,
) *ReferralUseCase {
	return &ReferralUseCase{
		Log:          logger,
		Validate:     validate,
		Profiles:     profiles,
		Transactions: transactions,
		Settings:     settings,
		Redis:        redisClient,
		Gateway:      gateway,
		Producer:     producer,
	}
}

// ApplyReferralCode links a referrer to this user. The link is permanent:
// the conditional UPDATE only fires while referred_by is NULL, so a second
// code can never overwrite the first.
func (c *ReferralUseCase) ApplyReferralCode(ctx context.Context, request *model.ApplyReferralCodeRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	referrer, err := c.Profiles.FindByReferralCode(ctx, request.Code)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = "referral code not found"
		result.Error = errObj
		return result
	}
	if referrer.ID == request.UserID {
		errObj := httpError.NewBadRequest()
		errObj.Message = "you cannot use your own referral code"
		result.Error = errObj
		return result
	}

	snapshot, err := c.Settings.Snapshot(ctx)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to load referral configuration"
		result.Error = errObj
		c.Log.Error("referral-usecase", err.Error(), "ApplyReferralCode", "settings snapshot")
		return result
	}
	if limit := snapshot.Referral.InviteLimit; limit > 0 {
		count, err := c.Profiles.CountReferredSignups(ctx, referrer.ID)
		if err != nil {
			errObj := httpError.NewInternalServerError()
			errObj.Message = "unable to verify referral code"
			result.Error = errObj
			c.Log.Error("referral-usecase", err.Error(), "ApplyReferralCode", referrer.ID)
			return result
		}
		if count >= limit {
			errObj := httpError.NewUnprocessableEntity()
			errObj.Message = "this referral code has reached its invite limit"
			result.Error = errObj
			return result
		}
	}

	linked, err := c.Profiles.SetReferredBy(ctx, request.UserID, referrer.ID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to apply referral code"
		result.Error = errObj
		c.Log.Error("referral-usecase", err.Error(), "ApplyReferralCode", request.UserID)
		return result
	}
	if !linked {
		errObj := httpError.NewConflict()
		errObj.Message = "a referral code has already been applied to this account"
		result.Error = errObj
		return result
	}

	if snapshot.Referral.QualifyingEvent == model.QualifyingEventSignup {
		if err := c.Evaluate(ctx, referrer.ID); err != nil {
			// The link itself succeeded. The next qualifying signup evaluates
			// the same band again, so the reward is deferred, not lost.
			c.Log.Warn("referral-usecase", fmt.Sprintf("reward evaluation deferred: %v", err), "ApplyReferralCode", referrer.ID)
		}
	}

	result.Data = map[string]string{"referredBy": referrer.ID}
	return result
}

// HandleEvaluateTask is the asynq handler behind TaskTypeEvaluateReferral.
func (c *ReferralUseCase) HandleEvaluateTask(ctx context.Context, task *asynq.Task) error {
	var payload model.EvaluateReferralPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		c.Log.Error("referral-usecase", fmt.Sprintf("malformed task payload: %v", err), "HandleEvaluateTask", string(task.Payload()))
		return fmt.Errorf("unmarshal evaluate payload: %w: %v", asynq.SkipRetry, err)
	}
	return c.Evaluate(ctx, payload.ReferrerID)
}

// Evaluate checks whether the referrer has crossed a reward threshold and
// issues the configured reward exactly once per threshold band.
func (c *ReferralUseCase) Evaluate(ctx context.Context, referrerID string) error {
	snapshot, err := c.Settings.Snapshot(ctx)
	if err != nil {
		c.Log.Error("referral-usecase", err.Error(), "Evaluate", "settings snapshot")
		return err
	}
	cfg := snapshot.Referral
	if !cfg.Enabled || cfg.RewardCount < 1 {
		return nil
	}

	unlock, err := c.acquireLock(ctx, referrerID)
	if err != nil {
		// Another evaluation is in flight; asynq will retry this one.
		return err
	}
	defer unlock()

	qualifying, err := c.countQualifying(ctx, referrerID, cfg.QualifyingEvent)
	if err != nil {
		c.Log.Error("referral-usecase", err.Error(), "Evaluate", referrerID)
		return err
	}
	if qualifying < cfg.RewardCount {
		return nil
	}

	// Gate on the highest crossed band rather than an exact multiple, so a
	// failed issuance at count N is caught up by the next evaluation even
	// after the count has moved past N.
	threshold := qualifying / cfg.RewardCount * cfg.RewardCount
	issued, err := c.Transactions.HasRewardAtThreshold(ctx, referrerID, threshold)
	if err != nil {
		c.Log.Error("referral-usecase", err.Error(), "Evaluate", referrerID)
		return err
	}
	if issued {
		return nil
	}

	return c.issueReward(ctx, referrerID, cfg, threshold)
}

// issueReward delivers the configured reward, then writes its durable marker.
// Delivery always comes first: a failed delivery leaves no marker, so the
// next evaluation retries, and only a delivered reward consumes the
// threshold.
func (c *ReferralUseCase) issueReward(ctx context.Context, referrerID string, cfg model.ReferralConfig, threshold int) error {
	amount := cfg.RewardAmount()
	reference := utils.NewReference("REF")

	switch cfg.RewardType {
	case model.RewardTypeAirtime, model.RewardTypeDataBundle:
		if err := c.dispatchReward(ctx, referrerID, cfg, amount, reference); err != nil {
			return err
		}
	case model.RewardTypeWalletCredit:
		if amount > 0 {
			if err := c.Profiles.CreditBalance(ctx, referrerID, amount); err != nil {
				c.Log.Error("referral-usecase", fmt.Sprintf("reward credit failed, will retry: %v", err), "issueReward", referrerID)
				return err
			}
		}
	}

	tx := &entity.Transaction{
		ID:        uuid.NewString(),
		UserID:    referrerID,
		Type:      entity.TxTypeReferralReward,
		Amount:    amount,
		Status:    entity.TxStatusSuccess,
		Reference: reference,
		Details: model.MarshalDetails(model.ReferralRewardDetails{
			RewardType: cfg.RewardType,
			Threshold:  threshold,
			DataSize:   cfg.DataSize,
		}),
	}
	if err := c.Transactions.Insert(ctx, tx); err != nil {
		// The reward is already delivered; without the marker a retry would
		// deliver again, so this goes to manual reconciliation.
		c.Log.Error("referral-usecase",
			fmt.Sprintf("CRITICAL: reward %s delivered but marker not recorded: %v", reference, err),
			"issueReward", referrerID)
		return err
	}

	if err := c.Producer.SendRewardIssued(&model.RewardIssuedEvent{
		ID:         tx.ID,
		ReferrerID: referrerID,
		RewardType: cfg.RewardType,
		Threshold:  threshold,
		Amount:     amount,
	}); err != nil {
		c.Log.Error("referral-usecase", fmt.Sprintf("failed to publish reward event: %v", err), "issueReward", tx.ID)
	}

	c.Log.Info("referral-usecase",
		fmt.Sprintf("issued %s reward at threshold %d", cfg.RewardType, threshold),
		"issueReward", referrerID)
	return nil
}

// dispatchReward sends an airtime or data reward to the referrer's phone.
func (c *ReferralUseCase) dispatchReward(ctx context.Context, referrerID string, cfg model.ReferralConfig, amount float64, reference string) error {
	profile, err := c.Profiles.FindByID(ctx, referrerID)
	if err != nil {
		c.Log.Error("referral-usecase", err.Error(), "dispatchReward", referrerID)
		return err
	}
	if !profile.PhoneNumber.Valid || profile.PhoneNumber.String == "" {
		c.Log.Warn("referral-usecase", "referrer has no phone number, reward deferred", "dispatchReward", referrerID)
		return fmt.Errorf("referrer %s has no phone number for %s reward", referrerID, cfg.RewardType)
	}

	submitType := entity.TxTypeAirtime
	plan := ""
	if cfg.RewardType == model.RewardTypeDataBundle {
		submitType = entity.TxTypeData
		plan = cfg.DataSize
	}

	if _, err := c.Gateway.Submit(ctx, &vtu.SubmitRequest{
		Type:        submitType,
		Amount:      amount,
		Reference:   reference,
		PhoneNumber: profile.PhoneNumber.String,
		Plan:        plan,
	}); err != nil {
		c.Log.Error("referral-usecase", fmt.Sprintf("reward dispatch failed: %v", err), "dispatchReward", referrerID)
		return err
	}
	return nil
}

func (c *ReferralUseCase) countQualifying(ctx context.Context, referrerID, event string) (int, error) {
	if event == model.QualifyingEventFirstFunding {
		return c.Profiles.CountReferredWithFunding(ctx, referrerID)
	}
	return c.Profiles.CountReferredSignups(ctx, referrerID)
}

// acquireLock takes the per-referrer evaluation lock. Without redis the
// durable threshold marker is still the backstop, so evaluation proceeds.
func (c *ReferralUseCase) acquireLock(ctx context.Context, referrerID string) (func(), error) {
	if c.Redis == nil {
		return func() {}, nil
	}
	key := fmt.Sprintf("REFERRAL:EVALUATE:%s", referrerID)
	ok, err := c.Redis.SetNX(ctx, key, "1", referralLockTTL).Result()
	if err != nil {
		c.Log.Warn("referral-usecase", fmt.Sprintf("lock acquire error: %v", err), "acquireLock", referrerID)
		return func() {}, nil
	}
	if !ok {
		return nil, fmt.Errorf("referral evaluation for %s already in progress", referrerID)
	}
	return func() {
		if err := c.Redis.Del(context.Background(), key).Err(); err != nil {
			c.Log.Warn("referral-usecase", fmt.Sprintf("lock release error: %v", err), "acquireLock", referrerID)
		}
	}, nil
}

// Status returns the referrer-facing progress view.
func (c *ReferralUseCase) Status(ctx context.Context, userID string) utils.Result {
	var result utils.Result

	profile, err := c.Profiles.FindByID(ctx, userID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = "profile not found"
		result.Error = errObj
		return result
	}

	snapshot, err := c.Settings.Snapshot(ctx)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to load referral configuration"
		result.Error = errObj
		c.Log.Error("referral-usecase", err.Error(), "Status", "settings snapshot")
		return result
	}

	qualifying, err := c.countQualifying(ctx, userID, snapshot.Referral.QualifyingEvent)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to fetch referral status"
		result.Error = errObj
		c.Log.Error("referral-usecase", err.Error(), "Status", userID)
		return result
	}

	rewards, err := c.Transactions.ListRewards(ctx, userID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "unable to fetch referral rewards"
		result.Error = errObj
		c.Log.Error("referral-usecase", err.Error(), "Status", userID)
		return result
	}

	result.Data = model.ReferralStatusResponse{
		ReferralCode:    profile.ReferralCode,
		QualifyingCount: qualifying,
		RewardThreshold: snapshot.Referral.RewardCount,
		RewardsIssued:   converter.TransactionsToResponse(rewards),
	}
	return result
}
