package model

import (
	"strconv"
	"strings"

	"wallet-service/src/internal/entity"
)

// Charge types for wallet funding.
const (
	ChargeTypePercentage = "percentage"
	ChargeTypeFixed      = "fixed"
)

// Referral reward types.
const (
	RewardTypeWalletCredit = "wallet_credit"
	RewardTypeAirtime      = "airtime"
	RewardTypeDataBundle   = "data_bundle"
)

// Referral qualifying events.
const (
	QualifyingEventSignup       = "signup"
	QualifyingEventFirstFunding = "first_funding"
)

// FundingChargeConfig is the charge rule applied when crediting a funding.
// It is pure data read from admin_settings, never derived.
type FundingChargeConfig struct {
	Enabled     bool
	Type        string
	Value       float64
	MinDeposit  float64
	MaxDeposit  float64
	DisplayText string
}

type ReferralConfig struct {
	Enabled         bool
	RewardCount     int
	RewardType      string
	DataSize        string
	AirtimeAmount   float64
	CashAmount      float64
	InviteLimit     int
	QualifyingEvent string
}

// ConfigSnapshot is the admin configuration fetched once per operation and
// passed explicitly into the ledger core, so decisions never read ambient
// global state.
type ConfigSnapshot struct {
	ServiceStatus map[string]string
	FundingCharge FundingChargeConfig
	Referral      ReferralConfig
}

// NewConfigSnapshot parses admin_settings rows into typed config. Unknown
// keys are ignored; missing keys fall back to safe defaults (services
// active, charge disabled, referral disabled).
func NewConfigSnapshot(settings []entity.Setting) *ConfigSnapshot {
	snapshot := &ConfigSnapshot{
		ServiceStatus: map[string]string{},
		Referral: ReferralConfig{
			QualifyingEvent: QualifyingEventSignup,
		},
	}

	for _, s := range settings {
		if strings.HasPrefix(s.Key, "service_") && strings.HasSuffix(s.Key, "_status") {
			name := strings.TrimSuffix(strings.TrimPrefix(s.Key, "service_"), "_status")
			snapshot.ServiceStatus[name] = s.Value
			continue
		}

		switch s.Key {
		case "funding_charge_enabled":
			snapshot.FundingCharge.Enabled = s.Value == "true"
		case "funding_charge_type":
			snapshot.FundingCharge.Type = s.Value
		case "funding_charge_value":
			snapshot.FundingCharge.Value = parseFloat(s.Value)
		case "funding_charge_min_deposit":
			snapshot.FundingCharge.MinDeposit = parseFloat(s.Value)
		case "funding_charge_max_deposit":
			snapshot.FundingCharge.MaxDeposit = parseFloat(s.Value)
		case "funding_charge_display_text":
			snapshot.FundingCharge.DisplayText = s.Value
		case "referral_reward_enabled":
			snapshot.Referral.Enabled = s.Value == "true"
		case "referral_reward_count":
			snapshot.Referral.RewardCount = parseInt(s.Value)
		case "referral_reward_type":
			snapshot.Referral.RewardType = s.Value
		case "referral_reward_data_size":
			snapshot.Referral.DataSize = s.Value
		case "referral_reward_airtime_amount":
			snapshot.Referral.AirtimeAmount = parseFloat(s.Value)
		case "referral_reward_cash_amount":
			snapshot.Referral.CashAmount = parseFloat(s.Value)
		case "referral_invite_limit":
			snapshot.Referral.InviteLimit = parseInt(s.Value)
		case "referral_qualifying_event":
			snapshot.Referral.QualifyingEvent = s.Value
		}
	}

	return snapshot
}

// StatusFor returns the toggle for a service, defaulting to active when the
// key has never been configured.
func (c *ConfigSnapshot) StatusFor(service string) string {
	if status, ok := c.ServiceStatus[service]; ok && status != "" {
		return status
	}
	return entity.ServiceStatusActive
}

// RewardAmount returns the monetary size of the configured reward. Data
// bundles have no wallet amount; their size is dispatched to the gateway.
func (r ReferralConfig) RewardAmount() float64 {
	switch r.RewardType {
	case RewardTypeWalletCredit:
		return r.CashAmount
	case RewardTypeAirtime:
		return r.AirtimeAmount
	}
	return 0
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
