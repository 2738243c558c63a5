package entity

import "time"

// Setting is one admin_settings row. Service toggles use the key shape
// service_<id>_status with values active|disabled|coming_soon; charge and
// referral parameters use the funding_charge_* and referral_* keys.
type Setting struct {
	Key         string     `db:"setting_key" json:"key"`
	Value       string     `db:"setting_value" json:"value"`
	Description string     `db:"description" json:"description,omitempty"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

const (
	ServiceStatusActive     = "active"
	ServiceStatusDisabled   = "disabled"
	ServiceStatusComingSoon = "coming_soon"
)
