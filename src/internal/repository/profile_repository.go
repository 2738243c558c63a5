package repository

import (
	"context"

	"wallet-service/src/internal/entity"
	"wallet-service/src/pkg/databases/mysql"
)

type ProfileRepository struct {
	DB mysql.DBInterface
}

func NewProfileRepository(db mysql.DBInterface) *ProfileRepository {
	return &ProfileRepository{
		DB: db,
	}
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var profile entity.Profile
	query := `
		SELECT
			id, email, full_name, phone_number, wallet_balance,
			pin_hash, has_pin, is_admin, referral_code, referred_by,
			virtual_account_number, virtual_account_bank_name,
			created_at, updated_at
		FROM profiles
		WHERE id = ?
	`
	if err := db.GetContext(ctx, &profile, query, id); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) FindByReferralCode(ctx context.Context, code string) (*entity.Profile, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var profile entity.Profile
	query := `
		SELECT
			id, email, full_name, phone_number, wallet_balance,
			pin_hash, has_pin, is_admin, referral_code, referred_by,
			virtual_account_number, virtual_account_bank_name,
			created_at, updated_at
		FROM profiles
		WHERE referral_code = ?
	`
	if err := db.GetContext(ctx, &profile, query, code); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DebitBalance deducts atomically and only when the balance covers the
// amount. The affected-row count tells the caller whether the debit landed;
// the balance can never be driven negative by a lost race.
func (r *ProfileRepository) DebitBalance(ctx context.Context, id string, amount float64) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, `
		UPDATE profiles
		SET wallet_balance = wallet_balance - ?, updated_at = NOW()
		WHERE id = ? AND wallet_balance >= ?
	`, amount, id, amount)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *ProfileRepository) CreditBalance(ctx context.Context, id string, amount float64) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		UPDATE profiles
		SET wallet_balance = wallet_balance + ?, updated_at = NOW()
		WHERE id = ?
	`, amount, id)
	return err
}

// SetReferredBy links a profile to its referrer exactly once.
func (r *ProfileRepository) SetReferredBy(ctx context.Context, id, referrerID string) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, `
		UPDATE profiles
		SET referred_by = ?, updated_at = NOW()
		WHERE id = ? AND referred_by IS NULL
	`, referrerID, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *ProfileRepository) SetPin(ctx context.Context, id, pinHash string) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		UPDATE profiles
		SET pin_hash = ?, has_pin = 1, updated_at = NOW()
		WHERE id = ?
	`, pinHash, id)
	return err
}

func (r *ProfileRepository) SetReferralCode(ctx context.Context, id, code string) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		UPDATE profiles
		SET referral_code = ?, updated_at = NOW()
		WHERE id = ? AND (referral_code IS NULL OR referral_code = '')
	`, code, id)
	return err
}

// CountReferredSignups counts referred profiles, the qualifying event when
// the referral program rewards plain signups.
func (r *ProfileRepository) CountReferredSignups(ctx context.Context, referrerID string) (int, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return 0, err
	}

	var count int
	err = db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM profiles WHERE referred_by = ?
	`, referrerID)
	return count, err
}

// CountReferredWithFunding counts referred profiles that have completed at
// least one successful wallet funding, the stricter qualifying event.
func (r *ProfileRepository) CountReferredWithFunding(ctx context.Context, referrerID string) (int, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return 0, err
	}

	var count int
	err = db.GetContext(ctx, &count, `
		SELECT COUNT(DISTINCT p.id)
		FROM profiles p
		JOIN transactions t ON t.user_id = p.id
		WHERE p.referred_by = ?
		AND t.type = ?
		AND t.status = ?
	`, referrerID, entity.TxTypeWalletFunding, entity.TxStatusSuccess)
	return count, err
}
