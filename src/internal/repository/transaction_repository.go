package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"wallet-service/src/internal/entity"
	"wallet-service/src/pkg/databases/mysql"
)

type TransactionRepository struct {
	DB mysql.DBInterface
}

func NewTransactionRepository(db mysql.DBInterface) *TransactionRepository {
	return &TransactionRepository{
		DB: db,
	}
}

type TransactionFilter struct {
	UserID   string
	Status   string
	Type     string
	Page     int
	PageSize int
}

func (r *TransactionRepository) Insert(ctx context.Context, tx *entity.Transaction) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, type, amount, status, reference, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
	`, tx.ID, tx.UserID, tx.Type, tx.Amount, tx.Status, tx.Reference, tx.Details)
	return err
}

func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*entity.Transaction, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var tx entity.Transaction
	query := `
		SELECT id, user_id, type, amount, status, reference, details, created_at, updated_at
		FROM transactions
		WHERE id = ?
	`
	if err := db.GetContext(ctx, &tx, query, id); err != nil {
		return nil, err
	}
	return &tx, nil
}

// ExistsByReference is the dedupe check behind funding idempotence: a
// provider reference that already has a transaction is never credited again.
func (r *TransactionRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	var id string
	err = db.GetContext(ctx, &id, `SELECT id FROM transactions WHERE reference = ?`, reference)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdateStatus flips pending to a terminal status, guarded on the current
// status so concurrent reconciliation cannot double-apply.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, id, fromStatus, toStatus string) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, `
		UPDATE transactions
		SET status = ?, updated_at = NOW()
		WHERE id = ? AND status = ?
	`, toStatus, id, fromStatus)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *TransactionRepository) List(ctx context.Context, filter TransactionFilter) ([]entity.Transaction, int, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, 0, err
	}

	conditions := []string{"1=1"}
	args := []interface{}{}
	if filter.UserID != "" {
		conditions = append(conditions, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Type != "" {
		conditions = append(conditions, "type = ?")
		args = append(args, filter.Type)
	}
	where := strings.Join(conditions, " AND ")

	var total int
	if err := db.GetContext(ctx, &total, fmt.Sprintf(`SELECT COUNT(*) FROM transactions WHERE %s`, where), args...); err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var transactions []entity.Transaction
	query := fmt.Sprintf(`
		SELECT id, user_id, type, amount, status, reference, details, created_at, updated_at
		FROM transactions
		WHERE %s
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, where)
	args = append(args, pageSize, (page-1)*pageSize)
	if err := db.SelectContext(ctx, &transactions, query, args...); err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// CountSuccessFunding counts the user's credited wallet fundings; a count of
// one means the funding just processed was the first.
func (r *TransactionRepository) CountSuccessFunding(ctx context.Context, userID string) (int, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return 0, err
	}

	var count int
	err = db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM transactions
		WHERE user_id = ? AND type = ? AND status = ?
	`, userID, entity.TxTypeWalletFunding, entity.TxStatusSuccess)
	return count, err
}

// HasRewardAtThreshold is the durable at-most-once marker for referral
// rewards: a success referral_reward row recorded at the same threshold.
func (r *TransactionRepository) HasRewardAtThreshold(ctx context.Context, referrerID string, threshold int) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	var count int
	err = db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM transactions
		WHERE user_id = ?
		AND type = ?
		AND status = ?
		AND JSON_EXTRACT(details, '$.threshold') = ?
	`, referrerID, entity.TxTypeReferralReward, entity.TxStatusSuccess, threshold)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TransactionRepository) ListRewards(ctx context.Context, referrerID string) ([]entity.Transaction, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var rewards []entity.Transaction
	err = db.SelectContext(ctx, &rewards, `
		SELECT id, user_id, type, amount, status, reference, details, created_at, updated_at
		FROM transactions
		WHERE user_id = ? AND type = ? AND status = ?
		ORDER BY created_at DESC
	`, referrerID, entity.TxTypeReferralReward, entity.TxStatusSuccess)
	return rewards, err
}
