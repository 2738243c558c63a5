package repository

import (
	"context"

	"wallet-service/src/internal/entity"
	"wallet-service/src/pkg/databases/mysql"
)

type BeneficiaryRepository struct {
	DB mysql.DBInterface
}

func NewBeneficiaryRepository(db mysql.DBInterface) *BeneficiaryRepository {
	return &BeneficiaryRepository{
		DB: db,
	}
}

func (r *BeneficiaryRepository) Insert(ctx context.Context, b *entity.Beneficiary) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO beneficiaries (id, user_id, name, phone_number, network, type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())
	`, b.ID, b.UserID, b.Name, b.PhoneNumber, b.Network, b.Type)
	return err
}

func (r *BeneficiaryRepository) ListByUser(ctx context.Context, userID, benType string) ([]entity.Beneficiary, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var items []entity.Beneficiary
	if benType != "" {
		err = db.SelectContext(ctx, &items, `
			SELECT id, user_id, name, phone_number, network, type, created_at
			FROM beneficiaries
			WHERE user_id = ? AND type = ?
			ORDER BY created_at DESC
		`, userID, benType)
	} else {
		err = db.SelectContext(ctx, &items, `
			SELECT id, user_id, name, phone_number, network, type, created_at
			FROM beneficiaries
			WHERE user_id = ?
			ORDER BY created_at DESC
		`, userID)
	}
	return items, err
}

func (r *BeneficiaryRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, `
		DELETE FROM beneficiaries WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
