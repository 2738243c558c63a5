package repository

import (
	"context"

	"wallet-service/src/internal/entity"
	"wallet-service/src/pkg/databases/mysql"
)

type OrderRepository struct {
	DB mysql.DBInterface
}

func NewOrderRepository(db mysql.DBInterface) *OrderRepository {
	return &OrderRepository{
		DB: db,
	}
}

func (r *OrderRepository) Insert(ctx context.Context, order *entity.Order) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, product_id, quantity, amount, status, reference, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
	`, order.ID, order.UserID, order.ProductID, order.Quantity, order.Amount, order.Status, order.Reference)
	return err
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]entity.Order, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var orders []entity.Order
	err = db.SelectContext(ctx, &orders, `
		SELECT id, user_id, product_id, quantity, amount, status, reference, created_at
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID)
	return orders, err
}
