package repository

import (
	"context"

	"wallet-service/src/internal/entity"
	"wallet-service/src/pkg/databases/mysql"
)

type ProductRepository struct {
	DB mysql.DBInterface
}

func NewProductRepository(db mysql.DBInterface) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var product entity.Product
	query := `
		SELECT id, name, description, price, stock, image_url, created_at
		FROM products
		WHERE id = ?
	`
	if err := db.GetContext(ctx, &product, query, id); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) List(ctx context.Context, page, pageSize int) ([]entity.Product, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var products []entity.Product
	err = db.SelectContext(ctx, &products, `
		SELECT id, name, description, price, stock, image_url, created_at
		FROM products
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, pageSize, (page-1)*pageSize)
	return products, err
}

// DecrementStock reserves stock conditionally; zero rows affected means the
// product sold out under the caller.
func (r *ProductRepository) DecrementStock(ctx context.Context, id string, quantity int) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - ?
		WHERE id = ? AND stock >= ?
	`, quantity, id, quantity)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *ProductRepository) IncrementStock(ctx context.Context, id string, quantity int) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		UPDATE products SET stock = stock + ? WHERE id = ?
	`, quantity, id)
	return err
}

func (r *ProductRepository) Upsert(ctx context.Context, p *entity.Product) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, price, stock, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			name = VALUES(name),
			description = VALUES(description),
			price = VALUES(price),
			stock = VALUES(stock),
			image_url = VALUES(image_url)
	`, p.ID, p.Name, p.Description, p.Price, p.Stock, p.ImageURL)
	return err
}
