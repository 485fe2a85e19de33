package sqlite

import (
	"context"
	"fmt"

	"github.com/mwhitfield/quill/internal/core/domain"
	"github.com/mwhitfield/quill/internal/core/repository"
)

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Product, error) {
	q := `
		SELECT title, total_price, price_per_unit, unit, availability, source, link
		FROM products
		WHERE title LIKE ? AND unit != ?
		ORDER BY total_price ASC
		LIMIT ?
	`
	var products []*domain.Product
	err := r.db.SelectContext(ctx, &products, q, "%"+query+"%", domain.UnknownUnit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

func (r *productRepository) Upsert(ctx context.Context, product *domain.Product) error {
	q := `
		INSERT INTO products (title, total_price, price_per_unit, unit, availability, source, link)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (title, source) DO UPDATE SET
			total_price = excluded.total_price,
			price_per_unit = excluded.price_per_unit,
			unit = excluded.unit,
			availability = excluded.availability,
			link = excluded.link
	`
	_, err := r.db.ExecContext(ctx, q,
		product.Title,
		product.TotalPrice,
		product.PricePerUnit,
		product.Unit,
		product.Availability,
		product.Source,
		product.Link,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	return nil
}

func (r *productRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
