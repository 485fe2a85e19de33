package repository

import (
	"context"

	"github.com/mwhitfield/quill/internal/core/domain"
)

type ProductRepository interface {
	// Search matches the query as a substring of the title, excludes rows
	// with an unknown unit, and returns at most limit rows ordered by
	// ascending total price.
	Search(ctx context.Context, query string, limit int) ([]*domain.Product, error)
	// Upsert inserts or replaces a row keyed by (title, source). Used by
	// the out-of-band catalog import, never by a request handler.
	Upsert(ctx context.Context, product *domain.Product) error
	Count(ctx context.Context) (int, error)
}
