package service

import (
	"context"
	"strings"

	"github.com/mwhitfield/quill/internal/core/domain"
	"github.com/mwhitfield/quill/internal/core/repository"
)

// SearchLimit caps product search results.
const SearchLimit = 5

type ProductService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Search returns up to SearchLimit products whose title contains the
// query, excluding unknown-unit rows, cheapest first. An empty or
// whitespace query returns no results instead of matching everything.
func (s *ProductService) Search(ctx context.Context, query string) ([]*domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return s.productRepo.Search(ctx, query, SearchLimit)
}
