package repository

import (
	"context"

	"github.com/mwhitfield/quill/internal/core/domain"
)

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id int64) (*domain.Post, error)
	// FindPage returns posts newest-first with author columns joined in.
	FindPage(ctx context.Context, limit, offset int) ([]*domain.Post, error)
	Count(ctx context.Context) (int, error)
	FindPageByUser(ctx context.Context, userID int64, limit, offset int) ([]*domain.Post, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id int64) error
}
