package service

import (
	"context"

	"github.com/mwhitfield/quill/internal/core/domain"
	"github.com/mwhitfield/quill/internal/core/repository"
)

// PageSize is the fixed number of posts per page.
const PageSize = 5

// Pagination describes one page of a newest-first post listing.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }
func (p Pagination) Prev() int     { return p.Page - 1 }
func (p Pagination) Next() int     { return p.Page + 1 }

func newPagination(page, total int) Pagination {
	return Pagination{
		Page:       page,
		PerPage:    PageSize,
		Total:      total,
		TotalPages: (total + PageSize - 1) / PageSize,
	}
}

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// ListPage returns one page of posts, newest first. Pages below 1 are
// clamped to 1; pages past the end come back empty rather than erroring.
func (s *PostService) ListPage(ctx context.Context, page int) ([]*domain.Post, Pagination, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, Pagination{}, err
	}

	posts, err := s.postRepo.FindPage(ctx, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, Pagination{}, err
	}

	return posts, newPagination(page, total), nil
}

// ListByUsername resolves the author and returns one page of their
// posts. Unknown usernames surface repository.ErrNotFound.
func (s *PostService) ListByUsername(ctx context.Context, username string, page int) (*domain.User, []*domain.Post, Pagination, error) {
	if page < 1 {
		page = 1
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, Pagination{}, err
	}

	total, err := s.postRepo.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, nil, Pagination{}, err
	}

	posts, err := s.postRepo.FindPageByUser(ctx, user.ID, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, nil, Pagination{}, err
	}

	return user, posts, newPagination(page, total), nil
}

func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	return s.postRepo.FindByID(ctx, id)
}

func (s *PostService) Create(ctx context.Context, userID int64, title, content string) (*domain.Post, error) {
	post := domain.NewPost(userID, title, content)
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update mutates title and content if userID is the post's author.
// A non-author gets ErrForbidden: existence is revealed, authorization
// is not granted.
func (s *PostService) Update(ctx context.Context, id, userID int64, title, content string) (*domain.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, ErrForbidden
	}

	post.Title = title
	post.Content = content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes the post permanently, subject to the same ownership
// rule as Update.
func (s *PostService) Delete(ctx context.Context, id, userID int64) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrForbidden
	}
	return s.postRepo.Delete(ctx, id)
}
