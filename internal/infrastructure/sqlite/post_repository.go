package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mwhitfield/quill/internal/core/domain"
	"github.com/mwhitfield/quill/internal/core/repository"
)

const postColumns = `
	p.id, p.title, p.content, p.date_posted, p.user_id,
	u.username AS author_username, u.image_file AS author_image_file
`

type postRepository struct {
	db *DB
}

func NewPostRepository(db *DB) repository.PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO post (title, content, date_posted, user_id)
		VALUES (?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		post.Title,
		post.Content,
		post.DatePosted,
		post.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get post id: %w", err)
	}
	post.ID = id
	return nil
}

func (r *postRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM post p
		JOIN user u ON u.id = p.user_id
		WHERE p.id = ?
	`
	var post domain.Post
	err := r.db.GetContext(ctx, &post, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return &post, nil
}

func (r *postRepository) FindPage(ctx context.Context, limit, offset int) ([]*domain.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM post p
		JOIN user u ON u.id = p.user_id
		ORDER BY p.date_posted DESC, p.id DESC
		LIMIT ? OFFSET ?
	`
	var posts []*domain.Post
	if err := r.db.SelectContext(ctx, &posts, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM post`); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

func (r *postRepository) FindPageByUser(ctx context.Context, userID int64, limit, offset int) ([]*domain.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM post p
		JOIN user u ON u.id = p.user_id
		WHERE p.user_id = ?
		ORDER BY p.date_posted DESC, p.id DESC
		LIMIT ? OFFSET ?
	`
	var posts []*domain.Post
	if err := r.db.SelectContext(ctx, &posts, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list posts by user: %w", err)
	}
	return posts, nil
}

func (r *postRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM post WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts by user: %w", err)
	}
	return count, nil
}

func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	// Only title and content are mutable; date_posted keeps its creation value.
	query := `
		UPDATE post
		SET title = ?, content = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query, post.Title, post.Content, post.ID)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *postRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM post WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}
