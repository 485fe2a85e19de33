package domain

import "time"

type Post struct {
	ID         int64     `db:"id"`
	Title      string    `db:"title"`
	Content    string    `db:"content"`
	DatePosted time.Time `db:"date_posted"`
	UserID     int64     `db:"user_id"`

	// Filled by joined queries, not stored on the post row.
	AuthorUsername  string `db:"author_username"`
	AuthorImageFile string `db:"author_image_file"`
}

func NewPost(userID int64, title, content string) *Post {
	return &Post{
		Title:      title,
		Content:    content,
		DatePosted: time.Now().UTC(),
		UserID:     userID,
	}
}
