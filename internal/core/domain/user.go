package domain

import "time"

const DefaultImageFile = "default.jpg"

type User struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	ImageFile string    `db:"image_file"`
	Password  string    `db:"password"` // bcrypt hashed
	CreatedAt time.Time `db:"created_at"`
}

func NewUser(username, email, hashedPassword string) *User {
	return &User{
		Username:  username,
		Email:     email,
		ImageFile: DefaultImageFile,
		Password:  hashedPassword,
		CreatedAt: time.Now().UTC(),
	}
}
