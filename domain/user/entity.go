package user

import (
	"time"
)

// User represents a registered account. Passwords are stored only as
// bcrypt hashes.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Email        string `gorm:"uniqueIndex;not null;type:text"`
	PasswordHash string `gorm:"not null;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Session is the result of a successful registration or login: the
// identity plus a freshly minted bearer token.
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// Claims is the identity resolved from a bearer token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
