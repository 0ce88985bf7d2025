package api

import "time"

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is returned by register and login: the identity
// plus its fresh bearer token.
type SessionResponse struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// ProfileResponse represents the current user's profile.
type ProfileResponse struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskRequest is the body for creating or updating a task. All fields
// are optional pointers so updates can distinguish absent from empty.
type TaskRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Priority    *string   `json:"priority"`
	Status      *string   `json:"status"`
	Completed   *bool     `json:"completed"`
	DueDate     *string   `json:"dueDate"`
	Tags        *[]string `json:"tags"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response. Every error body has
// exactly this shape.
type ErrorResponse struct {
	Message string `json:"message"`
}
