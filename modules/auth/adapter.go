package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/ashokt15/taskmate/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort defines the interface for authentication operations.
// This is the port that other modules use to access auth functionality.
type AuthPort interface {
	Register(ctx context.Context, email, password string) (*domain.Session, error)
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	ResolveToken(ctx context.Context, token string) (*domain.Claims, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

// ErrTokenRejected is returned by ResolveToken when the token is
// missing, malformed, expired, or bound to a deleted user.
var ErrTokenRejected = errors.New("token rejected")

// AuthAdapter implements AuthPort using the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// Register creates a new account and returns the session minted for it.
func (a *AuthAdapter) Register(ctx context.Context, email, password string) (*domain.Session, error) {
	req := RegisterRequest{Email: email, Password: password}
	var resp RegisterResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"register",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}

	return &domain.Session{
		UserID:    resp.UserID,
		Email:     resp.Email,
		Token:     resp.Token,
		CreatedAt: resp.CreatedAt,
	}, nil
}

// Login authenticates and returns a fresh session.
func (a *AuthAdapter) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	req := LoginRequest{Email: email, Password: password}
	var resp LoginResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"login",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}

	return &domain.Session{
		UserID:    resp.UserID,
		Email:     resp.Email,
		Token:     resp.Token,
		CreatedAt: resp.CreatedAt,
	}, nil
}

// ResolveToken resolves a bearer token to the identity it is bound to.
func (a *AuthAdapter) ResolveToken(ctx context.Context, token string) (*domain.Claims, error) {
	req := ResolveTokenRequest{Token: token}
	var resp ResolveTokenResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"resolve-token",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("resolve-token request failed: %w", err)
	}

	if !resp.Valid {
		return nil, fmt.Errorf("%w: %s", ErrTokenRejected, resp.Error)
	}

	return &domain.Claims{
		UserID: resp.UserID,
		Email:  resp.Email,
	}, nil
}

// GetUser retrieves a user by ID.
func (a *AuthAdapter) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	req := GetUserRequest{UserID: userID}
	var resp GetUserResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get-user",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("get-user request failed: %w", err)
	}

	return &domain.User{
		ID:        resp.UserID,
		Email:     resp.Email,
		CreatedAt: resp.CreatedAt,
	}, nil
}
