// Package identity implements the auth sub-contract alongside the store
// layer: sign-in, sign-up, sign-out, and the current-session query, with a
// uniform result shape. Failures are values, not panics: duplicate emails
// and bad credentials come back as unsuccessful Results, and session reads
// degrade to nil on any internal failure.
package identity

import (
	"context"

	"github.com/tooldex/tooldex/internal/domain"
)

// User-facing failure messages. These are part of the API surface; the
// HTTP layer forwards them verbatim.
const (
	MsgEmailExists        = "Email already exists"
	MsgInvalidCredentials = "Invalid credentials"
	MsgAccountBlocked     = "Account is blocked"
)

// Result is the uniform outcome of SignIn and SignUp.
type Result struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user,omitempty"`
	Err     string       `json:"error,omitempty"`
}

func failure(msg string) Result {
	return Result{Success: false, Err: msg}
}

func success(u *domain.User) Result {
	clean := u.Sanitized()
	return Result{Success: true, User: &clean}
}

// Authenticator is the identity capability interface. Implementations are
// selected by the same configuration value as the store backend.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) Result
	SignUp(ctx context.Context, email, password, name string) Result
	SignOut(ctx context.Context) error
	// CurrentUser returns the signed-in user, or nil (with a nil error)
	// when signed out or when the session cannot be read.
	CurrentUser(ctx context.Context) (*domain.User, error)
}
