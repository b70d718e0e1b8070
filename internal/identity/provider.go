package identity

import (
	"context"
	"errors"
)

// Session is the identity the hosted provider attaches to a verified token.
type Session struct {
	ID        string // external identity id, mapped to users.auth_id
	ImageURL  string
	FirstName string
	TokenID   string // jti, used for server-side logout revocation
}

var ErrInvalidSession = errors.New("session token invalid or expired")

// Provider verifies a bearer session token issued by the hosted identity
// provider and returns the external identity behind it. The application never
// issues production identities itself.
type Provider interface {
	VerifySession(ctx context.Context, token string) (*Session, error)
}
