package identity

import (
	"context"

	jwtpkg "grouple/communityhub/pkg/jwt"
)

type jwtProvider struct {
	manager *jwtpkg.Manager
}

// NewJWTProvider builds a Provider validating locally signed session tokens.
// Used in development and tests where no hosted provider is reachable.
func NewJWTProvider(manager *jwtpkg.Manager) Provider {
	return &jwtProvider{manager: manager}
}

func (p *jwtProvider) VerifySession(_ context.Context, token string) (*Session, error) {
	claims, err := p.manager.Validate(token)
	if err != nil {
		return nil, ErrInvalidSession
	}
	if claims.TokenType != jwtpkg.TokenTypeSession {
		return nil, ErrInvalidSession
	}
	return &Session{
		ID:        claims.Subject,
		ImageURL:  claims.Picture,
		FirstName: claims.GivenName,
		TokenID:   claims.ID,
	}, nil
}
