package identity

import (
	"context"
	"fmt"

	"github.com/zitadel/oidc/v3/pkg/client/rs"
	"github.com/zitadel/oidc/v3/pkg/oidc"
)

type oidcProvider struct {
	server rs.ResourceServer
}

// NewOIDCProvider builds a Provider that introspects session tokens against
// the hosted identity provider's introspection endpoint.
func NewOIDCProvider(ctx context.Context, issuer, clientID, clientSecret string) (Provider, error) {
	server, err := rs.NewResourceServerClientCredentials(ctx, issuer, clientID, clientSecret)
	if err != nil {
		return nil, fmt.Errorf("create resource server client: %w", err)
	}
	return &oidcProvider{server: server}, nil
}

func (p *oidcProvider) VerifySession(ctx context.Context, token string) (*Session, error) {
	resp, err := rs.Introspect[*oidc.IntrospectionResponse](ctx, p.server, token)
	if err != nil {
		return nil, fmt.Errorf("introspect session token: %w", err)
	}
	if !resp.Active {
		return nil, ErrInvalidSession
	}
	return &Session{
		ID:        resp.Subject,
		ImageURL:  resp.Picture,
		FirstName: resp.GivenName,
		TokenID:   resp.JWTID,
	}, nil
}
