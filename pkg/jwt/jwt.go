package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	TokenTypeSession TokenType = "session"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims extends jwt.RegisteredClaims with the profile fields the identity
// provider exposes on a session: picture and given name.
type Claims struct {
	jwt.RegisteredClaims
	TokenType TokenType `json:"token_type"`
	Picture   string    `json:"picture,omitempty"`
	GivenName string    `json:"given_name,omitempty"`
}

type Manager struct {
	signingKey      []byte
	issuer          string
	sessionTokenTTL time.Duration
	refreshTokenTTL time.Duration
}

func NewManager(signingKey string, issuer string, sessionTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		signingKey:      []byte(signingKey),
		issuer:          issuer,
		sessionTokenTTL: sessionTTL,
		refreshTokenTTL: refreshTTL,
	}
}

// GenerateSessionToken creates a signed session token for an external
// identity id, carrying the profile fields observers read off the session.
func (m *Manager) GenerateSessionToken(externalID string, picture, givenName string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   externalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.sessionTokenTTL)),
			ID:        uuid.New().String(),
		},
		TokenType: TokenTypeSession,
		Picture:   picture,
		GivenName: givenName,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.signingKey)
}

// GenerateRefreshToken creates a signed refresh token. Returns the token
// string and claims (caller can use claims.ID to store the JTI in the
// StateStore for revocation).
func (m *Manager) GenerateRefreshToken(externalID string) (string, *Claims, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   externalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTokenTTL)),
			ID:        uuid.New().String(),
		},
		TokenType: TokenTypeRefresh,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return "", nil, err
	}
	return signed, &claims, nil
}

// Validate parses and validates a token string, returning claims.
func (m *Manager) Validate(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.signingKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.Issuer != m.issuer {
		return nil, errors.New("invalid issuer")
	}

	return claims, nil
}
