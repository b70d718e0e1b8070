package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grouple/communityhub/internal/identity"
	"grouple/communityhub/internal/model"
	"grouple/communityhub/internal/service"
	"grouple/communityhub/pkg/envelope"
	jwtpkg "grouple/communityhub/pkg/jwt"
)

type stubAuthService struct {
	user    *service.AuthenticatedUser
	revoked map[string]bool
}

func (s *stubAuthService) SignUp(context.Context, string, string, string, string) (*model.User, error) {
	panic("not used by the middleware")
}

func (s *stubAuthService) SignIn(context.Context, string) (*service.SignInResult, error) {
	panic("not used by the middleware")
}

func (s *stubAuthService) Resolve(_ context.Context, authID, image string) (*service.AuthenticatedUser, error) {
	if s.user == nil {
		return nil, service.ErrUserNotFound
	}
	return s.user, nil
}

func (s *stubAuthService) RevokeSession(_ context.Context, tokenID string, _ time.Duration) error {
	if s.revoked == nil {
		s.revoked = make(map[string]bool)
	}
	s.revoked[tokenID] = true
	return nil
}

func (s *stubAuthService) IsSessionRevoked(_ context.Context, tokenID string) (bool, error) {
	return s.revoked[tokenID], nil
}

func authTestRouter(provider identity.Provider, svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", SessionAuth(provider, svc), func(c *gin.Context) {
		val, _ := c.Get(ContextKeyUser)
		user := val.(*service.AuthenticatedUser)
		envelope.OK(c, "", gin.H{"id": user.ID})
	})
	return r
}

func bodyStatus(t *testing.T, rec *httptest.ResponseRecorder) float64 {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["status"].(float64)
}

func TestSessionAuthAcceptsValidToken(t *testing.T) {
	manager := jwtpkg.NewManager("key", "communityhub", time.Hour, time.Hour)
	provider := identity.NewJWTProvider(manager)
	svc := &stubAuthService{user: &service.AuthenticatedUser{ID: uuid.New(), Username: "Ada Lovelace"}}

	token, err := manager.GenerateSessionToken("ext_1", "", "Ada")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	authTestRouter(provider, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, envelope.StatusOK, bodyStatus(t, rec))
}

func TestSessionAuthRejectsMissingOrMalformedHeader(t *testing.T) {
	manager := jwtpkg.NewManager("key", "communityhub", time.Hour, time.Hour)
	router := authTestRouter(identity.NewJWTProvider(manager), &stubAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.EqualValues(t, envelope.StatusUnauthorized, bodyStatus(t, rec))

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.EqualValues(t, envelope.StatusUnauthorized, bodyStatus(t, rec))
}

func TestSessionAuthRejectsRevokedToken(t *testing.T) {
	manager := jwtpkg.NewManager("key", "communityhub", time.Hour, time.Hour)
	provider := identity.NewJWTProvider(manager)
	svc := &stubAuthService{user: &service.AuthenticatedUser{ID: uuid.New()}}

	token, err := manager.GenerateSessionToken("ext_1", "", "")
	require.NoError(t, err)
	claims, err := manager.Validate(token)
	require.NoError(t, err)
	require.NoError(t, svc.RevokeSession(context.Background(), claims.ID, time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	authTestRouter(provider, svc).ServeHTTP(rec, req)

	assert.EqualValues(t, envelope.StatusUnauthorized, bodyStatus(t, rec))
}

func TestSessionAuthRejectsRefreshTokenAsSession(t *testing.T) {
	manager := jwtpkg.NewManager("key", "communityhub", time.Hour, time.Hour)
	provider := identity.NewJWTProvider(manager)

	refresh, _, err := manager.GenerateRefreshToken("ext_1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rec := httptest.NewRecorder()
	authTestRouter(provider, &stubAuthService{}).ServeHTTP(rec, req)

	assert.EqualValues(t, envelope.StatusUnauthorized, bodyStatus(t, rec))
}
