package identityextractors

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agrosense/agrosense"
	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	services.AuthService
	claims map[string]*services.TokenClaims
}

func (s *stubAuthService) ParseAndVerify(ctx context.Context, token string) (*services.TokenClaims, error) {
	claims, ok := s.claims[token]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func testEngine(authSvc services.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New().WithField("svc", "test")

	engine := gin.New()
	engine.Use(RequestMetadataToContextMiddleware(logger, authSvc))
	engine.GET("/whoami", func(c *gin.Context) {
		userID, _ := c.Request.Context().Value(agrosense.ContextKeyAuthID).(string)
		c.String(200, userID)
	})
	engine.GET("/protected", RequireAuthentication(), func(c *gin.Context) {
		c.String(200, "ok")
	})
	engine.GET("/admin", RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.String(200, "ok")
	})

	return engine
}

func TestIdentityExtractorSetsAuthID(t *testing.T) {
	authSvc := &stubAuthService{claims: map[string]*services.TokenClaims{
		"good-token": {UserID: "user-1", Role: models.RoleFarmer},
	}}
	engine := testEngine(authSvc)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "user-1", string(body))
}

func TestIdentityExtractorAnonymousPassThrough(t *testing.T) {
	engine := testEngine(&stubAuthService{claims: map[string]*services.TokenClaims{}})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRequireAuthentication(t *testing.T) {
	authSvc := &stubAuthService{claims: map[string]*services.TokenClaims{
		"good-token": {UserID: "user-1", Role: models.RoleFarmer},
	}}
	engine := testEngine(authSvc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, 401, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, 401, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, 200, rec.Code)
}

func TestRequireRole(t *testing.T) {
	authSvc := &stubAuthService{claims: map[string]*services.TokenClaims{
		"farmer-token": {UserID: "user-1", Role: models.RoleFarmer},
		"admin-token":  {UserID: "user-2", Role: models.RoleAdmin},
	}}
	engine := testEngine(authSvc)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer farmer-token")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, 403, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, 200, rec.Code)
}
