package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testTokens() *TokenManager {
	return NewTokenManager("test-secret", "mining-finance-dashboard", time.Hour)
}

func TestTokenGenerateVerify(t *testing.T) {
	tm := testTokens()

	token, err := tm.Generate(42, "admin")
	require.NoError(t, err)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "mining-finance-dashboard", claims.Issuer)
	assert.Equal(t, "42", claims.Subject)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := testTokens().Generate(42, "standard")
	require.NoError(t, err)

	other := NewTokenManager("other-secret", "mining-finance-dashboard", time.Hour)
	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", "mining-finance-dashboard", -time.Minute)
	token, err := tm.Generate(42, "standard")
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := testTokens().Verify("not.a.jwt")
	assert.Error(t, err)
}

// authRouter builds a minimal router with one protected route so the
// middleware can be exercised without a database.
func authRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.GET("/whoami", s.requireAuth(), func(c *gin.Context) {
		respondData(c, 200, gin.H{"user_id": currentUserID(c)})
	})
	return r
}

func TestRequireAuthAcceptsValidBearer(t *testing.T) {
	s := &Server{tokens: testTokens()}
	token, err := s.tokens.Generate(42, "standard")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	authRouter(s).ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"user_id":42}}`, w.Body.String())
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	s := &Server{tokens: testTokens()}

	w := httptest.NewRecorder()
	authRouter(s).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, 401, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"missing or malformed authorization header"}`, w.Body.String())
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	s := &Server{tokens: testTokens()}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	authRouter(s).ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"invalid token"}`, w.Body.String())
}
