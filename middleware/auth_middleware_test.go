package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"school-cms-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// router kecil dengan satu endpoint terlindungi yang meng-echo adminID.
func protectedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"adminId": AdminIDFromContext(c)})
	})
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareMissingHeaderIs401(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	w := doGet(protectedRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Respon error pun memakai envelope standar.
	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
}

func TestAuthMiddlewareNonBearerIs401(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	w := doGet(protectedRouter(), "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareGarbageTokenIs401(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	w := doGet(protectedRouter(), "Bearer bukan.token.jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareWrongSecretIs401(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	token, err := utils.GenerateToken("admin-aaa111", "Budi", "budi")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-b")
	w := doGet(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareValidTokenInjectsIdentity(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := utils.GenerateToken("admin-aaa111", "Budi", "budi")
	require.NoError(t, err)

	w := doGet(protectedRouter(), "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "admin-aaa111", body["adminId"])
}
