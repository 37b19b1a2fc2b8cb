package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guardedRouter(issuer *TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/any", RequireAuth(issuer), func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, p.Email)
	})
	router.DELETE("/admin", RequireAuth(issuer), RequireRoles("Admin"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func call(router http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	issuer := newIssuer(t)
	router := guardedRouter(issuer)

	w := call(router, http.MethodGet, "/any", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")

	w = call(router, http.MethodGet, "/any", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := issuer.Issue(Principal{UserID: uuid.New(), Email: "user@minierp.local", Roles: []string{"User"}})
	require.NoError(t, err)
	w = call(router, http.MethodGet, "/any", token.Value)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user@minierp.local", w.Body.String())
}

func TestRequireRoles(t *testing.T) {
	issuer := newIssuer(t)
	router := guardedRouter(issuer)

	user, err := issuer.Issue(Principal{UserID: uuid.New(), Roles: []string{"User", "Manager"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, call(router, http.MethodDelete, "/admin", user.Value).Code)

	admin, err := issuer.Issue(Principal{UserID: uuid.New(), Roles: []string{"Admin"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, call(router, http.MethodDelete, "/admin", admin.Value).Code)

	assert.Equal(t, http.StatusUnauthorized, call(router, http.MethodDelete, "/admin", "").Code)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer  abc "))
	assert.Empty(t, bearerToken("Basic abc"))
	assert.Empty(t, bearerToken("Bearer "))
}
