package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"MockECommerce/internal/api/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAuth = AuthConfig{
	Secret:   []byte("test-secret-key-with-enough-bytes"),
	Issuer:   "mock-ecommerce",
	Audience: "mock-ecommerce-clients",
}

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func validClaims(userID uuid.UUID) jwt.MapClaims {
	return jwt.MapClaims{
		"uuid": userID.String(),
		"role": RoleCustomer,
		"iss":  testAuth.Issuer,
		"aud":  testAuth.Audience,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
}

func newTestEngine(handlers ...gin.HandlerFunc) (*gin.Engine, *Principal) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	var seen Principal
	handlers = append(handlers, func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		fromCtx, ok := PrincipalFromContext(c.Request.Context())
		if ok && fromCtx.UserID == p.UserID {
			seen = p
		}
		c.Status(http.StatusNoContent)
	})
	engine.GET("/protected", handlers...)
	return engine, &seen
}

func doRequest(engine *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()

	t.Run("should accept valid token and expose principal", func(t *testing.T) {
		engine, seen := newTestEngine(Authenticate(testAuth))

		w := doRequest(engine, signToken(t, testAuth.Secret, validClaims(userID)))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, userID, seen.UserID)
		assert.Equal(t, []string{RoleCustomer}, seen.Roles)
	})

	t.Run("should fall back to sub claim", func(t *testing.T) {
		engine, seen := newTestEngine(Authenticate(testAuth))
		claims := validClaims(userID)
		delete(claims, "uuid")
		claims["sub"] = userID.String()

		w := doRequest(engine, signToken(t, testAuth.Secret, claims))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, userID, seen.UserID)
	})

	t.Run("should collect roles from every role claim", func(t *testing.T) {
		engine, seen := newTestEngine(Authenticate(testAuth))
		claims := validClaims(userID)
		delete(claims, "role")
		claims["roles"] = []string{RoleSeller, RoleCustomer}
		claims["http://schemas.microsoft.com/ws/2008/06/identity/claims/role"] = RoleAdmin

		w := doRequest(engine, signToken(t, testAuth.Secret, claims))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.ElementsMatch(t, []string{RoleSeller, RoleCustomer, RoleAdmin}, seen.Roles)
		assert.True(t, seen.IsAdmin())
	})

	rejected := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{name: "missing token", token: func(*testing.T) string { return "" }},
		{name: "malformed token", token: func(*testing.T) string { return "not-a-jwt" }},
		{name: "wrong signature", token: func(t *testing.T) string {
			return signToken(t, []byte("another-secret-key-entirely-here"), validClaims(userID))
		}},
		{name: "expired token", token: func(t *testing.T) string {
			claims := validClaims(userID)
			claims["exp"] = time.Now().Add(-time.Minute).Unix()
			return signToken(t, testAuth.Secret, claims)
		}},
		{name: "missing expiry", token: func(t *testing.T) string {
			claims := validClaims(userID)
			delete(claims, "exp")
			return signToken(t, testAuth.Secret, claims)
		}},
		{name: "wrong issuer", token: func(t *testing.T) string {
			claims := validClaims(userID)
			claims["iss"] = "someone-else"
			return signToken(t, testAuth.Secret, claims)
		}},
		{name: "wrong audience", token: func(t *testing.T) string {
			claims := validClaims(userID)
			claims["aud"] = "other-clients"
			return signToken(t, testAuth.Secret, claims)
		}},
		{name: "non-uuid user id", token: func(t *testing.T) string {
			claims := validClaims(userID)
			claims["uuid"] = "user-42"
			return signToken(t, testAuth.Secret, claims)
		}},
		{name: "no user id", token: func(t *testing.T) string {
			claims := validClaims(userID)
			delete(claims, "uuid")
			return signToken(t, testAuth.Secret, claims)
		}},
	}

	for _, tc := range rejected {
		t.Run("should reject "+tc.name, func(t *testing.T) {
			engine, _ := newTestEngine(Authenticate(testAuth))

			w := doRequest(engine, tc.token(t))

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			env := decode(t, w)
			assert.False(t, env.Success)
			assert.Equal(t, response.CodeUnauthorized, env.Code)
		})
	}
}

func TestRequireRoles(t *testing.T) {
	userID := uuid.New()

	t.Run("should allow caller with one of the roles", func(t *testing.T) {
		engine, _ := newTestEngine(Authenticate(testAuth), RequireRoles(RoleAdmin, RoleSeller))
		claims := validClaims(userID)
		claims["role"] = RoleSeller

		w := doRequest(engine, signToken(t, testAuth.Secret, claims))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("should forbid caller without the role", func(t *testing.T) {
		engine, _ := newTestEngine(Authenticate(testAuth), RequireRoles(RoleAdmin))

		w := doRequest(engine, signToken(t, testAuth.Secret, validClaims(userID)))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, response.CodeForbidden, decode(t, w).Code)
	})

	t.Run("should reject unauthenticated caller", func(t *testing.T) {
		engine, _ := newTestEngine(RequireRoles(RoleAdmin))

		w := doRequest(engine, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUserLogAttr(t *testing.T) {
	_, ok := UserLogAttr(context.Background())
	assert.False(t, ok)

	p := Principal{UserID: uuid.New(), Roles: []string{RoleCustomer}}
	attr, ok := UserLogAttr(WithPrincipal(context.Background(), p))

	require.True(t, ok)
	assert.Equal(t, "user_id", attr.Key)
	assert.Equal(t, p.UserID.String(), attr.Value.String())
}
