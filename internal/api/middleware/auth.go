// Package middleware holds gin middleware for bearer-token authentication
// and role gates.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"MockECommerce/internal/api/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	RoleAdmin    = "Admin"
	RoleSeller   = "Seller"
	RoleCustomer = "Customer"
)

const (
	claimUUID   = "uuid"
	claimRole   = "role"
	claimRoles  = "roles"
	claimMSRole = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
)

const principalKey = "principal"

var (
	errMissingToken = errors.New("missing bearer token")
	errMissingUser  = errors.New("token carries no user id")
)

// Principal is the authenticated caller.
type Principal struct {
	UserID uuid.UUID
	Roles  []string
}

func (p Principal) HasRole(roles ...string) bool {
	for _, r := range roles {
		if slices.Contains(p.Roles, r) {
			return true
		}
	}
	return false
}

func (p Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

type AuthConfig struct {
	Secret   []byte
	Issuer   string
	Audience string
}

type principalCtxKey struct{}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// PrincipalFromContext returns the principal stored by Authenticate.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(Principal)
	return p, ok
}

// UserLogAttr tags log records with the authenticated caller's id.
func UserLogAttr(ctx context.Context) (slog.Attr, bool) {
	p, ok := PrincipalFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return slog.String("user_id", p.UserID.String()), true
}

// SetPrincipal stores p on the gin context and the request context.
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
	c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), p))
}

// PrincipalFrom returns the principal set on the gin context.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// Authenticate verifies the HS256 bearer token and stores the caller's
// principal on both the gin and the request context.
func Authenticate(cfg AuthConfig) gin.HandlerFunc {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	parser := jwt.NewParser(opts...)

	return func(c *gin.Context) {
		principal, err := authenticate(parser, cfg.Secret, c.GetHeader("Authorization"))
		if err != nil {
			slog.DebugContext(c.Request.Context(), "Authentication failed", slog.Any("error", err))
			response.Fail(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication is required.")
			return
		}

		SetPrincipal(c, principal)
		c.Next()
	}
}

// RequireRoles rejects callers holding none of roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication is required.")
			return
		}
		if !p.HasRole(roles...) {
			response.Fail(c, http.StatusForbidden, response.CodeForbidden, "You do not have access to this resource.")
			return
		}
		c.Next()
	}
}

func authenticate(parser *jwt.Parser, secret []byte, header string) (Principal, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return Principal{}, errMissingToken
	}

	claims := jwt.MapClaims{}
	_, err := parser.ParseWithClaims(strings.TrimSpace(raw), claims, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		return Principal{}, fmt.Errorf("parse token: %w", err)
	}

	userID, err := userIDFrom(claims)
	if err != nil {
		return Principal{}, err
	}

	return Principal{UserID: userID, Roles: rolesFrom(claims)}, nil
}

func userIDFrom(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, _ := claims[claimUUID].(string)
	if raw == "" {
		raw, _ = claims.GetSubject()
	}
	if raw == "" {
		return uuid.Nil, errMissingUser
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse user id: %w", err)
	}
	return id, nil
}

func rolesFrom(claims jwt.MapClaims) []string {
	var roles []string
	for _, key := range []string{claimRole, claimRoles, claimMSRole} {
		switch v := claims[key].(type) {
		case string:
			roles = append(roles, v)
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					roles = append(roles, s)
				}
			}
		}
	}
	return roles
}
