package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/HenrryVelezC/minierp/internal/shared/errors"
)

// TokenParser validates a raw bearer token.
type TokenParser interface {
	Parse(token string) (Principal, error)
}

type principalKey struct{}

const ginPrincipalKey = "auth.principal"

// WithPrincipal stores the principal on a context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal placed by RequireAuth.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// CurrentPrincipal reads the principal from a gin request.
func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	if v, ok := c.Get(ginPrincipalKey); ok {
		if p, ok := v.(Principal); ok {
			return p, true
		}
	}
	return PrincipalFromContext(c.Request.Context())
}

// RequireAuth rejects requests without a valid "Authorization: Bearer" token.
func RequireAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			apierrors.Abort(c, apierrors.ErrUnauthorized.WithDetail("missing bearer token"))
			return
		}
		principal, err := parser.Parse(raw)
		if err != nil {
			apierrors.Abort(c, apierrors.ErrUnauthorized.WithDetail(err.Error()))
			return
		}
		c.Set(ginPrincipalKey, principal)
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

// RequireRoles allows the request when the principal holds any of roles. It must run after RequireAuth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			apierrors.Abort(c, apierrors.ErrUnauthorized.WithDetail("missing bearer token"))
			return
		}
		if !principal.HasAnyRole(roles...) {
			apierrors.Abort(c, apierrors.ErrForbidden.WithDetail("requires role "+strings.Join(roles, " or ")))
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
