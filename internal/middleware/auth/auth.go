package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bookshop/internal/access"
	"github.com/Skotchmaster/bookshop/internal/tokens"
)

const (
	AccessCookie = "accessToken"

	ctxUserID = "user_id"
	ctxRole   = "role"
)

type SimpleAuth struct {
	JWTSecret []byte
}

func NewSimpleAuth(secret []byte) *SimpleAuth {
	return &SimpleAuth{JWTSecret: secret}
}

// RequireAuth accepts the access token from the Authorization header or the
// access cookie and stores the caller identity on the echo context.
func (m *SimpleAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := bearerToken(c.Request())
		if raw == "" {
			if cookie, err := c.Cookie(AccessCookie); err == nil {
				raw = cookie.Value
			}
		}
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil || claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set(ctxUserID, claims.ID)
		c.Set(ctxRole, claims.Role)

		return next(c)
	}
}

// Caller returns the identity stored by RequireAuth. Unauthenticated requests
// yield the zero Caller, which every policy denies.
func Caller(c echo.Context) access.Caller {
	id, _ := c.Get(ctxUserID).(uint)
	role, _ := c.Get(ctxRole).(string)
	return access.Caller{Role: role, ID: id}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get(echo.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
