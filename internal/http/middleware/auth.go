package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wedding/internal/domain/models"
	"wedding/internal/services"
)

// SessionCookie carries the token for browser clients.
const SessionCookie = "wedding_session"

const userRoleKey = "userRole"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, error)
}

// BearerToken reads the token from the Authorization header, then the
// session cookie.
func BearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(tok)
		}
	}
	if ck, err := c.Cookie(SessionCookie); err == nil {
		return ck
	}
	return ""
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}

// RequireAuth rejects requests without a valid session. Browsers are sent
// to the login page, API clients get 401.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			deny(c, "missing session")
			return
		}
		u, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			deny(c, err.Error())
			return
		}

		c.Set(userRoleKey, u.Role)
		c.Request = c.Request.WithContext(services.WithUser(c.Request.Context(), u))
		c.Next()
	}
}

func deny(c *gin.Context, msg string) {
	if wantsHTML(c) {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      msg,
		"code":       "unauthorized",
		"login":      "/api/auth/login",
		"request_id": GetRequestID(c),
	})
}
