package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding/internal/domain"
	"wedding/internal/domain/models"
	"wedding/internal/metrics"
	"wedding/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type tokenAuth map[string]models.User

func (a tokenAuth) Authenticate(_ context.Context, token string) (models.User, error) {
	u, ok := a[token]
	if !ok {
		return models.User{}, domain.UnauthorizedError{Msg: "invalid or expired session"}
	}
	return u, nil
}

func newProtected(auth Authenticator, roles ...string) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	handlers := []gin.HandlerFunc{RequireAuth(auth)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		cu, ok := (&services.AuthService{}).CurrentUser(c.Request.Context())
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": cu.ID, "role": c.GetString("userRole")})
	})
	r.GET("/private", handlers...)
	return r
}

var users = tokenAuth{
	"host-token":   {ID: 1, Role: models.RoleHost},
	"viewer-token": {ID: 2, Role: models.RoleViewer},
}

func TestRequireAuth_APIClientGets401(t *testing.T) {
	r := newProtected(users)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/private", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"login":"/api/auth/login"`)
}

func TestRequireAuth_BrowserRedirectsToLogin(t *testing.T) {
	r := newProtected(users)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireAuth_BearerAndCookie(t *testing.T) {
	r := newProtected(users)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer host-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"role":"host"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "viewer-token"})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoles(t *testing.T) {
	r := newProtected(users, models.RoleAdmin, models.RoleHost)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer viewer-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer host-token")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestID_EchoesOrGenerates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rec.Body.String(), 36)
	assert.Equal(t, rec.Body.String(), rec.Header().Get("X-Request-ID"))
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	r := gin.New()
	r.Use(rl.Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	rl.Cleanup(0)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://host.example"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://host.example")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "https://host.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMetrics_PanickingHandlerSettlesGauge(t *testing.T) {
	r := gin.New()
	r.Use(gin.Recovery(), Metrics())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	inflight := testutil.ToFloat64(metrics.HTTPInFlight)
	served := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/boom", "500"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, inflight, testutil.ToFloat64(metrics.HTTPInFlight))
	assert.Equal(t, served+1, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/boom", "500")))
}
