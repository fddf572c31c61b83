package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wedding/internal/http/middleware"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	token, user, err := a.Auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	maxAge := int(a.Auth.TTL.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", c.Request.TLS != nil, true)
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresIn": maxAge,
		"user":      user,
	})
}

// POST /api/auth/logout
func (a *API) Logout(c *gin.Context) {
	if err := a.Auth.SignOut(c.Request.Context(), middleware.BearerToken(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", c.Request.TLS != nil, true)
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// GET /api/auth/me
func (a *API) Me(c *gin.Context) {
	u, ok := a.Session.CurrentUser(c.Request.Context())
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "not signed in")
		return
	}
	c.JSON(http.StatusOK, u)
}
