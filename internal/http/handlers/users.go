package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wedding/internal/services"
)

// GET /api/users
func (a *API) ListUsers(c *gin.Context) {
	users, err := a.Auth.ListAccounts(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// POST /api/users
func (a *API) CreateUser(c *gin.Context) {
	var in services.AccountInput
	if !BindJSONOrError(c, &in) {
		return
	}
	u, err := a.Auth.CreateAccount(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}
