package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wedding/internal/services"
)

// GET /api/guests?q=
func (a *API) ListGuests(c *gin.Context) {
	list, err := a.guestService(c).List(c.Request.Context(), c.Query("q"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/guests/:id
func (a *API) GetGuest(c *gin.Context) {
	g, err := a.guestService(c).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// POST /api/guests
func (a *API) CreateGuest(c *gin.Context) {
	var in services.GuestInput
	if !BindJSONOrError(c, &in) {
		return
	}
	g, err := a.guestService(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

// PUT /api/guests/:id
func (a *API) UpdateGuest(c *gin.Context) {
	var in services.GuestInput
	if !BindJSONOrError(c, &in) {
		return
	}
	g, err := a.guestService(c).Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// DELETE /api/guests/:id
func (a *API) DeleteGuest(c *gin.Context) {
	if err := a.guestService(c).Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "guest deleted"})
}
