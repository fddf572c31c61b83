package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/event
func (a *API) GetEvent(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"event":    a.Event,
		"startsAt": a.Event.StartsAt(),
	})
}

// GET /api/event/countdown
func (a *API) GetCountdown(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"startsAt":  a.Event.StartsAt(),
		"countdown": a.invitationService(c).Countdown(),
	})
}
