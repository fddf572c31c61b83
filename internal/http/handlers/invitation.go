package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wedding/internal/domain"
)

type stageEventRequest struct {
	Event string `json:"event"`
}

// GET /wedding/:guestId
//
// Unknown guests get {"state":"not_found"} instead of an error payload so
// the page can render its "invitation not found" view.
func (a *API) OpenInvitation(c *gin.Context) {
	view, err := a.invitationService(c).Open(c.Request.Context(), c.Param("guestId"))
	if domain.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"state": "not_found"})
		return
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"state":      "ready",
		"guest":      view.Guest,
		"event":      view.Event,
		"startsAt":   view.Event.StartsAt(),
		"countdown":  view.Countdown,
		"session":    view.Session,
		"eventsPath": c.Request.URL.Path + "/sessions/" + view.Session.ID + "/events",
	})
}

// GET /wedding/:guestId/sessions/:sid
func (a *API) GetInvitationSession(c *gin.Context) {
	snap, err := a.invitationService(c).Session(c.Param("guestId"), c.Param("sid"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// POST /wedding/:guestId/sessions/:sid/events
func (a *API) FireInvitationEvent(c *gin.Context) {
	var req stageEventRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	snap, err := a.invitationService(c).Fire(c.Param("guestId"), c.Param("sid"), req.Event)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}
