package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	intconfig "wedding/internal/config"
	"wedding/internal/domain"
	"wedding/internal/http/middleware"
	"wedding/internal/invitation"
	"wedding/internal/services"
)

// API carries the dependencies shared by the route handlers. Services are
// built per request so each one logs with the request's ID.
type API struct {
	Guests   domain.GuestRepository
	Payments domain.PaymentRepository
	Auth     *services.AuthService
	Session  services.SessionProvider
	Sessions *invitation.Store
	Event    intconfig.Event
	BaseURL  string
	Location *time.Location

	// Ping checks the store; defaults to the shared MySQL connection.
	Ping func(c *gin.Context) error
}

func (a *API) guestService(c *gin.Context) services.GuestService {
	return services.GuestService{Repo: a.Guests, BaseURL: a.BaseURL, RequestID: middleware.GetRequestID(c)}
}

func (a *API) paymentService(c *gin.Context) services.PaymentService {
	return services.PaymentService{Repo: a.Payments, Guests: a.Guests, RequestID: middleware.GetRequestID(c)}
}

func (a *API) reportService(c *gin.Context) services.ReportService {
	return services.ReportService{RequestID: middleware.GetRequestID(c), Location: a.Location}
}

func (a *API) invitationService(c *gin.Context) services.InvitationService {
	return services.InvitationService{
		Guests:    a.Guests,
		Sessions:  a.Sessions,
		Event:     a.Event,
		RequestID: middleware.GetRequestID(c),
	}
}

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
