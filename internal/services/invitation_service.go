package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	intconfig "wedding/internal/config"
	"wedding/internal/domain"
	"wedding/internal/invitation"
	"wedding/internal/metrics"
	"wedding/internal/utils"
)

// InvitationGuest is the part of a guest record shown on the invitation.
type InvitationGuest struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Title       string `json:"title,omitempty"`
	DisplayName string `json:"displayName"`
}

type InvitationView struct {
	Guest     InvitationGuest     `json:"guest"`
	Event     intconfig.Event     `json:"event"`
	Countdown utils.Countdown     `json:"countdown"`
	Session   invitation.Snapshot `json:"session"`
}

// InvitationService resolves invitation links and drives their stage machines.
type InvitationService struct {
	Guests    domain.GuestRepository
	Sessions  *invitation.Store
	Event     intconfig.Event
	RequestID string
	Now       func() time.Time
}

func (s InvitationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Open looks the guest up and starts a fresh session in the invite stage.
func (s InvitationService) Open(ctx context.Context, guestID string) (InvitationView, error) {
	guestID = strings.TrimSpace(guestID)
	if guestID == "" {
		return InvitationView{}, domain.NotFoundError{Resource: "guest"}
	}
	g, err := s.Guests.Get(ctx, guestID)
	if err != nil {
		return InvitationView{}, err
	}

	snap := s.Sessions.Start(g.ID)
	metrics.InvitationSessions.Set(float64(s.Sessions.Len()))
	utils.LogEvent(s.RequestID, "invitation", "open", "guest="+g.ID+" session="+snap.ID)
	return InvitationView{
		Guest: InvitationGuest{
			ID:          g.ID,
			FullName:    g.FullName,
			Title:       g.Title,
			DisplayName: g.DisplayName(),
		},
		Event:     s.Event,
		Countdown: s.Countdown(),
		Session:   snap,
	}, nil
}

func (s InvitationService) Session(guestID, sessionID string) (invitation.Snapshot, error) {
	return s.Sessions.Get(guestID, sessionID)
}

// Fire applies a named stage event. A blocked intro autoplay is only logged;
// the visitor can still reach the info stage with "skip".
func (s InvitationService) Fire(guestID, sessionID, event string) (invitation.Snapshot, error) {
	e, err := invitation.ParseEvent(strings.TrimSpace(event))
	if err != nil {
		return invitation.Snapshot{}, err
	}
	snap, err := s.Sessions.Fire(guestID, sessionID, e)
	if err != nil {
		return invitation.Snapshot{}, err
	}
	metrics.InvitationEvents.WithLabelValues(string(e), strconv.FormatBool(snap.Changed)).Inc()

	switch {
	case e == invitation.EventAutoplayBlocked:
		utils.LogEvent(s.RequestID, "invitation", "autoplay_blocked", "session="+sessionID)
	case snap.Changed:
		utils.LogEvent(s.RequestID, "invitation", string(e), "session="+sessionID+" stage="+string(snap.Stage))
	}
	return snap, nil
}

func (s InvitationService) Countdown() utils.Countdown {
	return utils.CountdownUntil(s.now(), s.Event.StartsAt())
}
