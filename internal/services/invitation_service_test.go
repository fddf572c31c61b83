package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intconfig "wedding/internal/config"
	"wedding/internal/domain"
	"wedding/internal/domain/models"
	"wedding/internal/invitation"
)

func newInvitationService(t *testing.T) InvitationService {
	t.Helper()
	ev, err := intconfig.ParseEvent([]byte("groom: Dara\nbride: Channary\ndate: \"2026-12-20T17:00:00\"\n"))
	require.NoError(t, err)
	return InvitationService{
		Guests:   newMemGuests(models.Guest{ID: "a1b2c3d4e5", FullName: "Sok Dara", Title: "Mr."}),
		Sessions: invitation.NewStore(time.Hour),
		Event:    ev,
		Now:      fixedNow,
	}
}

func TestInvitationService_OpenStartsInInvite(t *testing.T) {
	svc := newInvitationService(t)

	view, err := svc.Open(context.Background(), "a1b2c3d4e5")
	require.NoError(t, err)
	assert.Equal(t, "Mr. Sok Dara", view.Guest.DisplayName)
	assert.Equal(t, invitation.StageInvite, view.Session.Stage)
	assert.Equal(t, "Dara", view.Event.Groom)
	assert.False(t, view.Countdown.Passed)
}

func TestInvitationService_UnknownGuest(t *testing.T) {
	svc := newInvitationService(t)

	_, err := svc.Open(context.Background(), "missing")
	assert.True(t, domain.IsNotFound(err))
	_, err = svc.Open(context.Background(), "")
	assert.True(t, domain.IsNotFound(err))
}

func TestInvitationService_FireThroughStages(t *testing.T) {
	svc := newInvitationService(t)
	view, err := svc.Open(context.Background(), "a1b2c3d4e5")
	require.NoError(t, err)
	sid := view.Session.ID

	snap, err := svc.Fire("a1b2c3d4e5", sid, "open")
	require.NoError(t, err)
	assert.Equal(t, invitation.StageIntro, snap.Stage)

	snap, err = svc.Fire("a1b2c3d4e5", sid, "autoplay_blocked")
	require.NoError(t, err)
	assert.False(t, snap.Changed)
	assert.True(t, snap.AutoplayBlocked)

	snap, err = svc.Fire("a1b2c3d4e5", sid, "skip")
	require.NoError(t, err)
	assert.Equal(t, invitation.StageInfo, snap.Stage)
	assert.True(t, snap.Audio.Playing)
	assert.Equal(t, invitation.AmbientVolume, snap.Audio.Volume)

	_, err = svc.Fire("a1b2c3d4e5", sid, "rewind")
	assert.True(t, domain.IsValidation(err))
	_, err = svc.Fire("someone-else", sid, "open")
	assert.True(t, domain.IsNotFound(err))
}

func TestInvitationService_CountdownPassed(t *testing.T) {
	svc := newInvitationService(t)
	svc.Now = func() time.Time { return time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC) }
	assert.True(t, svc.Countdown().Passed)
}
